// Package combat implements single-attack resolution for the Crusade game.
package combat

import (
	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/dice"
)

// HitThreshold is the minimum d6 roll that lands a hit. Rolls 1-2 always
// miss; rolls 3-6 always hit.
const HitThreshold = 3

// Source is the subset of dice.Source used by the resolver.
// Using a local interface keeps the resolver testable with fixed sources.
type Source interface {
	Intn(n int) int
}

// AttackResult holds the outcome of a single attack action. It is produced
// fresh by each ResolveAttack call and never mutated.
type AttackResult struct {
	// Attacker and Defender are value snapshots of the two participants taken
	// immediately after the attack was applied. Later turns cannot alter a
	// result that has already been produced.
	Attacker character.Character
	Defender character.Character
	// Roll is the raw d6 result.
	Roll int
	// Damage is the health removed from the defender: attack power + roll on
	// a hit, 0 on a miss.
	Damage int
	// DefenderHealthAfter is the defender's health immediately after the
	// attack, clamped at zero.
	DefenderHealthAfter int
	// DefenderDefeated is true iff DefenderHealthAfter == 0.
	DefenderDefeated bool
}

// Hit reports whether the attack landed.
//
// Postcondition: Returns true iff Roll >= HitThreshold.
func (r AttackResult) Hit() bool {
	return r.Roll >= HitThreshold
}

// ResolveAttack performs one attack of attacker against defender: a d6 roll
// decides hit or miss, and a hit removes attack power + roll from the
// defender's health, clamped at zero. Mutating the defender is the only side
// effect; it is not undone if the caller discards the result.
//
// Precondition: attacker, defender, and src must be non-nil. The function is
// total: any two valid characters may be passed.
// Postcondition: Returns a fully populated AttackResult;
// defender.Health == max(0, previous health - Damage).
func ResolveAttack(attacker, defender *character.Character, src Source) AttackResult {
	roll := dice.Roll(src, dice.DefaultSides)

	damage := 0
	if roll >= HitThreshold {
		damage = attacker.AttackPower + roll
		defender.ApplyDamage(damage)
	}

	return AttackResult{
		Attacker:            *attacker,
		Defender:            *defender,
		Roll:                roll,
		Damage:              damage,
		DefenderHealthAfter: defender.Health,
		DefenderDefeated:    defender.IsDefeated(),
	}
}
