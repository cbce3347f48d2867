// Package character defines the combatant domain model: the closed archetype
// set, the player/enemy distinction, and the health mutation rules.
package character

import "fmt"

// Archetype identifies a character's fixed stat profile. The set is closed:
// one player archetype and six enemy archetypes.
type Archetype string

const (
	SpaceMarine  Archetype = "space_marine"
	Ork          Archetype = "ork"
	ChaosCultist Archetype = "chaos_cultist"
	Tyranid      Archetype = "tyranid"
	Necron       Archetype = "necron"
	Eldar        Archetype = "eldar"
	Tau          Archetype = "tau"
)

// enemyArchetypes is the fixed selection order for random enemy generation.
var enemyArchetypes = []Archetype{Ork, ChaosCultist, Tyranid, Necron, Eldar, Tau}

// Valid reports whether a is a member of the closed archetype set.
func (a Archetype) Valid() bool {
	switch a {
	case SpaceMarine, Ork, ChaosCultist, Tyranid, Necron, Eldar, Tau:
		return true
	default:
		return false
	}
}

// EnemyArchetypes returns the six enemy archetypes in their fixed order.
//
// Postcondition: Returns a fresh slice; callers may modify it freely.
func EnemyArchetypes() []Archetype {
	out := make([]Archetype, len(enemyArchetypes))
	copy(out, enemyArchetypes)
	return out
}

// Kind distinguishes the player unit from enemy units.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
)

// String returns a human-readable kind label.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Character represents one combatant. Health is the only field mutated after
// creation, and only through ApplyDamage.
//
// Invariant: 0 <= Health <= MaxHealth; MaxHealth >= 1; AttackPower >= 1.
type Character struct {
	Name        string    `json:"name"`
	Archetype   Archetype `json:"character_type"`
	Kind        Kind      `json:"-"`
	Health      int       `json:"health"`
	MaxHealth   int       `json:"max_health"`
	AttackPower int       `json:"attack_power"`
}

// Validate checks the character invariants.
//
// Postcondition: Returns nil iff all invariants hold; otherwise an error
// describing the first violation.
func (c *Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character: name must not be empty")
	}
	if !c.Archetype.Valid() {
		return fmt.Errorf("character %q: unknown archetype %q", c.Name, c.Archetype)
	}
	if c.MaxHealth < 1 {
		return fmt.Errorf("character %q: max_health must be >= 1, got %d", c.Name, c.MaxHealth)
	}
	if c.Health < 0 || c.Health > c.MaxHealth {
		return fmt.Errorf("character %q: health %d outside [0, %d]", c.Name, c.Health, c.MaxHealth)
	}
	if c.AttackPower < 1 {
		return fmt.Errorf("character %q: attack_power must be >= 1, got %d", c.Name, c.AttackPower)
	}
	return nil
}

// ApplyDamage reduces Health by amount, flooring at zero.
//
// Precondition: amount must be >= 0. Panics with
// "character: ApplyDamage called with negative amount" on violation.
// Postcondition: Health >= 0.
func (c *Character) ApplyDamage(amount int) {
	if amount < 0 {
		panic("character: ApplyDamage called with negative amount")
	}
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// IsDefeated reports whether this character has been reduced to zero health.
//
// Postcondition: Returns true iff Health == 0.
func (c *Character) IsDefeated() bool {
	return c.Health == 0
}
