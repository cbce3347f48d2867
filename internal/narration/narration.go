// Package narration produces optional battle-cry flavor text for combat
// outcomes. Narration is strictly cosmetic: it never affects combat state,
// and every failure mode collapses to "no narration available".
package narration

import (
	"context"
	"fmt"

	"github.com/grimwire/crusade/internal/game/character"
)

// Request describes one attack for the narrator.
type Request struct {
	// Archetype is the shouting character's archetype.
	Archetype character.Archetype
	// Situation is a short prose description of the attack.
	Situation string
	// Roll is the raw d6 result.
	Roll int
	// Hit reports whether the attack landed.
	Hit bool
}

// Result is the outcome of a narration attempt. Unavailability is data, not
// an error: callers omit the shout and move on.
type Result struct {
	// Text is the shout. Meaningful only when Available is true.
	Text string
	// Available is true iff a non-empty shout was produced.
	Available bool
}

// Unavailable is the Result for every failure mode.
var Unavailable = Result{}

// Ok wraps a non-empty shout in an available Result.
//
// Precondition: text must be non-empty.
func Ok(text string) Result {
	return Result{Text: text, Available: true}
}

// Narrator generates a shout for a combat situation. Implementations must
// honor ctx cancellation and must never block past their configured bound.
type Narrator interface {
	// Shout returns flavor text for the request, or Unavailable.
	Shout(ctx context.Context, req Request) Result
	// Available reports whether the narrator has a usable credential.
	Available() bool
}

// Disabled is a Narrator that never produces text. It is the implementation
// wired when narration is turned off in configuration.
type Disabled struct{}

// Shout always returns Unavailable.
func (Disabled) Shout(context.Context, Request) Result { return Unavailable }

// Available always reports false.
func (Disabled) Available() bool { return false }

// Situation renders the prose description of one attack for the narrator
// prompt.
//
// Postcondition: Returns a non-empty single-sentence description.
func Situation(attacker, defender character.Character, roll int, hit bool) string {
	if hit {
		return fmt.Sprintf("%s (%s) attacks %s (%s) with a dice roll of %d. The attack lands and deals damage!",
			attacker.Name, attacker.Archetype, defender.Name, defender.Archetype, roll)
	}
	return fmt.Sprintf("%s (%s) attacks %s (%s) with a dice roll of %d. The attack misses!",
		attacker.Name, attacker.Archetype, defender.Name, defender.Archetype, roll)
}
