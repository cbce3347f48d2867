// Package session holds the mutable state of one match and the turn
// sequencing rules, plus a keyed manager for session ownership.
package session

import (
	"errors"
	"sync"

	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/combat"
)

// State is the session lifecycle state. Active is the only state that accepts
// turns; Victory and Defeat are terminal and frozen.
type State int

const (
	StateActive State = iota
	StateVictory
	StateDefeat
)

// String returns a human-readable state label.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateVictory:
		return "victory"
	case StateDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

var (
	// ErrNoSession indicates no session has been started yet.
	ErrNoSession = errors.New("no active session")
	// ErrSessionOver indicates the session reached a terminal state; further
	// turns are rejected without touching state.
	ErrSessionOver = errors.New("session is already over")
	// ErrNoTarget indicates there is no enemy left to fight.
	ErrNoTarget = errors.New("no enemy to fight")
	// ErrInvalidEnemyCount indicates a start request with a non-positive or
	// excessive enemy count.
	ErrInvalidEnemyCount = errors.New("invalid enemy count")
)

// TurnResult is the pair of outcomes a single turn produces. PlayerAttack is
// always present; EnemyAttack is nil when the enemy did not retaliate
// (defeated by the player's blow, or the player was already down).
type TurnResult struct {
	PlayerAttack combat.AttackResult
	EnemyAttack  *combat.AttackResult
}

// Session is the single mutable aggregate for one match. It exclusively owns
// the player and all enemies; turn processing is serialized behind an
// internal mutex so concurrent callers never observe a torn state.
//
// Invariant: 0 <= currentEnemyIndex <= len(enemies); roundNumber >= 1;
// currentEnemyIndex and roundNumber never decrease; a terminal state is
// never left.
type Session struct {
	mu sync.Mutex

	id                string
	player            *character.Character
	enemies           []*character.Character
	currentEnemyIndex int
	roundNumber       int
	combatCount       int
	state             State
}

// New creates an active session with the given player and enemy roster.
//
// Precondition: id must be non-empty; player must be non-nil;
// len(enemies) >= 1 (enforced by Manager.Start). Panics with
// "session: New called with empty roster" on an empty roster.
// Postcondition: index 0, round 1, state Active.
func New(id string, player *character.Character, enemies []*character.Character) *Session {
	if len(enemies) == 0 {
		panic("session: New called with empty roster")
	}
	return &Session{
		id:          id,
		player:      player,
		enemies:     enemies,
		roundNumber: 1,
		state:       StateActive,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// ProcessTurn runs one full combat turn: the player attacks the current
// enemy, the enemy retaliates if it survived and the player is standing, and
// the session state advances. The turn either fully commits or, on
// rejection, leaves the session untouched.
//
// Precondition: src must be non-nil.
// Postcondition: On success, exactly one of the following happened: an enemy
// fell (index advanced, possibly Victory), the player fell (Defeat), or the
// round number advanced.
func (s *Session) ProcessTurn(src combat.Source) (TurnResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return TurnResult{}, ErrSessionOver
	}
	if s.currentEnemyIndex >= len(s.enemies) {
		return TurnResult{}, ErrNoTarget
	}

	enemy := s.enemies[s.currentEnemyIndex]

	result := TurnResult{
		PlayerAttack: combat.ResolveAttack(s.player, enemy, src),
	}
	s.combatCount++

	// The enemy retaliates only if it survived the player's blow and the
	// player is still standing.
	if !result.PlayerAttack.DefenderDefeated && s.player.Health > 0 {
		enemyAttack := combat.ResolveAttack(enemy, s.player, src)
		result.EnemyAttack = &enemyAttack
	}

	switch {
	case result.PlayerAttack.DefenderDefeated:
		s.currentEnemyIndex++
		if s.currentEnemyIndex == len(s.enemies) {
			s.state = StateVictory
		}
	case s.player.Health == 0:
		s.state = StateDefeat
	default:
		s.roundNumber++
	}

	return result, nil
}

// Snapshot is a consistent, immutable copy of a session's externally visible
// state.
type Snapshot struct {
	ID                string
	Player            character.Character
	Enemies           []character.Character
	CurrentEnemyIndex int
	RoundNumber       int
	IsOver            bool
	IsVictory         bool
}

// Snapshot returns a copy of the session state taken under the session lock.
//
// Postcondition: The returned value shares no memory with the live session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	enemies := make([]character.Character, len(s.enemies))
	for i, e := range s.enemies {
		enemies[i] = *e
	}
	return Snapshot{
		ID:                s.id,
		Player:            *s.player,
		Enemies:           enemies,
		CurrentEnemyIndex: s.currentEnemyIndex,
		RoundNumber:       s.roundNumber,
		IsOver:            s.state != StateActive,
		IsVictory:         s.state == StateVictory,
	}
}

// Stats is the aggregate progress view of a session.
type Stats struct {
	CombatCount      int
	GameActive       bool
	RoundNumber      int
	PlayerHealth     int
	EnemiesRemaining int
}

// Stats returns the session's progress counters taken under the session lock.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	remaining := 0
	for _, e := range s.enemies {
		if e.Health > 0 {
			remaining++
		}
	}
	return Stats{
		CombatCount:      s.combatCount,
		GameActive:       s.state == StateActive,
		RoundNumber:      s.roundNumber,
		PlayerHealth:     s.player.Health,
		EnemiesRemaining: remaining,
	}
}
