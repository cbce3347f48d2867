package gameserver

import (
	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/combat"
	"github.com/grimwire/crusade/internal/game/session"
)

// startRequest is the optional JSON body for POST /game/start. Query
// parameters space_marine_name and num_enemies are accepted as well;
// body fields win when both are present.
type startRequest struct {
	PlayerName string `json:"player_name"`
	EnemyCount *int   `json:"enemy_count"`
}

// turnRequest is the optional JSON body for POST /game/next_turn. An
// empty session_id targets the current session.
type turnRequest struct {
	SessionID string `json:"session_id"`
}

// attackPayload is the wire form of a resolved attack. Shout is
// omitted when the narrator produced nothing for this attack.
type attackPayload struct {
	Attacker            character.Character `json:"attacker"`
	Defender            character.Character `json:"defender"`
	DiceRoll            int                 `json:"dice_roll"`
	Damage              int                 `json:"damage"`
	DefenderHealthAfter int                 `json:"defender_health_after"`
	DefenderDefeated    bool                `json:"defender_defeated"`
	Shout               string              `json:"shout,omitempty"`
}

// turnResponse reports one processed turn. EnemyAttack is null when
// the enemy did not retaliate.
type turnResponse struct {
	SessionID    string         `json:"session_id"`
	PlayerAttack attackPayload  `json:"player_attack"`
	EnemyAttack  *attackPayload `json:"enemy_attack"`
	RoundNumber  int            `json:"round_number"`
	IsGameOver   bool           `json:"is_game_over"`
	IsVictory    bool           `json:"is_victory"`
}

// sessionResponse is the wire form of a session snapshot.
type sessionResponse struct {
	SessionID         string                `json:"session_id"`
	Player            character.Character   `json:"player"`
	Enemies           []character.Character `json:"enemies"`
	CurrentEnemyIndex int                   `json:"current_enemy_index"`
	RoundNumber       int                   `json:"round_number"`
	IsGameOver        bool                  `json:"is_game_over"`
	IsVictory         bool                  `json:"is_victory"`
}

// statsResponse reports aggregate statistics for the current session.
type statsResponse struct {
	CombatCount      int  `json:"combat_count"`
	GameActive       bool `json:"game_active"`
	RoundNumber      int  `json:"round_number"`
	PlayerHealth     int  `json:"player_health"`
	EnemiesRemaining int  `json:"enemies_remaining"`
}

// noSessionStatsResponse is the stats shape before any game has been
// started: just the counters that are meaningful without a session.
type noSessionStatsResponse struct {
	CombatCount int  `json:"combat_count"`
	GameActive  bool `json:"game_active"`
}

// healthResponse is the wire form of GET /health.
type healthResponse struct {
	Status            string `json:"status"`
	Service           string `json:"service"`
	NarratorAvailable bool   `json:"narrator_available"`
}

// errorResponse is the wire form of every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

func newAttackPayload(r combat.AttackResult) attackPayload {
	return attackPayload{
		Attacker:            r.Attacker,
		Defender:            r.Defender,
		DiceRoll:            r.Roll,
		Damage:              r.Damage,
		DefenderHealthAfter: r.DefenderHealthAfter,
		DefenderDefeated:    r.DefenderDefeated,
	}
}

func newSessionResponse(snap session.Snapshot) sessionResponse {
	return sessionResponse{
		SessionID:         snap.ID,
		Player:            snap.Player,
		Enemies:           snap.Enemies,
		CurrentEnemyIndex: snap.CurrentEnemyIndex,
		RoundNumber:       snap.RoundNumber,
		IsGameOver:        snap.IsOver,
		IsVictory:         snap.IsVictory,
	}
}
