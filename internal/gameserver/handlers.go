package gameserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/grimwire/crusade/internal/game/combat"
	"github.com/grimwire/crusade/internal/game/session"
	"github.com/grimwire/crusade/internal/narration"
)

// handleHealth reports liveness and whether the narrator has
// credentials. Always 200 while the process serves.
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:            "healthy",
		Service:           "crusade",
		NarratorAvailable: s.narrator.Available(),
	})
}

// handleStart creates a fresh session and makes it current. The player
// name and enemy count come from the JSON body when one is sent,
// falling back to query parameters and then to configured defaults.
func (s *Service) handleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	name := s.game.DefaultPlayerName
	count := s.game.DefaultEnemyCount

	if v := r.URL.Query().Get("space_marine_name"); v != "" {
		name = v
	}
	if v := r.URL.Query().Get("num_enemies"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("num_enemies: %q is not an integer", v))
			return
		}
		count = n
	}

	var req startRequest
	if ok := decodeBody(w, r, &req); !ok {
		return
	}
	if req.PlayerName != "" {
		name = req.PlayerName
	}
	if req.EnemyCount != nil {
		count = *req.EnemyCount
	}

	sess, err := s.sessions.Start(name, count, s.dice)
	if err != nil {
		writeGameError(w, err)
		return
	}

	snap := sess.Snapshot()
	s.logger.Info("game started",
		zap.String("session_id", snap.ID),
		zap.String("player", snap.Player.Name),
		zap.Int("enemies", len(snap.Enemies)))
	writeJSON(w, http.StatusOK, newSessionResponse(snap))
}

// handleNextTurn processes one turn of combat: the player attacks the
// current enemy, then the enemy retaliates if it survived. An optional
// session_id in the body targets a specific session; empty means the
// current one.
func (s *Service) handleNextTurn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req turnRequest
	if ok := decodeBody(w, r, &req); !ok {
		return
	}

	sess, err := s.sessions.Resolve(req.SessionID)
	if err != nil {
		writeGameError(w, err)
		return
	}

	result, err := sess.ProcessTurn(s.dice)
	if err != nil {
		writeGameError(w, err)
		return
	}
	snap := sess.Snapshot()

	s.logAttack(snap.ID, snap.RoundNumber, result.PlayerAttack)
	if result.EnemyAttack != nil {
		s.logAttack(snap.ID, snap.RoundNumber, *result.EnemyAttack)
	}
	if snap.IsOver {
		s.logger.Info("game ended",
			zap.String("session_id", snap.ID),
			zap.Bool("victory", snap.IsVictory),
			zap.Int("rounds", snap.RoundNumber))
	}

	resp := turnResponse{
		SessionID:    snap.ID,
		PlayerAttack: newAttackPayload(result.PlayerAttack),
		RoundNumber:  snap.RoundNumber,
		IsGameOver:   snap.IsOver,
		IsVictory:    snap.IsVictory,
	}
	if result.EnemyAttack != nil {
		p := newAttackPayload(*result.EnemyAttack)
		resp.EnemyAttack = &p
	}

	// Shouts come last: state is already committed, so a slow or failed
	// narrator can only cost us flavor text.
	resp.PlayerAttack.Shout = s.shoutFor(r, result.PlayerAttack)
	if resp.EnemyAttack != nil {
		resp.EnemyAttack.Shout = s.shoutFor(r, *result.EnemyAttack)
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleStats reports aggregate counters for the current session. With
// no session it reports zero combats and an inactive game rather than
// an error.
func (s *Service) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sess, ok := s.sessions.Current()
	if !ok {
		writeJSON(w, http.StatusOK, noSessionStatsResponse{CombatCount: 0, GameActive: false})
		return
	}

	st := sess.Stats()
	writeJSON(w, http.StatusOK, statsResponse{
		CombatCount:      st.CombatCount,
		GameActive:       st.GameActive,
		RoundNumber:      st.RoundNumber,
		PlayerHealth:     st.PlayerHealth,
		EnemiesRemaining: st.EnemiesRemaining,
	})
}

// shoutFor asks the narrator for a battle shout. Only damaging attacks
// are narrated; misses and unavailable narrators yield an empty shout.
func (s *Service) shoutFor(r *http.Request, attack combat.AttackResult) string {
	if attack.Damage <= 0 {
		return ""
	}
	res := s.narrator.Shout(r.Context(), narration.Request{
		Archetype: attack.Attacker.Archetype,
		Situation: narration.Situation(attack.Attacker, attack.Defender, attack.Roll, attack.Hit()),
		Roll:      attack.Roll,
		Hit:       attack.Hit(),
	})
	if !res.Available {
		return ""
	}
	s.logger.Info("battle shout",
		zap.String("character", attack.Attacker.Name),
		zap.String("shout", res.Text))
	return res.Text
}

func (s *Service) logAttack(sessionID string, round int, attack combat.AttackResult) {
	s.logger.Info("attack resolved",
		zap.String("session_id", sessionID),
		zap.Int("round", round),
		zap.String("attacker", attack.Attacker.Name),
		zap.String("defender", attack.Defender.Name),
		zap.Int("roll", attack.Roll),
		zap.Int("damage", attack.Damage),
		zap.Int("defender_health_after", attack.DefenderHealthAfter),
		zap.Bool("defender_defeated", attack.DefenderDefeated))
}

// decodeBody decodes an optional JSON body into dst. An empty body is
// fine; malformed JSON writes a 400 and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}
	if len(body) == 0 {
		return true
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeGameError maps session errors onto HTTP statuses: invalid
// arguments are 400, state conflicts are 409, anything else is a 500.
func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidEnemyCount):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNoSession),
		errors.Is(err, session.ErrSessionOver),
		errors.Is(err, session.ErrNoTarget):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding a value we just built cannot fail in a way the client
	// can still be told about.
	_ = json.NewEncoder(w).Encode(v)
}
