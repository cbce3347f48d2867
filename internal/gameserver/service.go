// Package gameserver exposes the combat session engine over HTTP.
//
// The surface is a small JSON REST API: start a game, advance it one
// turn at a time, and read aggregate statistics. All game state lives
// in the session manager; handlers translate between wire payloads and
// session operations and never mutate game state directly.
package gameserver

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/grimwire/crusade/internal/config"
	"github.com/grimwire/crusade/internal/game/dice"
	"github.com/grimwire/crusade/internal/game/session"
	"github.com/grimwire/crusade/internal/narration"
)

// Service handles the HTTP game API.
//
// Precondition: all fields must be non-nil after construction. The
// narrator may be narration.Disabled but never nil.
type Service struct {
	sessions *session.Manager
	dice     dice.Source
	narrator narration.Narrator
	game     config.GameConfig
	logger   *zap.Logger
}

// NewService creates a Service.
//
// Precondition: sessions, src, narrator, and logger must be non-nil.
// Postcondition: returns a non-nil Service.
func NewService(
	sessions *session.Manager,
	src dice.Source,
	narrator narration.Narrator,
	game config.GameConfig,
	logger *zap.Logger,
) *Service {
	return &Service{
		sessions: sessions,
		dice:     src,
		narrator: narrator,
		game:     game,
		logger:   logger,
	}
}

// Handler returns the HTTP handler for the game API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/game/start", s.handleStart)
	mux.HandleFunc("/game/next_turn", s.handleNextTurn)
	mux.HandleFunc("/game/stats", s.handleStats)
	return mux
}
