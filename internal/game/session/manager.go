package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/dice"
	"github.com/grimwire/crusade/internal/game/roster"
)

// Manager owns all sessions, keyed by ID, and tracks the most recently
// started one as the implicit "current" session for callers that do not pass
// an ID. All methods are safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	factory    *roster.Factory
	maxEnemies int
	sessions   map[string]*Session
	currentID  string
}

// NewManager creates an empty session Manager.
//
// Precondition: factory must be non-nil; maxEnemies >= 1. Panics with
// "session: NewManager called with maxEnemies < 1" on violation.
func NewManager(factory *roster.Factory, maxEnemies int) *Manager {
	if maxEnemies < 1 {
		panic("session: NewManager called with maxEnemies < 1")
	}
	return &Manager{
		factory:    factory,
		maxEnemies: maxEnemies,
		sessions:   make(map[string]*Session),
	}
}

// Start creates a new session with a fresh player unit and enemyCount
// independently drawn random enemies, and makes it the current session.
//
// Precondition: src must be non-nil.
// Postcondition: On success, returns an active session with index 0 and
// round 1. On error, no session is created and the current session is
// unchanged.
func (m *Manager) Start(playerName string, enemyCount int, src dice.Source) (*Session, error) {
	if enemyCount < 1 {
		return nil, fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidEnemyCount, enemyCount)
	}
	if enemyCount > m.maxEnemies {
		return nil, fmt.Errorf("%w: must be <= %d, got %d", ErrInvalidEnemyCount, m.maxEnemies, enemyCount)
	}

	player := m.factory.NewPlayer(playerName)
	enemies := make([]*character.Character, enemyCount)
	for i := range enemies {
		enemies[i] = m.factory.RandomEnemy(src)
	}

	sess := New(uuid.New().String(), player, enemies)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID()] = sess
	m.currentID = sess.ID()
	return sess, nil
}

// Get returns the session with the given ID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Current returns the most recently started session.
//
// Postcondition: Returns (session, true), or (nil, false) when no session
// has been started yet.
func (m *Manager) Current() (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.currentID == "" {
		return nil, false
	}
	sess, ok := m.sessions[m.currentID]
	return sess, ok
}

// Resolve returns the session with the given ID, or the current session when
// id is empty.
//
// Postcondition: Returns ErrNoSession when the ID is unknown or no session
// exists.
func (m *Manager) Resolve(id string) (*Session, error) {
	if id == "" {
		sess, ok := m.Current()
		if !ok {
			return nil, ErrNoSession
		}
		return sess, nil
	}
	sess, ok := m.Get(id)
	if !ok {
		return nil, ErrNoSession
	}
	return sess, nil
}

// SessionCount returns the total number of sessions the manager holds.
func (m *Manager) SessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
