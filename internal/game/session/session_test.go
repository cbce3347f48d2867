package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grimwire/crusade/internal/game/character"
	"github.com/grimwire/crusade/internal/game/session"
)

// fixedSource always produces the same die face.
type fixedSource struct{ face int }

func (f fixedSource) Intn(n int) int { return f.face - 1 }

// scriptedSource produces a fixed sequence of die faces, then repeats the
// last one.
type scriptedSource struct {
	faces []int
	pos   int
}

func (s *scriptedSource) Intn(n int) int {
	face := s.faces[s.pos]
	if s.pos < len(s.faces)-1 {
		s.pos++
	}
	return face - 1
}

func newPlayer() *character.Character {
	return &character.Character{
		Name:        "Space Marine",
		Archetype:   character.SpaceMarine,
		Kind:        character.KindPlayer,
		Health:      100,
		MaxHealth:   100,
		AttackPower: 6,
	}
}

func newOrk() *character.Character {
	return &character.Character{
		Name:        "Ork Boy",
		Archetype:   character.Ork,
		Kind:        character.KindEnemy,
		Health:      30,
		MaxHealth:   30,
		AttackPower: 4,
	}
}

func singleOrkSession() *session.Session {
	return session.New("test-session", newPlayer(), []*character.Character{newOrk()})
}

// TestProcessTurn_FixedScenario walks the canonical three-turn match: one
// ork, every roll a 6. Turn 1: player hits for 12 (ork 30 -> 18), ork
// retaliates for 10 (player 100 -> 90), round advances to 2. Turn 2: ork
// 18 -> 6, player 90 -> 80, round 3. Turn 3: ork 6 -> 0, defeated, no
// retaliation, victory.
func TestProcessTurn_FixedScenario(t *testing.T) {
	sess := singleOrkSession()
	src := fixedSource{6}

	// Turn 1
	result, err := sess.ProcessTurn(src)
	require.NoError(t, err)
	assert.Equal(t, 6, result.PlayerAttack.Roll)
	assert.Equal(t, 12, result.PlayerAttack.Damage)
	assert.Equal(t, 18, result.PlayerAttack.DefenderHealthAfter)
	assert.False(t, result.PlayerAttack.DefenderDefeated)
	require.NotNil(t, result.EnemyAttack, "a surviving enemy must retaliate")
	assert.Equal(t, 10, result.EnemyAttack.Damage)
	assert.Equal(t, 90, result.EnemyAttack.DefenderHealthAfter)

	snap := sess.Snapshot()
	assert.Equal(t, 2, snap.RoundNumber)
	assert.Equal(t, 0, snap.CurrentEnemyIndex)
	assert.False(t, snap.IsOver)

	// Turn 2
	result, err = sess.ProcessTurn(src)
	require.NoError(t, err)
	assert.Equal(t, 6, result.PlayerAttack.DefenderHealthAfter)
	require.NotNil(t, result.EnemyAttack)
	assert.Equal(t, 80, result.EnemyAttack.DefenderHealthAfter)
	assert.Equal(t, 3, sess.Snapshot().RoundNumber)

	// Turn 3: killing blow, no retaliation.
	result, err = sess.ProcessTurn(src)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PlayerAttack.DefenderHealthAfter)
	assert.True(t, result.PlayerAttack.DefenderDefeated)
	assert.Nil(t, result.EnemyAttack, "a defeated enemy must not retaliate")

	snap = sess.Snapshot()
	assert.Equal(t, 1, snap.CurrentEnemyIndex, "index must advance past the fallen enemy")
	assert.True(t, snap.IsOver)
	assert.True(t, snap.IsVictory)
	assert.Equal(t, 3, snap.RoundNumber, "the terminal turn must not advance the round")
}

// TestProcessTurn_MissDealsNoDamage verifies rolls below the hit threshold
// leave both sides untouched and only advance the round.
func TestProcessTurn_MissDealsNoDamage(t *testing.T) {
	sess := singleOrkSession()

	result, err := sess.ProcessTurn(fixedSource{2})
	require.NoError(t, err)
	assert.Equal(t, 0, result.PlayerAttack.Damage)
	assert.Equal(t, 30, result.PlayerAttack.DefenderHealthAfter)
	require.NotNil(t, result.EnemyAttack, "a missed enemy still retaliates")
	assert.Equal(t, 0, result.EnemyAttack.Damage)
	assert.Equal(t, 100, result.EnemyAttack.DefenderHealthAfter)
	assert.Equal(t, 2, sess.Snapshot().RoundNumber)
}

// TestProcessTurn_Defeat drives the player to zero health and verifies the
// terminal Defeat state.
func TestProcessTurn_Defeat(t *testing.T) {
	player := newPlayer()
	player.Health = 5
	enemy := newOrk()
	sess := session.New("doomed", player, []*character.Character{enemy})

	// Player rolls 1 (miss), enemy rolls 6 (hit for 10): player 5 -> 0.
	result, err := sess.ProcessTurn(&scriptedSource{faces: []int{1, 6}})
	require.NoError(t, err)
	require.NotNil(t, result.EnemyAttack)
	assert.True(t, result.EnemyAttack.DefenderDefeated)
	assert.Equal(t, 0, result.EnemyAttack.DefenderHealthAfter)

	snap := sess.Snapshot()
	assert.True(t, snap.IsOver)
	assert.False(t, snap.IsVictory)
	assert.Equal(t, 1, snap.RoundNumber, "the terminal turn must not advance the round")
}

// TestProcessTurn_TerminalRejectionIsIdempotent verifies that turns after a
// terminal state are rejected with ErrSessionOver and change nothing.
func TestProcessTurn_TerminalRejectionIsIdempotent(t *testing.T) {
	player := newPlayer()
	enemy := newOrk()
	enemy.Health = 1
	sess := session.New("short", player, []*character.Character{enemy})

	_, err := sess.ProcessTurn(fixedSource{6})
	require.NoError(t, err)
	require.True(t, sess.Snapshot().IsVictory)

	before := sess.Snapshot()
	for i := 0; i < 3; i++ {
		_, err := sess.ProcessTurn(fixedSource{6})
		assert.ErrorIs(t, err, session.ErrSessionOver)
		assert.Equal(t, before, sess.Snapshot(), "rejected turns must not change state")
	}
}

// TestProcessTurn_Monotonic verifies the forward-progress invariant: the
// enemy index and round number never decrease across a full match.
func TestProcessTurn_Monotonic(t *testing.T) {
	player := newPlayer()
	enemies := []*character.Character{newOrk(), newOrk(), newOrk()}
	sess := session.New("march", player, enemies)

	src := fixedSource{6}
	lastIndex, lastRound := 0, 1
	for {
		_, err := sess.ProcessTurn(src)
		if err != nil {
			assert.ErrorIs(t, err, session.ErrSessionOver)
			break
		}
		snap := sess.Snapshot()
		assert.GreaterOrEqual(t, snap.CurrentEnemyIndex, lastIndex, "enemy index must never decrease")
		assert.GreaterOrEqual(t, snap.RoundNumber, lastRound, "round number must never decrease")
		lastIndex, lastRound = snap.CurrentEnemyIndex, snap.RoundNumber
	}

	snap := sess.Snapshot()
	assert.True(t, snap.IsVictory, "rolling sixes against orks must end in victory")
	assert.Equal(t, len(enemies), snap.CurrentEnemyIndex)
}

// TestProcessTurn_EveryTurnMakesProgress verifies that each successful turn
// either fells an enemy, fells the player, or advances the round.
func TestProcessTurn_EveryTurnMakesProgress(t *testing.T) {
	player := newPlayer()
	sess := session.New("progress", player, []*character.Character{newOrk(), newOrk()})
	src := &scriptedSource{faces: []int{1, 2, 3, 4, 5, 6, 6, 6, 6, 6, 6, 6}}

	prev := sess.Snapshot()
	for {
		_, err := sess.ProcessTurn(src)
		if err != nil {
			break
		}
		snap := sess.Snapshot()
		progressed := snap.CurrentEnemyIndex > prev.CurrentEnemyIndex ||
			snap.RoundNumber > prev.RoundNumber ||
			snap.IsOver
		assert.True(t, progressed, "every committed turn must make forward progress")
		prev = snap
	}
}

func TestStats(t *testing.T) {
	sess := singleOrkSession()
	stats := sess.Stats()
	assert.Equal(t, 0, stats.CombatCount)
	assert.True(t, stats.GameActive)
	assert.Equal(t, 1, stats.RoundNumber)
	assert.Equal(t, 100, stats.PlayerHealth)
	assert.Equal(t, 1, stats.EnemiesRemaining)

	_, err := sess.ProcessTurn(fixedSource{6})
	require.NoError(t, err)

	stats = sess.Stats()
	assert.Equal(t, 1, stats.CombatCount, "each turn counts one player attack")
	assert.Equal(t, 90, stats.PlayerHealth)
	assert.Equal(t, 1, stats.EnemiesRemaining)
}

func TestNew_PanicsOnEmptyRoster(t *testing.T) {
	assert.PanicsWithValue(t, "session: New called with empty roster", func() {
		session.New("empty", newPlayer(), nil)
	})
}
