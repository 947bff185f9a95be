package engine

import (
	"testing"

	"boingle/internal/config"
	"boingle/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// playRounds играет count раундов: гаджет из первой карты и выстрел.
func playRounds(t *testing.T, s *Session, count int) {
	t.Helper()
	for i := 0; i < count && s.Phase() == domain.PhaseWidgetSelection; i++ {
		placeFirstCard(t, s)
		shoot(t, s, 5+i*7)
		step(s)
		if s.Phase() == domain.PhaseShop {
			send(s, domain.ActionExitShop, nil)
			step(s)
		}
	}
}

func TestSession_SameSeedSameField(t *testing.T) {
	a := startedSession(t, 99)
	b := startedSession(t, 99)

	assert.Equal(t, a.Player.Deck.Hand(), b.Player.Deck.Hand())
	assert.Equal(t, a.Snapshot().Entities, b.Snapshot().Entities)

	c := startedSession(t, 100)
	assert.NotEqual(t, a.Snapshot().Entities, c.Snapshot().Entities)
}

func TestPlayback_ReproducesRun(t *testing.T) {
	s := startedSession(t, 2024)
	playRounds(t, s, 2)

	rec := s.Replay()
	require.NotEmpty(t, rec.Actions)
	assert.Equal(t, s.FrameNo(), rec.Frames)
	assert.Equal(t, s.ID, rec.RunID)

	replayed, err := Playback(NewConfig(config.Default()), rec)
	require.NoError(t, err)

	assert.Equal(t, s.Phase(), replayed.Phase())
	assert.Equal(t, *s.Player, *replayed.Player)
	assert.Equal(t, s.Snapshot(), replayed.Snapshot())
}

func TestPlayback_TrailingActions(t *testing.T) {
	rec := domain.ReplaySession{
		Seed:   1,
		Frames: 1,
		Actions: []domain.ReplayAction{
			{Frame: 1, Action: domain.ActionStartRun},
			{Frame: 5, Action: domain.ActionRetry},
		},
	}

	s, err := Playback(NewConfig(config.Default()), rec)
	assert.Error(t, err)
	require.NotNil(t, s)
	assert.Equal(t, domain.PhaseLevelStart, s.Phase())
}

func TestMachine_LastRequestWins(t *testing.T) {
	m := NewMachine()
	m.Request(domain.PhaseMenu)
	m.Request(domain.PhaseGameOver)

	next, ok := m.Pending()
	assert.True(t, ok)
	assert.Equal(t, domain.PhaseGameOver, next)

	from, to, ok := m.Advance()
	assert.True(t, ok)
	assert.Equal(t, domain.PhaseLoading, from)
	assert.Equal(t, domain.PhaseGameOver, to)

	_, _, ok = m.Advance()
	assert.False(t, ok)
}
