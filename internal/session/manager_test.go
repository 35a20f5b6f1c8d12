package session

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ugaemi/pawseek/internal/catalog"
	"github.com/ugaemi/pawseek/internal/game"
	"github.com/ugaemi/pawseek/internal/geom"
)

func testOptions() Options {
	return Options{
		Scene:      catalog.SceneSavanna,
		Difficulty: catalog.DifficultyEasy,
		Pool:       []catalog.Kind{catalog.KindMonkey},
		Viewport:   geom.Size{Width: 800, Height: 600},
		Rand:       rand.New(rand.NewPCG(7, 7)),
	}
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	g, err := m.Create(context.Background(), testOptions())
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.Equal(t, 1, m.Count())
	assert.Same(t, g, m.Get(g.Session.ID))
	assert.Nil(t, m.Get("missing"))
}

func TestManager_CreateInvalid(t *testing.T) {
	m := NewManager()
	opts := testOptions()
	opts.Pool = nil

	g, err := m.Create(context.Background(), opts)
	assert.ErrorIs(t, err, catalog.ErrEmptyPool)
	assert.Nil(t, g)
	assert.Equal(t, 0, m.Count())
}

func TestManager_IntroRunsOnRunner(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	g, err := m.Create(context.Background(), testOptions())
	require.NoError(t, err)

	var acted bool
	require.True(t, g.Do(func(s *Session) { acted = s.Probe(geom.Point{}) }))
	assert.True(t, acted)

	assert.Eventually(t, func() bool {
		var state game.State
		g.Do(func(s *Session) { state = s.State() })
		return state == game.StatePlaying
	}, 2*time.Second, 20*time.Millisecond)
}

func TestManager_RemoveClosesSession(t *testing.T) {
	m := NewManager()

	g, err := m.Create(context.Background(), testOptions())
	require.NoError(t, err)

	m.Remove(g.Session.ID)
	assert.Equal(t, 0, m.Count())
	assert.True(t, g.Session.Closed())
	assert.False(t, g.Post(func(*Session) {}))

	m.Remove(g.Session.ID) // unknown IDs are ignored
}

func TestManager_StopAll(t *testing.T) {
	m := NewManager()
	for range 3 {
		_, err := m.Create(context.Background(), testOptions())
		require.NoError(t, err)
	}
	require.Equal(t, 3, m.Count())

	m.StopAll()
	assert.Equal(t, 0, m.Count())
}
