package game

import (
	"sync"
	"testing"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/config"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T, cfg ManagerConfig) *Manager {
	t.Helper()
	if cfg.Settings == (Settings{}) {
		cfg.Settings = DefaultSettings()
	}
	m := NewManager(cfg, nil, zaptest.NewLogger(t))
	t.Cleanup(m.Shutdown)
	return m
}

func TestManagerCreateAndGet(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})

	g, err := m.CreateGame()
	require.NoError(t, err)
	assert.Len(t, g.ID(), 36)

	got, err := m.GetGame(g.ID())
	require.NoError(t, err)
	assert.Same(t, g, got)

	_, err = m.GetGame("missing")
	assert.ErrorIs(t, err, ErrGameNotFound)
	assert.Equal(t, 1, m.Count())

	m.RemoveGame(g.ID())
	assert.Equal(t, 0, m.Count())
}

func TestManagerMaxGames(t *testing.T) {
	m := newTestManager(t, ManagerConfig{MaxGames: 2})
	for i := 0; i < 2; i++ {
		_, err := m.CreateGame()
		require.NoError(t, err)
	}
	_, err := m.CreateGame()
	assert.ErrorIs(t, err, ErrTooManyGames)
}

func TestManagerSeedReproducesCivilization(t *testing.T) {
	m := newTestManager(t, ManagerConfig{TickInterval: time.Hour})

	civID := func() int {
		g, err := m.CreateGameWithSeed(77)
		require.NoError(t, err)
		require.NoError(t, g.Begin())
		require.NoError(t, g.Select(1))
		require.NoError(t, m.Deploy(g.ID()))
		seed, err := m.Seed(g.ID())
		require.NoError(t, err)
		assert.Equal(t, uint64(77), seed)
		return g.View().Civilization.ID
	}
	assert.Equal(t, civID(), civID())
}

func TestManagerDeployRunsToReport(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	g, err := m.CreateGame()
	require.NoError(t, err)
	require.NoError(t, g.Begin())
	require.NoError(t, g.Select(1))

	done := make(chan struct{})
	g.Events().SubscribeTyped(rules.EventReportReady, func(rules.Event) { close(done) })
	require.NoError(t, m.Deploy(g.ID()))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("report never became ready")
	}
	_, ok := g.Report()
	assert.True(t, ok)
}

func TestManagerDeployUnknownOrEmpty(t *testing.T) {
	m := newTestManager(t, ManagerConfig{})
	assert.ErrorIs(t, m.Deploy("missing"), ErrGameNotFound)

	g, err := m.CreateGame()
	require.NoError(t, err)
	require.NoError(t, g.Begin())
	assert.ErrorIs(t, m.Deploy(g.ID()), ErrNoFilters)
}

func TestManagerResetStopsRunner(t *testing.T) {
	m := newTestManager(t, ManagerConfig{TickInterval: time.Hour})
	g, err := m.CreateGame()
	require.NoError(t, err)
	require.NoError(t, g.Begin())
	require.NoError(t, g.Select(1))
	require.NoError(t, m.Deploy(g.ID()))

	require.NoError(t, m.Reset(g.ID(), true))
	assert.Equal(t, PhaseSelection, g.Phase())
	assert.ErrorIs(t, m.Reset("missing", true), ErrGameNotFound)
}

func TestManagerResetRacingDeployLeavesNoRunner(t *testing.T) {
	m := newTestManager(t, ManagerConfig{TickInterval: time.Hour})
	for i := 0; i < 50; i++ {
		g, err := m.CreateGame()
		require.NoError(t, err)
		require.NoError(t, g.Begin())
		require.NoError(t, g.Select(1))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Deploy(g.ID())
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, m.Reset(g.ID(), true))
		}()
		wg.Wait()

		assert.Equal(t, PhaseSelection, g.Phase())
		m.mu.RLock()
		runner := m.games[g.ID()].runner
		m.mu.RUnlock()
		assert.Nil(t, runner, "reset game %d kept a runner", i)
		m.RemoveGame(g.ID())
	}
}

func TestManagerEvictIdle(t *testing.T) {
	m := newTestManager(t, ManagerConfig{IdleTimeout: time.Minute})
	stale, err := m.CreateGame()
	require.NoError(t, err)
	fresh, err := m.CreateGame()
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, fresh.Begin())
	assert.Equal(t, 0, m.EvictIdle(now))

	removed := m.EvictIdle(stale.LastActive().Add(2 * time.Minute))
	assert.GreaterOrEqual(t, removed, 1)
	_, err = m.GetGame(stale.ID())
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestManagerConfigFrom(t *testing.T) {
	cfg := ManagerConfigFrom(config.Default())
	assert.Equal(t, DefaultSettings(), cfg.Settings)
	assert.Equal(t, 900*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.ReportDelay)
	assert.Equal(t, 1000, cfg.MaxGames)
}
