package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.HTTP.Address)
	assert.Equal(t, ":9090", cfg.Server.GRPC.Address)
	assert.Equal(t, 60, cfg.Game.EntropyBudget)
	assert.Equal(t, 15, cfg.Game.ConditionThreshold)
	assert.Equal(t, 50, cfg.Game.StartingResilience)
	assert.Equal(t, 15, cfg.Game.ResilienceGain)
	assert.Equal(t, 900*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 100000, cfg.Game.YearsPerTick)
	assert.Equal(t, 5, cfg.Game.ProgressPerTick)
	assert.Equal(t, 4, cfg.Game.EventEveryTicks)
	assert.Equal(t, 2*time.Second, cfg.Game.ReportDelay)
	assert.Equal(t, 30*time.Minute, cfg.Game.IdleTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  max_games: 5
game:
  entropy_budget: 80
  tick_interval: 250ms
logging:
  level: debug
  format: json
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Server.MaxGames)
	assert.Equal(t, 80, cfg.Game.EntropyBudget)
	assert.Equal(t, 250*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 15, cfg.Game.ConditionThreshold, "unset keys keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("GARDENER_GAME_ENTROPY_BUDGET", "75")
	t.Setenv("GARDENER_GAME_REPORT_DELAY", "0s")
	t.Setenv("GARDENER_SERVER_HTTP_ADDRESS", ":18080")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Game.EntropyBudget)
	assert.Equal(t, time.Duration(0), cfg.Game.ReportDelay)
	assert.Equal(t, ":18080", cfg.Server.HTTP.Address)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  entropy_budget: 0\n  progress_per_tick: -5\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "game.entropy_budget must be positive")
	assert.Contains(t, err.Error(), "game.progress_per_tick must be positive")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [not: valid"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateNegativeDurations(t *testing.T) {
	cfg := Default()
	cfg.Game.TickInterval = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Default()
	require.NoError(t, cfg.Validate())
}
