package headless

import (
	"bytes"
	"context"
	"testing"

	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseCards(t *testing.T) {
	ids, err := ParseCards("31, 6,,11 ")
	require.NoError(t, err)
	assert.Equal(t, []int{31, 6, 11}, ids)

	ids, err = ParseCards("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseCards("31,x")
	assert.Error(t, err)
}

func TestRunRequiresRuns(t *testing.T) {
	_, err := Run(context.Background(), Options{Settings: game.DefaultSettings(), Cards: []int{1}}, nil)
	assert.ErrorIs(t, err, ErrNoRuns)
}

func TestRunEscapesWithWeakSelection(t *testing.T) {
	summary, err := Run(context.Background(), Options{
		Settings: game.DefaultSettings(),
		Cards:    []int{1},
		Runs:     4,
		Seed:     100,
		Workers:  2,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.Len(t, summary.Results, 4)
	assert.Zero(t, summary.Successes)
	assert.Zero(t, summary.SuccessRate())
	assert.Equal(t, map[rules.Stage]int{rules.StageDyson: 4}, summary.Stages)
	assert.Equal(t, 9, summary.Spent)

	for i, r := range summary.Results {
		assert.Equal(t, i, r.Run)
		assert.Equal(t, uint64(100+i), r.Seed)
		assert.Equal(t, rules.OutcomeFailure, r.Outcome)
		assert.Equal(t, 100, r.Ticks)
		assert.Equal(t, "10.0", r.Age)
		assert.Len(t, r.Checksum, 64)
		assert.GreaterOrEqual(t, r.CivilizationID, 1000)
		assert.LessOrEqual(t, r.CivilizationID, 9999)
	}
}

func TestRunIsReproducible(t *testing.T) {
	settings := game.DefaultSettings()
	settings.Budget = 100
	opts := Options{
		Settings: settings,
		Cards:    []int{31, 6, 11, 5, 28, 35, 12, 8, 10, 2, 4, 33},
		Runs:     6,
		Seed:     7,
		Workers:  3,
	}

	first, err := Run(context.Background(), opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	second, err := Run(context.Background(), opts, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, first.Results, second.Results)

	for _, r := range first.Results {
		require.True(t, r.Outcome.Terminal())
		if r.Outcome == rules.OutcomeSuccess {
			assert.True(t, rules.IsCheckpoint(r.Stage), "stalled at %s", r.Stage)
		}
	}
}

func TestRunRejectsUnknownCard(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Settings: game.DefaultSettings(),
		Cards:    []int{404},
		Runs:     1,
	}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, game.ErrUnknownCard)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{Settings: game.DefaultSettings(), Cards: []int{1}, Runs: 2}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteTable(t *testing.T) {
	summary, err := Run(context.Background(), Options{
		Settings: game.DefaultSettings(),
		Cards:    []int{1, 2},
		Runs:     3,
		Seed:     1,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, summary))
	out := buf.String()
	assert.Contains(t, out, "RUN")
	assert.Contains(t, out, "success rate: 0/3 (0.0%)")
	assert.Contains(t, out, "filters: [1 2] (entropy 17)")
	assert.Contains(t, out, "DYSON")
}
