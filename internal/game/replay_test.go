package game

import (
	"testing"

	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordTicks(replay *Replay, n int) {
	for i := 0; i < n; i++ {
		replay.RecordState(&Snapshot{
			GameID:       replay.GameID,
			Tick:         i + 1,
			Civilization: rules.Civilization{ID: 1000, StageProgress: (i + 1) * 5},
		})
	}
}

func TestNewReplay(t *testing.T) {
	replay := NewReplay("game-123")
	assert.Equal(t, "game-123", replay.GameID)
	assert.Equal(t, 0, replay.CurrentIndex)
	assert.Equal(t, 0, replay.Size())
	assert.Nil(t, replay.Last())
}

func TestReplayRecordState(t *testing.T) {
	replay := NewReplay("game-123")

	snapshot := &Snapshot{GameID: "game-123", Tick: 1}
	replay.RecordState(snapshot)

	assert.Equal(t, 1, replay.Size())
	assert.Equal(t, snapshot, replay.States[0])
	assert.Equal(t, snapshot, replay.Last())
}

func TestReplayNavigation(t *testing.T) {
	replay := NewReplay("game-123")
	recordTicks(replay, 5)

	replay.Start()
	assert.Equal(t, 0, replay.CurrentIndex)

	state := replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Tick)

	state = replay.Next()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Tick)
	assert.Equal(t, 2, replay.CurrentIndex)

	// Previous steps back onto the state Next just returned
	state = replay.Previous()
	require.NotNil(t, state)
	assert.Equal(t, 2, state.Tick)
	assert.Equal(t, 1, replay.CurrentIndex)

	state = replay.Previous()
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Tick)

	replay.Start()
	assert.Nil(t, replay.Previous())

	for i := 0; i < 10; i++ {
		replay.Next()
	}
	assert.Nil(t, replay.Next())
}

func TestReplaySkip(t *testing.T) {
	replay := NewReplay("game-123")
	recordTicks(replay, 10)

	state := replay.Skip(3)
	require.NotNil(t, state)
	assert.Equal(t, 4, state.Tick)

	state = replay.Skip(100)
	require.NotNil(t, state)
	assert.Equal(t, 10, state.Tick)

	state = replay.Skip(-100)
	require.NotNil(t, state)
	assert.Equal(t, 1, state.Tick)

	assert.Nil(t, NewReplay("empty").Skip(1))
}

func TestReplayGetStateAt(t *testing.T) {
	replay := NewReplay("game-123")
	recordTicks(replay, 3)

	assert.Equal(t, 2, replay.GetStateAt(1).Tick)
	assert.Nil(t, replay.GetStateAt(-1))
	assert.Nil(t, replay.GetStateAt(3))
}

func TestReplayClear(t *testing.T) {
	replay := NewReplay("game-123")
	recordTicks(replay, 3)
	replay.Next()

	replay.Clear()
	assert.Equal(t, 0, replay.Size())
	assert.Equal(t, 0, replay.CurrentIndex)
	assert.Empty(t, replay.Snapshots())
}

func TestGameRecordsEveryTick(t *testing.T) {
	g := newTestGame(t, DefaultSettings(), &rules.ScriptedRandomizer{})
	require.NoError(t, g.Begin())
	require.NoError(t, g.Select(1))
	require.NoError(t, g.Deploy())
	results := runToEnd(t, g)

	replay := g.Replay()
	// deploy snapshot plus one per tick
	assert.Equal(t, len(results)+1, replay.Size())
	assert.Equal(t, 0, replay.GetStateAt(0).Tick)
	last := replay.Last()
	assert.Equal(t, rules.OutcomeFailure, last.Outcome)
	assert.Equal(t, rules.StageDyson, last.Civilization.Stage)
}
