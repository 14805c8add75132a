package game

import (
	"sync"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
)

// Snapshot is the state of a simulation after one tick.
type Snapshot struct {
	GameID       string             `json:"game_id"`
	Tick         int                `json:"tick"`
	Civilization rules.Civilization `json:"civilization"`
	Outcome      rules.Outcome      `json:"outcome"`
	Flash        Flash              `json:"flash,omitempty"`
	LogLength    int                `json:"log_length"`
	Reasons      int                `json:"reasons"`
	Timestamp    time.Time          `json:"timestamp"`
}

func (g *Game) snapshotLocked() *Snapshot {
	return &Snapshot{
		GameID:       g.id,
		Tick:         g.tick,
		Civilization: *g.civ,
		Outcome:      g.outcome,
		Flash:        g.flash,
		LogLength:    len(g.log),
		Reasons:      len(g.reasons),
		Timestamp:    time.Now(),
	}
}

// Replay is the in-memory record of one simulation, one snapshot per tick.
type Replay struct {
	GameID       string
	States       []*Snapshot
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates a new replay instance
func NewReplay(gameID string) *Replay {
	return &Replay{
		GameID: gameID,
		States: make([]*Snapshot, 0),
	}
}

// RecordState appends a snapshot.
func (r *Replay) RecordState(snapshot *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = append(r.States, snapshot)
}

// Clear drops every snapshot and rewinds.
func (r *Replay) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.States = make([]*Snapshot, 0)
	r.CurrentIndex = 0
}

// Start resets the replay to the beginning
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.CurrentIndex = 0
}

// Next returns the snapshot at the cursor and moves past it.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex < len(r.States) {
		state := r.States[r.CurrentIndex]
		r.CurrentIndex++
		return state
	}
	return nil
}

// Previous moves the cursor back and returns the snapshot there.
func (r *Replay) Previous() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CurrentIndex > 0 {
		r.CurrentIndex--
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Skip moves forward by the specified number of states, clamped to the record.
func (r *Replay) Skip(count int) *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	newIndex := r.CurrentIndex + count
	if newIndex >= len(r.States) {
		newIndex = len(r.States) - 1
	}
	if newIndex < 0 {
		newIndex = 0
	}

	r.CurrentIndex = newIndex
	if r.CurrentIndex < len(r.States) {
		return r.States[r.CurrentIndex]
	}
	return nil
}

// Size returns the number of recorded states
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.States)
}

// GetStateAt returns the state at a specific index
func (r *Replay) GetStateAt(index int) *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= 0 && index < len(r.States) {
		return r.States[index]
	}
	return nil
}

// Last returns the most recent snapshot.
func (r *Replay) Last() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.States) == 0 {
		return nil
	}
	return r.States[len(r.States)-1]
}

// Snapshots returns the recorded states in order.
func (r *Replay) Snapshots() []*Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Snapshot(nil), r.States...)
}
