package rules

import (
	"sync"

	"golang.org/x/exp/rand"
)

// NewRandomizer returns a seeded source. The same seed replays the same
// civilization, flavor events and filter checks.
func NewRandomizer(seed uint64) Randomizer {
	return rand.New(rand.NewSource(seed))
}

// ScriptedRandomizer replays fixed values, falling back to zero once a script
// runs out. It is used to pin stochastic paths in tests and demos.
type ScriptedRandomizer struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
}

// Float64 returns the next scripted float.
func (s *ScriptedRandomizer) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Intn returns the next scripted int reduced modulo n.
func (s *ScriptedRandomizer) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 || n <= 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}
