// Package garden tracks the filter cards a player has planted against the
// entropy budget.
package garden

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
)

// DefaultBudget is the entropy allowance of a fresh garden.
const DefaultBudget = 60

var (
	// ErrAlreadySelected is returned when a card is added twice.
	ErrAlreadySelected = errors.New("card already selected")
	// ErrOverBudget is returned when a card would push spending past the budget.
	ErrOverBudget = errors.New("entropy budget exceeded")
	// ErrNotSelected is returned when removing a card that is not planted.
	ErrNotSelected = errors.New("card not selected")
)

// Selection is the ordered set of chosen cards and the truth-condition totals
// they produce. Every method leaves the selection unchanged when it returns an
// error.
type Selection struct {
	mu sync.RWMutex

	budget     int
	spent      int
	cards      []catalog.Card
	conditions map[catalog.Condition]int
}

// NewSelection creates an empty selection with the given budget.
func NewSelection(budget int) *Selection {
	s := &Selection{budget: budget}
	s.resetLocked()
	return s
}

// Add plants a card.
func (s *Selection) Add(card catalog.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(card.ID) >= 0 {
		return fmt.Errorf("add %q: %w", card.Name, ErrAlreadySelected)
	}
	if s.spent+card.Cost > s.budget {
		return fmt.Errorf("add %q (cost %d, remaining %d): %w", card.Name, card.Cost, s.budget-s.spent, ErrOverBudget)
	}

	s.cards = append(s.cards, card)
	s.spent += card.Cost
	if card.Contributes() {
		s.conditions[card.Condition] += card.Cost
	}
	return nil
}

// Remove uproots a card.
func (s *Selection) Remove(card catalog.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(card.ID)
	if idx < 0 {
		return fmt.Errorf("remove %q: %w", card.Name, ErrNotSelected)
	}

	// The stored card is authoritative for the refund.
	stored := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	s.spent -= stored.Cost
	if stored.Contributes() {
		s.conditions[stored.Condition] -= stored.Cost
	}
	return nil
}

// Toggle adds the card when absent and removes it when present.
func (s *Selection) Toggle(card catalog.Card) error {
	if s.Contains(card.ID) {
		return s.Remove(card)
	}
	return s.Add(card)
}

// Contains reports whether the card ID is planted.
func (s *Selection) Contains(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(id) >= 0
}

// CanAfford reports whether the card is not planted and fits the remaining budget.
func (s *Selection) CanAfford(card catalog.Card) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexLocked(card.ID) < 0 && s.spent+card.Cost <= s.budget
}

// Budget returns the entropy budget.
func (s *Selection) Budget() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget
}

// Spent returns the entropy spent on planted cards.
func (s *Selection) Spent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spent
}

// Remaining returns the unspent entropy.
func (s *Selection) Remaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budget - s.spent
}

// Len returns the number of planted cards.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Cards returns the planted cards in selection order.
func (s *Selection) Cards() []catalog.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]catalog.Card(nil), s.cards...)
}

// TruthConditions returns a copy of the per-condition totals. All five
// scoring conditions are always present.
func (s *Selection) TruthConditions() map[catalog.Condition]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[catalog.Condition]int, len(s.conditions))
	for k, v := range s.conditions {
		out[k] = v
	}
	return out
}

// TotalStrength returns the sum of all truth-condition totals.
func (s *Selection) TotalStrength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, v := range s.conditions {
		total += v
	}
	return total
}

// Reset empties the selection and keeps the budget.
func (s *Selection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Selection) resetLocked() {
	s.spent = 0
	s.cards = make([]catalog.Card, 0, 8)
	s.conditions = make(map[catalog.Condition]int, len(catalog.Conditions))
	for _, c := range catalog.Conditions {
		s.conditions[c] = 0
	}
}

func (s *Selection) indexLocked(id int) int {
	for i, c := range s.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}
