// Package catalog holds the static deck of filter cards.
package catalog

import "fmt"

// Catalog is a read-only index over the card table.
type Catalog struct {
	byID       map[int]Card
	byCategory map[Category][]Card
	ordered    []Card
}

// Default returns the catalog backed by the built-in deck.
func Default() *Catalog {
	return New(cards)
}

// New builds a catalog from an arbitrary card list. Later duplicates of an ID
// replace earlier ones.
func New(list []Card) *Catalog {
	c := &Catalog{
		byID:       make(map[int]Card, len(list)),
		byCategory: make(map[Category][]Card),
		ordered:    make([]Card, 0, len(list)),
	}
	for _, card := range list {
		if _, dup := c.byID[card.ID]; dup {
			continue
		}
		c.byID[card.ID] = card
		c.byCategory[card.Category] = append(c.byCategory[card.Category], card)
		c.ordered = append(c.ordered, card)
	}
	return c
}

// Get returns the card with the given ID.
func (c *Catalog) Get(id int) (Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Lookup resolves IDs to cards, failing on the first unknown ID.
func (c *Catalog) Lookup(ids ...int) ([]Card, error) {
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		card, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("card %d not found", id)
		}
		out = append(out, card)
	}
	return out, nil
}

// All returns every card in ID order.
func (c *Catalog) All() []Card {
	return append([]Card(nil), c.ordered...)
}

// ByCategory returns the cards in one category, in ID order.
func (c *Catalog) ByCategory(category Category) []Card {
	return append([]Card(nil), c.byCategory[category]...)
}

// Len returns the number of cards.
func (c *Catalog) Len() int {
	return len(c.ordered)
}
