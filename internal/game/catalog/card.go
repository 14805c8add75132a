package catalog

import (
	"fmt"
	"strings"
)

// Category groups cards on the selection screen.
type Category string

const (
	CategoryPhysical   Category = "physical"
	CategoryBiological Category = "biological"
	CategorySocietal   Category = "societal"
	CategoryPredators  Category = "predators"
	CategoryOther      Category = "other"
)

// Categories lists the categories in tab order.
var Categories = []Category{
	CategoryPhysical,
	CategoryBiological,
	CategorySocietal,
	CategoryPredators,
	CategoryOther,
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Condition is one of the five hidden truth conditions a card can feed.
type Condition string

const (
	ConditionSilence      Condition = "A"
	ConditionUniversality Condition = "B"
	ConditionVariance     Condition = "C"
	ConditionScale        Condition = "D"
	ConditionLogic        Condition = "E"
	ConditionNone         Condition = "NONE"
)

// Conditions lists the scoring conditions in report order. ConditionNone is
// not a scoring bucket and is deliberately absent.
var Conditions = []Condition{
	ConditionSilence,
	ConditionUniversality,
	ConditionVariance,
	ConditionScale,
	ConditionLogic,
}

var conditionNames = map[Condition]string{
	ConditionSilence:      "Silence",
	ConditionUniversality: "Universality",
	ConditionVariance:     "Variance",
	ConditionScale:        "Scale",
	ConditionLogic:        "Logic",
	ConditionNone:         "None",
}

// Name returns the human readable name of the condition.
func (c Condition) Name() string {
	if name, ok := conditionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CONDITION_%s", string(c))
}

// Scores reports whether the condition is one of the five scoring buckets.
func (c Condition) Scores() bool {
	switch c {
	case ConditionSilence, ConditionUniversality, ConditionVariance, ConditionScale, ConditionLogic:
		return true
	}
	return false
}

// Card is a single filter card. Cards are immutable once the catalog is built.
type Card struct {
	ID         int
	Category   Category
	Name       string
	Cost       int
	Condition  Condition
	RedHerring bool
	Logic      string
	Tip        string
	Art        []string
}

// Contributes reports whether selecting the card moves a truth condition.
func (c Card) Contributes() bool {
	return !c.RedHerring && c.Condition.Scores()
}
