package rules

import (
	"fmt"

	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
)

// Randomizer is the source of chance for a simulation. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Randomizer interface {
	Float64() float64
	Intn(n int) int
}

// FilterConfig holds the constants of a filter check.
type FilterConfig struct {
	Threshold      int
	ResilienceGain int
}

// DefaultFilterConfig requires 15 points per condition and grows resilience by
// 15 after each failed check.
var DefaultFilterConfig = FilterConfig{Threshold: 15, ResilienceGain: 15}

// FilterResult describes the outcome of one filter check.
type FilterResult struct {
	Success       bool
	AllMet        bool
	TotalStrength int
	RandomFactor  float64
	FailureChance float64
	Roll          float64
	// Reasons is empty on success.
	Reasons []string
}

// ConditionsMet reports whether every scoring condition reaches the threshold.
func ConditionsMet(conditions map[catalog.Condition]int, threshold int) bool {
	for _, c := range catalog.Conditions {
		if conditions[c] < threshold {
			return false
		}
	}
	return true
}

// InsufficientConditions lists the scoring conditions under the threshold in
// report order.
func InsufficientConditions(conditions map[catalog.Condition]int, threshold int) []catalog.Condition {
	var out []catalog.Condition
	for _, c := range catalog.Conditions {
		if conditions[c] < threshold {
			out = append(out, c)
		}
	}
	return out
}

// TotalStrength sums the scoring conditions.
func TotalStrength(conditions map[catalog.Condition]int) int {
	total := 0
	for _, c := range catalog.Conditions {
		total += conditions[c]
	}
	return total
}

// CheckFilters runs the deterministic gate and the weighted random check
// against civ, mutating its resilience. The random factor is drawn before the
// roll.
func CheckFilters(civ *Civilization, conditions map[catalog.Condition]int, cfg FilterConfig, rnd Randomizer) FilterResult {
	res := FilterResult{
		AllMet:        ConditionsMet(conditions, cfg.Threshold),
		TotalStrength: TotalStrength(conditions),
	}
	res.RandomFactor = 0.8 + rnd.Float64()*0.4
	res.FailureChance = float64(civ.Resilience) / float64(res.TotalStrength+1) * res.RandomFactor
	res.Roll = rnd.Float64()

	if res.AllMet && res.Roll > res.FailureChance {
		res.Success = true
		civ.Resilience = 0
		return res
	}

	if !res.AllMet {
		for _, c := range InsufficientConditions(conditions, cfg.Threshold) {
			res.Reasons = append(res.Reasons, fmt.Sprintf("Truth Condition %s (%s) insufficient: %d/%d",
				c, c.Name(), conditions[c], cfg.Threshold))
		}
	} else {
		res.Reasons = append(res.Reasons, fmt.Sprintf("Probabilistic failure: Civilization resilience (%d) overcame filter strength (%d)",
			civ.Resilience, res.TotalStrength))
	}
	civ.Resilience += cfg.ResilienceGain
	return res
}
