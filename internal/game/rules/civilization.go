package rules

import "fmt"

// Progression holds the per-tick constants of the simulation clock.
type Progression struct {
	YearsPerTick    int
	ProgressPerTick int
}

// DefaultProgression advances 100k years and 5% of a stage per tick.
var DefaultProgression = Progression{YearsPerTick: 100_000, ProgressPerTick: 5}

// StartingResilience is the resilience of a freshly seeded civilization.
const StartingResilience = 50

// Civilization is the single world observed during a simulation.
type Civilization struct {
	ID            int   `json:"id"`
	Stage         Stage `json:"stage"`
	Resilience    int   `json:"resilience"`
	Age           int64 `json:"age"`
	StageProgress int   `json:"stage_progress"`
}

// NewCivilization seeds a civilization with a random four digit ID.
func NewCivilization(rnd Randomizer, resilience int) *Civilization {
	return &Civilization{
		ID:         RandomCivilizationID(rnd),
		Stage:      StageMolten,
		Resilience: resilience,
	}
}

// RandomCivilizationID draws an ID in [1000, 9999].
func RandomCivilizationID(rnd Randomizer) int {
	return rnd.Intn(9000) + 1000
}

// Advance moves the clock one tick. When the stage bar fills, progress
// wraps to zero and the stage moves along the transition table; the new stage
// is returned with true. A terminal stage never advances.
func (c *Civilization) Advance(p Progression) (Stage, bool) {
	c.Age += int64(p.YearsPerTick)
	c.StageProgress += p.ProgressPerTick

	if c.StageProgress < 100 {
		return c.Stage, false
	}
	c.StageProgress = 0

	next, ok := NextStage(c.Stage)
	if !ok {
		return c.Stage, false
	}
	c.Stage = next
	return next, true
}

// AgeMillions formats the age the way the HUD shows it, e.g. "1.2".
func (c *Civilization) AgeMillions() string {
	return fmt.Sprintf("%.1f", float64(c.Age)/1_000_000)
}

// Banner is the one-line HUD description, e.g. "#4821 - GREEN - 1.2M YEARS".
func (c *Civilization) Banner() string {
	return fmt.Sprintf("#%d - %s - %sM YEARS", c.ID, c.Stage, c.AgeMillions())
}

// ResiliencePercent is the fill of the resilience bar.
func (c *Civilization) ResiliencePercent() float64 {
	return minFloat(float64(c.Resilience), 100)
}

// FilterPercent is the fill of the filter-strength bar for a total strength.
func FilterPercent(totalStrength int) float64 {
	return minFloat(float64(totalStrength)/75*100, 100)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
