package game

import (
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
)

// CardView is the public face of a card.
type CardView struct {
	ID         int              `json:"id"`
	Category   catalog.Category `json:"category"`
	Name       string           `json:"name"`
	Cost       int              `json:"cost"`
	Logic      string           `json:"logic"`
	Tip        string           `json:"tip"`
	Art        []string         `json:"art"`
	Selected   bool             `json:"selected"`
	Affordable bool             `json:"affordable"`
}

// NewCardView hides the truth condition and red herring flag of a card.
func NewCardView(c catalog.Card, selected, affordable bool) CardView {
	return CardView{
		ID:         c.ID,
		Category:   c.Category,
		Name:       c.Name,
		Cost:       c.Cost,
		Logic:      c.Logic,
		Tip:        c.Tip,
		Art:        append([]string(nil), c.Art...),
		Selected:   selected,
		Affordable: affordable,
	}
}

// HUD is the simulation heads-up display.
type HUD struct {
	Banner            string        `json:"banner"`
	ResiliencePercent float64       `json:"resilience_percent"`
	FilterPercent     float64       `json:"filter_percent"`
	Palette           rules.Palette `json:"palette"`
	Flash             Flash         `json:"flash,omitempty"`
}

// View is a point-in-time copy of a game for rendering.
type View struct {
	GameID       string              `json:"game_id"`
	Phase        Phase               `json:"phase"`
	Budget       int                 `json:"budget"`
	Spent        int                 `json:"spent"`
	Remaining    int                 `json:"remaining"`
	Selected     []CardView          `json:"selected"`
	Tick         int                 `json:"tick"`
	Civilization *rules.Civilization `json:"civilization,omitempty"`
	HUD          *HUD                `json:"hud,omitempty"`
	Log          []LogEntry          `json:"log"`
	Outcome      rules.Outcome       `json:"outcome"`
	// Conditions are revealed once the report is ready.
	Conditions map[string]int `json:"conditions,omitempty"`
}

// View returns a copy of the game state.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		GameID:    g.id,
		Phase:     g.phase,
		Budget:    g.selection.Budget(),
		Spent:     g.selection.Spent(),
		Remaining: g.selection.Remaining(),
		Tick:      g.tick,
		Log:       append([]LogEntry(nil), g.log...),
		Outcome:   g.outcome,
	}
	for _, c := range g.selection.Cards() {
		v.Selected = append(v.Selected, NewCardView(c, true, false))
	}

	if g.civ != nil {
		civ := *g.civ
		v.Civilization = &civ
		v.HUD = &HUD{
			Banner:            civ.Banner(),
			ResiliencePercent: civ.ResiliencePercent(),
			FilterPercent:     rules.FilterPercent(g.selection.TotalStrength()),
			Palette:           rules.PaletteFor(civ.Stage, g.outcome == rules.OutcomeSuccess),
			Flash:             g.flash,
		}
	}

	if g.phase == PhasePostmortem {
		v.Conditions = make(map[string]int, len(catalog.Conditions))
		for cond, score := range g.selection.TruthConditions() {
			v.Conditions[string(cond)] = score
		}
	}
	return v
}
