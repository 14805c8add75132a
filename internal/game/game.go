package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/garden"
	"github.com/cosmicgardener/gardener-server-go/internal/game/gesture"
	"github.com/cosmicgardener/gardener-server-go/internal/game/report"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"go.uber.org/zap"
)

// Phase is the screen a game is on.
type Phase int

const (
	PhaseIntro Phase = iota
	PhaseSelection
	PhaseSimulation
	PhasePostmortem
)

var phaseNames = map[Phase]string{
	PhaseIntro:      "INTRO",
	PhaseSelection:  "SELECTION",
	PhaseSimulation: "SIMULATION",
	PhasePostmortem: "POSTMORTEM",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	for phase, name := range phaseNames {
		if name == string(text) {
			*p = phase
			return nil
		}
	}
	return fmt.Errorf("unknown phase: %q", string(text))
}

var (
	// ErrWrongPhase is returned when an operation is not allowed on the current screen.
	ErrWrongPhase = errors.New("operation not allowed in current phase")
	// ErrNoFilters is returned when deploying an empty selection.
	ErrNoFilters = errors.New("select at least one filter")
	// ErrUnknownCard is returned for card IDs missing from the catalog.
	ErrUnknownCard = errors.New("unknown card")
	// ErrSimulationOver is returned when ticking a finished simulation.
	ErrSimulationOver = errors.New("simulation already finished")
)

// Flash is the screen cue shown after a filter check.
type Flash string

const (
	FlashNone  Flash = ""
	FlashWhite Flash = "white"
	FlashRed   Flash = "red"
)

// LogEntry is one line of the simulation log.
type LogEntry struct {
	Message  string         `json:"message"`
	Severity rules.Severity `json:"severity"`
}

// Settings are the tunables of a single game.
type Settings struct {
	Budget             int
	Threshold          int
	StartingResilience int
	ResilienceGain     int
	YearsPerTick       int
	ProgressPerTick    int
	EventEveryTicks    int
}

// DefaultSettings returns the standard rules.
func DefaultSettings() Settings {
	return Settings{
		Budget:             garden.DefaultBudget,
		Threshold:          rules.DefaultFilterConfig.Threshold,
		StartingResilience: rules.StartingResilience,
		ResilienceGain:     rules.DefaultFilterConfig.ResilienceGain,
		YearsPerTick:       rules.DefaultProgression.YearsPerTick,
		ProgressPerTick:    rules.DefaultProgression.ProgressPerTick,
		EventEveryTicks:    4,
	}
}

func (s Settings) filterConfig() rules.FilterConfig {
	return rules.FilterConfig{Threshold: s.Threshold, ResilienceGain: s.ResilienceGain}
}

func (s Settings) progression() rules.Progression {
	return rules.Progression{YearsPerTick: s.YearsPerTick, ProgressPerTick: s.ProgressPerTick}
}

// TickResult summarises one simulation tick.
type TickResult struct {
	Tick         int
	Stage        rules.Stage
	StageChanged bool
	Check        *rules.FilterResult
	Outcome      rules.Outcome
}

// Done reports whether the tick ended the simulation.
func (r TickResult) Done() bool {
	return r.Outcome.Terminal()
}

// Game is a single player's session: selection, one simulation and its report.
// All methods are safe for concurrent use; events are published after the
// game lock is released.
type Game struct {
	id       string
	logger   *zap.Logger
	settings Settings
	catalog  *catalog.Catalog
	rnd      rules.Randomizer
	bus      *rules.EventBus
	replay   *Replay

	mu         sync.Mutex
	phase      Phase
	selection  *garden.Selection
	civ        *rules.Civilization
	tick       int
	log        []LogEntry
	outcome    rules.Outcome
	reasons    []string
	flash      Flash
	report     *report.Report
	lastActive time.Time
	pending    []rules.Event
}

// NewGame creates a game on the intro screen.
func NewGame(id string, cat *catalog.Catalog, settings Settings, rnd rules.Randomizer, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cat == nil {
		cat = catalog.Default()
	}
	return &Game{
		id:         id,
		logger:     logger.With(zap.String("game_id", id)),
		settings:   settings,
		catalog:    cat,
		rnd:        rnd,
		bus:        rules.NewEventBus(),
		replay:     NewReplay(id),
		phase:      PhaseIntro,
		selection:  garden.NewSelection(settings.Budget),
		lastActive: time.Now(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.id }

// Events returns the bus the game publishes on.
func (g *Game) Events() *rules.EventBus { return g.bus }

// Replay returns the tick-by-tick record of the current simulation.
func (g *Game) Replay() *Replay { return g.replay }

// Catalog returns the deck the game draws from.
func (g *Game) Catalog() *catalog.Catalog { return g.catalog }

// Settings returns the game's tunables.
func (g *Game) Settings() Settings { return g.settings }

// do runs fn under the game lock, then publishes whatever fn emitted.
func (g *Game) do(fn func() error) error {
	g.mu.Lock()
	err := fn()
	g.lastActive = time.Now()
	events := g.pending
	g.pending = nil
	g.mu.Unlock()

	g.bus.PublishBatch(events)
	return err
}

func (g *Game) emitLocked(evt rules.Event) {
	g.pending = append(g.pending, evt)
}

func (g *Game) logLocked(message string, severity rules.Severity) {
	g.log = append(g.log, LogEntry{Message: message, Severity: severity})
	g.emitLocked(rules.NewLogEvent(g.id, message, severity))
}

func (g *Game) setPhaseLocked(p Phase) {
	g.phase = p
	evt := rules.NewEvent(rules.EventPhaseChanged, g.id)
	evt.Message = p.String()
	g.emitLocked(evt)
}

func (g *Game) requirePhaseLocked(p Phase) error {
	if g.phase != p {
		return fmt.Errorf("%w: in %s, need %s", ErrWrongPhase, g.phase, p)
	}
	return nil
}

// Begin leaves the intro for the selection screen.
func (g *Game) Begin() error {
	return g.do(func() error {
		if err := g.requirePhaseLocked(PhaseIntro); err != nil {
			return err
		}
		g.setPhaseLocked(PhaseSelection)
		return nil
	})
}

// Select plants a card. Rejections leave the selection unchanged.
func (g *Game) Select(cardID int) error {
	return g.changeSelection(cardID, (*garden.Selection).Add)
}

// Deselect uproots a card. Rejections leave the selection unchanged.
func (g *Game) Deselect(cardID int) error {
	return g.changeSelection(cardID, (*garden.Selection).Remove)
}

// Toggle selects an unselected card or deselects a selected one.
func (g *Game) Toggle(cardID int) error {
	return g.changeSelection(cardID, (*garden.Selection).Toggle)
}

func (g *Game) changeSelection(cardID int, op func(*garden.Selection, catalog.Card) error) error {
	return g.do(func() error {
		if err := g.requirePhaseLocked(PhaseSelection); err != nil {
			return err
		}
		card, ok := g.catalog.Get(cardID)
		if !ok {
			return fmt.Errorf("card %d: %w", cardID, ErrUnknownCard)
		}
		if err := op(g.selection, card); err != nil {
			return err
		}

		evt := rules.NewEventWithAmount(rules.EventSelectionChanged, g.id, card.ID)
		evt.Flag = g.selection.Contains(card.ID)
		evt.Message = card.Name
		g.emitLocked(evt)
		return nil
	})
}

// ApplyGesture commits the action of a finished drag on a card.
func (g *Game) ApplyGesture(cardID int, action gesture.Action) error {
	switch action {
	case gesture.ActionSelect:
		return g.Select(cardID)
	case gesture.ActionDeselect:
		return g.Deselect(cardID)
	}
	return nil
}

// CardState reports whether a card is selected and whether it is affordable.
func (g *Game) CardState(cardID int) (selected, affordable bool, err error) {
	card, ok := g.catalog.Get(cardID)
	if !ok {
		return false, false, fmt.Errorf("card %d: %w", cardID, ErrUnknownCard)
	}
	return g.selection.Contains(cardID), g.selection.CanAfford(card), nil
}

// Offer is a card as presented on the selection screen.
type Offer struct {
	Card       catalog.Card
	Selected   bool
	Affordable bool
}

// Browse lists the cards of a category with their selection state.
func (g *Game) Browse(category catalog.Category) []Offer {
	cards := g.catalog.ByCategory(category)
	out := make([]Offer, 0, len(cards))
	for _, c := range cards {
		out = append(out, Offer{
			Card:       c,
			Selected:   g.selection.Contains(c.ID),
			Affordable: g.selection.CanAfford(c),
		})
	}
	return out
}

// Deploy seeds a civilization and starts the simulation.
func (g *Game) Deploy() error {
	return g.do(func() error {
		if err := g.requirePhaseLocked(PhaseSelection); err != nil {
			return err
		}
		cards := g.selection.Cards()
		if len(cards) == 0 {
			return ErrNoFilters
		}

		g.civ = rules.NewCivilization(g.rnd, g.settings.StartingResilience)
		g.tick = 0
		g.log = nil
		g.reasons = nil
		g.outcome = rules.OutcomePending
		g.flash = FlashNone
		g.report = nil
		g.replay.Clear()

		g.setPhaseLocked(PhaseSimulation)
		g.emitLocked(rules.NewEventWithAmount(rules.EventDeployed, g.id, g.civ.ID))

		g.logLocked(fmt.Sprintf("Monitoring Civilization #%d...", g.civ.ID), rules.SeveritySuccess)
		g.logLocked("Deploying filter array...", rules.SeverityWarning)
		for _, c := range cards {
			g.logLocked("✓ "+c.Name, rules.SeveritySuccess)
		}
		g.logLocked("", rules.SeverityInfo)
		g.logLocked("Beginning observation...", rules.SeverityInfo)

		g.replay.RecordState(g.snapshotLocked())
		g.logger.Info("simulation deployed",
			zap.Int("civilization_id", g.civ.ID),
			zap.Int("filters", len(cards)),
			zap.Int("entropy_spent", g.selection.Spent()),
		)
		return nil
	})
}

// Tick advances the simulation by one step.
func (g *Game) Tick() (TickResult, error) {
	var res TickResult
	err := g.do(func() error {
		if err := g.requirePhaseLocked(PhaseSimulation); err != nil {
			return err
		}
		if g.outcome.Terminal() {
			return ErrSimulationOver
		}
		res = g.tickLocked()
		return nil
	})
	return res, err
}

func (g *Game) tickLocked() TickResult {
	g.tick++
	g.flash = FlashNone

	stage, changed := g.civ.Advance(g.settings.progression())
	res := TickResult{Tick: g.tick, Stage: stage, StageChanged: changed}

	tickEvt := rules.NewEventWithAmount(rules.EventTick, g.id, g.civ.StageProgress)
	tickEvt.Tick = g.tick
	tickEvt.Stage = stage.String()
	g.emitLocked(tickEvt)

	if changed {
		g.logLocked("", rules.SeverityInfo)
		g.logLocked(fmt.Sprintf("=== %s ERA (%sM years) ===", stage, g.civ.AgeMillions()), rules.SeverityWarning)
		stageEvt := rules.NewEvent(rules.EventStageChanged, g.id)
		stageEvt.Tick = g.tick
		stageEvt.Stage = stage.String()
		g.emitLocked(stageEvt)

		if rules.IsCheckpoint(stage) && g.checkFiltersLocked(&res) {
			return g.finishLocked(res)
		}
		if stage == rules.StageDyson {
			g.outcome = rules.OutcomeFailure
			g.logLocked("Dyson sphere construction detected! Type II civilization achieved.", rules.SeverityFailure)
			res.Outcome = g.outcome
			return g.finishLocked(res)
		}
	}

	if every := g.settings.EventEveryTicks; every > 0 && g.tick%every == 0 {
		if e, ok := rules.DrawEvent(g.civ.Stage, g.rnd); ok {
			g.logLocked(e.Message, e.Severity)
		}
	}

	g.replay.RecordState(g.snapshotLocked())
	return res
}

// checkFiltersLocked runs a filter check and reports whether it stalled the
// civilization.
func (g *Game) checkFiltersLocked(res *TickResult) bool {
	check := rules.CheckFilters(g.civ, g.selection.TruthConditions(), g.settings.filterConfig(), g.rnd)
	res.Check = &check

	evt := rules.NewEventWithFlag(rules.EventFilterChecked, g.id, check.Success)
	evt.Tick = g.tick
	evt.Stage = g.civ.Stage.String()
	evt.Amount = g.civ.Resilience
	evt.Metadata["roll"] = fmt.Sprintf("%.4f", check.Roll)
	evt.Metadata["failure_chance"] = fmt.Sprintf("%.4f", check.FailureChance)
	g.emitLocked(evt)

	g.logger.Debug("filter check",
		zap.String("stage", g.civ.Stage.String()),
		zap.Bool("success", check.Success),
		zap.Bool("all_met", check.AllMet),
		zap.Float64("roll", check.Roll),
		zap.Float64("failure_chance", check.FailureChance),
	)

	if check.Success {
		g.setFlashLocked(FlashWhite)
		g.logLocked(">>> FILTER ACTIVATED <<<", rules.SeveritySuccess)
		g.logLocked(fmt.Sprintf("Civilization stalled at %s stage.", g.civ.Stage), rules.SeveritySuccess)
		g.outcome = rules.OutcomeSuccess
		res.Outcome = g.outcome
		return true
	}

	g.reasons = append(g.reasons, check.Reasons...)
	g.setFlashLocked(FlashRed)
	g.logLocked("Civilization adapts and overcomes filter. Resilience increased.", rules.SeverityFailure)
	return false
}

func (g *Game) setFlashLocked(f Flash) {
	g.flash = f
	evt := rules.NewEvent(rules.EventFlash, g.id)
	evt.Message = string(f)
	evt.Tick = g.tick
	g.emitLocked(evt)
}

func (g *Game) finishLocked(res TickResult) TickResult {
	g.replay.RecordState(g.snapshotLocked())

	evt := rules.NewEventWithFlag(rules.EventOutcome, g.id, g.outcome == rules.OutcomeSuccess)
	evt.Tick = g.tick
	evt.Stage = g.civ.Stage.String()
	evt.Message = g.outcome.String()
	g.emitLocked(evt)

	g.logger.Info("simulation finished",
		zap.String("outcome", g.outcome.String()),
		zap.String("stage", g.civ.Stage.String()),
		zap.Int("ticks", g.tick),
		zap.Int("civilization_id", g.civ.ID),
	)
	return res
}

// Conclude builds the report of a finished simulation and moves to the
// post-mortem screen.
func (g *Game) Conclude() (report.Report, error) {
	var r report.Report
	err := g.do(func() error {
		if err := g.requirePhaseLocked(PhaseSimulation); err != nil {
			return err
		}
		if !g.outcome.Terminal() {
			return fmt.Errorf("%w: simulation still running", ErrWrongPhase)
		}

		r = report.Generate(report.Input{
			Outcome:            g.outcome,
			Civilization:       *g.civ,
			Cards:              g.selection.Cards(),
			Conditions:         g.selection.TruthConditions(),
			Threshold:          g.settings.Threshold,
			Reasons:            append([]string(nil), g.reasons...),
			NextCivilizationID: rules.RandomCivilizationID(g.rnd),
		})
		g.report = &r
		g.setPhaseLocked(PhasePostmortem)

		evt := rules.NewEvent(rules.EventReportReady, g.id)
		evt.Message = r.Header
		g.emitLocked(evt)
		return nil
	})
	return r, err
}

// Report returns the post-mortem once it has been built.
func (g *Game) Report() (report.Report, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.report == nil {
		return report.Report{}, false
	}
	return *g.report, true
}

// Reset clears the selection, the civilization and the log. The game returns
// to the selection screen, or to the intro unless skipIntro is set.
func (g *Game) Reset(skipIntro bool) {
	_ = g.do(func() error {
		g.selection.Reset()
		g.civ = nil
		g.tick = 0
		g.log = nil
		g.reasons = nil
		g.outcome = rules.OutcomePending
		g.flash = FlashNone
		g.report = nil
		g.replay.Clear()

		g.emitLocked(rules.NewEvent(rules.EventReset, g.id))
		if skipIntro {
			g.setPhaseLocked(PhaseSelection)
		} else {
			g.setPhaseLocked(PhaseIntro)
		}
		return nil
	})
}

// Phase returns the current screen.
func (g *Game) Phase() Phase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// Outcome returns the simulation outcome.
func (g *Game) Outcome() rules.Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.outcome
}

// LastActive returns when the game was last touched.
func (g *Game) LastActive() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastActive
}
