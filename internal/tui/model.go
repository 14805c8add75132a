// Package tui is a terminal front end for a single local game.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
)

// Options configures the terminal client.
type Options struct {
	TickInterval time.Duration
	ReportDelay  time.Duration
	// Copy puts text on the system clipboard. Defaults to clipboard.WriteAll.
	Copy func(string) error
}

type tickMsg struct{ run int }

type concludeMsg struct{ run int }

// Model is the bubbletea model wrapping one game.
type Model struct {
	game *game.Game
	opts Options

	// run increments on every deploy so stale ticks from a reset run are
	// dropped.
	run      int
	category int
	cursor   int
	scroll   int
	status   string
	width    int
	height   int
}

// New creates a model for g.
func New(g *game.Game, opts Options) Model {
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	return Model{game: g, opts: opts, width: 100, height: 32}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(g *game.Game, opts Options) error {
	_, err := tea.NewProgram(New(g, opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	run := m.run
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

func (m Model) conclude() tea.Cmd {
	run := m.run
	return tea.Tick(m.opts.ReportDelay, func(time.Time) tea.Msg { return concludeMsg{run: run} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tickMsg:
		if msg.run != m.run || m.game.Phase() != game.PhaseSimulation {
			return m, nil
		}
		res, err := m.game.Tick()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		if res.Done() {
			return m, m.conclude()
		}
		return m, m.tick()
	case concludeMsg:
		if msg.run != m.run {
			return m, nil
		}
		if _, err := m.game.Conclude(); err != nil {
			m.status = err.Error()
		}
		m.scroll = 0
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.game.Phase() {
		case game.PhaseIntro:
			return m.updateIntro(msg)
		case game.PhaseSelection:
			return m.updateSelection(msg)
		case game.PhaseSimulation:
			return m.updateSimulation(msg)
		case game.PhasePostmortem:
			return m.updatePostmortem(msg)
		}
	}
	return m, nil
}

func (m Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter", " ":
		m.setStatus(m.game.Begin())
	}
	return m, nil
}

func (m Model) offers() []game.Offer {
	return m.game.Browse(catalog.Categories[m.category])
}

func (m Model) updateSelection(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	offers := m.offers()
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "left", "h", "shift+tab":
		m.category = (m.category + len(catalog.Categories) - 1) % len(catalog.Categories)
		m.cursor = 0
	case "right", "l", "tab":
		m.category = (m.category + 1) % len(catalog.Categories)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(offers)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor < len(offers) {
			m.setStatus(m.game.Toggle(offers[m.cursor].Card.ID))
		}
	case "d":
		if err := m.game.Deploy(); err != nil {
			m.setStatus(err)
			return m, nil
		}
		m.status = ""
		m.run++
		return m, m.tick()
	}
	return m, nil
}

func (m Model) updateSimulation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "r":
		m.reset()
	}
	return m, nil
}

func (m Model) updatePostmortem(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		m.scroll++
	case "c":
		r, ok := m.game.Report()
		if !ok {
			return m, nil
		}
		if err := m.opts.Copy(r.Text()); err != nil {
			m.status = fmt.Sprintf("copy failed: %v", err)
		} else {
			m.status = "Report copied to clipboard."
		}
	case "r", "enter":
		m.reset()
	}
	return m, nil
}

// reset abandons the current run and returns to the selection screen.
func (m *Model) reset() {
	m.run++
	m.game.Reset(true)
	m.cursor, m.scroll, m.status = 0, 0, ""
}

func (m *Model) setStatus(err error) {
	switch {
	case err == nil:
		m.status = ""
	case errors.Is(err, game.ErrNoFilters):
		m.status = "Select at least one filter!"
	default:
		m.status = err.Error()
	}
}
