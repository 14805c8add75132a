package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func newTestModel(t *testing.T, copied *string) (Model, *game.Game) {
	t.Helper()
	g := game.NewGame("tui", nil, game.DefaultSettings(), rules.NewRandomizer(1), zaptest.NewLogger(t))
	m := New(g, Options{Copy: func(s string) error {
		*copied = s
		return nil
	}})
	return m, g
}

// runToReport feeds ticks until the simulation ends, then concludes it.
func runToReport(t *testing.T, m Model, g *game.Game) Model {
	t.Helper()
	for i := 0; i < 1000 && !g.Outcome().Terminal(); i++ {
		next, _ := m.Update(tickMsg{run: m.run})
		m = next.(Model)
	}
	require.True(t, g.Outcome().Terminal())
	next, _ := m.Update(concludeMsg{run: m.run})
	return next.(Model)
}

func TestIntroToSelection(t *testing.T) {
	var copied string
	m, g := newTestModel(t, &copied)
	assert.Contains(t, m.View(), "THE GREAT SILENCE")

	m, _ = press(t, m, "enter")
	assert.Equal(t, game.PhaseSelection, g.Phase())
	assert.Contains(t, m.View(), "FILTER SELECTION")
	assert.Contains(t, m.View(), "Entropy 60/60")
}

func TestSelectionKeys(t *testing.T) {
	var copied string
	m, g := newTestModel(t, &copied)
	m, _ = press(t, m, "enter")

	m, cmd := press(t, m, "d")
	assert.Nil(t, cmd)
	assert.Equal(t, "Select at least one filter!", m.status)
	assert.Equal(t, game.PhaseSelection, g.Phase())

	first := g.Browse(catalog.Categories[0])[0].Card
	m, _ = press(t, m, "enter")
	assert.Empty(t, m.status)
	assert.Equal(t, first.Cost, g.View().Spent)

	m, _ = press(t, m, "enter")
	assert.Zero(t, g.View().Spent)

	m, _ = press(t, m, "right")
	assert.Equal(t, 1, m.category)
	m, _ = press(t, m, "left", "left")
	assert.Equal(t, len(catalog.Categories)-1, m.category)

	m, _ = press(t, m, "down", "down")
	assert.Equal(t, 2, m.cursor)
	m, _ = press(t, m, "right")
	assert.Zero(t, m.cursor)
}

func TestDeployRunsToReport(t *testing.T) {
	var copied string
	m, g := newTestModel(t, &copied)
	m, _ = press(t, m, "enter", "enter")

	m, cmd := press(t, m, "d")
	require.NotNil(t, cmd)
	assert.Equal(t, game.PhaseSimulation, g.Phase())
	assert.Equal(t, 1, m.run)

	next, _ := m.Update(tickMsg{run: m.run})
	m = next.(Model)
	assert.Contains(t, m.View(), "Resilience")
	assert.Contains(t, m.View(), "Monitoring Civilization")

	m = runToReport(t, m, g)
	assert.Equal(t, game.PhasePostmortem, g.Phase())
	assert.Contains(t, m.View(), "THE REPORT")

	r, ok := g.Report()
	require.True(t, ok)
	m, _ = press(t, m, "c")
	assert.Equal(t, r.Text(), copied)
	assert.Equal(t, "Report copied to clipboard.", m.status)

	m, _ = press(t, m, "down", "down", "up")
	assert.Equal(t, 1, m.scroll)

	m, _ = press(t, m, "r")
	assert.Equal(t, game.PhaseSelection, g.Phase())
	assert.Zero(t, g.View().Spent)
	assert.Equal(t, 2, m.run)
}

func TestStaleTicksIgnored(t *testing.T) {
	var copied string
	m, g := newTestModel(t, &copied)
	m, _ = press(t, m, "enter", "enter", "d")
	stale := m.run

	m, _ = press(t, m, "r")
	assert.Equal(t, game.PhaseSelection, g.Phase())

	next, cmd := m.Update(tickMsg{run: stale})
	assert.Nil(t, cmd)
	next, cmd = next.(Model).Update(concludeMsg{run: stale})
	assert.Nil(t, cmd)
	assert.Equal(t, game.PhaseSelection, g.Phase())
	assert.Zero(t, next.(Model).game.View().Tick)
}

func TestCopyFailureReported(t *testing.T) {
	g := game.NewGame("tui", nil, game.DefaultSettings(), rules.NewRandomizer(2), zaptest.NewLogger(t))
	m := New(g, Options{Copy: func(string) error { return errors.New("no display") }})
	m, _ = press(t, m, "enter", "enter", "d")
	m = runToReport(t, m, g)

	m, _ = press(t, m, "c")
	assert.Equal(t, "copy failed: no display", m.status)
}

func TestQuitKeys(t *testing.T) {
	var copied string
	m, _ := newTestModel(t, &copied)
	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBar(t *testing.T) {
	assert.Equal(t, "[----]", bar(0, 4))
	assert.Equal(t, "[##--]", bar(50, 4))
	assert.Equal(t, "[####]", bar(150, 4))
	assert.Equal(t, "[----]", bar(-10, 4))
}
