package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cosmicgardener/gardener-server-go/internal/game"
	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/report"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bc00ff"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ffcc"))
	tabStyle    = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("244"))
	activeTab   = tabStyle.Foreground(lipgloss.Color("#00ffcc")).Underline(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0055"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#bc00ff")).Padding(0, 1)
	flashStyles = map[game.Flash]lipgloss.Style{
		game.FlashWhite: lipgloss.NewStyle().Background(lipgloss.Color("15")).Foreground(lipgloss.Color("0")),
		game.FlashRed:   lipgloss.NewStyle().Background(lipgloss.Color("#ff0055")).Foreground(lipgloss.Color("15")),
	}
	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		rules.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
		rules.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")),
		rules.SeverityFailure: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff0055")),
	}
)

func severity(s rules.Severity, text string) string {
	return severityStyles[s].Render(text)
}

// bar renders a fill gauge of width cells for a 0-100 percentage.
func bar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m Model) View() string {
	v := m.game.View()
	var body string
	switch v.Phase {
	case game.PhaseIntro:
		body = m.viewIntro()
	case game.PhaseSelection:
		body = m.viewSelection(v)
	case game.PhaseSimulation:
		body = m.viewSimulation(v)
	case game.PhasePostmortem:
		body = m.viewPostmortem()
	}
	if m.status != "" {
		body += "\n" + statusStyle.Render(m.status)
	}
	return body + "\n"
}

func (m Model) viewIntro() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("THE GREAT SILENCE"))
	b.WriteString("\n\n")
	b.WriteString("The galaxy is quiet. You tend the garden that keeps it that way.\n")
	b.WriteString("Plant filters with your entropy budget. Each one quietly tests a\n")
	b.WriteString("civilization as it climbs toward the stars. Stall it before it builds\n")
	b.WriteString("a Dyson sphere.\n\n")
	b.WriteString(dimStyle.Render("enter: begin   q: quit"))
	return b.String()
}

func (m Model) viewSelection(v game.View) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("FILTER SELECTION"))
	b.WriteString(fmt.Sprintf("   Entropy %d/%d   Filters %d\n\n", v.Remaining, v.Budget, len(v.Selected)))

	tabs := make([]string, 0, len(catalog.Categories))
	for i, c := range catalog.Categories {
		style := tabStyle
		if i == m.category {
			style = activeTab
		}
		tabs = append(tabs, style.Render(strings.ToUpper(string(c))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	offers := m.offers()
	var list strings.Builder
	for i, o := range offers {
		mark := "[ ]"
		if o.Selected {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %2d  %-34s %2d", mark, o.Card.ID, o.Card.Name, o.Card.Cost)
		switch {
		case i == m.cursor:
			line = cursorStyle.Render("> " + line)
		case !o.Selected && !o.Affordable:
			line = dimStyle.Render("  " + line)
		default:
			line = "  " + line
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	detail := ""
	if m.cursor < len(offers) {
		c := offers[m.cursor].Card
		width := 44
		if m.width > 0 && m.width/2 > width {
			width = m.width / 2
		}
		detail = panelStyle.Width(width).Render(strings.Join(append(
			append([]string{titleStyle.Render(c.Name), ""}, c.Art...),
			"", c.Logic, "", dimStyle.Render(c.Tip),
		), "\n"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("←/→: category   ↑/↓: move   enter: plant/uproot   d: deploy   q: quit"))
	return b.String()
}

func (m Model) viewSimulation(v game.View) string {
	var b strings.Builder
	if v.HUD != nil {
		banner := titleStyle.Render(v.HUD.Banner)
		if style, ok := flashStyles[v.HUD.Flash]; ok {
			banner = style.Render(v.HUD.Banner)
		}
		b.WriteString(banner)
		b.WriteString("\n\n")
		planet := lipgloss.NewStyle().Foreground(lipgloss.Color(v.HUD.Palette.Detail)).Render("●")
		b.WriteString(fmt.Sprintf("%s  Resilience %s %3.0f%%\n", planet, bar(v.HUD.ResiliencePercent, 20), v.HUD.ResiliencePercent))
		b.WriteString(fmt.Sprintf("   Filters    %s %3.0f%%\n\n", bar(v.HUD.FilterPercent, 20), v.HUD.FilterPercent))
	}

	rows := m.height - 10
	if rows < 5 {
		rows = 5
	}
	log := v.Log
	if len(log) > rows {
		log = log[len(log)-rows:]
	}
	for _, e := range log {
		b.WriteString(severity(e.Severity, e.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("r: abandon run   q: quit"))
	return b.String()
}

func (m Model) viewPostmortem() string {
	r, ok := m.game.Report()
	if !ok {
		return dimStyle.Render("Compiling report...")
	}
	lines := r.Lines()

	rows := m.height - 3
	if rows < 5 {
		rows = 5
	}
	start := m.scroll
	if last := len(lines) - rows; start > last {
		start = last
	}
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > len(lines) {
		end = len(lines)
	}

	var b strings.Builder
	for _, l := range lines[start:end] {
		b.WriteString(renderLine(l))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("↑/↓: scroll   c: copy report   r: try again   q: quit"))
	return b.String()
}

func renderLine(l report.Line) string {
	if strings.HasPrefix(l.Text, "===") {
		return titleStyle.Render(l.Text)
	}
	return severity(l.Severity, l.Text)
}
