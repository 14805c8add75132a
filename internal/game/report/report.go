// Package report renders the post-mortem shown after a simulation ends.
package report

import (
	"fmt"
	"strings"

	"github.com/cosmicgardener/gardener-server-go/internal/game/catalog"
	"github.com/cosmicgardener/gardener-server-go/internal/game/rules"
)

// Line is one row of the report.
type Line struct {
	Text     string         `json:"text"`
	Severity rules.Severity `json:"severity"`
}

// Section is a heading followed by its lines.
type Section struct {
	Heading Line   `json:"heading"`
	Lines   []Line `json:"lines"`
}

// Report is the structured post-mortem.
type Report struct {
	Outcome          rules.Outcome    `json:"outcome"`
	Header           string           `json:"header"`
	Headline         Line             `json:"headline"`
	Sections         []Section        `json:"sections"`
	DominantCategory catalog.Category `json:"dominant_category,omitempty"`
}

// Input is everything the report depends on.
type Input struct {
	Outcome      rules.Outcome
	Civilization rules.Civilization
	Cards        []catalog.Card
	Conditions   map[catalog.Condition]int
	Threshold    int
	// Reasons are the failure reasons recorded by filter checks, in order.
	Reasons []string
	// NextCivilizationID names the civilization that inherits the cycle.
	NextCivilizationID int
}

type explanation struct {
	title string
	body  []string
}

var explanations = map[catalog.Condition]explanation{
	catalog.ConditionSilence: {"SILENCE", []string{
		`The Fermi Paradox asks: "Where is everybody?"`,
		"Your filters failed to make civilizations UNDETECTABLE.",
		"This civilization broadcasts radio, builds megastructures,",
		"and colonizes visibly. Others would see them.",
		"One visible civilization breaks the Great Silence.",
	}},
	catalog.ConditionUniversality: {"UNIVERSALITY", []string{
		"The Fermi Paradox requires galaxy-wide solutions.",
		"Your filters only work on SOME species or planets.",
		"Evolution finds workarounds. Life adapts.",
		"One exception anywhere ruins the entire theory.",
	}},
	catalog.ConditionVariance: {"VARIANCE", []string{
		"The Fermi Paradox spans countless worlds.",
		"Your filters assume similar evolutionary paths.",
		"But intelligence can emerge in infinite forms:",
		"Ocean dwellers, gas giants, silicon-based minds.",
		"Your solution is too narrow for cosmic diversity.",
	}},
	catalog.ConditionScale: {"SCALE/LONGEVITY", []string{
		"The Fermi Paradox operates on BILLIONS of years.",
		"Your filters are temporary or short-lived.",
		"Stars burn for eons. Galaxies rotate for ages.",
		"A filter must persist across cosmic timescales.",
		"Temporary obstacles just delay the inevitable.",
	}},
	catalog.ConditionLogic: {"LOGIC", []string{
		"The Fermi Paradox demands internal consistency.",
		"Your filters rely on unproven assumptions,",
		"require active intervention, or violate physics.",
		"A valid solution must emerge naturally",
		"from the laws of the universe itself.",
	}},
}

var requiredProperties = []string{
	"  • SILENT - Makes detection impossible",
	"  • UNIVERSAL - Applies to ALL life",
	"  • VARIANT - Works across diversity",
	"  • ENDURING - Lasts billions of years",
	"  • LOGICAL - Requires no magic",
}

// Generate builds the report for a finished simulation. It is a pure
// function of in.
func Generate(in Input) Report {
	if in.Threshold <= 0 {
		in.Threshold = rules.DefaultFilterConfig.Threshold
	}
	if in.Outcome == rules.OutcomeSuccess {
		return success(in)
	}
	return failure(in)
}

func success(in Input) Report {
	civ := in.Civilization
	r := Report{
		Outcome:          rules.OutcomeSuccess,
		Header:           "THE REPORT - FILTER SUCCESS",
		Headline:         Line{fmt.Sprintf("CIVILIZATION #%d: CONTAINED", civ.ID), rules.SeveritySuccess},
		DominantCategory: DominantCategory(in.Cards),
	}

	r.Sections = append(r.Sections, Section{
		Heading: info("=== EXECUTIVE SUMMARY ==="),
		Lines: []Line{
			info(fmt.Sprintf("Subject stalled at %s stage", civ.Stage)),
			info(fmt.Sprintf("Timeline: %s million years", civ.AgeMillions())),
			info("Status: SILENT AND STABLE"),
		},
	})

	deployed := Section{Heading: info("=== DEPLOYED FILTERS ===")}
	for _, c := range in.Cards {
		deployed.Lines = append(deployed.Lines, info(fmt.Sprintf("  • %s (Entropy: %d)", c.Name, c.Cost)))
	}
	r.Sections = append(r.Sections, deployed)

	satisfied := Section{Heading: info("=== TRUTH CONDITIONS SATISFIED ===")}
	for _, c := range catalog.Conditions {
		satisfied.Lines = append(satisfied.Lines, info(fmt.Sprintf("  %s (%s): %d/%d ✓", c, c.Name(), in.Conditions[c], in.Threshold)))
	}
	r.Sections = append(r.Sections, satisfied)

	r.Sections = append(r.Sections, Section{
		Heading: Line{"=== EDUCATION ===", rules.SeveritySuccess},
		Lines: []Line{
			{"The galaxy remains silent.", rules.SeveritySuccess},
			{"The garden blooms, but does not spread.", rules.SeveritySuccess},
			{"This is the only sustainable path.", rules.SeveritySuccess},
		},
	})
	return r
}

func failure(in Input) Report {
	civ := in.Civilization
	r := Report{
		Outcome:          rules.OutcomeFailure,
		Header:           "THE REPORT - FILTER BREACH",
		Headline:         Line{fmt.Sprintf("CIVILIZATION #%d: ESCAPED", civ.ID), rules.SeverityFailure},
		DominantCategory: DominantCategory(in.Cards),
	}

	r.Sections = append(r.Sections,
		Section{
			Heading: info("=== TIMELINE ==="),
			Lines: []Line{
				info(fmt.Sprintf("Age: %s million years", civ.AgeMillions())),
				info(fmt.Sprintf("Final Stage: %s (TYPE II CIVILIZATION)", civ.Stage)),
			},
		},
		Section{Heading: info("=== WHY THIS DOESN'T SOLVE THE FERMI PARADOX ===")},
	)

	for _, c := range rules.InsufficientConditions(in.Conditions, in.Threshold) {
		ex := explanations[c]
		s := Section{Heading: Line{fmt.Sprintf("%s (%d/%d): INSUFFICIENT", ex.title, in.Conditions[c], in.Threshold), rules.SeverityFailure}}
		for _, text := range ex.body {
			s.Lines = append(s.Lines, info(text))
		}
		r.Sections = append(r.Sections, s)
	}

	education := Section{
		Heading: info("=== THE EDUCATION ==="),
		Lines:   []Line{info("The Fermi Paradox has no easy answer."), info("A true solution must be:")},
	}
	for _, p := range requiredProperties {
		education.Lines = append(education.Lines, Line{p, rules.SeveritySuccess})
	}
	r.Sections = append(r.Sections, education)

	scored := Section{Heading: info("Your strategy scored:")}
	for _, c := range catalog.Conditions {
		mark := "✗"
		if in.Conditions[c] >= in.Threshold {
			mark = "✓"
		}
		scored.Lines = append(scored.Lines, info(fmt.Sprintf("  %s: %d/%d %s", c.Name(), in.Conditions[c], in.Threshold, mark)))
	}
	r.Sections = append(r.Sections, scored)

	if len(in.Reasons) > 0 || r.DominantCategory != "" {
		record := Section{Heading: info("=== FILTER LOG ===")}
		if r.DominantCategory != "" {
			record.Lines = append(record.Lines, info(fmt.Sprintf("Dominant filter category: %s", strings.ToUpper(string(r.DominantCategory)))))
		}
		for _, reason := range in.Reasons {
			record.Lines = append(record.Lines, Line{"  " + reason, rules.SeverityFailure})
		}
		r.Sections = append(r.Sections, record)
	}

	r.Sections = append(r.Sections, Section{
		Heading: info("=== THE CYCLE ==="),
		Lines: []Line{
			{fmt.Sprintf("Civilization #%d has escaped.", civ.ID), rules.SeverityWarning},
			{"They will consume the galaxy.", rules.SeverityWarning},
			{"The Great Silence is broken.", rules.SeverityWarning},
			info(""),
			{fmt.Sprintf("It is now Civilization #%d's turn", in.NextCivilizationID), rules.SeveritySuccess},
			{"to stop the cycle.", rules.SeveritySuccess},
		},
	})
	return r
}

// DominantCategory returns the category with the most cards. Ties go to the
// category that appeared last among the tied ones, in first-pick order.
func DominantCategory(cards []catalog.Card) catalog.Category {
	counts := make(map[catalog.Category]int)
	var order []catalog.Category
	for _, c := range cards {
		if counts[c.Category] == 0 {
			order = append(order, c.Category)
		}
		counts[c.Category]++
	}

	var best catalog.Category
	for _, cat := range order {
		if best == "" || counts[cat] >= counts[best] {
			best = cat
		}
	}
	return best
}

// Text renders the report as plain text, one line per row.
func (r Report) Text() string {
	var b strings.Builder
	b.WriteString(r.Header)
	b.WriteString("\n")
	b.WriteString(r.Headline.Text)
	b.WriteString("\n")
	for _, s := range r.Sections {
		b.WriteString("\n")
		b.WriteString(s.Heading.Text)
		b.WriteString("\n")
		for _, l := range s.Lines {
			b.WriteString(l.Text)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Lines flattens the report into rows, with blank rows between sections.
func (r Report) Lines() []Line {
	out := []Line{{Text: r.Header, Severity: r.Headline.Severity}, r.Headline}
	for _, s := range r.Sections {
		out = append(out, info(""), s.Heading)
		out = append(out, s.Lines...)
	}
	return out
}

func info(text string) Line {
	return Line{Text: text, Severity: rules.SeverityInfo}
}
