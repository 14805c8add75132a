package rules

import "fmt"

// Severity colours a log line.
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityFailure
)

var severityNames = map[Severity]string{
	SeverityInfo:    "info",
	SeveritySuccess: "success",
	SeverityWarning: "warning",
	SeverityFailure: "failure",
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SEVERITY_%d", int(s))
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FlavorEvent is a contextual message observed during a stage.
type FlavorEvent struct {
	Message  string
	Severity Severity
}

var stageEvents = map[Stage][]FlavorEvent{
	StageMolten: {
		{"Volcanic activity subsiding...", SeverityInfo},
		{"Atmospheric gases escaping to space", SeverityWarning},
		{"Surface temperature: 1,200°C", SeverityInfo},
		{"Planetary differentiation ongoing", SeverityInfo},
		{"Magnetic field stabilizing", SeveritySuccess},
		{"Meteor bombardment continues", SeverityWarning},
	},
	StageWater: {
		{"First oceans forming in impact craters", SeveritySuccess},
		{"Amino acid chains detected in tidal pools", SeverityInfo},
		{"Hydrothermal vents active", SeverityInfo},
		{"Chemical evolution accelerating", SeverityWarning},
		{"Primitive RNA structures emerging", SeverityWarning},
		{"Ocean chemistry stabilizing", SeverityInfo},
	},
	StageGreen: {
		{"Photosynthesis emerging", SeverityWarning},
		{"Oxygen levels rising in atmosphere", SeverityWarning},
		{"First multicellular organisms detected", SeverityInfo},
		{"Continental drift reshaping landmasses", SeverityInfo},
		{"Biodiversity explosion in progress", SeverityWarning},
		{"Complex nervous systems evolving", SeverityFailure},
	},
	StageCities: {
		{"Radio emissions detected - 1.4 GHz band", SeverityFailure},
		{"Nuclear fission signatures observed", SeverityFailure},
		{"Global communication networks established", SeverityWarning},
		{"Atmospheric CO2 levels rising", SeverityInfo},
		{"First orbital launch attempt detected", SeverityFailure},
		{"Planetary unification movements emerging", SeverityWarning},
	},
	StageSatellites: {
		{"Orbital infrastructure expanding", SeverityFailure},
		{"Space mining operations commenced", SeverityFailure},
		{"Interplanetary probes launched", SeverityFailure},
		{"Fusion power research advancing", SeverityFailure},
		{"Off-world colonies established", SeverityFailure},
		{"Von Neumann probe prototypes detected", SeverityFailure},
	},
	StageDyson: {
		{"Stellar engineering detected", SeverityFailure},
		{"Dyson swarm assembly accelerating", SeverityFailure},
		{"Kardashev Type II transition imminent", SeverityFailure},
		{"Mega-structure construction 67% complete", SeverityFailure},
		{"Energy capture efficiency: 23% stellar output", SeverityFailure},
		{"Interstellar colonization fleet assembling", SeverityFailure},
	},
}

// StageEvents returns a copy of the flavor pool of a stage.
func StageEvents(s Stage) []FlavorEvent {
	return append([]FlavorEvent(nil), stageEvents[s]...)
}

// DrawEvent picks a flavor event from the pool of s uniformly.
func DrawEvent(s Stage, rnd Randomizer) (FlavorEvent, bool) {
	pool := stageEvents[s]
	if len(pool) == 0 {
		return FlavorEvent{}, false
	}
	return pool[rnd.Intn(len(pool))], true
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	for sev, name := range severityNames {
		if name == string(text) {
			*s = sev
			return nil
		}
	}
	return fmt.Errorf("unknown severity: %q", string(text))
}
