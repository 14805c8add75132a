package rules

import (
	"fmt"
	"strings"
)

// Stage is a step in a civilization's development.
type Stage int

const (
	StageMolten Stage = iota
	StageWater
	StageGreen
	StageCities
	StageSatellites
	StageDyson
)

var stageNames = map[Stage]string{
	StageMolten:     "MOLTEN",
	StageWater:      "WATER",
	StageGreen:      "GREEN",
	StageCities:     "CITIES",
	StageSatellites: "SATELLITES",
	StageDyson:      "DYSON",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STAGE_%d", int(s))
}

// MarshalText encodes the stage by name.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	stage, err := ParseStage(string(text))
	if err != nil {
		return err
	}
	*s = stage
	return nil
}

// ParseStage converts a stage name back into a Stage.
func ParseStage(name string) (Stage, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for stage, n := range stageNames {
		if n == upper {
			return stage, nil
		}
	}
	return 0, fmt.Errorf("unknown stage: %q", name)
}

// stageTransitions is the only way a civilization moves between stages.
// DYSON has no successor.
var stageTransitions = map[Stage]Stage{
	StageMolten:     StageWater,
	StageWater:      StageGreen,
	StageGreen:      StageCities,
	StageCities:     StageSatellites,
	StageSatellites: StageDyson,
}

// Stages lists every stage in progression order.
func Stages() []Stage {
	return []Stage{StageMolten, StageWater, StageGreen, StageCities, StageSatellites, StageDyson}
}

// NextStage returns the successor of s, or false when s is terminal.
func NextStage(s Stage) (Stage, bool) {
	next, ok := stageTransitions[s]
	return next, ok
}

// IsCheckpoint reports whether entering s triggers a filter check.
func IsCheckpoint(s Stage) bool {
	return s == StageCities || s == StageSatellites || s == StageDyson
}

// IsTerminal reports whether s ends the simulation when reached.
func IsTerminal(s Stage) bool {
	_, ok := stageTransitions[s]
	return !ok
}

// Palette is the planet colouring shown for a stage.
type Palette struct {
	Body   string `json:"body"`
	Glow   string `json:"glow"`
	Detail string `json:"detail"`
}

var stagePalettes = map[Stage]Palette{
	StageMolten:     {Body: "#4d1a1a", Glow: "rgba(255, 68, 0, 0.6)", Detail: "#ff4400"},
	StageWater:      {Body: "#1a334d", Glow: "rgba(68, 136, 255, 0.4)", Detail: "#4488ff"},
	StageGreen:      {Body: "#1a4d2e", Glow: "rgba(0, 255, 136, 0.3)", Detail: "#2d5a3d"},
	StageCities:     {Body: "#2e4d1a", Glow: "rgba(255, 204, 0, 0.4)", Detail: "#3d5a2d"},
	StageSatellites: {Body: "#1a2e4d", Glow: "rgba(0, 204, 255, 0.5)", Detail: "#2d3d5a"},
	StageDyson:      {Body: "#1a1a4d", Glow: "rgba(136, 0, 255, 0.6)", Detail: "#2d2d5a"},
}

var stalledPalette = Palette{Body: "#1a1a1a", Glow: "rgba(0, 255, 204, 0.2)", Detail: "#0a0a0a"}

// PaletteFor returns the colouring of a stage; stalled civilizations go dark.
func PaletteFor(s Stage, stalled bool) Palette {
	if stalled {
		return stalledPalette
	}
	return stagePalettes[s]
}
