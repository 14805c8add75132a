// Package gesture interprets horizontal drags on a card detail view as
// select and deselect commands.
package gesture

import (
	"fmt"
	"math"
	"sync"
)

// CommitThreshold is the horizontal displacement in pixels that commits a drag.
const CommitThreshold = 100

// Action is what a finished drag asks for.
type Action int

const (
	ActionNone Action = iota
	ActionSelect
	ActionDeselect
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionSelect:   "select",
	ActionDeselect: "deselect",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("ACTION_%d", int(a))
}

// Feedback is the visual response to the current displacement.
type Feedback struct {
	TranslateX  float64 `json:"translate_x"`
	RotateDeg   float64 `json:"rotate_deg"`
	BorderColor string  `json:"border_color"`
}

// DefaultBorder is the border of a card at rest.
const DefaultBorder = "#bc00ff"

// FeedbackFor maps a displacement to the card's transform and border.
func FeedbackFor(diff float64) Feedback {
	fb := Feedback{TranslateX: diff, RotateDeg: diff * 0.05, BorderColor: DefaultBorder}
	alpha := math.Min(math.Abs(diff)/150, 1)
	switch {
	case diff > 0:
		fb.BorderColor = fmt.Sprintf("rgba(0, 255, 136, %.2f)", alpha)
	case diff < 0:
		fb.BorderColor = fmt.Sprintf("rgba(255, 0, 85, %.2f)", alpha)
	}
	return fb
}

// ActionFor maps a final displacement to an action.
func ActionFor(diff float64) Action {
	switch {
	case diff > CommitThreshold:
		return ActionSelect
	case diff < -CommitThreshold:
		return ActionDeselect
	}
	return ActionNone
}

// Drag tracks a single pointer drag. The zero value is idle.
type Drag struct {
	mu       sync.Mutex
	active   bool
	startX   float64
	currentX float64
}

// Start begins a drag at x. A drag cannot start on a card that is neither
// selected nor affordable; Start reports whether tracking began.
func (d *Drag) Start(x float64, selected, affordable bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !selected && !affordable {
		d.active = false
		return false
	}
	d.active = true
	d.startX = x
	d.currentX = x
	return true
}

// Move updates the pointer position and returns the feedback to render.
func (d *Drag) Move(x float64) Feedback {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return FeedbackFor(0)
	}
	d.currentX = x
	return FeedbackFor(d.currentX - d.startX)
}

// End finishes the drag and returns the committed action. The card snaps
// back in every case.
func (d *Drag) End() Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return ActionNone
	}
	d.active = false
	return ActionFor(d.currentX - d.startX)
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}
