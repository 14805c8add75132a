package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActionFor(t *testing.T) {
	tests := []struct {
		diff float64
		want Action
	}{
		{0, ActionNone},
		{100, ActionNone},
		{100.5, ActionSelect},
		{-100, ActionNone},
		{-101, ActionDeselect},
		{450, ActionSelect},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActionFor(tt.diff), "diff %v", tt.diff)
	}
}

func TestFeedbackFor(t *testing.T) {
	fb := FeedbackFor(75)
	assert.Equal(t, 75.0, fb.TranslateX)
	assert.InDelta(t, 3.75, fb.RotateDeg, 1e-9)
	assert.Equal(t, "rgba(0, 255, 136, 0.50)", fb.BorderColor)

	fb = FeedbackFor(-300)
	assert.InDelta(t, -15.0, fb.RotateDeg, 1e-9)
	assert.Equal(t, "rgba(255, 0, 85, 1.00)", fb.BorderColor)

	assert.Equal(t, DefaultBorder, FeedbackFor(0).BorderColor)
}

func TestDragCommitsSelect(t *testing.T) {
	var d Drag
	assert.True(t, d.Start(200, false, true))
	d.Move(260)
	d.Move(320)
	assert.Equal(t, ActionSelect, d.End())
	assert.False(t, d.Active())
	assert.Equal(t, ActionNone, d.End(), "a finished drag commits once")
}

func TestDragCommitsDeselect(t *testing.T) {
	var d Drag
	assert.True(t, d.Start(400, true, false))
	fb := d.Move(250)
	assert.Equal(t, -150.0, fb.TranslateX)
	assert.Equal(t, ActionDeselect, d.End())
}

func TestDragSnapsBackUnderThreshold(t *testing.T) {
	var d Drag
	d.Start(0, true, true)
	d.Move(90)
	assert.Equal(t, ActionNone, d.End())
}

func TestDragRefusesUnaffordableCard(t *testing.T) {
	var d Drag
	assert.False(t, d.Start(0, false, false))
	assert.Equal(t, FeedbackFor(0), d.Move(500))
	assert.Equal(t, ActionNone, d.End())
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "select", ActionSelect.String())
	assert.Equal(t, "ACTION_9", Action(9).String())
}
