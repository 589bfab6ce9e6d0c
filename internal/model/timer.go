package model

import (
	"fmt"
	"time"
)

// Color is the cosmetic color tag of a timer
type Color string

const (
	ColorPeach Color = "peach"
	ColorRed   Color = "red"
	ColorCyan  Color = "cyan"
)

// Colors returns the selectable colors in menu order
func Colors() []Color {
	return []Color{ColorPeach, ColorRed, ColorCyan}
}

// DisplayName returns the label shown in the menu
func (c Color) DisplayName() string {
	switch c {
	case ColorPeach:
		return "Peach"
	case ColorRed:
		return "Red"
	case ColorCyan:
		return "Cyan"
	default:
		return string(c)
	}
}

// Hex returns the render color for the tag
func (c Color) Hex() string {
	switch c {
	case ColorRed:
		return "#FF0000"
	case ColorCyan:
		return "#00FFFF"
	default:
		return "#FCD5CD"
	}
}

// Valid reports whether c is one of the known colors
func (c Color) Valid() bool {
	for _, known := range Colors() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseColor resolves a color name, case-sensitively
func ParseColor(s string) (Color, bool) {
	c := Color(s)
	return c, c.Valid()
}

// Timer is a persisted countdown timer
type Timer struct {
	ID              string    `json:"id"`
	Label           string    `json:"label,omitempty"`
	Color           Color     `json:"color"`
	DurationSeconds int       `json:"duration_seconds"`
	SnoozeMinutes   int       `json:"snooze_minutes"`
	StartedAt       time.Time `json:"started_at"`
	Complete        bool      `json:"complete"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Deadline returns when the current countdown cycle ends
func (t *Timer) Deadline() time.Time {
	return t.StartedAt.Add(time.Duration(t.DurationSeconds) * time.Second)
}

// SnoozeSeconds returns the snooze length in seconds
func (t *Timer) SnoozeSeconds() int {
	return t.SnoozeMinutes * 60
}

// DisplayName returns the label, or a name derived from the duration
func (t *Timer) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return (time.Duration(t.DurationSeconds) * time.Second).String() + " timer"
}

// DisplayState is the snapshot published for rendering one timer.
// It is derived from the timer record and never authoritative.
type DisplayState struct {
	TotalSeconds int
	Hours        int
	Minutes      int
	Seconds      int
	Complete     bool
}

// Clock formats the remaining components as HH:MM:SS, dropping the sign
func (d DisplayState) Clock() string {
	return fmt.Sprintf("%02d:%02d:%02d", abs(d.Hours), abs(d.Minutes), abs(d.Seconds))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
