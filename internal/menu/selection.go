package menu

import (
	"errors"
	"fmt"
	"time"

	"github.com/dori/desktimer/internal/model"
)

// Value ranges of the setup menu
const (
	MaxHours         = 23
	MaxMinutes       = 59
	MaxSeconds       = 59
	MinSnoozeMinutes = 1
	MaxSnoozeMinutes = 60

	DefaultMinutes       = 10
	DefaultSnoozeMinutes = 5
)

// ErrInvalidSelection is returned when a selection is out of range
var ErrInvalidSelection = errors.New("invalid timer selection")

// Selection is a confirmed timer configuration
type Selection struct {
	Hours         int
	Minutes       int
	Seconds       int
	Color         model.Color
	SnoozeMinutes int
}

// DefaultSelection returns the configuration the menu opens with
func DefaultSelection() Selection {
	return Selection{
		Minutes:       DefaultMinutes,
		Color:         model.ColorPeach,
		SnoozeMinutes: DefaultSnoozeMinutes,
	}
}

// TotalSeconds returns the countdown length of the selection
func (s Selection) TotalSeconds() int {
	return s.Hours*3600 + s.Minutes*60 + s.Seconds
}

// Duration returns the countdown length as a time.Duration
func (s Selection) Duration() time.Duration {
	return time.Duration(s.TotalSeconds()) * time.Second
}

// Validate checks every field is inside its menu range
func (s Selection) Validate() error {
	switch {
	case s.Hours < 0 || s.Hours > MaxHours:
		return fmt.Errorf("hours %d out of range 0-%d: %w", s.Hours, MaxHours, ErrInvalidSelection)
	case s.Minutes < 0 || s.Minutes > MaxMinutes:
		return fmt.Errorf("minutes %d out of range 0-%d: %w", s.Minutes, MaxMinutes, ErrInvalidSelection)
	case s.Seconds < 0 || s.Seconds > MaxSeconds:
		return fmt.Errorf("seconds %d out of range 0-%d: %w", s.Seconds, MaxSeconds, ErrInvalidSelection)
	case s.SnoozeMinutes < MinSnoozeMinutes || s.SnoozeMinutes > MaxSnoozeMinutes:
		return fmt.Errorf("snooze %d out of range %d-%d: %w", s.SnoozeMinutes, MinSnoozeMinutes, MaxSnoozeMinutes, ErrInvalidSelection)
	case !s.Color.Valid():
		return fmt.Errorf("unknown color %q: %w", s.Color, ErrInvalidSelection)
	}
	return nil
}

// FromDuration builds a selection from a duration, rejecting anything the
// spinners cannot show.
func FromDuration(d time.Duration, color model.Color, snoozeMinutes int) (Selection, error) {
	if d < 0 || d%time.Second != 0 {
		return Selection{}, fmt.Errorf("duration %s must be whole non-negative seconds: %w", d, ErrInvalidSelection)
	}
	total := int(d / time.Second)
	s := Selection{
		Hours:         total / 3600,
		Minutes:       (total % 3600) / 60,
		Seconds:       total % 60,
		Color:         color,
		SnoozeMinutes: snoozeMinutes,
	}
	return s, s.Validate()
}

// Preset is a one-press duration chip
type Preset struct {
	Label   string
	Hours   int
	Minutes int
	Seconds int
}

// Presets returns the duration chips in display order
func Presets() []Preset {
	return []Preset{
		{Label: "5m", Minutes: 5},
		{Label: "10m", Minutes: 10},
		{Label: "15m", Minutes: 15},
		{Label: "30m", Minutes: 30},
		{Label: "1h", Hours: 1},
	}
}

// Snooze is the bounded snooze-length stepper. Unlike the spinners it
// clamps instead of wrapping.
type Snooze struct {
	minutes int
}

// NewSnooze creates a stepper starting at minutes, clamped into range
func NewSnooze(minutes int) Snooze {
	s := Snooze{minutes: minutes}
	s.clamp()
	return s
}

// Minutes returns the current snooze length
func (s Snooze) Minutes() int {
	return s.minutes
}

// Increment adds a minute unless already at the maximum
func (s *Snooze) Increment() {
	if s.minutes < MaxSnoozeMinutes {
		s.minutes++
	}
}

// Decrement removes a minute unless already at the minimum
func (s *Snooze) Decrement() {
	if s.minutes > MinSnoozeMinutes {
		s.minutes--
	}
}

func (s *Snooze) clamp() {
	if s.minutes < MinSnoozeMinutes {
		s.minutes = MinSnoozeMinutes
	}
	if s.minutes > MaxSnoozeMinutes {
		s.minutes = MaxSnoozeMinutes
	}
}
