package menu

import (
	"time"

	"github.com/dori/desktimer/internal/model"
)

// DefaultDebounce is the minimum gap between two accepted confirmations
const DefaultDebounce = 400 * time.Millisecond

// Field identifies the focused control of the menu
type Field int

const (
	FieldHours Field = iota
	FieldMinutes
	FieldSeconds
	FieldColor
	FieldSnooze
	fieldCount
)

// State is the full editable state of the setup menu
type State struct {
	Hours   Spinner
	Minutes Spinner
	Seconds Spinner
	Snooze  Snooze
	Focus   Field

	color int
}

// NewState creates a menu showing sel
func NewState(sel Selection) State {
	st := State{
		Hours:   NewSpinner(0, MaxHours, sel.Hours),
		Minutes: NewSpinner(0, MaxMinutes, sel.Minutes),
		Seconds: NewSpinner(0, MaxSeconds, sel.Seconds),
		Snooze:  NewSnooze(sel.SnoozeMinutes),
	}
	for i, c := range model.Colors() {
		if c == sel.Color {
			st.color = i
		}
	}
	return st
}

// Color returns the selected color
func (st State) Color() model.Color {
	return model.Colors()[st.color]
}

// CycleColor moves to the next color option, wrapping
func (st *State) CycleColor(step int) {
	n := len(model.Colors())
	st.color = ((st.color+step)%n + n) % n
}

// ApplyPreset sets all three spinners from a preset chip
func (st *State) ApplyPreset(p Preset) {
	st.Hours.Set(p.Hours)
	st.Minutes.Set(p.Minutes)
	st.Seconds.Set(p.Seconds)
}

// FocusNext moves focus right, wrapping
func (st *State) FocusNext() {
	st.Focus = (st.Focus + 1) % fieldCount
}

// FocusPrev moves focus left, wrapping
func (st *State) FocusPrev() {
	st.Focus = (st.Focus + fieldCount - 1) % fieldCount
}

// Up increments the focused control
func (st *State) Up() {
	switch st.Focus {
	case FieldHours:
		st.Hours.Increment()
	case FieldMinutes:
		st.Minutes.Increment()
	case FieldSeconds:
		st.Seconds.Increment()
	case FieldColor:
		st.CycleColor(1)
	case FieldSnooze:
		st.Snooze.Increment()
	}
}

// Down decrements the focused control
func (st *State) Down() {
	switch st.Focus {
	case FieldHours:
		st.Hours.Decrement()
	case FieldMinutes:
		st.Minutes.Decrement()
	case FieldSeconds:
		st.Seconds.Decrement()
	case FieldColor:
		st.CycleColor(-1)
	case FieldSnooze:
		st.Snooze.Decrement()
	}
}

// Selection returns the configuration currently shown
func (st State) Selection() Selection {
	return Selection{
		Hours:         st.Hours.Value(),
		Minutes:       st.Minutes.Value(),
		Seconds:       st.Seconds.Value(),
		Color:         st.Color(),
		SnoozeMinutes: st.Snooze.Minutes(),
	}
}

// Debouncer drops calls that arrive too soon after the last accepted one
type Debouncer struct {
	Interval time.Duration
	last     time.Time
}

// Allow reports whether an action at now should go through, and records it
// if so.
func (d *Debouncer) Allow(now time.Time) bool {
	if !d.last.IsZero() && now.Sub(d.last) < d.Interval {
		return false
	}
	d.last = now
	return true
}
