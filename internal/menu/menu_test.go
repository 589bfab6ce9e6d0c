package menu

import (
	"testing"
	"time"

	"github.com/dori/desktimer/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinnerWrapsForward(t *testing.T) {
	s := NewSpinner(0, 59, 59)
	s.Increment()
	assert.Equal(t, 0, s.Value())
}

func TestSpinnerWrapsBackward(t *testing.T) {
	s := NewSpinner(0, 23, 0)
	s.Decrement()
	assert.Equal(t, 23, s.Value())
}

func TestSpinnerValueAtNegativeIndexes(t *testing.T) {
	s := Spinner{Start: 0, Size: 60, Offset: 1000}
	assert.Equal(t, 0, s.ValueAt(1000))
	assert.Equal(t, 59, s.ValueAt(999))
	assert.Equal(t, 19, s.ValueAt(-1))
	assert.Equal(t, 40, s.ValueAt(-1000))
	assert.Equal(t, 1, s.ValueAt(1061))

	nonZero := Spinner{Start: 1, Size: 12}
	assert.Equal(t, 12, nonZero.ValueAt(-1))
	assert.Equal(t, 1, nonZero.ValueAt(12))
}

func TestSpinnerScrollAndWindow(t *testing.T) {
	s := NewSpinner(0, 59, 58)
	s.Scroll(3)
	assert.Equal(t, 1, s.Value())
	assert.Equal(t, []int{0, 1, 2}, s.Window(1))

	s.Scroll(-125)
	assert.Equal(t, 56, s.Value())
}

func TestSnoozeClamps(t *testing.T) {
	s := NewSnooze(1)
	s.Decrement()
	assert.Equal(t, 1, s.Minutes())

	s = NewSnooze(60)
	s.Increment()
	assert.Equal(t, 60, s.Minutes())

	assert.Equal(t, 1, NewSnooze(-4).Minutes())
	assert.Equal(t, 60, NewSnooze(99).Minutes())
}

func TestSelectionValidate(t *testing.T) {
	good := DefaultSelection()
	require.NoError(t, good.Validate())
	assert.Equal(t, 600, good.TotalSeconds())

	tests := []struct {
		name string
		edit func(*Selection)
	}{
		{"hours", func(s *Selection) { s.Hours = 24 }},
		{"minutes", func(s *Selection) { s.Minutes = 60 }},
		{"seconds", func(s *Selection) { s.Seconds = -1 }},
		{"snooze low", func(s *Selection) { s.SnoozeMinutes = 0 }},
		{"snooze high", func(s *Selection) { s.SnoozeMinutes = 61 }},
		{"color", func(s *Selection) { s.Color = "mauve" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSelection()
			tt.edit(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSelection)
		})
	}
}

func TestFromDuration(t *testing.T) {
	s, err := FromDuration(90*time.Minute+5*time.Second, model.ColorCyan, 3)
	require.NoError(t, err)
	assert.Equal(t, Selection{Hours: 1, Minutes: 30, Seconds: 5, Color: model.ColorCyan, SnoozeMinutes: 3}, s)

	_, err = FromDuration(24*time.Hour, model.ColorCyan, 3)
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = FromDuration(1500*time.Millisecond, model.ColorCyan, 3)
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestStateControls(t *testing.T) {
	st := NewState(DefaultSelection())
	assert.Equal(t, FieldHours, st.Focus)

	st.Down()
	assert.Equal(t, 23, st.Selection().Hours)

	st.FocusNext()
	for i := 0; i < 50; i++ {
		st.Up()
	}
	assert.Equal(t, 0, st.Selection().Minutes)

	st.FocusPrev()
	st.FocusPrev()
	assert.Equal(t, FieldSnooze, st.Focus)
	st.Up()
	assert.Equal(t, 6, st.Selection().SnoozeMinutes)

	st.FocusPrev()
	st.Down()
	assert.Equal(t, model.ColorCyan, st.Selection().Color)
	st.Up()
	st.Up()
	assert.Equal(t, model.ColorRed, st.Selection().Color)

	st.ApplyPreset(Presets()[4])
	sel := st.Selection()
	assert.Equal(t, 3600, sel.TotalSeconds())
	require.NoError(t, sel.Validate())
}

func TestDebouncer(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	d := Debouncer{Interval: DefaultDebounce}

	assert.True(t, d.Allow(base))
	assert.False(t, d.Allow(base.Add(100*time.Millisecond)))
	assert.False(t, d.Allow(base.Add(399*time.Millisecond)))
	assert.True(t, d.Allow(base.Add(400*time.Millisecond)))
	assert.False(t, d.Allow(base.Add(500*time.Millisecond)))
}
