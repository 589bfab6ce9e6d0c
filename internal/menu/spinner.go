// Package menu holds the timer configuration logic behind the setup menu:
// wrap-around spinners, presets, snooze bounds and the confirm debounce.
package menu

// Spinner is a circular wheel over the values Start..Start+Size-1.
// Raw indexes grow without bound in either direction; Offset is the raw
// index at which the wheel shows Start.
type Spinner struct {
	Start  int
	Size   int
	Offset int
	index  int
}

// NewSpinner creates a spinner over [lo, hi] currently showing value
func NewSpinner(lo, hi, value int) Spinner {
	s := Spinner{Start: lo, Size: hi - lo + 1}
	s.Set(value)
	return s
}

// ValueAt maps a raw index onto the wheel. The double modulo keeps the
// result in range for negative intermediates.
func (s Spinner) ValueAt(rawIndex int) int {
	return s.Start + ((rawIndex-s.Offset)%s.Size+s.Size)%s.Size
}

// Value returns the value currently under the selection line
func (s Spinner) Value() int {
	return s.ValueAt(s.index)
}

// Index returns the current raw index
func (s Spinner) Index() int {
	return s.index
}

// Set moves the wheel so that it shows value; out-of-range values wrap
func (s *Spinner) Set(value int) {
	s.index = s.Offset + (value - s.Start)
}

// Increment advances one step, wrapping past the end
func (s *Spinner) Increment() {
	s.index++
}

// Decrement goes back one step, wrapping before the start
func (s *Spinner) Decrement() {
	s.index--
}

// Scroll moves by n steps in either direction
func (s *Spinner) Scroll(n int) {
	s.index += n
}

// Window returns the values visible around the selection line, radius rows
// above and below it, top to bottom.
func (s Spinner) Window(radius int) []int {
	values := make([]int, 0, 2*radius+1)
	for i := s.index - radius; i <= s.index+radius; i++ {
		values = append(values, s.ValueAt(i))
	}
	return values
}
