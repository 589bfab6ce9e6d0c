// Package countdown computes remaining time for a single timer cycle.
package countdown

import "time"

// Result is the outcome of evaluating one countdown at a point in time
type Result struct {
	RemainingMs int64
	Hours       int
	Minutes     int
	Seconds     int

	// Expired is true once the deadline has been reached
	Expired bool
	// JustCompleted is true only on the first expired evaluation of a cycle
	JustCompleted bool
}

// Evaluate computes the remaining hours/minutes/seconds of a countdown that
// started at start and lasts totalSeconds, as seen at now.
//
// Components are signed: an overdue countdown yields negative values.
// wasComplete is the record's completion flag before this evaluation.
// Whole seconds truncate toward zero, so 500ms past the deadline reads as
// 00:00:00 while Expired is already true.
func Evaluate(start time.Time, totalSeconds int, now time.Time, wasComplete bool) Result {
	deadline := start.UnixMilli() + int64(totalSeconds)*1000
	remainingMs := deadline - now.UnixMilli()
	remaining := int(remainingMs / 1000)

	expired := remainingMs <= 0
	return Result{
		RemainingMs:   remainingMs,
		Hours:         remaining / 3600,
		Minutes:       (remaining % 3600) / 60,
		Seconds:       remaining % 60,
		Expired:       expired,
		JustCompleted: expired && !wasComplete,
	}
}

// Decompose splits a duration in seconds into hours, minutes and seconds
func Decompose(totalSeconds int) (hours, minutes, seconds int) {
	return totalSeconds / 3600, (totalSeconds % 3600) / 60, totalSeconds % 60
}

// Clamped returns the display components with their sign dropped
func (r Result) Clamped() (hours, minutes, seconds int) {
	return abs(r.Hours), abs(r.Minutes), abs(r.Seconds)
}

// Remaining returns the remaining time as a duration (negative when overdue)
func (r Result) Remaining() time.Duration {
	return time.Duration(r.RemainingMs) * time.Millisecond
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
