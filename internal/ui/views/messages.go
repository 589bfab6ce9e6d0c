package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/desktimer/internal/model"
)

// TickMsg is sent every second to drive the countdowns
type TickMsg struct {
	At time.Time
}

// TickCmd schedules the next tick
func TickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg{At: t}
	})
}

// TimerStartedMsg reports the outcome of the menu's start button
type TimerStartedMsg struct {
	Timer model.Timer
	Err   error
}

// TimerSnoozedMsg reports a snooze from a panel
type TimerSnoozedMsg struct {
	Timer model.Timer
	Err   error
}

// TimerDeletedMsg reports a delete from a panel
type TimerDeletedMsg struct {
	ID   string
	Name string
	Err  error
}
