package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/desktimer/internal/app"
	"github.com/dori/desktimer/internal/ui/theme"
)

const barWidth = 24

// PanelsView shows one panel per live timer
type PanelsView struct {
	app    *app.App
	width  int
	height int

	timers []app.TimerView
	cursor int

	completedToday int
}

// NewPanelsView creates the timer panels view
func NewPanelsView(a *app.App) PanelsView {
	return PanelsView{app: a}
}

// Init loads the current timers
func (v PanelsView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v PanelsView) SetSize(width, height int) PanelsView {
	v.width = width
	v.height = height
	return v
}

// Refresh re-reads every timer's published display state
func (v PanelsView) Refresh() PanelsView {
	v.timers = v.app.Timers()
	if v.cursor >= len(v.timers) {
		v.cursor = len(v.timers) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	if n, err := v.app.CompletedToday(); err == nil {
		v.completedToday = n
	}
	return v
}

// Timers returns the timers as last refreshed
func (v PanelsView) Timers() []app.TimerView {
	return v.timers
}

// Selected returns the timer under the cursor
func (v PanelsView) Selected() (app.TimerView, bool) {
	if v.cursor < 0 || v.cursor >= len(v.timers) {
		return app.TimerView{}, false
	}
	return v.timers[v.cursor], true
}

// IsInputMode returns whether the view is in input mode
func (v PanelsView) IsInputMode() bool {
	return false
}

// Update handles messages
func (v PanelsView) Update(msg tea.Msg) (PanelsView, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg, TimerStartedMsg, TimerSnoozedMsg, TimerDeletedMsg:
		return v.Refresh(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "j", "right", "l":
			if v.cursor < len(v.timers)-1 {
				v.cursor++
			}
		case "up", "k", "left", "h":
			if v.cursor > 0 {
				v.cursor--
			}
		case "g":
			v.cursor = 0
		case "G":
			if len(v.timers) > 0 {
				v.cursor = len(v.timers) - 1
			}
		case "s":
			if tv, ok := v.Selected(); ok && (tv.Display.Complete || tv.Ringing) {
				return v, v.snooze(tv.Timer.ID)
			}
		case "d":
			if tv, ok := v.Selected(); ok {
				return v, v.delete(tv.Timer.ID, tv.Timer.DisplayName())
			}
		}
	}
	return v, nil
}

func (v PanelsView) snooze(id string) tea.Cmd {
	a := v.app
	return func() tea.Msg {
		if err := a.Snooze(id); err != nil {
			return TimerSnoozedMsg{Err: err}
		}
		t, _ := a.Timer(id)
		return TimerSnoozedMsg{Timer: t}
	}
}

func (v PanelsView) delete(id, name string) tea.Cmd {
	a := v.app
	return func() tea.Msg {
		return TimerDeletedMsg{ID: id, Name: name, Err: a.Delete(id)}
	}
}

// View renders the panels
func (v PanelsView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var sections []string
	sections = append(sections, styles.Title.Render("Timers"))

	if len(v.timers) == 0 {
		sections = append(sections, styles.Label.Render("No timers yet. Dial one in and press enter."))
	}

	for i, tv := range v.timers {
		sections = append(sections, v.renderPanel(tv, i == v.cursor))
	}

	sections = append(sections, lipgloss.NewStyle().
		Foreground(t.Subtle).
		MarginTop(1).
		Render(fmt.Sprintf("Completed today: %d", v.completedToday)))

	return strings.Join(sections, "\n")
}

func (v PanelsView) renderPanel(tv app.TimerView, selected bool) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var color lipgloss.Color
	var state string
	switch {
	case tv.Ringing:
		color, state = t.Ringing, "RINGING"
	case tv.Display.Complete:
		color, state = t.Done, "DONE"
	default:
		color, state = t.Running, "RUNNING"
	}

	tag := lipgloss.NewStyle().Foreground(theme.TagColor(tv.Timer.Color)).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render(tv.Timer.DisplayName())
	total := styles.Label.Render((time.Duration(tv.Display.TotalSeconds) * time.Second).String())
	header := fmt.Sprintf("%s %s  %s", tag, name, total)

	clock := styles.Clock.Foreground(color).Render(tv.Display.Clock())
	if tv.Display.Complete {
		clock += styles.Label.Render(" over")
	}
	status := lipgloss.NewStyle().Foreground(color).Bold(true).Render(state)

	body := lipgloss.JoinVertical(lipgloss.Left,
		header,
		clock+"  "+status,
		lipgloss.NewStyle().Foreground(color).Render(progressBar(tv)),
	)
	if selected && (tv.Display.Complete || tv.Ringing) {
		body = lipgloss.JoinVertical(lipgloss.Left, body,
			styles.HelpKey.Render("s")+styles.HelpDesc.Render(fmt.Sprintf(" snooze %dm  ", tv.Timer.SnoozeMinutes))+
				styles.HelpKey.Render("d")+styles.HelpDesc.Render(" delete"))
	}

	switch {
	case tv.Ringing:
		return styles.PanelRinging.Render(body)
	case selected:
		return styles.PanelSelected.Render(body)
	default:
		return styles.Panel.Render(body)
	}
}

// progressBar fills as the countdown runs down and stays full once done
func progressBar(tv app.TimerView) string {
	d := tv.Display
	progress := 1.0
	if !d.Complete && d.TotalSeconds > 0 {
		remaining := d.Hours*3600 + d.Minutes*60 + d.Seconds
		progress = 1.0 - float64(remaining)/float64(d.TotalSeconds)
	}
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}
