package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/desktimer/internal/app"
	"github.com/dori/desktimer/internal/config"
	"github.com/dori/desktimer/internal/menu"
	"github.com/dori/desktimer/internal/ui/theme"
)

// MenuView is the timer setup menu
type MenuView struct {
	app    *app.App
	width  int
	height int

	state    menu.State
	label    textinput.Model
	editing  bool
	debounce menu.Debouncer
	hidden   bool
}

// NewMenuView creates a menu showing the configured defaults
func NewMenuView(a *app.App) MenuView {
	ti := textinput.New()
	ti.Placeholder = "label (optional)"
	ti.CharLimit = 64
	ti.Width = 24

	return MenuView{
		app:      a,
		state:    menu.NewState(defaultSelection(a.Config)),
		label:    ti,
		debounce: menu.Debouncer{Interval: menu.DefaultDebounce},
	}
}

func defaultSelection(cfg *config.Config) menu.Selection {
	sel := menu.DefaultSelection()
	if cfg == nil {
		return sel
	}
	if s, err := menu.FromDuration(cfg.DefaultDuration, sel.Color, cfg.DefaultSnoozeMinutes); err == nil {
		return s
	}
	return sel
}

// Init initializes the menu view
func (v MenuView) Init() tea.Cmd {
	return nil
}

// SetSize sets the view dimensions
func (v MenuView) SetSize(width, height int) MenuView {
	v.width = width
	v.height = height
	return v
}

// Toggle hides or shows the menu
func (v MenuView) Toggle() MenuView {
	v.hidden = !v.hidden
	if v.hidden {
		v.editing = false
		v.label.Blur()
	}
	return v
}

// Hidden reports whether the menu is collapsed
func (v MenuView) Hidden() bool {
	return v.hidden
}

// Selection returns the configuration currently dialed in
func (v MenuView) Selection() menu.Selection {
	return v.state.Selection()
}

// IsInputMode returns whether the label input has focus
func (v MenuView) IsInputMode() bool {
	return v.editing
}

// Update handles messages
func (v MenuView) Update(msg tea.Msg) (MenuView, tea.Cmd) {
	if v.hidden {
		return v, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.editing {
			return v.updateLabel(msg)
		}

		switch msg.String() {
		case "left", "h":
			v.state.FocusPrev()
		case "right", "l":
			v.state.FocusNext()
		case "up", "k":
			v.state.Up()
		case "down", "j":
			v.state.Down()
		case "1", "2", "3", "4", "5":
			presets := menu.Presets()
			if i := int(msg.String()[0] - '1'); i < len(presets) {
				v.state.ApplyPreset(presets[i])
			}
		case "c":
			v.state.CycleColor(1)
		case "+", "=":
			v.state.Snooze.Increment()
		case "-", "_":
			v.state.Snooze.Decrement()
		case "i":
			v.editing = true
			return v, v.label.Focus()
		case "enter":
			if !v.debounce.Allow(v.app.Now()) {
				return v, nil
			}
			return v, v.start()
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return v, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.scroll(-1)
		case tea.MouseButtonWheelDown:
			v.scroll(1)
		}

	case TimerStartedMsg:
		if msg.Err == nil {
			v.label.SetValue("")
		}
	}

	return v, nil
}

func (v MenuView) updateLabel(msg tea.KeyMsg) (MenuView, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		v.editing = false
		v.label.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.label, cmd = v.label.Update(msg)
	return v, cmd
}

func (v *MenuView) scroll(n int) {
	switch v.state.Focus {
	case menu.FieldHours:
		v.state.Hours.Scroll(n)
	case menu.FieldMinutes:
		v.state.Minutes.Scroll(n)
	case menu.FieldSeconds:
		v.state.Seconds.Scroll(n)
	}
}

// start creates the timer off the update loop
func (v MenuView) start() tea.Cmd {
	a := v.app
	sel := v.state.Selection()
	label := strings.TrimSpace(v.label.Value())
	return func() tea.Msg {
		t, err := a.StartTimer(sel, label)
		if err != nil {
			return TimerStartedMsg{Err: err}
		}
		return TimerStartedMsg{Timer: *t}
	}
}

// View renders the menu
func (v MenuView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	if v.hidden {
		return styles.Label.Render("menu hidden (m to show)")
	}

	var sections []string
	sections = append(sections, styles.Title.Render("New Timer"))

	spinners := lipgloss.JoinHorizontal(lipgloss.Center,
		v.renderSpinner("hours", v.state.Hours, v.state.Focus == menu.FieldHours),
		styles.Label.Render(" : "),
		v.renderSpinner("min", v.state.Minutes, v.state.Focus == menu.FieldMinutes),
		styles.Label.Render(" : "),
		v.renderSpinner("sec", v.state.Seconds, v.state.Focus == menu.FieldSeconds),
	)
	sections = append(sections, spinners)

	var chips []string
	for i, p := range menu.Presets() {
		chips = append(chips, styles.Chip.Render(fmt.Sprintf("%d %s", i+1, p.Label)))
	}
	sections = append(sections, lipgloss.NewStyle().MarginTop(1).Render(strings.Join(chips, "")))

	color := v.state.Color()
	colorLine := styles.Label.Render("color  ") +
		lipgloss.NewStyle().Foreground(theme.TagColor(color)).Bold(true).Render("● "+color.DisplayName())
	if v.state.Focus == menu.FieldColor {
		colorLine = styles.HelpKey.Render("> ") + colorLine
	} else {
		colorLine = "  " + colorLine
	}

	snoozeLine := styles.Label.Render("snooze ") +
		lipgloss.NewStyle().Foreground(t.Snooze).Render(fmt.Sprintf("%d min", v.state.Snooze.Minutes()))
	if v.state.Focus == menu.FieldSnooze {
		snoozeLine = styles.HelpKey.Render("> ") + snoozeLine
	} else {
		snoozeLine = "  " + snoozeLine
	}

	sections = append(sections, "", colorLine, snoozeLine, "  "+v.label.View())
	sections = append(sections, "", styles.Button.Render("Start Timer"))

	return strings.Join(sections, "\n")
}

func (v MenuView) renderSpinner(name string, s menu.Spinner, focused bool) string {
	styles := theme.Current.Styles

	window := s.Window(1)
	current := styles.Spinner
	if focused {
		current = styles.SpinnerFocused
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		styles.Label.Render(name),
		styles.SpinnerFaded.Render(fmt.Sprintf("%02d", window[0])),
		current.Render(fmt.Sprintf("%02d", window[1])),
		styles.SpinnerFaded.Render(fmt.Sprintf("%02d", window[2])),
	)
}
