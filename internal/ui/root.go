package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/desktimer/internal/app"
	"github.com/dori/desktimer/internal/ui/theme"
	"github.com/dori/desktimer/internal/ui/views"
)

// RootModel is the main application model that lays out the menu and the
// timer panels
type RootModel struct {
	app    *app.App
	keys   KeyMap
	help   help.Model
	width  int
	height int

	pane        Pane
	menuView    views.MenuView
	panelsView  views.PanelsView
	helpVisible bool

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a new root model
func NewRootModel(application *app.App) RootModel {
	h := help.New()
	h.ShowAll = true

	return RootModel{
		app:        application,
		keys:       DefaultKeyMap(),
		help:       h,
		pane:       PaneMenu,
		menuView:   views.NewMenuView(application),
		panelsView: views.NewPanelsView(application).Refresh(),
	}
}

// Init starts the tick loop
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(m.menuView.Init(), m.panelsView.Init(), views.TickCmd(m.tickInterval()))
}

func (m RootModel) tickInterval() time.Duration {
	if m.app.Config != nil && m.app.Config.TickInterval > 0 {
		return m.app.Config.TickInterval
	}
	return time.Second
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (1 line) and footer (3 lines)
		contentHeight := m.height - 4
		m.menuView = m.menuView.SetSize(m.width/2, contentHeight)
		m.panelsView = m.panelsView.SetSize(m.width-m.width/2, contentHeight)
		return m, nil

	case views.TickMsg:
		completions := m.app.Tick()
		if len(completions) > 0 {
			var names []string
			for _, c := range completions {
				if t, ok := m.app.Timer(c.ID); ok {
					names = append(names, t.DisplayName())
				}
			}
			if len(names) > 0 {
				m.statusMsg = fmt.Sprintf("Done: %s", strings.Join(names, ", "))
			}
			// snooze lives on the panels
			m.pane = PanePanels
		}
		m.panelsView, _ = m.panelsView.Update(msg)
		return m, views.TickCmd(m.tickInterval())

	case views.TimerStartedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("Started %s", msg.Timer.DisplayName())
		}
		m.menuView, _ = m.menuView.Update(msg)
		m.panelsView, _ = m.panelsView.Update(msg)
		return m, nil

	case views.TimerSnoozedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("Snoozed %s for %d min", msg.Timer.DisplayName(), msg.Timer.SnoozeMinutes)
		}
		m.panelsView, _ = m.panelsView.Update(msg)
		return m, nil

	case views.TimerDeletedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		} else {
			m.statusMsg = fmt.Sprintf("Deleted %s", msg.Name)
		}
		m.panelsView, _ = m.panelsView.Update(msg)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.pane == PaneMenu && m.menuView.IsInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			m.cycleTheme()
			return m, nil
		}

		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			return m, nil

		case m.helpVisible && msg.String() == "esc":
			m.helpVisible = false
			return m, nil

		case key.Matches(msg, m.keys.SwitchPane):
			if m.pane == PaneMenu || m.menuView.Hidden() {
				m.pane = PanePanels
			} else {
				m.pane = PaneMenu
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleMenu):
			m.menuView = m.menuView.Toggle()
			if m.menuView.Hidden() {
				m.pane = PanePanels
			} else {
				m.pane = PaneMenu
			}
			return m, nil
		}

	case ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case ThemeChangedMsg:
		m.statusMsg = fmt.Sprintf("Theme: %s", msg.ThemeName)
		return m, nil
	}

	// Delegate to the focused pane
	switch m.pane {
	case PaneMenu:
		var cmd tea.Cmd
		m.menuView, cmd = m.menuView.Update(msg)
		cmds = append(cmds, cmd)
	case PanePanels:
		var cmd tea.Cmd
		m.panelsView, cmd = m.panelsView.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	if m.errorMsg != "" || m.statusMsg != "" {
		contentHeight-- // Extra line for status message
	}

	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else if m.menuView.Hidden() {
		content = lipgloss.JoinVertical(lipgloss.Left, m.menuView.View(), m.panelsView.View())
	} else {
		menuCol := lipgloss.NewStyle().Width(m.width / 2).Render(m.menuView.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, menuCol, m.panelsView.View())
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("desktimer")

	dim := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	paneIndicator := dim.Render(fmt.Sprintf("[%s]", m.pane.String()))

	ringing := ""
	if n := len(m.app.Alarm.Active()); n > 0 {
		ringing = lipgloss.NewStyle().Foreground(t.Ringing).Bold(true).Padding(0, 1).
			Render(fmt.Sprintf("%d ringing", n))
	}
	themeIndicator := dim.Render(fmt.Sprintf("theme: %s", t.Name))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, paneIndicator, ringing)
	rightSide := themeIndicator

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch {
	case m.pane == PaneMenu && m.menuView.IsInputMode():
		line1 = key("enter", "done") + sep + key("esc", "done")
	case m.pane == PaneMenu:
		line1 = key("←/→", "field") + sep +
			key("↑/↓", "adjust") + sep +
			key("1-5", "preset") + sep +
			key("c", "color") + sep +
			key("+/-", "snooze") + sep +
			key("i", "label") + sep +
			key("enter", "start")
		line2 = key("tab", "timers") + sep +
			key("m", "hide menu") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")
	default:
		line1 = key("j/k", "select") + sep +
			key("s", "snooze") + sep +
			key("d", "delete")
		line2 = key("tab", "menu") + sep +
			key("m", "hide/show menu") + sep +
			key("ctrl+t", "theme") + sep +
			key("?", "help")
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("desktimer Help"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Press ? or esc to close"))
	return b.String()
}

// cycleTheme cycles through available themes
func (m *RootModel) cycleTheme() {
	themes := theme.Available()
	current := theme.Current.Theme.Name

	for i, t := range themes {
		if t.Name == current {
			next := themes[(i+1)%len(themes)]
			theme.SetTheme(next)
			m.statusMsg = fmt.Sprintf("Theme: %s", next.Name)
			return
		}
	}
}
