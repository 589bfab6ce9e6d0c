package ui

import (
	"bytes"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/desktimer/internal/app"
	"github.com/dori/desktimer/internal/config"
	"github.com/dori/desktimer/internal/driver"
	"github.com/dori/desktimer/internal/logging"
	"github.com/dori/desktimer/internal/menu"
	"github.com/dori/desktimer/internal/notify"
	"github.com/dori/desktimer/internal/ui/theme"
	"github.com/dori/desktimer/internal/ui/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct{ now time.Time }

func (c *stepClock) Now() time.Time { return c.now }
func (c *stepClock) NewTicker(time.Duration) driver.Ticker { panic("not used") }

func newRoot(t *testing.T) (RootModel, *app.App, *stepClock) {
	t.Helper()
	t.Setenv("DESKTIMER_DATA_DIR", t.TempDir())

	clock := &stepClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)}
	a, err := app.New(config.Default(), app.Options{
		Bell:     &bytes.Buffer{},
		Clock:    clock,
		Logger:   logging.Nop(),
		Notifier: notify.NewNotifier().WithRunner(func(string, ...string) error { return nil }),
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	m, _ := NewRootModel(a).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m.(RootModel), a, clock
}

func send(m RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(RootModel), cmd
}

func TestTickCompletesAndFocusesPanels(t *testing.T) {
	m, a, clock := newRoot(t)

	sel := menu.DefaultSelection()
	sel.Minutes, sel.Seconds = 0, 2
	_, err := a.StartTimer(sel, "kettle")
	require.NoError(t, err)

	clock.now = clock.now.Add(3 * time.Second)
	m, cmd := send(m, views.TickMsg{At: clock.now})
	assert.NotNil(t, cmd, "tick loop must reschedule itself")
	assert.Equal(t, PanePanels, m.pane)
	assert.Equal(t, "Done: kettle", m.statusMsg)
	assert.Contains(t, m.View(), "1 ringing")
}

func TestStartFromMenuShowsPanel(t *testing.T) {
	m, a, _ := newRoot(t)

	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())

	assert.Equal(t, "Started 10m0s timer", m.statusMsg)
	assert.Len(t, a.Timers(), 1)
	assert.Contains(t, m.View(), "00:10:00")
}

func TestPaneSwitchingAndMenuToggle(t *testing.T) {
	m, _, _ := newRoot(t)
	require.Equal(t, PaneMenu, m.pane)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanePanels, m.pane)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PaneMenu, m.pane)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	assert.True(t, m.menuView.Hidden())
	assert.Equal(t, PanePanels, m.pane)

	// tab stays on the panels while the menu is hidden
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, PanePanels, m.pane)
}

func TestQuitIgnoredWhileEditingLabel(t *testing.T) {
	m, _, _ := newRoot(t)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	require.True(t, m.menuView.IsInputMode())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.menuView.IsInputMode(), "q is typed into the label")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.menuView.IsInputMode())
}

func TestCycleTheme(t *testing.T) {
	t.Cleanup(func() { theme.SetTheme(theme.Nord) })
	m, _, _ := newRoot(t)
	theme.SetTheme(theme.Nord)

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "dracula", theme.Current.Theme.Name)
	assert.Equal(t, "Theme: dracula", m.statusMsg)

	send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, "nord", theme.Current.Theme.Name)
}
