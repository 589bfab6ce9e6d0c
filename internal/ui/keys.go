package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings. Pane-local keys are handled by the
// views themselves and listed here for the help screen.
type KeyMap struct {
	// Menu
	FocusField key.Binding
	Adjust     key.Binding
	Preset     key.Binding
	Color      key.Binding
	Snooze     key.Binding
	Label      key.Binding
	Start      key.Binding

	// Panels
	Navigate    key.Binding
	SnoozeTimer key.Binding
	Delete      key.Binding

	// Global
	SwitchPane key.Binding
	ToggleMenu key.Binding
	ThemeCycle key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		FocusField: key.NewBinding(
			key.WithKeys("left", "right", "h", "l"),
			key.WithHelp("←/→", "field"),
		),
		Adjust: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("↑/↓", "adjust"),
		),
		Preset: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "preset"),
		),
		Color: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "color"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("+", "-"),
			key.WithHelp("+/-", "snooze length"),
		),
		Label: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "label"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),

		Navigate: key.NewBinding(
			key.WithKeys("up", "down", "k", "j"),
			key.WithHelp("j/k", "select timer"),
		),
		SnoozeTimer: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),

		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "menu/timers"),
		),
		ToggleMenu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "hide/show menu"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SwitchPane, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusField, k.Adjust, k.Preset, k.Color},
		{k.Snooze, k.Label, k.Start},
		{k.Navigate, k.SnoozeTimer, k.Delete},
		{k.SwitchPane, k.ToggleMenu, k.ThemeCycle, k.Help, k.Quit},
	}
}
