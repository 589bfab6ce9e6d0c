package theme

import "github.com/charmbracelet/lipgloss"

// Dracula palette, https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"), // purple
	Secondary: lipgloss.Color("#8BE9FD"), // cyan
	Info:      lipgloss.Color("#8BE9FD"),
	Success:   lipgloss.Color("#50FA7B"), // green
	Warning:   lipgloss.Color("#F1FA8C"), // yellow
	Error:     lipgloss.Color("#FF5555"), // red

	Running: lipgloss.Color("#8BE9FD"),
	Ringing: lipgloss.Color("#FFB86C"), // orange
	Done:    lipgloss.Color("#50FA7B"),
	Snooze:  lipgloss.Color("#FFB86C"),
}
