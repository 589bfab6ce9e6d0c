package theme

import "github.com/charmbracelet/lipgloss"

// Nord palette, https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"), // nord8
	Secondary: lipgloss.Color("#81A1C1"), // nord9
	Info:      lipgloss.Color("#5E81AC"), // nord10
	Success:   lipgloss.Color("#A3BE8C"), // nord14
	Warning:   lipgloss.Color("#EBCB8B"), // nord13
	Error:     lipgloss.Color("#BF616A"), // nord11

	Running: lipgloss.Color("#88C0D0"),
	Ringing: lipgloss.Color("#D08770"), // nord12
	Done:    lipgloss.Color("#A3BE8C"),
	Snooze:  lipgloss.Color("#EBCB8B"),
}
