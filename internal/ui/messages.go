package ui

// Pane identifies which part of the screen receives keys
type Pane int

const (
	PaneMenu Pane = iota
	PanePanels
)

// String returns the display name for a pane
func (p Pane) String() string {
	switch p {
	case PaneMenu:
		return "Menu"
	case PanePanels:
		return "Timers"
	default:
		return "Unknown"
	}
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ThemeChangedMsg indicates the theme was changed
type ThemeChangedMsg struct {
	ThemeName string
}
