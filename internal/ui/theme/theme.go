package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/desktimer/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Timer states
	Running lipgloss.Color
	Ringing lipgloss.Color
	Done    lipgloss.Color
	Snooze  lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Title  lipgloss.Style
	Label  lipgloss.Style

	// Menu
	Spinner        lipgloss.Style
	SpinnerFocused lipgloss.Style
	SpinnerFaded   lipgloss.Style
	Chip           lipgloss.Style
	Button         lipgloss.Style

	// Timer panels
	Panel         lipgloss.Style
	PanelSelected lipgloss.Style
	PanelRinging  lipgloss.Style
	Clock         lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Spinner: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true).
			Width(6).
			Align(lipgloss.Center).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderBottom(true).
			BorderForeground(t.Border),

		SpinnerFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Width(6).
			Align(lipgloss.Center).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderBottom(true).
			BorderForeground(t.Primary),

		SpinnerFaded: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Width(6).
			Align(lipgloss.Center),

		Chip: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1).
			MarginRight(1),

		Button: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Error).
			Bold(true).
			Padding(0, 3),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		PanelSelected: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(t.Primary).
			Padding(0, 2),

		PanelRinging: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(t.Ringing).
			Padding(0, 2),

		Clock: lipgloss.NewStyle().
			Bold(true),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),
	}
}

// TagColor returns the render color of a timer's color tag
func TagColor(c model.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
