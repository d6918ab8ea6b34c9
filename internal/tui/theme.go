package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style of the picker.
type Theme struct {
	Title         lipgloss.Style
	Cursor        lipgloss.Style
	Normal        lipgloss.Style
	Muted         lipgloss.Style
	Error         lipgloss.Style
	PreviewHeader lipgloss.Style
	Primary       lipgloss.Color
	Accent        lipgloss.Color
	Subtle        lipgloss.Color
	Danger        lipgloss.Color
}

// DefaultTheme matches the colors of the command line output.
var DefaultTheme = newTheme(
	lipgloss.Color("#7D56F4"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#666666"),
	lipgloss.Color("#FF6B6B"),
)

func newTheme(primary, accent, subtle, danger lipgloss.Color) Theme {
	return Theme{
		Primary: primary,
		Accent:  accent,
		Subtle:  subtle,
		Danger:  danger,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),
		Normal: lipgloss.NewStyle(),
		Muted: lipgloss.NewStyle().
			Foreground(subtle),
		Error: lipgloss.NewStyle().
			Foreground(danger),
		PreviewHeader: lipgloss.NewStyle().
			Bold(true).
			Underline(true),
	}
}
