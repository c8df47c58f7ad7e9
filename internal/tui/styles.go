package tui

import "github.com/charmbracelet/lipgloss"

// Styles is the active color scheme. The palettes mirror the application's
// dark and light colorways.
type Styles struct {
	Title       lipgloss.Style
	DayHeader   lipgloss.Style
	SelectedDay lipgloss.Style
	Faint       lipgloss.Style
	Selected    lipgloss.Style
	Alert       lipgloss.Style
	Status      lipgloss.Style
	Done        lipgloss.Style
}

func newStyles(darkMode bool) Styles {
	label := lipgloss.Color("#4b4b4b")
	faint := lipgloss.Color("#a5a5a5")
	widget := lipgloss.Color("#b3b3b3")
	if darkMode {
		label = lipgloss.Color("#c2c2c2")
		faint = lipgloss.Color("#494949")
		widget = lipgloss.Color("#383838")
	}

	return Styles{
		Title:       lipgloss.NewStyle().Foreground(label).Bold(true),
		DayHeader:   lipgloss.NewStyle().Foreground(label),
		SelectedDay: lipgloss.NewStyle().Foreground(label).Background(widget).Bold(true),
		Faint:       lipgloss.NewStyle().Foreground(faint),
		Selected:    lipgloss.NewStyle().Background(widget).Bold(true),
		Alert:       lipgloss.NewStyle().Foreground(label).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Status:      lipgloss.NewStyle().Foreground(faint).Italic(true),
		Done:        lipgloss.NewStyle().Foreground(faint).Strikethrough(true),
	}
}

// eventStyle renders an event in its own color.
func eventStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
