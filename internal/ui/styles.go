package ui

import "github.com/charmbracelet/lipgloss"

// Palette uses the 16 ANSI colors so the picker follows the terminal theme.
var (
	ColorSuccess = lipgloss.Color("10") // Green
	ColorFailed  = lipgloss.Color("9")  // Red
	ColorLoading = lipgloss.Color("11") // Yellow

	ColorBorder       = lipgloss.Color("8")  // Dim gray
	ColorBorderActive = lipgloss.Color("10") // Bright green
	ColorTitle        = lipgloss.Color("12") // Bright blue
	ColorSubtle       = lipgloss.Color("8")  // Dim gray
	ColorHighlight    = lipgloss.Color("14") // Bright cyan
	ColorMatch        = lipgloss.Color("11") // Yellow
	ColorChip         = lipgloss.Color("237")
)

var (
	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	LoadingStyle = lipgloss.NewStyle().Foreground(ColorLoading)
)

// UI component styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorTitle)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorFailed).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true)

	// SearchHighlightStyle marks the part of an option that matches the query.
	SearchHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorMatch).
				Underline(true).
				Bold(true)

	ChipStyle = lipgloss.NewStyle().
			Background(ColorChip).
			Padding(0, 1)

	ActiveChipStyle = ChipStyle.
			Foreground(lipgloss.Color("0")).
			Background(ColorHighlight).
			Bold(true)
)

// PaneStyle frames a section of the picker; the active one gets the accent border.
func PaneStyle(active bool) lipgloss.Style {
	color := ColorBorder
	if active {
		color = ColorBorderActive
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
}
