package formatter

import (
	"github.com/alexanderramin/shopfloor/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Bold renders s with the bold foreground style.
func Bold(s string) string { return StyleBold.Render(s) }

// Dim renders s with the dim style.
func Dim(s string) string { return StyleDim.Render(s) }

// StatePill returns a colored indicator for a worker state.
func StatePill(state domain.WorkerState) string {
	switch state {
	case domain.WorkerWorking:
		return StyleGreen.Render("● WORKING")
	case domain.WorkerIdle:
		return StyleDim.Render("○ IDLE")
	default:
		return StyleDim.Render(string(state))
	}
}
