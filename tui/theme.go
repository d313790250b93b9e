package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the viewer's colors, as 256-color codes.
type Theme struct {
	NormalText  lipgloss.Color
	FaintText   lipgloss.Color
	BorderColor lipgloss.Color
	FocusColor  lipgloss.Color
	HintColor   lipgloss.Color
	AlertColor  lipgloss.Color
	HelpText    lipgloss.Color
}

// DefaultTheme targets dark terminals.
var DefaultTheme = Theme{
	NormalText:  lipgloss.Color("252"),
	FaintText:   lipgloss.Color("245"),
	BorderColor: lipgloss.Color("240"),
	FocusColor:  lipgloss.Color("75"),  // blue
	HintColor:   lipgloss.Color("114"), // green
	AlertColor:  lipgloss.Color("196"), // red
	HelpText:    lipgloss.Color("241"),
}
