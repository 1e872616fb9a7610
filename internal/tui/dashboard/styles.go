package dashboard

import "github.com/charmbracelet/lipgloss"

var (
	// Base colors
	primaryColor = lipgloss.Color("42")
	mutedColor   = lipgloss.Color("241")
	errorColor   = lipgloss.Color("196")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Text styles
	titleStyle  = lipgloss.NewStyle().Bold(true)
	subtleStyle = lipgloss.NewStyle().Foreground(mutedColor)
	valueStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	barStyle    = lipgloss.NewStyle().Foreground(primaryColor)
	overStyle   = lipgloss.NewStyle().Foreground(errorColor)
	helpStyle   = lipgloss.NewStyle().Foreground(mutedColor)
)
