// Package output provides styled terminal output helpers (success, error,
// warning, record formatting) using lipgloss.
package output

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/rafaelq/fieldlog/internal/models"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	roleStyles   = map[models.Role]lipgloss.Style{
		models.RoleAdmin:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.RoleOperator: lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// Title prints a bold heading
func Title(format string, args ...interface{}) {
	fmt.Println(titleStyle.Render(fmt.Sprintf(format, args...)))
}

// Subtle prints de-emphasized text
func Subtle(format string, args ...interface{}) {
	fmt.Println(subtleStyle.Render(fmt.Sprintf(format, args...)))
}

// Role renders a colored role label
func Role(r models.Role) string {
	style, ok := roleStyles[r]
	if !ok {
		return string(r)
	}
	return style.Render(string(r))
}

// Hours formats an hour quantity rounded to one decimal
func Hours(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " h"
}

// Liters formats a fuel quantity rounded to one decimal
func Liters(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + " L"
}

// WorkLogLine renders a one-line summary of a work log
func WorkLogLine(l models.WorkLog) string {
	return fmt.Sprintf("%s  %s  %s  %s  %s  %s",
		subtleStyle.Render(l.Date),
		titleStyle.Render(l.TractorName),
		l.ServiceName,
		Hours(l.TotalHours),
		Liters(l.FuelLiters),
		subtleStyle.Render(l.OperatorName),
	)
}
