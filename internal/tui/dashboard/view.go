package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderView renders the complete dashboard
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	if m.Err != nil {
		return fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit", m.Err)
	}

	totals := m.renderTotalsPanel()
	machines := m.renderMachinesPanel()
	services := m.renderServicesPanel()
	recent := m.wrapPanel("RECENT SESSIONS", m.Recent.View())

	body := lipgloss.JoinVertical(lipgloss.Left, totals, machines, services, recent)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderFooter())
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder
	s.WriteString("fieldlog dashboard (resize for full view)\n\n")
	s.WriteString(fmt.Sprintf("Sessions: %d\n", m.Stats.FilteredLogCount))
	s.WriteString(fmt.Sprintf("Hours: %.1f | Fuel: %.1f L\n", m.Stats.TotalHours, m.Stats.TotalFuel))
	s.WriteString("\nq:quit r:refresh f:filter")
	return s.String()
}

// filterLabel names the active tractor filter
func (m Model) filterLabel() string {
	if m.FilterIndex < 0 || m.FilterIndex >= len(m.Tractors) {
		return "All machines"
	}
	return m.Tractors[m.FilterIndex].Name
}

func (m Model) renderTotalsPanel() string {
	var content strings.Builder

	content.WriteString(titleStyle.Render(m.filterLabel()))
	content.WriteString(subtleStyle.Render(fmt.Sprintf("  (%d sessions)", m.Stats.FilteredLogCount)))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s %s    %s %s    %s %s",
		subtleStyle.Render("Hours:"),
		valueStyle.Render(fmt.Sprintf("%.1f", m.Stats.TotalHours)),
		subtleStyle.Render("Fuel:"),
		valueStyle.Render(fmt.Sprintf("%.1f L", m.Stats.TotalFuel)),
		subtleStyle.Render("Avg:"),
		valueStyle.Render(fmt.Sprintf("%.1f L/h", m.Stats.AverageConsumption)),
	))

	return m.wrapPanel("USAGE", content.String())
}

func (m Model) renderMachinesPanel() string {
	var content strings.Builder

	// The machine comparison is always global, whatever the filter.
	var max float64
	for _, mh := range m.Stats.MachineHours {
		if mh.Hours > max {
			max = mh.Hours
		}
	}

	for i, mh := range m.Stats.MachineHours {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("%-12s %s %s",
			mh.Name,
			barStyle.Render(bar(mh.Hours, max, m.barWidth())),
			subtleStyle.Render(fmt.Sprintf("%.1f h", mh.Hours)),
		))
	}
	if len(m.Stats.MachineHours) == 0 {
		content.WriteString(subtleStyle.Render("No machines"))
	}

	// Consumption against each machine's target
	if len(m.Summaries) > 0 {
		content.WriteString("\n")
		for _, s := range m.Summaries {
			mark := barStyle
			if s.Tractor.ExpectedConsumption > 0 && s.Consumption > s.Tractor.ExpectedConsumption {
				mark = overStyle
			}
			content.WriteString(fmt.Sprintf("\n%-12s %s %s",
				s.Tractor.Name,
				mark.Render(fmt.Sprintf("%.1f L/h", s.Consumption)),
				subtleStyle.Render(fmt.Sprintf("(target %.1f)", s.Tractor.ExpectedConsumption)),
			))
		}
	}

	return m.wrapPanel("MACHINES", content.String())
}

func (m Model) renderServicesPanel() string {
	var content strings.Builder

	if len(m.Stats.ServiceDistribution) == 0 {
		content.WriteString(subtleStyle.Render("No recorded services"))
		return m.wrapPanel("TOP SERVICES", content.String())
	}

	var max float64
	for _, sh := range m.Stats.ServiceDistribution {
		if sh.Hours > max {
			max = sh.Hours
		}
	}
	for i, sh := range m.Stats.ServiceDistribution {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(fmt.Sprintf("%-16s %s %s",
			truncate(sh.Name, 16),
			barStyle.Render(bar(sh.Hours, max, m.barWidth())),
			subtleStyle.Render(fmt.Sprintf("%.1f h", sh.Hours)),
		))
	}

	return m.wrapPanel("TOP SERVICES", content.String())
}

func (m Model) renderFooter() string {
	refreshed := "never"
	if !m.LastRefresh.IsZero() {
		refreshed = m.LastRefresh.Format("15:04:05")
	}
	return helpStyle.Render(fmt.Sprintf(
		" q:quit  r:refresh  f:filter (%s)  %d logs  refreshed %s",
		m.filterLabel(), m.LogCount, refreshed,
	))
}

// wrapPanel draws a titled border around panel content
func (m Model) wrapPanel(title, content string) string {
	inner := lipgloss.JoinVertical(lipgloss.Left, panelTitleStyle.Render(title), content)
	return panelStyle.Width(m.Width - 2).Render(inner)
}

// barWidth sizes the text bars against the terminal width
func (m Model) barWidth() int {
	w := m.Width - 36
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}

// bar renders a proportional text bar
func bar(value, max float64, width int) string {
	if max <= 0 || value <= 0 {
		return ""
	}
	n := int(value / max * float64(width))
	if n < 1 {
		n = 1
	}
	return strings.Repeat("█", n)
}

// truncate shortens a label to fit a column
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
