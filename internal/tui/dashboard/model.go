// Package dashboard is a read-only terminal dashboard over the aggregation
// engine. It periodically reloads the store so submissions from other
// terminals show up without restarting.
package dashboard

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/stats"
	"github.com/rafaelq/fieldlog/internal/store"
)

// MinWidth is the minimum terminal width for proper display
const MinWidth = 40

// MinHeight is the minimum terminal height for proper display
const MinHeight = 12

// TickMsg triggers a data refresh
type TickMsg time.Time

// RefreshDataMsg carries refreshed data
type RefreshDataMsg struct {
	Stats     stats.Stats
	Summaries []stats.TractorSummary
	Tractors  []models.Tractor
	Recent    []table.Row
	LogCount  int
	Timestamp time.Time
	Err       error
}

// Model is the Bubble Tea model for the dashboard
type Model struct {
	Store *store.Store

	// Window dimensions
	Width  int
	Height int

	// Filter selects one tractor or every machine. Index -1 means all;
	// otherwise it indexes Tractors.
	FilterIndex int
	Tractors    []models.Tractor

	// Data
	Stats       stats.Stats
	Summaries   []stats.TractorSummary
	Recent      table.Model
	LogCount    int
	LastRefresh time.Time
	Err         error

	RefreshInterval time.Duration
}

// NewModel creates a dashboard model
func NewModel(st *store.Store, interval time.Duration) Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 10},
			{Title: "Machine", Width: 14},
			{Title: "Service", Width: 16},
			{Title: "Hours", Width: 7},
			{Title: "Fuel", Width: 7},
			{Title: "Operator", Width: 16},
		}),
		table.WithHeight(6),
	)
	return Model{
		Store:           st,
		FilterIndex:     -1,
		Recent:          t,
		RefreshInterval: interval,
	}
}

// recentRows converts the newest logs into table rows
func recentRows(logs []models.WorkLog, limit int) []table.Row {
	if len(logs) > limit {
		logs = logs[:limit]
	}
	rows := make([]table.Row, len(logs))
	for i, l := range logs {
		rows[i] = table.Row{
			l.Date,
			l.TractorName,
			l.ServiceName,
			fmt.Sprintf("%.1f", l.TotalHours),
			fmt.Sprintf("%.1f", l.FuelLiters),
			l.OperatorName,
		}
	}
	return rows
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchData(), m.scheduleTick())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case TickMsg:
		return m, tea.Batch(m.fetchData(), m.scheduleTick())

	case RefreshDataMsg:
		m.Err = msg.Err
		if msg.Err == nil {
			m.Stats = msg.Stats
			m.Summaries = msg.Summaries
			m.Tractors = msg.Tractors
			m.Recent.SetRows(msg.Recent)
			m.LogCount = msg.LogCount
			m.LastRefresh = msg.Timestamp
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes key input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "f", "tab":
		// Cycle the tractor filter: all -> t1 -> t2 -> ... -> all
		if m.FilterIndex+1 >= len(m.Tractors) {
			m.FilterIndex = -1
		} else {
			m.FilterIndex++
		}
		return m, m.fetchData()

	case "r":
		return m, m.fetchData()
	}

	// Remaining keys scroll the recent-sessions table
	var cmd tea.Cmd
	m.Recent, cmd = m.Recent.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return m.renderView()
}

// filterID returns the tractor filter for the aggregation engine
func (m Model) filterID() string {
	if m.FilterIndex < 0 || m.FilterIndex >= len(m.Tractors) {
		return stats.FilterAll
	}
	return m.Tractors[m.FilterIndex].ID
}

// scheduleTick returns a command that sends a TickMsg after the refresh interval
func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchData reloads the store and recomputes the dashboard aggregates
func (m Model) fetchData() tea.Cmd {
	filter := m.filterID()
	return func() tea.Msg {
		if err := m.Store.Reload(); err != nil {
			return RefreshDataMsg{Err: err, Timestamp: time.Now()}
		}
		logs := m.Store.Logs()
		tractors := m.Store.Tractors()
		return RefreshDataMsg{
			Stats:     stats.Compute(logs, tractors, filter),
			Summaries: stats.Summarize(logs, tractors),
			Tractors:  tractors,
			Recent:    recentRows(logs, 25),
			LogCount:  len(logs),
			Timestamp: time.Now(),
		}
	}
}
