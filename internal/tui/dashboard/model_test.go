package dashboard

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFilterCycling(t *testing.T) {
	st := openTestStore(t)
	m := NewModel(st, time.Second)
	m.Tractors = st.Tractors()

	if got := m.filterID(); got != "all" {
		t.Errorf("initial filter = %s, want all", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	m = next.(Model)
	if got := m.filterID(); got != "t1" {
		t.Errorf("filter after one cycle = %s, want t1", got)
	}

	for i := 0; i < 3; i++ {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
		m = next.(Model)
	}
	if got := m.filterID(); got != "all" {
		t.Errorf("filter after full cycle = %s, want all again", got)
	}
}

func TestRefreshDataMsgPopulatesModel(t *testing.T) {
	st := openTestStore(t)
	if err := st.AppendLog(models.WorkLog{
		ID: "1", Date: "2026-08-30", TractorID: "t1", TractorName: "Trator 01",
		ServiceName: "Aragem", TotalHours: 8.2, FuelLiters: 40, OperatorName: "João da Silva",
	}); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	m := NewModel(st, time.Second)
	msg := m.fetchData()()
	refresh, ok := msg.(RefreshDataMsg)
	if !ok {
		t.Fatalf("fetchData returned %T, want RefreshDataMsg", msg)
	}
	if refresh.Err != nil {
		t.Fatalf("refresh error: %v", refresh.Err)
	}
	if refresh.Stats.TotalHours != 8.2 || refresh.LogCount != 1 {
		t.Errorf("refresh stats = %.1fh over %d logs, want 8.2h over 1", refresh.Stats.TotalHours, refresh.LogCount)
	}
	if len(refresh.Recent) != 1 || refresh.Recent[0][1] != "Trator 01" {
		t.Errorf("recent rows = %+v", refresh.Recent)
	}

	next, _ := m.Update(refresh)
	m = next.(Model)
	if m.LogCount != 1 || m.Stats.TotalHours != 8.2 {
		t.Errorf("model after refresh = %d logs %.1fh", m.LogCount, m.Stats.TotalHours)
	}
}
