package mirror

import (
	"testing"

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

// A pull whose response omits the logs key must leave a locally submitted
// log in place; a response that includes a logs key without that entry wipes
// it. These are the wholesale-replace semantics of the pull path.
func TestApplyReplaceSemantics(t *testing.T) {
	local := models.WorkLog{ID: "local-1", TractorID: "t1", ServiceName: "Plantio", TotalHours: 4}

	t.Run("absent logs key keeps local log", func(t *testing.T) {
		st := openTestStore(t)
		if err := st.AppendLog(local); err != nil {
			t.Fatalf("AppendLog: %v", err)
		}

		res := &PullResult{
			HasTractors: true,
			Tractors:    []models.Tractor{{ID: "t9", Name: "Trator 09"}},
		}
		if err := Apply(st, res); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		logs := st.Logs()
		if len(logs) != 1 || logs[0].ID != "local-1" {
			t.Errorf("logs after apply = %+v, want the local log untouched", logs)
		}
		if got := st.Tractors(); len(got) != 1 || got[0].ID != "t9" {
			t.Errorf("tractors after apply = %+v, want wholesale replacement", got)
		}
	})

	t.Run("present logs key discards local log", func(t *testing.T) {
		st := openTestStore(t)
		if err := st.AppendLog(local); err != nil {
			t.Fatalf("AppendLog: %v", err)
		}

		res := &PullResult{
			HasLogs: true,
			Logs:    []models.WorkLog{{ID: "remote-1", TotalHours: 1}},
		}
		if err := Apply(st, res); err != nil {
			t.Fatalf("Apply: %v", err)
		}

		logs := st.Logs()
		if len(logs) != 1 || logs[0].ID != "remote-1" {
			t.Errorf("logs after apply = %+v, want only the remote log", logs)
		}
	})
}

func TestApplyUsers(t *testing.T) {
	st := openTestStore(t)

	res := &PullResult{
		HasUsers: true,
		Users:    []models.User{{ID: "r1", Name: "Remote", Role: models.RoleOperator, PIN: "7777"}},
	}
	if err := Apply(st, res); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	users := st.Users()
	if len(users) != 1 || users[0].ID != "r1" {
		t.Errorf("users after apply = %+v, want only r1", users)
	}
}
