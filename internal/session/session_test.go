package session

import (
	"errors"
	"testing"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/store"
)

func openTestStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := store.Open(dir)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestLoginByPIN(t *testing.T) {
	st, _ := openTestStore(t)
	m, err := New(st)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if m.Current() != nil {
		t.Fatal("fresh manager should be logged out")
	}

	u, err := m.Login("1234")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Role != models.RoleAdmin {
		t.Errorf("PIN 1234 logged in role %s, want ADMIN", u.Role)
	}
	if cur := m.Current(); cur == nil || cur.ID != u.ID {
		t.Errorf("Current = %+v, want %+v", cur, u)
	}
}

func TestLoginWrongPINStaysLoggedOut(t *testing.T) {
	st, _ := openTestStore(t)
	m, _ := New(st)

	if _, err := m.Login("0000"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("Login error = %v, want ErrInvalidPIN", err)
	}
	if m.Current() != nil {
		t.Error("failed login must leave the manager logged out")
	}
	if _, ok, _ := st.LoadSession(); ok {
		t.Error("failed login must not persist a session pointer")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	st, dir := openTestStore(t)
	m, _ := New(st)
	u, err := m.Login("0001")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	st.Close()

	st2, err := store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()

	m2, err := New(st2)
	if err != nil {
		t.Fatalf("New after restart: %v", err)
	}
	cur := m2.Current()
	if cur == nil || cur.ID != u.ID || cur.Name != u.Name {
		t.Errorf("restored session = %+v, want %+v", cur, u)
	}
}

// A deleted user's session is restored as-is: restore reads the persisted
// user record and does not confirm it still exists in the collection.
func TestDeletedUserSessionStaysLoggedIn(t *testing.T) {
	st, dir := openTestStore(t)
	m, _ := New(st)
	u, err := m.Login("0002")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := st.RemoveUser(u.ID); err != nil {
		t.Fatalf("RemoveUser: %v", err)
	}
	st.Close()

	st2, err := store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()

	m2, _ := New(st2)
	cur := m2.Current()
	if cur == nil || cur.ID != u.ID {
		t.Errorf("deleted user's session = %+v, want still logged in as %s", cur, u.ID)
	}
}

func TestLogoutClearsPointer(t *testing.T) {
	st, dir := openTestStore(t)
	m, _ := New(st)
	m.Login("1234")

	if err := m.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if m.Current() != nil {
		t.Error("Current after logout should be nil")
	}
	st.Close()

	st2, err := store.Open(dir)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer st2.Close()
	m2, _ := New(st2)
	if m2.Current() != nil {
		t.Error("session pointer survived logout")
	}
}
