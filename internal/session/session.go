// Package session tracks the currently authenticated user and its persisted
// continuation across restarts.
package session

import (
	"errors"

	"github.com/rafaelq/fieldlog/internal/models"
	"github.com/rafaelq/fieldlog/internal/store"
)

// ErrInvalidPIN is returned when no user matches the given PIN.
var ErrInvalidPIN = errors.New("invalid PIN")

// Manager is a two-state machine: logged out, or logged in as one user.
// The persisted pointer stores the full user record captured at login, so a
// restored session is not re-validated against the user collection: a user
// deleted since login stays logged in until explicit logout.
type Manager struct {
	store   *store.Store
	current *models.User
}

// New creates a manager, restoring any persisted session pointer.
func New(st *store.Store) (*Manager, error) {
	m := &Manager{store: st}
	u, ok, err := st.LoadSession()
	if err != nil {
		return nil, err
	}
	if ok {
		m.current = &u
	}
	return m, nil
}

// Login scans the user collection for an exact PIN match. On success the
// session pointer is persisted before returning. On failure the manager
// stays logged out. There is no lockout or attempt counting.
func (m *Manager) Login(pin string) (models.User, error) {
	for _, u := range m.store.Users() {
		if u.PIN == pin {
			if err := m.store.SaveSession(u); err != nil {
				return models.User{}, err
			}
			m.current = &u
			return u, nil
		}
	}
	return models.User{}, ErrInvalidPIN
}

// Logout clears the in-memory pointer and deletes the persisted one.
func (m *Manager) Logout() error {
	m.current = nil
	return m.store.ClearSession()
}

// Current returns the logged-in user, or nil when logged out.
func (m *Manager) Current() *models.User {
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}
