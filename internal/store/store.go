// Package store holds the entity collections in memory and mirrors every
// mutation into a keyed slot of the local SQLite database before returning.
// Each slot stores the JSON encoding of one whole collection; mutations
// rewrite the full affected collection, never a diff.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rafaelq/fieldlog/internal/models"
	_ "modernc.org/sqlite"
)

// DataDirName and DBFileName locate the database relative to the project
// base directory.
const (
	DataDirName = ".fieldlog"
	DBFileName  = "farm.db"
)

// Slot keys. Fixed, one per collection plus the session pointer.
const (
	SlotUsers    = "fieldlog_users"
	SlotTractors = "fieldlog_tractors"
	SlotLogs     = "fieldlog_logs"
	SlotServices = "fieldlog_services"
	SlotConfig   = "fieldlog_config"
	SlotSession  = "fieldlog_current_user"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// ErrNotFound is returned by update/remove calls when no record matches the
// given id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateID is returned by append calls when the collection already
// holds a record with the given id. Update and remove match the first record
// by id, so a duplicate would shadow the second record forever.
var ErrDuplicateID = errors.New("duplicate id")

// Store is the entity store. All reads are served from the in-memory
// snapshot; all writes go through the slot table synchronously. There is no
// transactional grouping across slots: a cascading multi-collection update
// is two independent sequential writes.
type Store struct {
	conn    *sql.DB
	baseDir string

	users    []models.User
	tractors []models.Tractor
	services []models.ServiceType
	logs     []models.WorkLog
	config   models.Config
}

// Open opens the local database, creating it if needed, and hydrates the
// collections. Missing user/tractor/service slots are seeded with the
// built-in dataset and persisted back immediately so subsequent starts read
// the same seed. Logs start empty and the config starts zeroed.
func Open(baseDir string) (*Store, error) {
	dbPath := filepath.Join(baseDir, DataDirName, DBFileName)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL for concurrent reads while writes are serialized
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=500"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	conn.Exec("PRAGMA synchronous=NORMAL")

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{conn: conn, baseDir: baseDir}
	if err := s.hydrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}

// BaseDir returns the directory the store was opened in.
func (s *Store) BaseDir() string {
	return s.baseDir
}

// hydrate loads every collection slot, seeding the fixed dataset where a
// slot does not exist yet.
func (s *Store) hydrate() error {
	today := time.Now().Format("2006-01-02")

	users, ok, err := loadSlot[[]models.User](s, SlotUsers)
	if err != nil {
		return err
	}
	if !ok {
		users = seedUsers()
		if err := s.saveSlot(SlotUsers, users); err != nil {
			return err
		}
	}
	s.users = users

	tractors, ok, err := loadSlot[[]models.Tractor](s, SlotTractors)
	if err != nil {
		return err
	}
	if !ok {
		tractors = seedTractors(today)
		if err := s.saveSlot(SlotTractors, tractors); err != nil {
			return err
		}
	}
	s.tractors = tractors

	services, ok, err := loadSlot[[]models.ServiceType](s, SlotServices)
	if err != nil {
		return err
	}
	if !ok {
		services = seedServices()
		if err := s.saveSlot(SlotServices, services); err != nil {
			return err
		}
	}
	s.services = services

	logs, _, err := loadSlot[[]models.WorkLog](s, SlotLogs)
	if err != nil {
		return err
	}
	s.logs = logs

	config, _, err := loadSlot[models.Config](s, SlotConfig)
	if err != nil {
		return err
	}
	s.config = config

	return nil
}

// Reload re-reads every collection from the slot table, discarding the
// in-memory snapshot. Used by long-running views to pick up writes from
// other processes.
func (s *Store) Reload() error {
	return s.hydrate()
}

// loadSlot reads and decodes one slot. The second return reports whether the
// slot exists at all, so callers can tell an absent slot from an empty one.
func loadSlot[T any](s *Store, key string) (T, bool, error) {
	var zero T

	var value string
	err := s.conn.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("read slot %s: %w", key, err)
	}

	var v T
	if err := json.Unmarshal([]byte(value), &v); err != nil {
		return zero, false, fmt.Errorf("decode slot %s: %w", key, err)
	}
	return v, true, nil
}

// saveSlot writes the JSON encoding of v under key, replacing any previous
// value. Write failure propagates to the caller and aborts the enclosing
// operation; the in-memory state is then ahead of the persisted state until
// the next successful write.
func (s *Store) saveSlot(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	_, err = s.conn.Exec(
		`INSERT INTO slots (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

// deleteSlot removes a slot entirely.
func (s *Store) deleteSlot(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

// --- Users ---

// Users returns a copy of the user collection.
func (s *Store) Users() []models.User {
	return append([]models.User(nil), s.users...)
}

// ReplaceUsers swaps the whole user collection.
func (s *Store) ReplaceUsers(users []models.User) error {
	s.users = append([]models.User(nil), users...)
	return s.saveSlot(SlotUsers, s.users)
}

// AppendUser adds a user to the collection. The id must be unique.
func (s *Store) AppendUser(u models.User) error {
	for _, existing := range s.users {
		if existing.ID == u.ID {
			return fmt.Errorf("user %s: %w", u.ID, ErrDuplicateID)
		}
	}
	s.users = append(s.users, u)
	return s.saveSlot(SlotUsers, s.users)
}

// UpdateUser replaces the user with the given id.
func (s *Store) UpdateUser(id string, u models.User) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i] = u
			return s.saveSlot(SlotUsers, s.users)
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// RemoveUser deletes the user with the given id.
func (s *Store) RemoveUser(id string) error {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return s.saveSlot(SlotUsers, s.users)
		}
	}
	return fmt.Errorf("user %s: %w", id, ErrNotFound)
}

// --- Tractors ---

// Tractors returns a copy of the tractor collection.
func (s *Store) Tractors() []models.Tractor {
	return append([]models.Tractor(nil), s.tractors...)
}

// Tractor looks up a tractor by id.
func (s *Store) Tractor(id string) (models.Tractor, bool) {
	for _, t := range s.tractors {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tractor{}, false
}

// ReplaceTractors swaps the whole tractor collection.
func (s *Store) ReplaceTractors(tractors []models.Tractor) error {
	s.tractors = append([]models.Tractor(nil), tractors...)
	return s.saveSlot(SlotTractors, s.tractors)
}

// AppendTractor adds a tractor to the fleet. The id must be unique.
func (s *Store) AppendTractor(t models.Tractor) error {
	for _, existing := range s.tractors {
		if existing.ID == t.ID {
			return fmt.Errorf("tractor %s: %w", t.ID, ErrDuplicateID)
		}
	}
	s.tractors = append(s.tractors, t)
	return s.saveSlot(SlotTractors, s.tractors)
}

// UpdateTractor replaces the tractor with the given id.
func (s *Store) UpdateTractor(id string, t models.Tractor) error {
	for i := range s.tractors {
		if s.tractors[i].ID == id {
			s.tractors[i] = t
			return s.saveSlot(SlotTractors, s.tractors)
		}
	}
	return fmt.Errorf("tractor %s: %w", id, ErrNotFound)
}

// RemoveTractor deletes the tractor with the given id. Historical work logs
// keep their denormalized tractor name and are not touched.
func (s *Store) RemoveTractor(id string) error {
	for i := range s.tractors {
		if s.tractors[i].ID == id {
			s.tractors = append(s.tractors[:i], s.tractors[i+1:]...)
			return s.saveSlot(SlotTractors, s.tractors)
		}
	}
	return fmt.Errorf("tractor %s: %w", id, ErrNotFound)
}

// --- Service catalog ---

// Services returns a copy of the service catalog.
func (s *Store) Services() []models.ServiceType {
	return append([]models.ServiceType(nil), s.services...)
}

// ReplaceServices swaps the whole service catalog.
func (s *Store) ReplaceServices(services []models.ServiceType) error {
	s.services = append([]models.ServiceType(nil), services...)
	return s.saveSlot(SlotServices, s.services)
}

// AppendService adds a catalog entry. The id must be unique.
func (s *Store) AppendService(sv models.ServiceType) error {
	for _, existing := range s.services {
		if existing.ID == sv.ID {
			return fmt.Errorf("service %s: %w", sv.ID, ErrDuplicateID)
		}
	}
	s.services = append(s.services, sv)
	return s.saveSlot(SlotServices, s.services)
}

// RemoveService deletes a catalog entry.
func (s *Store) RemoveService(id string) error {
	for i := range s.services {
		if s.services[i].ID == id {
			s.services = append(s.services[:i], s.services[i+1:]...)
			return s.saveSlot(SlotServices, s.services)
		}
	}
	return fmt.Errorf("service %s: %w", id, ErrNotFound)
}

// --- Work logs ---

// Logs returns a copy of the work-log collection, newest first.
func (s *Store) Logs() []models.WorkLog {
	return append([]models.WorkLog(nil), s.logs...)
}

// ReplaceLogs swaps the whole work-log collection.
func (s *Store) ReplaceLogs(logs []models.WorkLog) error {
	s.logs = append([]models.WorkLog(nil), logs...)
	return s.saveSlot(SlotLogs, s.logs)
}

// AppendLog records a new work log at the head of the collection, keeping
// newest-first order.
func (s *Store) AppendLog(l models.WorkLog) error {
	s.logs = append([]models.WorkLog{l}, s.logs...)
	return s.saveSlot(SlotLogs, s.logs)
}

// --- Config ---

// Config returns the remote-mirror configuration record.
func (s *Store) Config() models.Config {
	return s.config
}

// SetConfig overwrites the configuration record wholesale.
func (s *Store) SetConfig(c models.Config) error {
	s.config = c
	return s.saveSlot(SlotConfig, c)
}

// --- Session pointer ---

// LoadSession reads the persisted session pointer. The stored value is the
// full user record captured at login, not a reference into the user
// collection.
func (s *Store) LoadSession() (models.User, bool, error) {
	return loadSlot[models.User](s, SlotSession)
}

// SaveSession persists the session pointer.
func (s *Store) SaveSession(u models.User) error {
	return s.saveSlot(SlotSession, u)
}

// ClearSession removes the persisted session pointer.
func (s *Store) ClearSession() error {
	return s.deleteSlot(SlotSession)
}
