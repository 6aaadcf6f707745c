// Package state keeps the player state that outlives a run, currently the
// volume, in a SQLite file under the XDG data directory.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "flipplayer"
	dbFileName   = "state.db"
	saveDebounce = 500 * time.Millisecond
)

// Manager owns the database. Its methods are safe for concurrent use.
type Manager struct {
	db *sql.DB

	mu      sync.Mutex
	timer   *time.Timer
	pending *VolumeState
}

// Open opens the database in the user's data directory, creating it when
// needed.
func Open() (*Manager, error) {
	path, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("resolve state path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(path)
}

// OpenPath opens the database at path; ":memory:" is a private in-memory
// database.
func OpenPath(path string) (*Manager, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" one database.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Manager{db: db}, nil
}

// Close writes any debounced volume and closes the database.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.mu.Unlock()

	flushErr := m.flush()
	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}
