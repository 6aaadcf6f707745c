package state

import (
	"database/sql"
	"errors"
	"time"

	"github.com/llehouerou/flipplayer/internal/logger"
)

// VolumeState is the last volume the user chose.
type VolumeState struct {
	Volume float64
	Muted  bool
}

// GetVolume returns the saved volume, full and unmuted when none was saved.
// A debounced write that has not reached the disk yet is returned as is.
func (m *Manager) GetVolume() (*VolumeState, error) {
	var v VolumeState
	err := m.db.QueryRow(`SELECT level, muted FROM volume WHERE id = 1`).Scan(&v.Volume, &v.Muted)
	if errors.Is(err, sql.ErrNoRows) {
		return &VolumeState{Volume: 1}, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SaveVolume records the volume after saveDebounce of quiet; a burst of
// calls writes once, with the last value.
func (m *Manager) SaveVolume(volume float64, muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = &VolumeState{Volume: volume, Muted: muted}
	if m.timer != nil {
		m.timer.Reset(saveDebounce)
		return
	}
	m.timer = time.AfterFunc(saveDebounce, func() {
		if err := m.flush(); err != nil {
			logger.Log.Warn().Err(err).Msg("save volume")
		}
	})
}

func (m *Manager) flush() error {
	m.mu.Lock()
	v := m.pending
	m.pending = nil
	m.mu.Unlock()

	if v == nil {
		return nil
	}
	_, err := m.db.Exec(`
		INSERT INTO volume (id, level, muted) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET level = excluded.level, muted = excluded.muted`,
		v.Volume, v.Muted)
	return err
}
