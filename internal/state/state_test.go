package state

import (
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	require.NoError(t, err)
	return m
}

func TestGetVolume_DefaultsToFull(t *testing.T) {
	m := openMemory(t)
	defer m.Close()

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.Equal(t, &VolumeState{Volume: 1}, v)
}

func TestSaveVolume_DebouncesBursts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := openMemory(t)
		defer m.Close()

		m.SaveVolume(0.2, false)
		time.Sleep(saveDebounce / 2)
		m.SaveVolume(0.3, false)
		time.Sleep(saveDebounce / 2)
		m.SaveVolume(0.35, true)

		v, err := m.GetVolume()
		require.NoError(t, err)
		assert.InDelta(t, 1, v.Volume, 0, "nothing written during the burst")

		time.Sleep(saveDebounce + time.Millisecond)
		synctest.Wait()

		v, err = m.GetVolume()
		require.NoError(t, err)
		assert.Equal(t, &VolumeState{Volume: 0.35, Muted: true}, v)
	})
}

func TestSaveVolume_LaterBurstOverwrites(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m := openMemory(t)
		defer m.Close()

		m.SaveVolume(0.4, true)
		time.Sleep(saveDebounce + time.Millisecond)
		synctest.Wait()
		m.SaveVolume(0.7, false)
		time.Sleep(saveDebounce + time.Millisecond)
		synctest.Wait()

		v, err := m.GetVolume()
		require.NoError(t, err)
		assert.Equal(t, &VolumeState{Volume: 0.7}, v)
	})
}

func TestClose_FlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	m, err := OpenPath(path)
	require.NoError(t, err)
	m.SaveVolume(0.6, true)
	require.NoError(t, m.Close())

	m, err = OpenPath(path)
	require.NoError(t, err)
	defer m.Close()

	v, err := m.GetVolume()
	require.NoError(t, err)
	assert.Equal(t, &VolumeState{Volume: 0.6, Muted: true}, v)
}

func TestMigrate_Idempotent(t *testing.T) {
	m := openMemory(t)
	defer m.Close()

	require.NoError(t, migrate(m.db))

	var version int
	require.NoError(t, m.db.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, len(migrations), version)
}
