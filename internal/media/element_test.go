package media

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferLevel(t *testing.T) {
	ranges := []TimeRange{{Start: 0, End: 30}, {Start: 60, End: 80}}

	assert.InDelta(t, 0.3, BufferLevel(ranges, 10, 100), 1e-9)
	assert.InDelta(t, 0.8, BufferLevel(ranges, 70, 100), 1e-9)
	assert.Zero(t, BufferLevel(ranges, 45, 100))
	assert.Zero(t, BufferLevel(ranges, 10, 0))
	assert.Zero(t, BufferLevel(ranges, 10, math.Inf(1)))
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "loadedmetadata", EventLoadedMetadata.String())
	assert.Equal(t, "error", EventError.String())
	assert.Equal(t, "unknown", Event(99).String())
}

func TestMock_ListenerRemovalIsIdempotent(t *testing.T) {
	m := NewMock()
	calls := 0
	off := m.On(EventPlaying, func() { calls++ })
	m.On(EventPlaying, func() { calls += 10 })

	m.Emit(EventPlaying)
	assert.Equal(t, 11, calls)

	off()
	off()
	assert.Equal(t, 1, m.Removals())
	assert.Equal(t, 1, m.ListenerCount())

	m.Emit(EventPlaying)
	assert.Equal(t, 21, calls)
}

func TestMock_ListenerRemovedDuringEmit(t *testing.T) {
	m := NewMock()
	var offSecond func()
	second := 0
	m.On(EventEnded, func() { offSecond() })
	offSecond = m.On(EventEnded, func() { second++ })

	m.Emit(EventEnded)

	assert.Zero(t, second)
}

func TestMock_FullscreenAndRenderedListeners(t *testing.T) {
	m := NewMock()
	var changes []bool
	var offFirst func()
	offFirst = m.OnFullscreenChange(func(bool) { offFirst() })
	m.OnFullscreenChange(func(fs bool) { changes = append(changes, fs) })

	var rendered []Selection
	m.OnRenditionRendered(func(kind StreamKind, index int) {
		rendered = append(rendered, Selection{Kind: kind, Index: index})
	})

	m.ChangeFullscreen(true)
	m.ChangeFullscreen(false)
	m.Render(Video, 2)

	assert.Equal(t, []bool{true, false}, changes)
	assert.Equal(t, []Selection{{Kind: Video, Index: 2}}, rendered)
	assert.Equal(t, 1, m.Removals())
	assert.False(t, m.IsFullscreen())
}
