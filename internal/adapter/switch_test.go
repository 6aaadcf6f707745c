package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/flipplayer/internal/media"
)

// playingProgressive starts a progressive adapter on format a, playing at 42s.
func playingProgressive(t *testing.T) *harness {
	t.Helper()
	h := newHarness(t, Progressive, Source{Formats: threeFormats}, nil)
	h.a.Initialize(InitOptions{Volume: 1, MaxVideoHeight: 360})
	h.el.SetDuration(300)
	h.el.Emit(media.EventLoadedMetadata)
	require.NoError(t, h.el.Play())
	h.el.SetTime(42)
	h.rec.reset()
	return h
}

func TestReloadSwitch_PreservesPositionAndPlayback(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")

	assert.True(t, h.el.Paused())
	assert.Equal(t, "https://cdn.test/c.mp4", h.el.Source())
	pending := lastOf[RepresentationChanged](t, h.rec)
	assert.True(t, pending.Pending())
	assert.Equal(t, "0", pending.Rendered)

	// Reloading resets the element position; it must not leak out.
	h.el.SetTime(0)
	h.el.Emit(media.EventTimeUpdate)
	assert.Empty(t, eventsOf[TimeUpdated](h.rec))

	h.el.Emit(media.EventLoadedMetadata)

	assert.InDelta(t, 42, h.el.CurrentTime(), 1e-9)
	assert.False(t, h.el.Paused())
	done := lastOf[RepresentationChanged](t, h.rec)
	assert.False(t, done.Pending())
	assert.Equal(t, "2", done.Rendered)
	assert.Equal(t, "2", lastOf[TracksChanged](t, h.rec).Video[0].ActiveRepresentationID)
	assert.Equal(t, TimeUpdated{Time: 42}, lastOf[TimeUpdated](t, h.rec))
}

func TestReloadSwitch_LastWriteWins(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "1")
	h.el.SetTime(0)
	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")
	h.el.Emit(media.EventAbort)
	h.el.Emit(media.EventLoadedMetadata)

	assert.Equal(t, "https://cdn.test/c.mp4", h.el.Source())
	assert.InDelta(t, 42, h.el.CurrentTime(), 1e-9, "first snapshot is kept")
	assert.False(t, h.el.Paused())
	for _, ev := range eventsOf[RepresentationChanged](h.rec) {
		assert.NotEqual(t, "1", ev.Rendered, "superseded representation was shown")
	}
	assert.Equal(t, "2", lastOf[TracksChanged](t, h.rec).Video[0].ActiveRepresentationID)

	// A late loadedmetadata has nothing to complete.
	h.rec.reset()
	h.el.Emit(media.EventLoadedMetadata)
	assert.Empty(t, eventsOf[RepresentationChanged](h.rec))
}

func TestReloadSwitch_ReplacedLoadMetadataIsIgnored(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "1")
	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")

	// The element opened "1" before it saw the request for "2".
	h.el.Emit(media.EventLoadedMetadata)
	assert.True(t, h.el.Paused())
	assert.Empty(t, h.el.SeekCalls())
	assert.True(t, lastOf[RepresentationChanged](t, h.rec).Pending())

	h.el.SetTime(0)
	h.el.Emit(media.EventLoadedMetadata)

	assert.Equal(t, []float64{42}, h.el.SeekCalls())
	assert.InDelta(t, 42, h.el.CurrentTime(), 1e-9)
	assert.False(t, h.el.Paused())
	done := lastOf[RepresentationChanged](t, h.rec)
	assert.False(t, done.Pending())
	assert.Equal(t, "2", done.Rendered)
}

func TestReloadSwitch_ReplacedLoadErrorIsIgnored(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "1")
	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")
	h.el.Fail(errors.New("404"))

	assert.Empty(t, eventsOf[ErrorOccurred](h.rec))
	assert.Equal(t, "https://cdn.test/c.mp4", h.el.Source())

	h.el.Emit(media.EventLoadedMetadata)
	assert.Equal(t, "2", lastOf[RepresentationChanged](t, h.rec).Rendered)
}

func TestReloadSwitch_PauseDuringSwitchSticks(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "1")
	h.a.Pause()
	h.a.SetTime(10)
	h.el.Emit(media.EventLoadedMetadata)

	assert.True(t, h.el.Paused())
	assert.InDelta(t, 10, h.el.CurrentTime(), 1e-9)
}

func TestReloadSwitch_FailureRevertsToPrevious(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")
	h.el.Fail(errors.New("decode error"))

	errs := eventsOf[ErrorOccurred](h.rec)
	require.Len(t, errs, 1)
	assert.False(t, errs[0].Fatal)
	var swErr *SwitchError
	require.ErrorAs(t, errs[0].Err, &swErr)
	assert.Equal(t, "2", swErr.RepresentationID)

	assert.Equal(t, "https://cdn.test/a.mp4", h.el.Source())
	assert.Equal(t, RepresentationChanged{Kind: KindVideo, TrackID: progressiveTrackID, Requested: "0", Rendered: "0"},
		lastOf[RepresentationChanged](t, h.rec))

	h.el.Emit(media.EventLoadedMetadata)
	assert.InDelta(t, 42, h.el.CurrentTime(), 1e-9)
	assert.False(t, h.el.Paused())
}

func TestReloadSwitch_FailedRevertIsFatal(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")
	h.el.Fail(errors.New("decode error"))
	h.el.Fail(errors.New("still broken"))

	errs := eventsOf[ErrorOccurred](h.rec)
	require.Len(t, errs, 3)
	assert.True(t, errs[2].Fatal)
}

func TestReloadSwitch_UnknownRepresentation(t *testing.T) {
	h := playingProgressive(t)

	h.a.SetRepresentation(KindVideo, progressiveTrackID, "9")

	require.ErrorIs(t, lastOf[ErrorOccurred](t, h.rec).Err, ErrUnknownRepresentation)
	assert.Equal(t, "https://cdn.test/a.mp4", h.el.Source())
}

func TestProgressive_AutoQualityReloadsBestFormat(t *testing.T) {
	h := playingProgressive(t)
	h.a.SetRepresentation(KindVideo, progressiveTrackID, "2")
	h.el.Emit(media.EventLoadedMetadata)

	h.a.SetAutoQuality(KindVideo)

	assert.Equal(t, "https://cdn.test/a.mp4", h.el.Source())
}
