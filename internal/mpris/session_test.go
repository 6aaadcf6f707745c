package mpris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/flipplayer/internal/playback"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	s := newSession()
	s.now = clock.now
	return s, clock
}

func TestSession_ActionsReachHandlers(t *testing.T) {
	s, _ := newTestSession()
	var got []playback.MediaAction
	var details []playback.ActionDetails
	for _, a := range []playback.MediaAction{
		playback.ActionPlay, playback.ActionPause,
		playback.ActionSeekForward, playback.ActionSeekBackward, playback.ActionSeekTo,
	} {
		s.SetActionHandler(a, func(d playback.ActionDetails) {
			got = append(got, a)
			details = append(details, d)
		})
	}

	s.playPause()
	s.SetPlaybackState(playback.StatusPlaying)
	s.playPause()
	s.seekBy(10)
	s.seekBy(-5)
	s.seekBy(0)
	s.seekTo(42)

	assert.Equal(t, []playback.MediaAction{
		playback.ActionPlay, playback.ActionPause,
		playback.ActionSeekForward, playback.ActionSeekBackward, playback.ActionSeekTo,
	}, got)
	assert.InDelta(t, 10, details[2].SeekOffset, 1e-9)
	assert.InDelta(t, 5, details[3].SeekOffset, 1e-9)
	assert.InDelta(t, 42, details[4].SeekTime, 1e-9)
}

func TestSession_ClearedHandlersAreNotCalled(t *testing.T) {
	s, _ := newTestSession()
	called := false
	s.SetActionHandler(playback.ActionPlay, func(playback.ActionDetails) { called = true })

	s.ClearActionHandlers()

	assert.False(t, s.invoke(playback.ActionPlay, playback.ActionDetails{}))
	assert.False(t, called)
}

func TestSession_PositionExtrapolatesWhilePlaying(t *testing.T) {
	s, clock := newTestSession()
	s.SetMetadata(playback.Video{ID: "abc", Length: 100})
	s.SetPlaybackState(playback.StatusPlaying)
	s.SetPositionState(100, 2, 10)

	clock.advance(3 * time.Second)
	assert.InDelta(t, 16, s.currentPosition(), 1e-9)

	s.SetPlaybackState(playback.StatusPaused)
	clock.advance(10 * time.Second)
	assert.InDelta(t, 16, s.currentPosition(), 1e-9, "paused position does not move")

	s.SetPlaybackState(playback.StatusPlaying)
	clock.advance(time.Hour)
	assert.InDelta(t, 100, s.currentPosition(), 1e-9, "clamped to the duration")
}

func TestSession_MetadataResetsPosition(t *testing.T) {
	s, _ := newTestSession()
	s.SetPositionState(50, 1, 30)

	s.SetMetadata(playback.Video{ID: "next", Title: "Next", Length: 80})

	video, _, duration, _ := s.snapshot()
	assert.Equal(t, "Next", video.Title)
	assert.InDelta(t, 80, duration, 1e-9)
	assert.Zero(t, s.currentPosition())
}

func TestFormatTrackID_Stable(t *testing.T) {
	assert.Equal(t, formatTrackID("abc"), formatTrackID("abc"))
	assert.NotEqual(t, formatTrackID("abc"), formatTrackID("abd"))
	assert.Contains(t, formatTrackID("abc"), "/org/mpris/MediaPlayer2/Track/")
}

func TestSession_CloseWithoutServer(t *testing.T) {
	s, _ := newTestSession()
	assert.NoError(t, s.Close())
}
