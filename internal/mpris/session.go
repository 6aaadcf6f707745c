package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/llehouerou/flipplayer/internal/playback"
)

// Session is the media-session capability exposed over MPRIS. The player
// loop pushes metadata and positions in; D-Bus calls come out through the
// registered action handlers. Every method is safe from any goroutine.
type Session struct {
	mu       sync.Mutex
	handlers map[playback.MediaAction]func(playback.ActionDetails)
	video    playback.Video
	status   playback.Status

	duration   float64
	rate       float64
	position   float64
	positionAt time.Time

	now    func() time.Time
	closer func() error
}

func newSession() *Session {
	return &Session{
		handlers: make(map[playback.MediaAction]func(playback.ActionDetails)),
		rate:     1,
		now:      time.Now,
	}
}

// Close stops the D-Bus server.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

func (s *Session) SetActionHandler(action playback.MediaAction, fn func(playback.ActionDetails)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[action] = fn
}

func (s *Session) ClearActionHandlers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.handlers)
}

func (s *Session) SetMetadata(v playback.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = v
	s.duration, s.position = v.Length, 0
	s.positionAt = s.now()
}

func (s *Session) SetPlaybackState(status playback.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Freeze the extrapolated position at the transition
	s.position = s.positionLocked()
	s.positionAt = s.now()
	s.status = status
}

func (s *Session) SetPositionState(duration, rate, position float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration, s.rate, s.position = duration, rate, position
	s.positionAt = s.now()
}

// invoke runs the handler for action, if one is registered. It reports
// whether a handler ran.
func (s *Session) invoke(action playback.MediaAction, d playback.ActionDetails) bool {
	s.mu.Lock()
	fn := s.handlers[action]
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(d)
	return true
}

func (s *Session) playPause() {
	if s.isPlaying() {
		s.invoke(playback.ActionPause, playback.ActionDetails{})
	} else {
		s.invoke(playback.ActionPlay, playback.ActionDetails{})
	}
}

// seekBy seeks relative to the current position, in seconds.
func (s *Session) seekBy(offset float64) {
	switch {
	case offset > 0:
		s.invoke(playback.ActionSeekForward, playback.ActionDetails{SeekOffset: offset})
	case offset < 0:
		s.invoke(playback.ActionSeekBackward, playback.ActionDetails{SeekOffset: -offset})
	}
}

func (s *Session) seekTo(t float64) {
	s.invoke(playback.ActionSeekTo, playback.ActionDetails{SeekTime: max(t, 0)})
}

func (s *Session) isPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == playback.StatusPlaying || s.status == playback.StatusBuffering
}

// currentPosition extrapolates the last reported position while playing.
func (s *Session) currentPosition() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *Session) positionLocked() float64 {
	pos := s.position
	if s.status == playback.StatusPlaying {
		pos += s.now().Sub(s.positionAt).Seconds() * s.rate
	}
	if s.duration > 0 {
		pos = min(pos, s.duration)
	}
	return pos
}

func (s *Session) snapshot() (playback.Video, playback.Status, float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video, s.status, s.duration, s.rate
}

func formatTrackID(videoID string) string {
	h := fnv.New64a()
	h.Write([]byte(videoID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

// Verify Session implements the media session at compile time.
var _ playback.MediaSession = (*Session)(nil)
