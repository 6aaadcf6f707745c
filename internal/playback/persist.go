package playback

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/logger"
)

const (
	saveInterval = 5 * time.Second
	saveTimeout  = 10 * time.Second
)

// saver writes watch progress to the history collaborator. Routine saves
// are throttled; forced saves (pause, seek, teardown) always go through.
type saver struct {
	o       *Orchestrator
	limiter *rate.Limiter
	pending sync.WaitGroup
}

func newSaver(o *Orchestrator) *saver {
	s := &saver{o: o}
	s.reset()
	return s
}

// reset starts a fresh throttle window, for a new video.
func (s *saver) reset() {
	s.limiter = rate.NewLimiter(rate.Every(saveInterval), 1)
}

// allowed evaluates the gates. They are checked on every attempt because
// settings and the session can change during playback.
func (s *saver) allowed() bool {
	o := s.o
	switch {
	case o.history == nil || o.media.Video.ID == "":
		return false
	case o.state.Live:
		return false
	case !o.settings.SaveVideoHistory():
		return false
	case o.session == nil || !o.session.LoggedIn():
		return false
	case o.embedded:
		return false
	}
	return true
}

func (s *saver) save(force bool) {
	if !s.allowed() {
		return
	}
	if !force && !s.limiter.Allow() {
		return
	}

	o := s.o
	videoID := o.media.Video.ID
	progress := o.state.CurrentTime
	length := o.media.Video.Length
	if o.state.DurationKnown {
		length = o.state.Duration
	}
	history := o.history

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if err := history.SaveProgress(ctx, videoID, progress, length); err != nil {
			logger.Log.Debug().Err(err).Str("video", videoID).Msg(errmsg.OpSaveProgress.Failed())
		}
	}()
}
