package playback

import (
	"net/url"
	"strconv"
)

// bindMediaSession registers the transport handlers. Handlers arrive on
// foreign goroutines and are replayed on the loop.
func (o *Orchestrator) bindMediaSession() {
	ms := o.mediaSession
	if ms == nil {
		return
	}
	ms.SetMetadata(o.media.Video)
	on := func(action MediaAction, fn func(ActionDetails)) {
		ms.SetActionHandler(action, func(d ActionDetails) {
			o.loop.Post(func() {
				if o.mounted {
					fn(d)
				}
			})
		})
	}
	on(ActionPlay, func(ActionDetails) { o.Play() })
	on(ActionPause, func(ActionDetails) { o.Pause() })
	on(ActionSeekForward, func(d ActionDetails) { o.Seek(seekStep(d)) })
	on(ActionSeekBackward, func(d ActionDetails) { o.Seek(-seekStep(d)) })
	on(ActionSeekTo, func(d ActionDetails) { o.SetTime(d.SeekTime) })
}

func seekStep(d ActionDetails) float64 {
	if d.SeekOffset > 0 {
		return d.SeekOffset
	}
	return mediaSeekStep
}

func (o *Orchestrator) reportStatus() {
	if o.mediaSession != nil {
		o.mediaSession.SetPlaybackState(o.state.Status())
	}
}

// reportPosition publishes the position only when duration, rate and
// position are all non-zero.
func (o *Orchestrator) reportPosition() {
	if o.mediaSession == nil {
		return
	}
	s := o.state
	if s.Duration == 0 || s.PlaybackRate == 0 || s.CurrentTime == 0 {
		return
	}
	o.mediaSession.SetPositionState(s.Duration, s.PlaybackRate, s.CurrentTime)
}

// HandleRoute applies the route query. A change of the integer "t"
// parameter seeks there; anything else is ignored.
func (o *Orchestrator) HandleRoute(q url.Values) {
	raw := q.Get("t")
	if raw == "" {
		return
	}
	t, err := strconv.Atoi(raw)
	if err != nil || t < 0 {
		return
	}
	if o.hasRoute && t == o.routeT {
		return
	}
	o.routeT, o.hasRoute = t, true
	o.SetTime(float64(t))
}
