// internal/playback/orchestrator.go
package playback

import (
	"errors"
	"math"
	"slices"
	"sync"

	"github.com/llehouerou/flipplayer/internal/adapter"
	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/media"
	"github.com/llehouerou/flipplayer/internal/runloop"
)

const (
	defaultVolume  = 1.0
	unmuteVolume   = 0.5
	mediaSeekStep  = 5.0
	messageInit    = "Instantiating player"
	messageLoading = "Loading manifest"
)

// Media is what the orchestrator plays: the video's metadata, its source and
// where to start.
type Media struct {
	Video     Video
	Source    adapter.Source
	StartTime float64
}

// Options wire an Orchestrator. Only Loop and Element are required.
type Options struct {
	Loop         *runloop.Loop
	Element      media.Element
	Settings     Settings
	Volumes      VolumeStore
	History      History
	Session      Session
	MediaSession MediaSession
	Reporter     ErrorReporter
	Fetcher      adapter.Fetcher
	// Embedded players never write history.
	Embedded bool
}

// Orchestrator owns the playback state and the one live adapter.
//
// Every method must be called on the loop, except Subscribe. Operations
// never return errors: failures land in State.PlayerError or go to the
// ErrorReporter.
type Orchestrator struct {
	loop         *runloop.Loop
	el           media.Element
	settings     Settings
	volumes      VolumeStore
	history      History
	session      Session
	mediaSession MediaSession
	reporter     ErrorReporter
	fetcher      adapter.Fetcher
	embedded     bool

	media   Media
	state   State
	adapter adapter.Adapter
	epoch   int
	mounted bool
	offs    []func()

	saver    *saver
	routeT   int
	hasRoute bool

	// quality mode of a kind before its switch in flight, restored if
	// the switch fails.
	modeBefore map[adapter.Kind]bool

	observers []*func(StateChange)

	// changes made while observers run wait here so that everyone sees
	// them in order.
	queued      []StateChange
	dispatching bool

	subs   []*Subscription
	subsMu sync.RWMutex
}

// New creates an orchestrator. Nothing happens until Mount.
func New(opts Options) *Orchestrator {
	if opts.Settings == nil {
		opts.Settings = defaultSettings{}
	}
	o := &Orchestrator{
		loop:         opts.Loop,
		el:           opts.Element,
		settings:     opts.Settings,
		volumes:      opts.Volumes,
		history:      opts.History,
		session:      opts.Session,
		mediaSession: opts.MediaSession,
		reporter:     opts.Reporter,
		fetcher:      opts.Fetcher,
		embedded:     opts.Embedded,
		state:        State{Volume: defaultVolume, PlaybackRate: 1},
		modeBefore:   make(map[adapter.Kind]bool),
	}
	o.saver = newSaver(o)
	return o
}

// State returns a copy of the current state.
func (o *Orchestrator) State() State {
	return o.state
}

// Media returns what is mounted.
func (o *Orchestrator) Media() Media {
	return o.media
}

// Mount applies the user defaults and starts playing m. Mounting again
// behaves like SetSource.
func (o *Orchestrator) Mount(m Media) {
	if o.mounted {
		o.SetSource(m)
		return
	}
	o.mounted = true
	o.media = m

	volume, muted := defaultVolume, false
	if o.volumes != nil {
		vs, err := o.volumes.GetVolume()
		switch {
		case err != nil:
			logger.Log.Debug().Err(err).Msg(errmsg.OpVolumeLoad.Failed())
		case vs != nil:
			volume, muted = clamp01(vs.Volume), vs.Muted
		}
	}
	rate := o.settings.DefaultVideoSpeed()
	if rate <= 0 {
		rate = 1
	}
	loop := o.settings.AlwaysLoopVideo()
	if err := o.el.SetLoop(loop); err != nil {
		logger.Log.Debug().Err(err).Msg("set loop")
	}
	o.offs = append(o.offs, o.el.On(media.EventLoopChange, o.reconcileLoop))

	o.update(func(s *State) {
		s.Volume, s.Muted = volume, muted
		s.PlaybackRate = rate
		s.Loop = loop
		s.AutomaticVideoQuality, s.AutomaticAudioQuality = true, true
		s.BufferMessage = messageInit
	})
	o.bindMediaSession()
	o.createAdapter(m.StartTime)
}

// SetSource replaces the adapter when the source changes. The same source
// again is a no-op.
func (o *Orchestrator) SetSource(m Media) {
	if !o.mounted {
		o.Mount(m)
		return
	}
	if sameSource(o.media.Source, m.Source) && o.media.Video.ID == m.Video.ID {
		return
	}
	o.saver.save(true)
	o.media = m
	o.saver.reset()
	o.hasRoute = false
	if o.mediaSession != nil {
		o.mediaSession.SetMetadata(m.Video)
	}
	o.createAdapter(m.StartTime)
}

// Unmount saves the position one last time and tears everything down.
func (o *Orchestrator) Unmount() {
	if !o.mounted {
		return
	}
	o.saver.save(true)
	o.mounted = false
	o.epoch++
	if o.adapter != nil {
		o.adapter.Destroy()
		o.adapter = nil
	}
	for _, off := range o.offs {
		off()
	}
	o.offs = nil
	if o.mediaSession != nil {
		o.mediaSession.ClearActionHandlers()
	}
}

// WaitSaves blocks until every progress save already started has finished.
// It may be called from any goroutine.
func (o *Orchestrator) WaitSaves() {
	o.saver.pending.Wait()
}

// Close ends all subscriptions.
func (o *Orchestrator) Close() {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	for _, sub := range o.subs {
		sub.close()
	}
	o.subs = nil
}

func (o *Orchestrator) createAdapter(start float64) {
	if o.adapter != nil {
		o.adapter.Destroy()
		o.adapter = nil
	}
	o.epoch++
	epoch := o.epoch
	src := o.media.Source
	clear(o.modeBefore)

	o.update(func(s *State) {
		s.Playing, s.Buffering, s.Ended = false, true, false
		s.BufferLevel = 0
		s.CurrentTime = math.Max(start, 0)
		s.Duration, s.DurationKnown = 0, false
		s.Live = src.Live
		s.VideoTracks, s.AudioTracks = nil, nil
		s.PendingVideoRepresentation, s.PendingAudioRepresentation = "", ""
		s.PlayerError = nil
		if src.Type != adapter.Progressive {
			s.BufferMessage = messageLoading
		}
	})

	a, err := adapter.New(src.Type, adapter.Options{
		Element: o.el,
		Source:  src,
		Loop:    o.loop,
		Fetcher: o.fetcher,
		Emit: func(ev adapter.Event) {
			if epoch != o.epoch {
				return
			}
			o.handle(ev)
		},
	})
	if err != nil {
		o.fail(errmsg.OpLoadSource, err)
		return
	}
	o.adapter = a
	a.Initialize(adapter.InitOptions{
		StartTime:      start,
		Autoplay:       o.settings.Autoplay(),
		Volume:         o.state.Volume,
		Muted:          o.state.Muted,
		MaxVideoHeight: o.settings.MaxVideoQuality(),
	})
	if o.state.PlaybackRate != 1 {
		a.SetPlaybackRate(o.state.PlaybackRate)
	}
}

func (o *Orchestrator) handle(ev adapter.Event) {
	switch e := ev.(type) {
	case adapter.BufferingChanged:
		o.update(func(s *State) {
			s.Buffering = e.Buffering
			if !e.Buffering {
				s.BufferMessage = ""
			}
		})
		o.reportStatus()
	case adapter.TimeUpdated:
		o.update(func(s *State) {
			s.CurrentTime = o.clampTime(e.Time)
		})
		o.saver.save(false)
		o.reportPosition()
	case adapter.DurationKnown:
		o.update(func(s *State) {
			s.Duration, s.DurationKnown, s.Live = e.Duration, true, e.Live
			s.CurrentTime = o.clampTime(s.CurrentTime)
			s.BufferMessage = ""
		})
	case adapter.TracksChanged:
		o.update(func(s *State) {
			s.VideoTracks, s.AudioTracks = e.Video, e.Audio
		})
	case adapter.RepresentationChanged:
		pending := ""
		if e.Pending() {
			pending = e.Requested
		} else {
			delete(o.modeBefore, e.Kind)
		}
		o.update(func(s *State) {
			if e.Kind == adapter.KindAudio {
				s.PendingAudioRepresentation = pending
			} else {
				s.PendingVideoRepresentation = pending
			}
		})
	case adapter.PlayingChanged:
		o.update(func(s *State) {
			s.Playing = e.Playing
			if e.Playing {
				s.Ended = false
			}
		})
		o.reportStatus()
	case adapter.VolumeChanged:
		o.update(func(s *State) {
			// A muted element keeps the last audible volume.
			s.Muted = e.Muted
			if !e.Muted {
				s.Volume = e.Volume
			}
		})
	case adapter.RateChanged:
		o.update(func(s *State) { s.PlaybackRate = e.Rate })
		o.reportPosition()
	case adapter.BufferLevelChanged:
		o.update(func(s *State) { s.BufferLevel = e.Level })
	case adapter.ErrorOccurred:
		if e.Fatal {
			o.fail(fatalOp(e.Err), e.Err)
			return
		}
		o.restoreQualityMode(e.Err)
		o.report(errmsg.OpSwitchQuality, e.Err, false)
	case adapter.Ended:
		o.update(func(s *State) {
			s.Playing, s.Ended = false, true
		})
		o.saver.save(true)
		o.reportStatus()
	}
}

// fail stores a fatal error and halts. There is no retry.
func (o *Orchestrator) fail(op errmsg.Op, err error) {
	o.update(func(s *State) {
		s.PlayerError = err
		s.Playing, s.Buffering = false, false
		s.BufferMessage = ""
	})
	o.report(op, err, true)
	o.reportStatus()
}

func (o *Orchestrator) report(op errmsg.Op, err error, fatal bool) {
	logger.Log.Warn().Err(err).Str("op", string(op)).Bool("fatal", fatal).Msg("playback error")
	if o.reporter != nil {
		o.reporter.ReportError(op, err)
	}
	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		sub.sendError(ErrorEvent{Operation: op, Err: err, Fatal: fatal})
	}
}

func (o *Orchestrator) reconcileLoop() {
	if loop := o.el.Loop(); loop != o.state.Loop {
		o.update(func(s *State) { s.Loop = loop })
	}
}

func (o *Orchestrator) clampTime(t float64) float64 {
	t = math.Max(t, 0)
	if o.state.DurationKnown && !o.state.Live {
		t = math.Min(t, o.state.Duration)
	}
	return t
}

// Public operations.

// Play starts or resumes playback.
func (o *Orchestrator) Play() {
	if o.adapter == nil {
		return
	}
	o.adapter.Play()
}

// Pause pauses and saves the position right away.
func (o *Orchestrator) Pause() {
	if o.adapter == nil {
		return
	}
	o.adapter.Pause()
	o.saver.save(true)
}

// TogglePlay plays when paused and pauses when playing.
func (o *Orchestrator) TogglePlay() {
	if o.state.Playing {
		o.Pause()
	} else {
		o.Play()
	}
}

// SetVolume stores the volume and forwards it.
func (o *Orchestrator) SetVolume(v float64) {
	v = clamp01(v)
	o.update(func(s *State) { s.Volume = v })
	if o.volumes != nil {
		o.volumes.SaveVolume(v, o.state.Muted)
	}
	if o.adapter != nil {
		o.adapter.SetVolume(v)
	}
}

// SetMuted mutes or unmutes the element. Unmuting at volume 0 restores a
// half volume so that unmuting is audible.
func (o *Orchestrator) SetMuted(muted bool) {
	if err := o.el.SetMuted(muted); err != nil {
		logger.Log.Debug().Err(err).Msg("set muted")
		return
	}
	o.update(func(s *State) { s.Muted = muted })
	if !muted && o.state.Volume == 0 {
		o.SetVolume(unmuteVolume)
		return
	}
	if o.volumes != nil {
		o.volumes.SaveVolume(o.state.Volume, muted)
	}
}

// SetPlaybackRate changes the speed; non-positive rates are ignored.
func (o *Orchestrator) SetPlaybackRate(rate float64) {
	if rate <= 0 || o.adapter == nil {
		return
	}
	o.adapter.SetPlaybackRate(rate)
}

// SetTime seeks, then saves the position on the next loop tick, once the
// seek has landed in the state.
func (o *Orchestrator) SetTime(t float64) {
	if o.adapter == nil {
		return
	}
	o.adapter.SetTime(t)
	epoch := o.epoch
	o.loop.Post(func() {
		if epoch == o.epoch {
			o.saver.save(true)
		}
	})
}

// Seek moves by delta seconds from the current position.
func (o *Orchestrator) Seek(delta float64) {
	o.SetTime(o.state.CurrentTime + delta)
}

// SetLoop sets the element's loop attribute.
func (o *Orchestrator) SetLoop(loop bool) {
	if err := o.el.SetLoop(loop); err != nil {
		logger.Log.Debug().Err(err).Msg("set loop")
		return
	}
	o.update(func(s *State) { s.Loop = loop })
}

// SetLanguage selects the audio language.
func (o *Orchestrator) SetLanguage(code string) {
	o.update(func(s *State) { s.SelectedLanguage = code })
	if o.adapter != nil {
		o.adapter.SetLanguage(code)
	}
}

// SetVideoRepresentation switches to a manual video quality.
func (o *Orchestrator) SetVideoRepresentation(trackID, representationID string) {
	o.setRepresentation(adapter.KindVideo, trackID, representationID)
}

// SetAudioRepresentation switches to a manual audio quality.
func (o *Orchestrator) SetAudioRepresentation(trackID, representationID string) {
	o.setRepresentation(adapter.KindAudio, trackID, representationID)
}

func (o *Orchestrator) setRepresentation(kind adapter.Kind, trackID, repID string) {
	if o.adapter == nil {
		return
	}
	o.setQualityMode(kind, false)
	o.adapter.SetRepresentation(kind, trackID, repID)
}

// SetAutoVideoQuality hands video quality back to the adapter.
func (o *Orchestrator) SetAutoVideoQuality() {
	o.setAuto(adapter.KindVideo)
}

// SetAutoAudioQuality hands audio quality back to the adapter.
func (o *Orchestrator) SetAutoAudioQuality() {
	o.setAuto(adapter.KindAudio)
}

func (o *Orchestrator) setAuto(kind adapter.Kind) {
	if o.adapter == nil {
		return
	}
	o.setQualityMode(kind, true)
	o.adapter.SetAutoQuality(kind)
}

// setQualityMode records the mode the adapter is in before switching it.
func (o *Orchestrator) setQualityMode(kind adapter.Kind, automatic bool) {
	if _, ok := o.modeBefore[kind]; !ok {
		o.modeBefore[kind] = o.automaticQuality(kind)
	}
	o.update(func(s *State) {
		if kind == adapter.KindAudio {
			s.AutomaticAudioQuality = automatic
		} else {
			s.AutomaticVideoQuality = automatic
		}
	})
}

func (o *Orchestrator) automaticQuality(kind adapter.Kind) bool {
	if kind == adapter.KindAudio {
		return o.state.AutomaticAudioQuality
	}
	return o.state.AutomaticVideoQuality
}

// restoreQualityMode puts back the mode a failed switch replaced; the
// adapter keeps playing what it played before.
func (o *Orchestrator) restoreQualityMode(err error) {
	var swErr *adapter.SwitchError
	if !errors.As(err, &swErr) {
		return
	}
	automatic, ok := o.modeBefore[swErr.Kind]
	if !ok {
		return
	}
	delete(o.modeBefore, swErr.Kind)
	o.update(func(s *State) {
		if swErr.Kind == adapter.KindAudio {
			s.AutomaticAudioQuality = automatic
		} else {
			s.AutomaticVideoQuality = automatic
		}
	})
}

// Observers and subscriptions.

// Observe calls fn on the loop after every state mutation, until the
// returned function is called.
func (o *Orchestrator) Observe(fn func(StateChange)) func() {
	p := &fn
	o.observers = append(o.observers, p)
	return func() {
		if i := slices.Index(o.observers, p); i >= 0 {
			o.observers = slices.Delete(slices.Clone(o.observers), i, i+1)
		}
	}
}

// Subscribe creates a channel subscription. Safe from any goroutine.
func (o *Orchestrator) Subscribe() *Subscription {
	o.subsMu.Lock()
	defer o.subsMu.Unlock()
	sub := newSubscription()
	o.subs = append(o.subs, sub)
	return sub
}

func (o *Orchestrator) update(fn func(*State)) {
	prev := o.state
	fn(&o.state)
	o.queued = append(o.queued, StateChange{Previous: prev, Current: o.state})
	if o.dispatching {
		return
	}
	o.dispatching = true
	defer func() { o.dispatching = false }()
	for len(o.queued) > 0 {
		change := o.queued[0]
		o.queued = o.queued[1:]
		o.dispatch(change)
	}
}

func (o *Orchestrator) dispatch(change StateChange) {
	for _, obs := range o.observers {
		(*obs)(change)
	}

	o.subsMu.RLock()
	defer o.subsMu.RUnlock()
	for _, sub := range o.subs {
		sub.sendState(change)
	}
}

// fatalOp names the step that failed: startup or playback itself.
func fatalOp(err error) errmsg.Op {
	var initErr *adapter.InitError
	if errors.As(err, &initErr) {
		return errmsg.OpLoadSource
	}
	return errmsg.OpPlayback
}

func sameSource(a, b adapter.Source) bool {
	return a.Type == b.Type && a.URL == b.URL && a.Live == b.Live && slices.Equal(a.Formats, b.Formats)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

type defaultSettings struct{}

func (defaultSettings) SaveVideoHistory() bool     { return false }
func (defaultSettings) AlwaysLoopVideo() bool      { return false }
func (defaultSettings) DefaultVideoSpeed() float64 { return 1 }
func (defaultSettings) MaxVideoQuality() int       { return 0 }
func (defaultSettings) Autoplay() bool             { return false }
