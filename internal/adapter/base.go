package adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/media"
	"github.com/llehouerou/flipplayer/internal/runloop"
)

// base holds what every adapter shares: element wiring, the lifecycle
// flags, the track lists and the reload-based rendition switch.
type base struct {
	el      media.Element
	loop    *runloop.Loop
	fetcher Fetcher
	emit    func(Event)
	source  Source
	init    InitOptions

	offs      []func()
	cancel    context.CancelFunc
	destroyed bool
	loaded    bool

	live         bool
	duration     float64
	durationSent bool
	url          string
	loads        int // accepted loads the element has not answered yet

	video []Track
	audio []Track

	sw  *reloadSwitch
	sel map[Kind]*selection
}

// selection is an in-place rendition request waiting for the element to
// confirm it. auto marks adapter-driven selection for the kind.
type selection struct {
	trackID   string
	requested string
	auto      bool
}

// reloadSwitch is the in-flight pause, reload, restore, resume sequence.
type reloadSwitch struct {
	kind          Kind
	trackID       string
	requested     string
	previous      string
	previousURL   string
	resumeTime    float64
	resumePlaying bool
	reverting     bool
}

func newBase(opts Options) *base {
	return &base{
		el:      opts.Element,
		loop:    opts.Loop,
		fetcher: opts.Fetcher,
		emit:    opts.Emit,
		source:  opts.Source,
		live:    opts.Source.Live,
		sel:     make(map[Kind]*selection),
	}
}

func (b *base) send(ev Event) {
	if b.destroyed || b.emit == nil {
		return
	}
	b.emit(ev)
}

// attach registers the element listeners and applies initial settings.
func (b *base) attach(opts InitOptions) {
	b.init = opts
	on := func(ev media.Event, fn func()) {
		b.offs = append(b.offs, b.el.On(ev, func() {
			if !b.destroyed {
				fn()
			}
		}))
	}
	on(media.EventLoadedMetadata, b.onLoadedMetadata)
	on(media.EventTimeUpdate, b.onTimeUpdate)
	on(media.EventProgress, b.onProgress)
	on(media.EventVolumeChange, func() {
		b.send(VolumeChanged{Volume: b.el.Volume(), Muted: b.el.Muted()})
	})
	on(media.EventPlaying, func() {
		b.send(PlayingChanged{Playing: true})
		b.send(BufferingChanged{Buffering: false})
	})
	on(media.EventPause, func() { b.send(PlayingChanged{Playing: false}) })
	on(media.EventCanPlay, func() { b.send(BufferingChanged{Buffering: false}) })
	on(media.EventWaiting, func() { b.send(BufferingChanged{Buffering: true}) })
	on(media.EventEnded, func() { b.send(Ended{}) })
	on(media.EventError, b.onError)
	on(media.EventAbort, func() { b.settle() })

	b.send(BufferingChanged{Buffering: true})
	b.warn("set volume", b.el.SetVolume(clamp01(opts.Volume)))
	b.warn("set muted", b.el.SetMuted(opts.Muted))
}

func (b *base) onLoadedMetadata() {
	// Metadata of a replaced load must not complete the latest switch.
	if !b.settle() {
		return
	}
	b.syncDuration()
	if b.sw != nil {
		b.completeSwitch()
		return
	}
	if b.loaded {
		return
	}
	b.loaded = true
	if b.init.StartTime > 0 {
		t := b.clampTime(b.init.StartTime)
		b.warn("seek", b.el.SetCurrentTime(t))
		b.send(TimeUpdated{Time: t})
	}
	if b.init.Autoplay {
		b.warn("play", b.el.Play())
	}
}

func (b *base) onTimeUpdate() {
	// Positions reported while reloading belong to the new source's start.
	if b.sw != nil {
		return
	}
	b.syncDuration()
	b.send(TimeUpdated{Time: b.el.CurrentTime()})
}

func (b *base) onProgress() {
	b.syncDuration()
	b.send(BufferLevelChanged{Level: media.BufferLevel(b.el.Buffered(), b.el.CurrentTime(), b.el.Duration())})
}

func (b *base) onError() {
	if !b.settle() {
		return
	}
	err := b.el.Err()
	if err == nil {
		err = errors.New("media element error")
	}
	switch {
	case b.sw != nil:
		b.failSwitch(err)
	case !b.loaded:
		b.fail(err)
	default:
		b.send(ErrorOccurred{Err: fmt.Errorf("playback: %w", err), Fatal: true})
	}
}

// fail reports that the source could not be loaded.
func (b *base) fail(err error) {
	b.send(ErrorOccurred{
		Err:   &InitError{Source: b.source.Type, URL: b.source.URL, Err: err},
		Fatal: true,
	})
	b.send(BufferingChanged{Buffering: false})
}

func (b *base) syncDuration() {
	d := b.el.Duration()
	live := b.live || media.IsLive(d)
	if live {
		d = seekableEnd(b.el.Seekable())
	}
	if d <= 0 && !live {
		return
	}
	if b.durationSent && d == b.duration && live == b.live {
		return
	}
	b.live, b.duration, b.durationSent = live, d, true
	b.send(DurationKnown{Duration: d, Live: live})
}

func (b *base) clampTime(t float64) float64 {
	t = math.Max(t, 0)
	if b.live {
		if r := b.el.Seekable(); len(r) > 0 {
			return math.Max(r[0].Start, math.Min(t, r[len(r)-1].End))
		}
		return t
	}
	if d := b.el.Duration(); d > 0 && !media.IsLive(d) {
		t = math.Min(t, d)
	}
	return t
}

// load starts loading url as the adapter's initial source.
func (b *base) load(url string) {
	if err := b.loadURL(url); err != nil {
		b.fail(err)
	}
}

func (b *base) loadURL(url string) error {
	if err := b.el.Load(url); err != nil {
		return err
	}
	b.url = url
	b.loads++
	return nil
}

// settle accounts for one answered load and reports whether nothing newer
// is still loading.
func (b *base) settle() bool {
	if b.loads == 0 {
		return true
	}
	b.loads--
	return b.loads == 0
}

// fetch retrieves url off the loop and hands the result back on it, unless
// the adapter was destroyed in the meantime.
func (b *base) fetch(url string, done func([]byte, error)) {
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel
	go func() {
		body, err := b.fetcher.Fetch(ctx, url)
		b.loop.Post(func() {
			if b.destroyed {
				return
			}
			done(body, err)
		})
	}()
}

// Controls shared by every adapter.

func (b *base) Play() {
	if b.destroyed {
		return
	}
	if b.sw != nil {
		b.sw.resumePlaying = true
		return
	}
	b.warn("play", b.el.Play())
}

func (b *base) Pause() {
	if b.destroyed {
		return
	}
	if b.sw != nil {
		b.sw.resumePlaying = false
		return
	}
	b.warn("pause", b.el.Pause())
}

func (b *base) SetVolume(v float64) {
	if b.destroyed {
		return
	}
	b.warn("set volume", b.el.SetVolume(clamp01(v)))
}

func (b *base) SetPlaybackRate(rate float64) {
	if b.destroyed || rate <= 0 {
		return
	}
	if err := b.el.SetPlaybackRate(rate); err != nil {
		b.warn("set rate", err)
		return
	}
	b.send(RateChanged{Rate: rate})
}

func (b *base) SetTime(t float64) {
	if b.destroyed {
		return
	}
	t = b.clampTime(t)
	if b.sw != nil {
		b.sw.resumeTime = t
		return
	}
	b.send(BufferingChanged{Buffering: true})
	if err := b.el.SetCurrentTime(t); err != nil {
		b.warn("seek", err)
		b.send(BufferingChanged{Buffering: false})
		return
	}
	b.send(TimeUpdated{Time: t})
}

func (b *base) SetLanguage(code string) {
	if b.destroyed {
		return
	}
	ls, ok := b.el.(media.LanguageSelector)
	if !ok {
		logger.Log.Debug().Str("language", code).Msg("element cannot switch language")
		return
	}
	b.warn("set language", ls.SetLanguage(code))
}

func (b *base) Destroy() {
	if b.destroyed {
		return
	}
	b.destroyed = true
	for _, off := range b.offs {
		off()
	}
	b.offs = nil
	if b.cancel != nil {
		b.cancel()
	}
	b.sw = nil
	clear(b.sel)
	b.warn("pause", b.el.Pause())
}

// Reload-based switching, used where the element has no in-place switch.

// reloadRepresentation switches kind/trackID to repID by reloading its URL.
func (b *base) reloadRepresentation(kind Kind, trackID, repID string) {
	rep, err := b.findRepresentation(kind, trackID, repID)
	if err != nil {
		b.send(ErrorOccurred{Err: &SwitchError{Kind: kind, TrackID: trackID, RepresentationID: repID, Err: err}})
		return
	}
	b.switchReload(kind, trackID, repID, rep.URL)
}

// switchReload pauses, remembers the position, loads url, and on the next
// loadedmetadata restores the position and resumes if playback was running.
// A request made while another is in flight replaces it and keeps the first
// request's snapshot, so only the latest representation is ever applied.
func (b *base) switchReload(kind Kind, trackID, repID, url string) {
	if b.destroyed {
		return
	}
	if b.sw == nil && repID == b.activeID(kind, trackID) && url == b.url {
		return
	}

	sw := &reloadSwitch{kind: kind, trackID: trackID, requested: repID}
	if prev := b.sw; prev != nil {
		sw.resumeTime, sw.resumePlaying = prev.resumeTime, prev.resumePlaying
		sw.previous, sw.previousURL = prev.previous, prev.previousURL
	} else {
		sw.resumeTime = b.el.CurrentTime()
		sw.resumePlaying = !b.el.Paused()
		sw.previous = b.activeID(kind, trackID)
		sw.previousURL = b.url
	}
	b.sw = sw

	b.send(RepresentationChanged{Kind: kind, TrackID: trackID, Requested: repID, Rendered: sw.previous})
	b.send(BufferingChanged{Buffering: true})
	b.warn("pause", b.el.Pause())
	if err := b.loadURL(url); err != nil {
		b.failSwitch(err)
	}
}

func (b *base) completeSwitch() {
	sw := b.sw
	b.sw = nil

	t := b.clampTime(sw.resumeTime)
	b.warn("seek", b.el.SetCurrentTime(t))
	if sw.resumePlaying {
		b.warn("play", b.el.Play())
	}
	b.setActive(sw.kind, sw.trackID, sw.requested)
	b.send(TracksChanged{Video: b.video, Audio: b.audio})
	b.send(RepresentationChanged{Kind: sw.kind, TrackID: sw.trackID, Requested: sw.requested, Rendered: sw.requested})
	b.send(TimeUpdated{Time: t})
}

// failSwitch reports the failure and reloads the previous representation at
// the remembered position. If that fails too, playback is over.
func (b *base) failSwitch(err error) {
	sw := b.sw
	b.sw = nil
	b.send(ErrorOccurred{Err: &SwitchError{Kind: sw.kind, TrackID: sw.trackID, RepresentationID: sw.requested, Err: err}})

	if sw.reverting || sw.previousURL == "" {
		b.send(ErrorOccurred{Err: fmt.Errorf("restore previous representation: %w", err), Fatal: true})
		b.send(BufferingChanged{Buffering: false})
		return
	}

	b.send(RepresentationChanged{Kind: sw.kind, TrackID: sw.trackID, Requested: sw.previous, Rendered: sw.previous})
	rev := *sw
	rev.requested = sw.previous
	rev.reverting = true
	b.sw = &rev
	if err := b.loadURL(sw.previousURL); err != nil {
		b.failSwitch(err)
	}
}

// In-place switching through media.RenditionSelector. Element renditions
// are numbered per kind in track order, then representation order.

// watchRenditions follows the renditions the element actually renders for
// the given kinds.
func (b *base) watchRenditions(kinds ...Kind) {
	rs, ok := b.el.(media.RenditionSelector)
	if !ok {
		return
	}
	b.offs = append(b.offs, rs.OnRenditionRendered(func(kind media.StreamKind, index int) {
		if !b.destroyed && slices.Contains(kinds, kind) {
			b.onRendered(kind, index)
		}
	}))
}

func (b *base) selectInPlace(kind Kind, trackID, repID string) {
	if b.destroyed {
		return
	}
	fail := func(err error) {
		delete(b.sel, kind)
		b.send(ErrorOccurred{Err: &SwitchError{Kind: kind, TrackID: trackID, RepresentationID: repID, Err: err}})
		active := b.activeID(kind, trackID)
		b.send(RepresentationChanged{Kind: kind, TrackID: trackID, Requested: active, Rendered: active})
	}
	rs, ok := b.el.(media.RenditionSelector)
	if !ok {
		fail(ErrNoSelector)
		return
	}
	index := b.renditionIndex(kind, trackID, repID)
	if index < 0 {
		fail(ErrUnknownRepresentation)
		return
	}
	b.sel[kind] = &selection{trackID: trackID, requested: repID}
	b.send(RepresentationChanged{Kind: kind, TrackID: trackID, Requested: repID, Rendered: b.activeID(kind, trackID)})
	if err := rs.SelectRendition(kind, index); err != nil {
		fail(err)
	}
}

func (b *base) autoInPlace(kind Kind) {
	if b.destroyed {
		return
	}
	rs, ok := b.el.(media.RenditionSelector)
	if !ok {
		b.send(ErrorOccurred{Err: &SwitchError{Kind: kind, Err: ErrNoSelector}})
		return
	}
	if err := rs.SetAutoRendition(kind); err != nil {
		b.send(ErrorOccurred{Err: &SwitchError{Kind: kind, Err: err}})
		return
	}
	b.sel[kind] = &selection{auto: true}
	for _, t := range b.tracks(kind) {
		b.send(RepresentationChanged{Kind: kind, TrackID: t.ID, Rendered: t.ActiveRepresentationID})
	}
}

// onRendered applies a render confirmation. While a manual request is
// pending, confirmations of anything else are stale and dropped.
func (b *base) onRendered(kind Kind, index int) {
	trackID, repID, ok := b.renditionAt(kind, index)
	if !ok {
		return
	}
	requested := ""
	if p := b.sel[kind]; p != nil && !p.auto {
		if p.trackID != trackID || p.requested != repID {
			return
		}
		requested = p.requested
		delete(b.sel, kind)
	}
	if b.activeID(kind, trackID) == repID && requested == "" {
		return
	}
	b.setActive(kind, trackID, repID)
	b.send(TracksChanged{Video: b.video, Audio: b.audio})
	b.send(RepresentationChanged{Kind: kind, TrackID: trackID, Requested: requested, Rendered: repID})
}

func (b *base) renditionIndex(kind Kind, trackID, repID string) int {
	i := 0
	for _, t := range b.tracks(kind) {
		for _, r := range t.Representations {
			if t.ID == trackID && r.ID == repID {
				return i
			}
			i++
		}
	}
	return -1
}

func (b *base) renditionAt(kind Kind, index int) (trackID, repID string, ok bool) {
	i := 0
	for _, t := range b.tracks(kind) {
		for _, r := range t.Representations {
			if i == index {
				return t.ID, r.ID, true
			}
			i++
		}
	}
	return "", "", false
}

// Track bookkeeping. Track slices are replaced, never edited, because the
// owner keeps the slices it was sent.

func (b *base) tracks(kind Kind) []Track {
	if kind == KindAudio {
		return b.audio
	}
	return b.video
}

func (b *base) setTracks(kind Kind, tracks []Track) {
	if kind == KindAudio {
		b.audio = tracks
	} else {
		b.video = tracks
	}
}

func (b *base) track(kind Kind, trackID string) (Track, bool) {
	for _, t := range b.tracks(kind) {
		if t.ID == trackID {
			return t, true
		}
	}
	return Track{}, false
}

func (b *base) activeID(kind Kind, trackID string) string {
	t, _ := b.track(kind, trackID)
	return t.ActiveRepresentationID
}

func (b *base) findRepresentation(kind Kind, trackID, repID string) (Representation, error) {
	t, ok := b.track(kind, trackID)
	if !ok {
		return Representation{}, fmt.Errorf("unknown %s track %q", kind, trackID)
	}
	r, ok := t.Representation(repID)
	if !ok {
		return Representation{}, ErrUnknownRepresentation
	}
	return r, nil
}

func (b *base) setActive(kind Kind, trackID, repID string) {
	tracks := slices.Clone(b.tracks(kind))
	for i := range tracks {
		if tracks[i].ID == trackID {
			tracks[i].ActiveRepresentationID = repID
		}
	}
	b.setTracks(kind, tracks)
}

func (b *base) warn(op string, err error) {
	if err == nil {
		return
	}
	logger.Log.Debug().Err(err).Str("op", op).Str("source", b.source.Type.String()).Msg("element call failed")
}

func seekableEnd(ranges []media.TimeRange) float64 {
	if len(ranges) == 0 {
		return 0
	}
	return ranges[len(ranges)-1].End
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
