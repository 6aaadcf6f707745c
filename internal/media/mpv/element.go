// Package mpv implements media.Element on top of an mpv process driven
// through its JSON IPC socket.
package mpv

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/llehouerou/flipplayer/internal/logger"
	"github.com/llehouerou/flipplayer/internal/media"
	"github.com/llehouerou/flipplayer/internal/runloop"
)

var errClosed = errors.New("mpv connection closed")

// timeUpdateStep is the minimum playback progress between two timeupdate
// events; mpv reports time-pos on every frame.
const timeUpdateStep = 0.25

// observed properties, in observe_property id order (ids start at 1).
var observed = []string{
	"time-pos",
	"duration",
	"pause",
	"paused-for-cache",
	"seeking",
	"volume",
	"mute",
	"speed",
	"loop-file",
	"demuxer-cache-time",
	"eof-reached",
	"fullscreen",
	"track-list",
	"vid",
	"aid",
	"sid",
}

type track struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Lang  string `json:"lang"`
	Title string `json:"title"`
}

// Element is an mpv-backed media element. Its state is owned by the loop:
// the IPC read loop posts every message there before it is applied.
type Element struct {
	loop *runloop.Loop
	conn *conn
	proc *process
	done chan struct{}

	timePos    float64
	lastTime   float64
	duration   float64
	paused     bool
	cacheWait  bool
	volume     float64
	muted      bool
	rate       float64
	looping    bool
	cacheTime  float64
	fullscreen bool
	tracks     []track
	sid        int
	err        error

	// request ids of loadfile commands mpv has not acknowledged yet, and
	// the number of loads still waiting for their outcome.
	unacked    []int64
	unanswered int

	listeners   media.Listeners
	rendered    []*func(media.StreamKind, int)
	fsListeners []*func(bool)
}

// Dial connects to an mpv instance already listening on socketPath.
func Dial(loop *runloop.Loop, socketPath string) (*Element, error) {
	c, err := dial(socketPath)
	if err != nil {
		return nil, err
	}
	e := &Element{
		loop:   loop,
		conn:   c,
		done:   make(chan struct{}),
		paused: true,
		volume: 1,
		rate:   1,
	}
	for i, name := range observed {
		if _, err := c.send("observe_property", i+1, name); err != nil {
			_ = c.close()
			return nil, fmt.Errorf("observe %s: %w", name, err)
		}
	}
	go func() {
		defer close(e.done)
		if err := c.readLoop(func(msg message) {
			loop.Post(func() { e.apply(msg) })
		}); err != nil {
			logger.Log.Debug().Err(err).Msg("mpv read loop ended")
		}
	}()
	return e, nil
}

// Done is closed when the IPC connection ends, typically because the mpv
// window was closed.
func (e *Element) Done() <-chan struct{} {
	return e.done
}

// Close asks mpv to quit and releases the connection and process.
func (e *Element) Close() error {
	_, _ = e.conn.send("quit")
	err := e.conn.close()
	if e.proc != nil {
		e.proc.stop()
	}
	return err
}

func (e *Element) apply(msg message) {
	switch msg.Event {
	case "":
		e.unacked = slices.DeleteFunc(e.unacked, func(id int64) bool { return id == msg.RequestID })
		if msg.Error != "" && msg.Error != "success" {
			logger.Log.Debug().
				Int64("request_id", msg.RequestID).
				Str("error", msg.Error).
				Msg("mpv command failed")
		}
	case "file-loaded":
		e.err = nil
		e.lastTime = math.Inf(-1)
		e.answer(media.EventLoadedMetadata)
	case "playback-restart":
		e.listeners.Emit(media.EventCanPlay)
		if !e.paused {
			e.listeners.Emit(media.EventPlaying)
		}
	case "end-file":
		if msg.Reason == "error" {
			e.err = fmt.Errorf("mpv: %s", msg.FileError)
			e.answer(media.EventError)
		}
	case "property-change":
		e.property(msg.Name, msg.Data)
	}
}

// answer delivers the outcome of a load. Once mpv has acknowledged every
// loadfile, an outcome belongs to the latest one and the loads still
// unanswered before it were replaced before they opened.
func (e *Element) answer(ev media.Event) {
	if e.unanswered > 0 {
		if len(e.unacked) == 0 {
			for ; e.unanswered > 1; e.unanswered-- {
				e.listeners.Emit(media.EventAbort)
			}
		}
		e.unanswered--
	}
	e.listeners.Emit(ev)
}

func (e *Element) property(name string, data json.RawMessage) {
	switch name {
	case "time-pos":
		t, ok := decodeFloat(data)
		if !ok {
			return
		}
		e.timePos = t
		if t < e.lastTime || t-e.lastTime >= timeUpdateStep {
			e.lastTime = t
			e.listeners.Emit(media.EventTimeUpdate)
		}
	case "duration":
		d, _ := decodeFloat(data)
		e.duration = d
	case "pause":
		b, _ := decodeBool(data)
		if b == e.paused {
			return
		}
		e.paused = b
		if b {
			e.listeners.Emit(media.EventPause)
		} else if !e.cacheWait {
			e.listeners.Emit(media.EventPlaying)
		}
	case "paused-for-cache":
		b, _ := decodeBool(data)
		e.cacheWait = b
		if b {
			e.listeners.Emit(media.EventWaiting)
		} else {
			e.listeners.Emit(media.EventCanPlay)
		}
	case "seeking":
		if b, _ := decodeBool(data); b {
			e.listeners.Emit(media.EventWaiting)
		}
	case "volume":
		if v, ok := decodeFloat(data); ok {
			e.volume = v / 100
			e.listeners.Emit(media.EventVolumeChange)
		}
	case "mute":
		e.muted, _ = decodeBool(data)
		e.listeners.Emit(media.EventVolumeChange)
	case "speed":
		if r, ok := decodeFloat(data); ok {
			e.rate = r
		}
	case "loop-file":
		loop := decodeLoop(data)
		if loop != e.looping {
			e.looping = loop
			e.listeners.Emit(media.EventLoopChange)
		}
	case "demuxer-cache-time":
		e.cacheTime, _ = decodeFloat(data)
		e.listeners.Emit(media.EventProgress)
	case "eof-reached":
		if b, _ := decodeBool(data); b {
			e.listeners.Emit(media.EventEnded)
		}
	case "fullscreen":
		e.fullscreen, _ = decodeBool(data)
		for _, fn := range slices.Clone(e.fsListeners) {
			(*fn)(e.fullscreen)
		}
	case "track-list":
		var tracks []track
		if err := json.Unmarshal(data, &tracks); err == nil {
			e.tracks = tracks
		}
	case "vid":
		e.renderedTrack(media.Video, "video", decodeTrackID(data))
	case "aid":
		e.renderedTrack(media.Audio, "audio", decodeTrackID(data))
	case "sid":
		e.sid = decodeTrackID(data)
	}
}

func (e *Element) renderedTrack(kind media.StreamKind, typ string, id int) {
	index := e.trackIndex(typ, id)
	if index < 0 {
		return
	}
	for _, fn := range slices.Clone(e.rendered) {
		(*fn)(kind, index)
	}
}

func (e *Element) tracksOfType(typ string) []track {
	var out []track
	for _, t := range e.tracks {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

func (e *Element) trackIndex(typ string, id int) int {
	for i, t := range e.tracksOfType(typ) {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (e *Element) command(args ...any) error {
	_, err := e.conn.send(args...)
	return err
}

func (e *Element) set(name string, value any) error {
	return e.command("set_property", name, value)
}

// media.Element

func (e *Element) Load(src string) error {
	e.duration = 0
	e.cacheTime = 0
	id, err := e.conn.send("loadfile", src, "replace")
	if err != nil {
		return err
	}
	e.unacked = append(e.unacked, id)
	e.unanswered++
	return nil
}

func (e *Element) Play() error { return e.set("pause", false) }

func (e *Element) Pause() error { return e.set("pause", true) }

func (e *Element) Paused() bool { return e.paused }

func (e *Element) CurrentTime() float64 { return e.timePos }

func (e *Element) SetCurrentTime(t float64) error {
	e.timePos = t
	e.lastTime = t
	return e.command("seek", t, "absolute")
}

func (e *Element) Duration() float64 { return e.duration }

func (e *Element) Buffered() []media.TimeRange {
	if e.cacheTime <= 0 {
		return nil
	}
	return []media.TimeRange{{Start: 0, End: e.cacheTime}}
}

func (e *Element) Seekable() []media.TimeRange {
	if e.duration > 0 {
		return []media.TimeRange{{Start: 0, End: e.duration}}
	}
	return e.Buffered()
}

func (e *Element) Volume() float64 { return e.volume }

func (e *Element) SetVolume(v float64) error {
	e.volume = v
	return e.set("volume", v*100)
}

func (e *Element) Muted() bool { return e.muted }

func (e *Element) SetMuted(muted bool) error {
	e.muted = muted
	return e.set("mute", muted)
}

func (e *Element) PlaybackRate() float64 { return e.rate }

func (e *Element) SetPlaybackRate(rate float64) error {
	e.rate = rate
	return e.set("speed", rate)
}

func (e *Element) Loop() bool { return e.looping }

func (e *Element) SetLoop(loop bool) error {
	value := "no"
	if loop {
		value = "inf"
	}
	return e.set("loop-file", value)
}

func (e *Element) Err() error { return e.err }

func (e *Element) On(ev media.Event, fn func()) func() {
	return e.listeners.Add(ev, fn)
}

// media.RenditionSelector

func (e *Element) SelectRendition(kind media.StreamKind, index int) error {
	prop, typ := trackProperty(kind)
	tracks := e.tracksOfType(typ)
	if index < 0 || index >= len(tracks) {
		return fmt.Errorf("no %s track at index %d", typ, index)
	}
	return e.set(prop, tracks[index].ID)
}

func (e *Element) SetAutoRendition(kind media.StreamKind) error {
	prop, _ := trackProperty(kind)
	return e.set(prop, "auto")
}

func (e *Element) OnRenditionRendered(fn func(media.StreamKind, int)) func() {
	p := &fn
	e.rendered = append(e.rendered, p)
	return func() {
		for i, x := range e.rendered {
			if x == p {
				e.rendered = append(e.rendered[:i:i], e.rendered[i+1:]...)
				return
			}
		}
	}
}

func trackProperty(kind media.StreamKind) (prop, typ string) {
	if kind == media.Audio {
		return "aid", "audio"
	}
	return "vid", "video"
}

// media.LanguageSelector

func (e *Element) SetLanguage(code string) error {
	for _, t := range e.tracksOfType("audio") {
		if t.Lang == code {
			return e.set("aid", t.ID)
		}
	}
	return e.set("alang", code)
}

// media.Captions

func (e *Element) CaptionTracks() []string {
	var ids []string
	for _, t := range e.tracksOfType("sub") {
		ids = append(ids, strconv.Itoa(t.ID))
	}
	return ids
}

func (e *Element) ActiveCaption() string {
	if e.sid <= 0 {
		return ""
	}
	return strconv.Itoa(e.sid)
}

func (e *Element) SetCaption(id string) error {
	if id == "" {
		return e.set("sid", "no")
	}
	n, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("caption id %q: %w", id, err)
	}
	return e.set("sid", n)
}

// media.Fullscreen

func (e *Element) RequestFullscreen() error { return e.set("fullscreen", true) }

func (e *Element) ExitFullscreen() error { return e.set("fullscreen", false) }

func (e *Element) IsFullscreen() bool { return e.fullscreen }

func (e *Element) OnFullscreenChange(fn func(bool)) func() {
	p := &fn
	e.fsListeners = append(e.fsListeners, p)
	return func() {
		for i, x := range e.fsListeners {
			if x == p {
				e.fsListeners = append(e.fsListeners[:i:i], e.fsListeners[i+1:]...)
				return
			}
		}
	}
}

func decodeFloat(data json.RawMessage) (float64, bool) {
	var f *float64
	if err := json.Unmarshal(data, &f); err != nil || f == nil {
		return 0, false
	}
	return *f, true
}

func decodeBool(data json.RawMessage) (bool, bool) {
	var b *bool
	if err := json.Unmarshal(data, &b); err != nil || b == nil {
		return false, false
	}
	return *b, true
}

// decodeLoop accepts the shapes mpv uses for loop-file: "inf", "no", a
// count, or a boolean.
func decodeLoop(data json.RawMessage) bool {
	if b, ok := decodeBool(data); ok {
		return b
	}
	if n, ok := decodeFloat(data); ok {
		return n > 0
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return false
	}
	return s != "no" && s != ""
}

// decodeTrackID returns 0 for "no", "auto" or false.
func decodeTrackID(data json.RawMessage) int {
	if n, ok := decodeFloat(data); ok {
		return int(n)
	}
	return 0
}

// Verify Element implements every capability at compile time.
var (
	_ media.Element           = (*Element)(nil)
	_ media.RenditionSelector = (*Element)(nil)
	_ media.LanguageSelector  = (*Element)(nil)
	_ media.Captions          = (*Element)(nil)
	_ media.Fullscreen        = (*Element)(nil)
)
