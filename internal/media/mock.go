package media

import "slices"

// Selection records a RenditionSelector request made on the Mock.
type Selection struct {
	Kind  StreamKind
	Index int // -1 for automatic selection
}

// Mock is an in-memory Element for tests. It never emits events on its own;
// tests drive it with Emit and the Set* helpers.
type Mock struct {
	src         string
	paused      bool
	currentTime float64
	duration    float64
	buffered    []TimeRange
	seekable    []TimeRange
	volume      float64
	muted       bool
	rate        float64
	loop        bool
	err         error
	fullscreen  bool
	captions    []string
	caption     string
	language    string

	loadErr       error
	selectErr     error
	fullscreenErr error

	listeners   Listeners
	rendered    []*func(StreamKind, int)
	fsListeners []*func(bool)
	removals    int

	loadCalls   []string
	playCalls   int
	pauseCalls  int
	seekCalls   []float64
	selectCalls []Selection
	fsRequests  []bool
}

// NewMock creates a paused mock element at volume 1 and normal speed.
func NewMock() *Mock {
	return &Mock{
		paused: true,
		volume: 1,
		rate:   1,
	}
}

func (m *Mock) Load(src string) error {
	m.loadCalls = append(m.loadCalls, src)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.src = src
	m.err = nil
	return nil
}

func (m *Mock) Play() error {
	m.playCalls++
	m.paused = false
	return nil
}

func (m *Mock) Pause() error {
	m.pauseCalls++
	m.paused = true
	return nil
}

func (m *Mock) Paused() bool { return m.paused }

func (m *Mock) CurrentTime() float64 { return m.currentTime }

func (m *Mock) SetCurrentTime(t float64) error {
	m.seekCalls = append(m.seekCalls, t)
	m.currentTime = t
	return nil
}

func (m *Mock) Duration() float64 { return m.duration }

func (m *Mock) Buffered() []TimeRange { return m.buffered }

func (m *Mock) Seekable() []TimeRange { return m.seekable }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) SetVolume(v float64) error {
	m.volume = v
	return nil
}

func (m *Mock) Muted() bool { return m.muted }

func (m *Mock) SetMuted(muted bool) error {
	m.muted = muted
	return nil
}

func (m *Mock) PlaybackRate() float64 { return m.rate }

func (m *Mock) SetPlaybackRate(rate float64) error {
	m.rate = rate
	return nil
}

func (m *Mock) Loop() bool { return m.loop }

func (m *Mock) SetLoop(loop bool) error {
	m.loop = loop
	return nil
}

func (m *Mock) Err() error { return m.err }

func (m *Mock) On(ev Event, fn func()) func() {
	return m.listeners.Add(ev, fn)
}

// RenditionSelector

func (m *Mock) SelectRendition(kind StreamKind, index int) error {
	m.selectCalls = append(m.selectCalls, Selection{Kind: kind, Index: index})
	return m.selectErr
}

func (m *Mock) SetAutoRendition(kind StreamKind) error {
	m.selectCalls = append(m.selectCalls, Selection{Kind: kind, Index: -1})
	return m.selectErr
}

func (m *Mock) OnRenditionRendered(fn func(StreamKind, int)) func() {
	p := &fn
	m.rendered = append(m.rendered, p)
	return func() {
		for i, x := range m.rendered {
			if x == p {
				m.rendered = append(m.rendered[:i:i], m.rendered[i+1:]...)
				m.removals++
				return
			}
		}
	}
}

// LanguageSelector

func (m *Mock) SetLanguage(code string) error {
	m.language = code
	return nil
}

// Captions

func (m *Mock) CaptionTracks() []string { return m.captions }

func (m *Mock) ActiveCaption() string { return m.caption }

func (m *Mock) SetCaption(id string) error {
	m.caption = id
	return nil
}

// Fullscreen

func (m *Mock) RequestFullscreen() error {
	m.fsRequests = append(m.fsRequests, true)
	return m.fullscreenErr
}

func (m *Mock) ExitFullscreen() error {
	m.fsRequests = append(m.fsRequests, false)
	return m.fullscreenErr
}

func (m *Mock) IsFullscreen() bool { return m.fullscreen }

func (m *Mock) OnFullscreenChange(fn func(bool)) func() {
	p := &fn
	m.fsListeners = append(m.fsListeners, p)
	return func() {
		for i, x := range m.fsListeners {
			if x == p {
				m.fsListeners = append(m.fsListeners[:i:i], m.fsListeners[i+1:]...)
				m.removals++
				return
			}
		}
	}
}

// Test helpers

// Emit delivers ev to the listeners registered at the time of the call.
func (m *Mock) Emit(ev Event) {
	m.listeners.Emit(ev)
}

// Fail sets the element error and emits EventError.
func (m *Mock) Fail(err error) {
	m.err = err
	m.Emit(EventError)
}

// Render reports that the rendition at index is now on screen.
func (m *Mock) Render(kind StreamKind, index int) {
	for _, fn := range slices.Clone(m.rendered) {
		(*fn)(kind, index)
	}
}

// ChangeFullscreen flips the fullscreen state and notifies listeners.
func (m *Mock) ChangeFullscreen(fullscreen bool) {
	m.fullscreen = fullscreen
	for _, fn := range slices.Clone(m.fsListeners) {
		(*fn)(fullscreen)
	}
}

func (m *Mock) SetDuration(d float64) { m.duration = d }

func (m *Mock) SetTime(t float64) { m.currentTime = t }

func (m *Mock) SetBuffered(r []TimeRange) { m.buffered = r }

func (m *Mock) SetSeekable(r []TimeRange) { m.seekable = r }

func (m *Mock) SetCaptionTracks(ids []string) { m.captions = ids }

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetSelectError(err error) { m.selectErr = err }

func (m *Mock) SetFullscreenError(err error) { m.fullscreenErr = err }

// SetLoopAttribute changes loop as an outside party would and emits
// EventLoopChange.
func (m *Mock) SetLoopAttribute(loop bool) {
	m.loop = loop
	m.Emit(EventLoopChange)
}

func (m *Mock) Source() string { return m.src }

func (m *Mock) Language() string { return m.language }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) PauseCalls() int { return m.pauseCalls }

func (m *Mock) SeekCalls() []float64 { return m.seekCalls }

func (m *Mock) SelectCalls() []Selection { return m.selectCalls }

func (m *Mock) FullscreenRequests() []bool { return m.fsRequests }

// ListenerCount returns the number of live listeners across all events,
// including rendition and fullscreen listeners.
func (m *Mock) ListenerCount() int {
	return m.listeners.Len() + len(m.rendered) + len(m.fsListeners)
}

// Removals counts effective listener removals.
func (m *Mock) Removals() int { return m.removals + m.listeners.Removals() }

// Verify Mock implements every capability at compile time.
var (
	_ Element           = (*Mock)(nil)
	_ RenditionSelector = (*Mock)(nil)
	_ LanguageSelector  = (*Mock)(nil)
	_ Captions          = (*Mock)(nil)
	_ Fullscreen        = (*Mock)(nil)
)
