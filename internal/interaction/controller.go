// Package interaction turns pointer, touch and key input into player
// commands and keeps the transient UI state: overlay visibility, seek drags,
// visual effects, fullscreen, the settings panel and segment skipping.
package interaction

import (
	"time"

	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/keymap"
	"github.com/llehouerou/flipplayer/internal/media"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/runloop"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
)

const (
	// UITimeout is how long the overlay stays up without input while playing.
	UITimeout = 3 * time.Second

	pointerMoveDebounce = time.Millisecond
	doubleClickWindow   = 300 * time.Millisecond
	doubleTapWindow     = 500 * time.Millisecond

	seekStep   = 5.0
	volumeStep = 0.1
)

// Player is the part of the playback orchestrator the controller drives.
type Player interface {
	State() playback.State
	Observe(fn func(playback.StateChange)) (off func())
	TogglePlay()
	SetTime(t float64)
	Seek(delta float64)
	SetVolume(v float64)
	SetMuted(muted bool)
	SetLoop(loop bool)
	SetPlaybackRate(rate float64)
	SetVideoRepresentation(trackID, representationID string)
	SetAutoVideoQuality()
	SetLanguage(code string)
}

// Options configures a Controller. Fullscreen, Captions and Policies may be
// nil; the matching features are then inert.
type Options struct {
	Loop       *runloop.Loop
	Player     Player
	Window     *Window
	Fullscreen media.Fullscreen
	Captions   media.Captions
	Policies   sponsorblock.PolicyLookup
	Keys       *keymap.Resolver
	// OnChange receives a snapshot after every UI state change, on the loop.
	OnChange func(UI)
}

// UI is a snapshot of the interaction state.
type UI struct {
	Visible         bool
	Seeking         bool
	SeekPercentage  float64
	HoverPercentage float64
	// HoverTime is the timestamp under the hover point, "" when not hovering.
	HoverTime     string
	Fullscreen    bool
	SettingsOpen  bool
	PosterVisible bool
	Effects       []VisibleEffect
	// Skip is the pending skip prompt of an "ask" segment, or nil.
	Skip *SkipPrompt
}

// Controller owns the interaction state. It is used from the loop only.
type Controller struct {
	loop     *runloop.Loop
	player   Player
	window   *Window
	fs       media.Fullscreen
	captions media.Captions
	policies sponsorblock.PolicyLookup
	keys     *keymap.Resolver
	onChange func(UI)

	mounted bool
	offs    []func()

	// visibility
	shown     bool
	touch     bool
	hideSlot  *runloop.Slot
	moveSlot  *runloop.Slot
	clickSlot *runloop.Slot
	tapSlot   *runloop.Slot

	// seek bar
	seeking  bool
	seekPct  float64
	hoverPct float64
	hovering bool

	fullscreen   bool
	settingsOpen bool
	settingsOff  func()
	poster       bool

	effects map[Effect]*effect

	segments sponsorblock.Segments
	chapters []chapters.Chapter
	entered  *sponsorblock.Segment
	skip     *SkipPrompt
}

// New creates an unmounted controller.
func New(opts Options) *Controller {
	keys := opts.Keys
	if keys == nil {
		keys = keymap.NewResolver(keymap.All)
	}
	window := opts.Window
	if window == nil {
		window = NewWindow()
	}
	c := &Controller{
		loop:      opts.Loop,
		player:    opts.Player,
		window:    window,
		fs:        opts.Fullscreen,
		captions:  opts.Captions,
		policies:  opts.Policies,
		keys:      keys,
		onChange:  opts.OnChange,
		hideSlot:  runloop.NewSlot(opts.Loop),
		moveSlot:  runloop.NewSlot(opts.Loop),
		clickSlot: runloop.NewSlot(opts.Loop),
		tapSlot:   runloop.NewSlot(opts.Loop),
		poster:    true,
	}
	c.effects = newEffects(opts.Loop)
	return c
}

// Mount registers the key listener, the fullscreen change listener and the
// player observer. Mounting twice is a no-op.
func (c *Controller) Mount() {
	if c.mounted {
		return
	}
	c.mounted = true
	c.offs = append(c.offs,
		c.window.AddKeyListener(c.onKey),
		c.player.Observe(c.onPlayerChange),
	)
	if c.fs != nil {
		c.fullscreen = c.fs.IsFullscreen()
		c.offs = append(c.offs, c.fs.OnFullscreenChange(c.onFullscreenChange))
	}
	c.changed()
}

// Unmount removes every listener the controller registered, closes the
// settings panel and stops all timers.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.CloseSettings()
	for _, off := range c.offs {
		off()
	}
	c.offs = nil
	for _, s := range []*runloop.Slot{c.hideSlot, c.moveSlot, c.clickSlot, c.tapSlot} {
		s.Cancel()
	}
	for _, e := range c.effects {
		e.slot.Cancel()
		e.visible = false
	}
	c.mounted = false
}

// Window returns the input hub the controller listens on.
func (c *Controller) Window() *Window {
	return c.window
}

// SetVideo resets the per-video state for a newly loaded video.
func (c *Controller) SetVideo(chs []chapters.Chapter) {
	c.chapters = chs
	c.segments = sponsorblock.Segments{}
	c.entered = nil
	c.skip = nil
	c.poster = true
	c.changed()
}

// SetSegments installs the segment set of the current video once fetched.
func (c *Controller) SetSegments(segs sponsorblock.Segments) {
	c.segments = segs
	c.entered = nil
	c.checkSegment(c.player.State().CurrentTime)
	c.changed()
}

// Visible reports whether the overlay is shown. It is forced on while
// seeking or while playback is not running.
func (c *Controller) Visible() bool {
	return c.seeking || !c.player.State().Playing || c.shown
}

// UI returns a snapshot of the interaction state.
func (c *Controller) UI() UI {
	ui := UI{
		Visible:         c.Visible(),
		Seeking:         c.seeking,
		SeekPercentage:  c.seekPct,
		HoverPercentage: c.hoverPct,
		Fullscreen:      c.fullscreen,
		SettingsOpen:    c.settingsOpen,
		PosterVisible:   c.poster,
		Effects:         c.visibleEffects(),
		Skip:            c.skip,
	}
	if c.hovering || c.seeking {
		ui.HoverTime = c.hoverTime()
	}
	return ui
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange(c.UI())
	}
}

func (c *Controller) onPlayerChange(ch playback.StateChange) {
	prev, cur := ch.Previous, ch.Current
	if cur.Playing && !prev.Playing {
		c.poster = false
		c.show()
	}
	if cur.CurrentTime != prev.CurrentTime {
		c.checkSegment(cur.CurrentTime)
	}
	if cur.Playing != prev.Playing || cur.CurrentTime != prev.CurrentTime {
		c.changed()
	}
}

func (c *Controller) onFullscreenChange(fullscreen bool) {
	c.fullscreen = fullscreen
	c.changed()
}

// Visibility

func (c *Controller) show() {
	c.shown = true
	c.hideSlot.Schedule(UITimeout, func() {
		c.shown = false
		c.changed()
	})
	c.changed()
}

func (c *Controller) hide() {
	c.shown = false
	c.hideSlot.Cancel()
	c.changed()
}
