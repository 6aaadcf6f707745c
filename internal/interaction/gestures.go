package interaction

import "github.com/llehouerou/flipplayer/internal/logger"

// PointerType is the device behind a pointer event.
type PointerType int

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// Target is the part of the player a pointer event landed on.
type Target int

const (
	// TargetSurface is the video area itself.
	TargetSurface Target = iota
	// TargetControls is the overlay chrome: buttons, seek bar, menus.
	TargetControls
)

// PointerDown handles a press. A touch on the video surface toggles the
// overlay immediately.
func (c *Controller) PointerDown(pt PointerType, target Target) {
	if pt != PointerTouch {
		return
	}
	c.touch = true
	if target != TargetSurface {
		return
	}
	if c.Visible() {
		c.hide()
	} else {
		c.show()
	}
}

// PointerMove re-shows the overlay for mouse movement outside a touch
// sequence. Bursts are coalesced.
func (c *Controller) PointerMove(pt PointerType) {
	if pt != PointerMouse || c.touch {
		return
	}
	c.moveSlot.Schedule(pointerMoveDebounce, c.show)
}

// PointerLeave handles the pointer leaving the player.
func (c *Controller) PointerLeave(pt PointerType) {
	c.moveSlot.Cancel()
	if pt != PointerMouse {
		return
	}
	if !c.touch {
		c.hide()
	}
	c.touch = false
}

// PointerUp handles a mouse click on the video surface. Every click outside
// a pending double-click window toggles playback; the second click of a
// pair toggles fullscreen instead.
func (c *Controller) PointerUp(pt PointerType, target Target) {
	if pt != PointerMouse || target != TargetSurface {
		return
	}
	if c.clickSlot.Pending() {
		c.clickSlot.Cancel()
		c.ToggleFullscreen()
		return
	}
	c.clickSlot.Schedule(doubleClickWindow, func() {})
	c.player.TogglePlay()
}

// TouchEnd handles the end of a touch at pageX on a player playerWidth wide.
// Two taps within the double-tap window seek by 5 seconds toward the tapped
// half. A lone tap that ends an active seek drag commits it.
func (c *Controller) TouchEnd(pageX, playerWidth float64) {
	c.touch = true
	if !c.tapSlot.Pending() {
		c.tapSlot.Schedule(doubleTapWindow, func() {
			if c.seeking {
				c.EndSeek()
			}
		})
		return
	}
	c.tapSlot.Cancel()
	half := playerWidth / 2
	switch {
	case pageX < half:
		c.seekBy(-seekStep)
	case pageX > half:
		c.seekBy(seekStep)
	}
}

func (c *Controller) seekBy(delta float64) {
	c.player.Seek(delta)
	if delta < 0 {
		c.TriggerEffect(EffectSkipBackward)
	} else {
		c.TriggerEffect(EffectSkipForward)
	}
}

// ToggleFullscreen asks for the opposite of the current fullscreen state.
// The state itself only changes on the change notification, so a refused
// request leaves it untouched.
func (c *Controller) ToggleFullscreen() {
	if c.fs == nil {
		return
	}
	var err error
	if c.fullscreen {
		err = c.fs.ExitFullscreen()
	} else {
		err = c.fs.RequestFullscreen()
	}
	if err != nil {
		logger.Log.Debug().Err(err).Bool("fullscreen", !c.fullscreen).Msg("fullscreen request refused")
	}
}

// ToggleCaptions swaps between no captions and the first caption track.
func (c *Controller) ToggleCaptions() {
	if c.captions == nil {
		return
	}
	tracks := c.captions.CaptionTracks()
	if len(tracks) == 0 {
		return
	}
	next := tracks[0]
	if c.captions.ActiveCaption() != "" {
		next = ""
	}
	if err := c.captions.SetCaption(next); err != nil {
		logger.Log.Debug().Err(err).Str("track", next).Msg("set caption")
		return
	}
	c.TriggerEffect(EffectToggleCaptions)
}
