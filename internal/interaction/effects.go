package interaction

import (
	"time"

	"github.com/llehouerou/flipplayer/internal/runloop"
)

// Effect names a transient visual cue.
type Effect string

const (
	EffectSkipForward    Effect = "skipForward"
	EffectSkipBackward   Effect = "skipBackward"
	EffectVolumeUp       Effect = "volumeUp"
	EffectVolumeDown     Effect = "volumeDown"
	EffectToggleCaptions Effect = "toggleCaptions"
)

// Position is where an effect is drawn.
type Position string

const (
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionCenter Position = "center"
)

const effectDuration = 500 * time.Millisecond

// effectOrder fixes the order of VisibleEffect snapshots.
var effectOrder = []Effect{
	EffectSkipForward,
	EffectSkipBackward,
	EffectVolumeUp,
	EffectVolumeDown,
	EffectToggleCaptions,
}

var effectPositions = map[Effect]Position{
	EffectSkipForward:    PositionRight,
	EffectSkipBackward:   PositionLeft,
	EffectVolumeUp:       PositionCenter,
	EffectVolumeDown:     PositionCenter,
	EffectToggleCaptions: PositionCenter,
}

// VisibleEffect is an effect currently on screen.
type VisibleEffect struct {
	Name     Effect
	Position Position
	Duration time.Duration
}

type effect struct {
	visible  bool
	position Position
	duration time.Duration
	slot     *runloop.Slot
}

func newEffects(l *runloop.Loop) map[Effect]*effect {
	m := make(map[Effect]*effect, len(effectOrder))
	for _, name := range effectOrder {
		m[name] = &effect{
			position: effectPositions[name],
			duration: effectDuration,
			slot:     runloop.NewSlot(l),
		}
	}
	return m
}

// TriggerEffect shows an effect for its duration. Triggering a visible
// effect restarts its timer; effects run independently of each other.
func (c *Controller) TriggerEffect(name Effect) {
	e, ok := c.effects[name]
	if !ok {
		return
	}
	e.visible = true
	e.slot.Schedule(e.duration, func() {
		e.visible = false
		c.changed()
	})
	c.changed()
}

func (c *Controller) visibleEffects() []VisibleEffect {
	var out []VisibleEffect
	for _, name := range effectOrder {
		if e := c.effects[name]; e.visible {
			out = append(out, VisibleEffect{Name: name, Position: e.position, Duration: e.duration})
		}
	}
	return out
}
