package interaction

import (
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
)

// SkipPrompt offers to jump over an "ask" segment. It works once.
type SkipPrompt struct {
	Category sponsorblock.Category
	EndTime  float64

	activate func()
	used     bool
}

// Activate performs the skip. Later calls do nothing. Must run on the loop.
func (p *SkipPrompt) Activate() {
	if p == nil || p.used {
		return
	}
	p.used = true
	p.activate()
}

// ActivateSkip activates the current skip prompt, if any.
func (c *Controller) ActivateSkip() {
	c.skip.Activate()
}

// checkSegment applies the segment policy for position t. A "skip" segment
// seeks once per entry; an "ask" segment raises a prompt that goes away when
// the position leaves the segment or another segment starts.
func (c *Controller) checkSegment(t float64) {
	seg, ok := c.segments.Current(t).Get()
	if !ok {
		c.entered = nil
		c.clearSkip()
		return
	}
	if c.entered != nil && *c.entered == seg {
		return
	}
	c.entered = &seg
	c.clearSkip()

	switch sponsorblock.ResolvePolicy(c.policies, seg.Category) {
	case sponsorblock.PolicySkip:
		c.player.SetTime(seg.EndTime)
	case sponsorblock.PolicyAsk:
		p := &SkipPrompt{Category: seg.Category, EndTime: seg.EndTime}
		p.activate = func() {
			c.player.SetTime(seg.EndTime)
			if c.skip == p {
				c.skip = nil
				c.changed()
			}
		}
		c.skip = p
		c.changed()
	case sponsorblock.PolicyNone:
	}
}

func (c *Controller) clearSkip() {
	if c.skip == nil {
		return
	}
	c.skip = nil
	c.changed()
}

// SkipCurrentSegment jumps to the end of the segment under the playhead
// when its category has any policy other than none.
func (c *Controller) SkipCurrentSegment() {
	seg, ok := c.segments.Current(c.player.State().CurrentTime).Get()
	if !ok {
		return
	}
	if sponsorblock.ResolvePolicy(c.policies, seg.Category) == sponsorblock.PolicyNone {
		return
	}
	c.clearSkip()
	c.player.SetTime(seg.EndTime)
}
