package interaction

import (
	"github.com/samber/mo"

	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/seekmath"
)

// Geometry locates the seek track on screen.
type Geometry struct {
	TrackLeft  float64
	TrackWidth float64
}

func (g Geometry) percentage(pageX float64) float64 {
	return seekmath.PercentageFromPointer(pageX, g.TrackLeft, g.TrackWidth)
}

// BeginSeek starts a seek drag at pageX.
func (c *Controller) BeginSeek(pageX float64, g Geometry) {
	c.seeking = true
	c.seekPct = g.percentage(pageX)
	c.hoverPct = c.seekPct
	c.changed()
}

// DragSeek follows an active seek drag.
func (c *Controller) DragSeek(pageX float64, g Geometry) {
	if !c.seeking {
		return
	}
	c.seekPct = g.percentage(pageX)
	c.hoverPct = c.seekPct
	c.changed()
}

// EndSeek commits the drag position and re-shows the overlay, so that it
// hides on its own afterwards.
func (c *Controller) EndSeek() {
	if !c.seeking {
		return
	}
	c.seeking = false
	c.player.SetTime(seekmath.TimeFromPercentage(c.seekPct, c.player.State().Duration))
	c.show()
}

// HoverSeek tracks the pointer over the seek bar.
func (c *Controller) HoverSeek(pageX float64, g Geometry) {
	c.hovering = true
	c.hoverPct = g.percentage(pageX)
	c.changed()
}

// EndHover clears the hover label.
func (c *Controller) EndHover() {
	if !c.hovering {
		return
	}
	c.hovering = false
	c.changed()
}

func (c *Controller) hoverTime() string {
	return seekmath.FormatTimestamp(seekmath.TimeFromPercentage(c.hoverPct, c.player.State().Duration))
}

// HoverLabelLeft places the time preview of width labelWidth, centered on
// the hover point.
func (c *Controller) HoverLabelLeft(labelWidth, viewportWidth float64) float64 {
	return seekmath.HoverLabelOffset(c.hoverPct, labelWidth, viewportWidth)
}

// ChapterLabelLeft places the chapter title label, left aligned on the
// hover point.
func (c *Controller) ChapterLabelLeft(labelWidth, viewportWidth float64) float64 {
	return seekmath.HoverLabelOffsetLeft(c.hoverPct, labelWidth, viewportWidth)
}

// HoverChapter returns the chapter under the hover point.
func (c *Controller) HoverChapter() mo.Option[chapters.Chapter] {
	return chapters.AtPercentage(c.chapters, c.hoverPct)
}

// Chapters returns the chapters of the current video.
func (c *Controller) Chapters() []chapters.Chapter {
	return c.chapters
}
