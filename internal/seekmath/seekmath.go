// Package seekmath converts pointer positions into timeline percentages and
// places hover labels above the seek bar without letting them run off
// screen.
package seekmath

import (
	"fmt"
	"math"
)

const (
	// MinLabelOffset is the smallest left offset a hover label may take.
	MinLabelOffset = 10.0
	// CenteredMarginRight keeps the centered seek preview off the right edge.
	CenteredMarginRight = 17.0
	// LeftMarginRight keeps the left-aligned chapter label off the right edge.
	LeftMarginRight = 10.0
)

// PercentageFromPointer maps pageX onto the track and clamps to [0, 100].
// A track with no width yields 0.
func PercentageFromPointer(pageX, trackLeft, trackWidth float64) float64 {
	if trackWidth <= 0 {
		return 0
	}
	return clamp((pageX-trackLeft)/trackWidth*100, 0, 100)
}

// TimeFromPercentage converts a timeline percentage into seconds.
func TimeFromPercentage(pct, duration float64) float64 {
	return pct / 100 * duration
}

// HoverLabelOffset centers a label of width elWidth on the hover point and
// clamps it between MinLabelOffset and viewportWidth-elWidth-17.
func HoverLabelOffset(pct, elWidth, viewportWidth float64) float64 {
	left := ((viewportWidth-27.5)/100)*pct - (elWidth/2 - 12)
	return clampLabel(left, viewportWidth-elWidth-CenteredMarginRight)
}

// HoverLabelOffsetLeft aligns the label's left edge with the hover point and
// clamps it between MinLabelOffset and viewportWidth-elWidth-10.
func HoverLabelOffsetLeft(pct, elWidth, viewportWidth float64) float64 {
	left := ((viewportWidth - 20) / 100) * pct
	return clampLabel(left, viewportWidth-elWidth-LeftMarginRight)
}

// clampLabel raises left to MinLabelOffset, then caps it at maxLeft. When
// the viewport is narrower than the label the cap wins and the offset can
// go negative.
func clampLabel(left, maxLeft float64) float64 {
	if left < MinLabelOffset {
		left = MinLabelOffset
	}
	if left > maxLeft {
		left = maxLeft
	}
	return left
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FormatTimestamp renders seconds as m:ss, or h:mm:ss past the hour.
// Negative and NaN inputs render as 0:00.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}
	total := int(math.Floor(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
