package playerbar

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/flipplayer/internal/adapter"
	"github.com/llehouerou/flipplayer/internal/playback"
)

// VolumeLabel formats the volume as a percentage.
func VolumeLabel(volume float64, muted bool) string {
	if muted {
		return "muted"
	}
	return fmt.Sprintf("vol %d%%", int(volume*100+0.5))
}

// SpeedLabel formats a playback rate, e.g. "1.25x".
func SpeedLabel(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64) + "x"
}

// QualityLabel describes the video representation of the first video track:
// "auto" plus the rendered height, or the chosen height and bitrate. A
// requested representation that has not rendered yet shows with an arrow.
func QualityLabel(s playback.State) string {
	if len(s.VideoTracks) == 0 {
		return ""
	}
	t := s.VideoTracks[0]
	active, hasActive := t.Representation(t.ActiveRepresentationID)

	if s.AutomaticVideoQuality {
		if hasActive && active.Height > 0 {
			return "auto (" + heightLabel(active) + ")"
		}
		return "auto"
	}
	if s.PendingVideoRepresentation != "" {
		if pending, ok := t.Representation(s.PendingVideoRepresentation); ok {
			return "→ " + repLabel(pending)
		}
	}
	if hasActive {
		return repLabel(active)
	}
	return ""
}

func heightLabel(r adapter.Representation) string {
	return strconv.Itoa(r.Height) + "p"
}

func repLabel(r adapter.Representation) string {
	var label string
	if r.Height > 0 {
		label = heightLabel(r)
	}
	if r.Bitrate > 0 {
		rate := humanize.SIWithDigits(float64(r.Bitrate), 1, "bps")
		if label == "" {
			return rate
		}
		label += " · " + rate
	}
	if label == "" {
		return r.ID
	}
	return label
}
