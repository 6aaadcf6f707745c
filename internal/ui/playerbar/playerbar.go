// Package playerbar renders the transport bar: play status, the seek track
// with segment and chapter markers, the hover label, the clock and the
// current player options.
package playerbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/playback"
	"github.com/llehouerou/flipplayer/internal/sponsorblock"
	"github.com/llehouerou/flipplayer/internal/ui/render"
	"github.com/llehouerou/flipplayer/internal/ui/styles"
)

// Height is the rendered height: hover row, track, markers, options and
// two border rows.
const Height = 6

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	bufferSymbol = "…"
	endSymbol    = "■"
	errorSymbol  = "✕"
)

// State holds everything needed to render the bar.
type State struct {
	Status        playback.Status
	Position      float64
	Duration      float64
	Live          bool
	BufferMessage string

	Volume  float64
	Muted   bool
	Rate    float64
	Loop    bool
	Quality string

	Segments []sponsorblock.Segment
	Chapters []chapters.Chapter

	Seeking         bool
	SeekPercentage  float64
	HoverPercentage float64
	HoverTime       string
}

// NewState builds the bar state from the player state and the interaction
// snapshot.
func NewState(s playback.State, ui interaction.UI, segs []sponsorblock.Segment, chs []chapters.Chapter) State {
	return State{
		Status:          s.Status(),
		Position:        s.CurrentTime,
		Duration:        s.Duration,
		Live:            s.Live,
		BufferMessage:   s.BufferMessage,
		Volume:          s.Volume,
		Muted:           s.Muted,
		Rate:            s.PlaybackRate,
		Loop:            s.Loop,
		Quality:         QualityLabel(s),
		Segments:        segs,
		Chapters:        chs,
		Seeking:         ui.Seeking,
		SeekPercentage:  ui.SeekPercentage,
		HoverPercentage: ui.HoverPercentage,
		HoverTime:       ui.HoverTime,
	}
}

// Model renders the bar. The seek track is a bubbles progress bar.
type Model struct {
	track progress.Model
}

// New creates a player bar.
func New() Model {
	t := styles.T()
	track := progress.New(
		progress.WithSolidFill(string(t.Primary)),
		progress.WithoutPercentage(),
	)
	track.Full = '━'
	track.Empty = '─'
	track.EmptyColor = string(t.FgSubtle)
	return Model{track: track}
}

// Percentage is the fill of the seek track: the drag position while
// seeking, else the playback position.
func (s State) Percentage() float64 {
	if s.Seeking {
		return s.SeekPercentage
	}
	if s.Duration <= 0 || s.Live {
		return 0
	}
	return min(max(s.Position/s.Duration*100, 0), 100)
}

// Render returns the bar for the given total width.
func (m Model) Render(s State, width int) string {
	g := TrackGeometry(width, s)
	inner := innerWidth(width)

	m.track.Width = g.Width
	trackRow := statusSymbol(s.Status) + " " +
		m.track.ViewAs(s.Percentage()/100) + " " +
		styles.T().S().Muted.Render(clock(s))

	rows := []string{
		hoverRow(s, g, inner),
		trackRow,
		strings.Repeat(" ", statusWidth) + markerRow(s, g.Width),
		optionsRow(s, inner),
	}
	return styles.T().S().Bar.Width(width - 2).Render(strings.Join(rows, "\n"))
}

func statusSymbol(st playback.Status) string {
	s := styles.T().S()
	switch st {
	case playback.StatusPlaying:
		return s.Success.Render(playSymbol)
	case playback.StatusBuffering:
		return s.Warning.Render(bufferSymbol)
	case playback.StatusEnded:
		return s.Muted.Render(endSymbol)
	case playback.StatusFailed:
		return s.Error.Render(errorSymbol)
	case playback.StatusIdle, playback.StatusPaused:
		return s.Base.Render(pauseSymbol)
	}
	return pauseSymbol
}

func optionsRow(s State, width int) string {
	st := styles.T().S()
	left := st.Muted.Render(VolumeLabel(s.Volume, s.Muted))
	if s.BufferMessage != "" {
		left += "  " + st.Warning.Render(s.BufferMessage)
	}

	var right []string
	if s.Rate != 0 && s.Rate != 1 {
		right = append(right, SpeedLabel(s.Rate))
	}
	if s.Loop {
		right = append(right, "loop")
	}
	if s.Quality != "" {
		right = append(right, s.Quality)
	}
	return render.Row(left, st.Muted.Render(strings.Join(right, " · ")), width)
}

// innerWidth is the content width inside the border and padding.
func innerWidth(width int) int {
	return max(width-4, 0)
}
