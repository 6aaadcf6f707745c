package playerbar

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/flipplayer/internal/chapters"
	"github.com/llehouerou/flipplayer/internal/interaction"
	"github.com/llehouerou/flipplayer/internal/seekmath"
	"github.com/llehouerou/flipplayer/internal/ui/render"
	"github.com/llehouerou/flipplayer/internal/ui/styles"
)

const (
	// borderLeft is the border plus left padding of the bar.
	borderLeft = 2
	// statusWidth is the status symbol and its trailing space.
	statusWidth = 2
	// firstTrackRow is the row, relative to the top of the bar, of the
	// seek track.
	firstTrackRow = 2

	segmentMarker = "▀"
	chapterMarker = "╵"
)

// Geometry locates the seek track inside the bar, in columns relative to
// the bar's left edge.
type Geometry struct {
	Left  int
	Width int
}

// TrackGeometry computes where the seek track sits for a bar of the given
// width. The clock is sized from the duration, so the track does not move
// while playing.
func TrackGeometry(width int, s State) Geometry {
	clockWidth := lipgloss.Width(clockFor(s.Duration, s.Duration, s.Live))
	w := max(innerWidth(width)-statusWidth-1-clockWidth, 1)
	return Geometry{Left: borderLeft + statusWidth, Width: w}
}

// TrackRow returns the row of the seek track relative to the bar's top.
func TrackRow() int {
	return firstTrackRow
}

// Interaction converts the geometry for the interaction controller, with
// columns as the pointer unit.
func (g Geometry) Interaction(barLeft int) interaction.Geometry {
	return interaction.Geometry{
		TrackLeft:  float64(barLeft + g.Left),
		TrackWidth: float64(g.Width),
	}
}

// Contains reports whether column x, relative to the bar, is over the track.
func (g Geometry) Contains(x int) bool {
	return x >= g.Left && x < g.Left+g.Width
}

func clock(s State) string {
	return clockFor(s.Position, s.Duration, s.Live)
}

func clockFor(position, duration float64, live bool) string {
	if live {
		return "LIVE"
	}
	if duration <= 0 {
		return seekmath.FormatTimestamp(position) + " / --:--"
	}
	return seekmath.FormatTimestamp(position) + " / " + seekmath.FormatTimestamp(duration)
}

// column maps a timeline percentage onto a track column.
func column(pct float64, width int) int {
	if width <= 1 {
		return 0
	}
	return int(math.Round(pct / 100 * float64(width-1)))
}

// markerRow draws skip segments under the track, and chapter starts where
// no segment is drawn.
func markerRow(s State, width int) string {
	st := styles.T()
	cells := make([]string, width)
	for i := range cells {
		cells[i] = " "
	}
	for _, ch := range s.Chapters {
		if ch.StartPercentage <= 0 {
			continue
		}
		if c := column(ch.StartPercentage, width); c < width {
			cells[c] = lipgloss.NewStyle().Foreground(st.FgSubtle).Render(chapterMarker)
		}
	}
	seg := lipgloss.NewStyle().Foreground(st.Secondary).Render(segmentMarker)
	for _, sg := range s.Segments {
		from := column(sg.StartPercentage, width)
		to := column(sg.EndPercentage, width)
		for c := from; c <= to && c < width; c++ {
			cells[c] = seg
		}
	}
	return strings.Join(cells, "")
}

// hoverRow places the hover time, followed by the chapter title under the
// pointer, centered on the hover point.
func hoverRow(s State, g Geometry, inner int) string {
	if s.HoverTime == "" {
		return ""
	}
	label := s.HoverTime
	if ch, ok := chapters.AtPercentage(s.Chapters, s.HoverPercentage).Get(); ok {
		label += " " + styles.ChapterTitle(ch.Title)
	}
	label = render.TruncateEllipsis(label, inner)
	w := lipgloss.Width(label)

	left := g.Left - borderLeft + column(s.HoverPercentage, g.Width) - w/2
	left = max(min(left, inner-w), 0)
	return render.PadRight(strings.Repeat(" ", left)+label, inner)
}
