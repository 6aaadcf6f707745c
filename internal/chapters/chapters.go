// Package chapters extracts chapter markers from a video description.
package chapters

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Chapter is one titled section of a video.
type Chapter struct {
	Title           string
	Start           float64
	End             float64
	StartPercentage float64
	EndPercentage   float64
}

var timestampLine = regexp.MustCompile(`^\s*\(?(?:(\d{1,2}):)?(\d{1,2}):(\d{2})\)?\s*[-:|]?\s*(.+?)\s*$`)

// Parse reads "m:ss Title" or "h:mm:ss Title" lines out of description.
// A description describes chapters only when its first marker is at 0:00 and
// it has at least two markers; otherwise Parse returns nil.
func Parse(description string, length float64) []Chapter {
	var chapters []Chapter
	for _, line := range strings.Split(description, "\n") {
		m := timestampLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start := atoi(m[1])*3600 + atoi(m[2])*60 + atoi(m[3])
		if len(chapters) > 0 && float64(start) <= chapters[len(chapters)-1].Start {
			continue
		}
		chapters = append(chapters, Chapter{Title: m[4], Start: float64(start)})
	}
	if len(chapters) < 2 || chapters[0].Start != 0 {
		return nil
	}

	chapters = lo.Filter(chapters, func(c Chapter, _ int) bool {
		return length <= 0 || c.Start < length
	})
	for i := range chapters {
		if i+1 < len(chapters) {
			chapters[i].End = chapters[i+1].Start
		} else {
			chapters[i].End = length
		}
		if length > 0 {
			chapters[i].StartPercentage = chapters[i].Start / length * 100
			chapters[i].EndPercentage = chapters[i].End / length * 100
		}
	}
	return chapters
}

// AtPercentage finds the chapter strictly containing pct.
func AtPercentage(chapters []Chapter, pct float64) mo.Option[Chapter] {
	c, ok := lo.Find(chapters, func(c Chapter) bool {
		return pct > c.StartPercentage && pct < c.EndPercentage
	})
	if !ok {
		return mo.None[Chapter]()
	}
	return mo.Some(c)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
