// Package sponsorblock decides what to do with community-submitted video
// segments (sponsor reads, intros, self promotion...) as playback moves
// through them.
package sponsorblock

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Category names a kind of segment.
type Category string

const (
	CategorySponsor       Category = "sponsor"
	CategorySelfPromo     Category = "selfpromo"
	CategoryInteraction   Category = "interaction"
	CategoryIntro         Category = "intro"
	CategoryOutro         Category = "outro"
	CategoryPreview       Category = "preview"
	CategoryMusicOfftopic Category = "music_offtopic"
	CategoryFiller        Category = "filler"
)

// Categories lists every category the player knows how to handle.
var Categories = []Category{
	CategorySponsor,
	CategorySelfPromo,
	CategoryInteraction,
	CategoryIntro,
	CategoryOutro,
	CategoryPreview,
	CategoryMusicOfftopic,
	CategoryFiller,
}

// Segment is one time range tagged with a category. Percentages are relative
// to the video duration and are zero when the duration is unknown.
type Segment struct {
	UUID            string
	Category        Category
	StartTime       float64
	EndTime         float64
	StartPercentage float64
	EndPercentage   float64
}

// Contains reports whether t falls inside [StartTime, EndTime).
func (s Segment) Contains(t float64) bool {
	return t >= s.StartTime && t < s.EndTime
}

// Segments is the immutable segment set of one video.
type Segments struct {
	items []Segment
}

// NewSegments builds a segment set from API data. Entries with an empty or
// inverted range are dropped; order is preserved.
func NewSegments(raw []RawSegment, duration float64) Segments {
	valid := lo.Filter(raw, func(r RawSegment, _ int) bool {
		return r.Segment[1] > r.Segment[0]
	})
	items := lo.Map(valid, func(r RawSegment, _ int) Segment {
		s := Segment{
			UUID:      r.UUID,
			Category:  Category(r.Category),
			StartTime: r.Segment[0],
			EndTime:   r.Segment[1],
		}
		if duration > 0 {
			s.StartPercentage = s.StartTime / duration * 100
			s.EndPercentage = s.EndTime / duration * 100
		}
		return s
	})
	return Segments{items: items}
}

// Current returns the segment containing t, if any.
func (s Segments) Current(t float64) mo.Option[Segment] {
	for _, seg := range s.items {
		if seg.Contains(t) {
			return mo.Some(seg)
		}
	}
	return mo.None[Segment]()
}

// All returns a copy of the segments.
func (s Segments) All() []Segment {
	return append([]Segment(nil), s.items...)
}

// Len returns the number of segments.
func (s Segments) Len() int {
	return len(s.items)
}
