package adapter

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

const progressiveTrackID = "main"

// progressive plays single files. Each format is a representation of one
// video track, and switching formats reloads the element.
type progressive struct {
	*base
}

func newProgressive(opts Options) *progressive {
	return &progressive{base: newBase(opts)}
}

func (p *progressive) Initialize(opts InitOptions) {
	if p.destroyed {
		return
	}
	p.attach(opts)

	formats := p.source.Formats
	if len(formats) == 0 {
		formats = []Format{{URL: p.source.URL}}
	}
	reps := lo.Map(formats, func(f Format, i int) Representation {
		return Representation{
			ID:      strconv.Itoa(i),
			Bitrate: f.Bitrate,
			Height:  f.Height,
			URL:     f.URL,
		}
	})
	track := Track{ID: progressiveTrackID, Kind: KindVideo, Representations: reps}
	auto := bestFormat(reps, opts.MaxVideoHeight)
	track.ActiveRepresentationID = auto.ID
	p.video = []Track{track}
	p.send(TracksChanged{Video: p.video})

	p.load(auto.URL)
}

func (p *progressive) SetRepresentation(kind Kind, trackID, repID string) {
	p.reloadRepresentation(kind, trackID, repID)
}

func (p *progressive) SetAutoQuality(kind Kind) {
	if p.destroyed || kind != KindVideo || len(p.video) == 0 {
		return
	}
	best := bestFormat(p.video[0].Representations, p.init.MaxVideoHeight)
	p.switchReload(KindVideo, progressiveTrackID, best.ID, best.URL)
}

// bestFormat picks the tallest representation within maxHeight, or the
// shortest one when none fits. A zero maxHeight means no cap. Formats
// without a known height rank below every sized one.
func bestFormat(reps []Representation, maxHeight int) Representation {
	if len(reps) == 0 {
		return Representation{}
	}
	fits := lo.Filter(reps, func(r Representation, _ int) bool {
		return maxHeight <= 0 || r.Height <= maxHeight
	})
	byQuality := func(a, b Representation) int {
		return cmp.Or(cmp.Compare(a.Height, b.Height), cmp.Compare(a.Bitrate, b.Bitrate))
	}
	if len(fits) == 0 {
		return slices.MinFunc(reps, byQuality)
	}
	return slices.MaxFunc(fits, byQuality)
}
