package adapter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Eyevinn/dash-mpd/mpd"
)

// dash plays MPEG-DASH sources. The element loads the manifest itself and
// switches renditions in place; the adapter parses the manifest only to
// describe the tracks.
type dash struct {
	*base
}

func newDASH(opts Options) *dash {
	return &dash{base: newBase(opts)}
}

func (d *dash) Initialize(opts InitOptions) {
	if d.destroyed {
		return
	}
	d.attach(opts)
	d.watchRenditions(KindVideo, KindAudio)
	d.fetch(d.source.URL, func(body []byte, err error) {
		if err != nil {
			d.fail(fmt.Errorf("fetch manifest: %w", err))
			return
		}
		video, audio, live, err := parseMPD(d.source.URL, body)
		if err != nil {
			d.fail(err)
			return
		}
		d.live = d.live || live
		d.video, d.audio = video, audio
		d.send(TracksChanged{Video: d.video, Audio: d.audio})
		d.load(d.source.URL)
	})
}

func (d *dash) SetRepresentation(kind Kind, trackID, repID string) {
	d.selectInPlace(kind, trackID, repID)
}

func (d *dash) SetAutoQuality(kind Kind) {
	d.autoInPlace(kind)
}

// Only the first period is described: its audio and video adaptation sets
// and their representations.

func adaptationKind(set *mpd.AdaptationSetType) (Kind, bool) {
	mime := set.MimeType
	if mime == "" && len(set.Representations) > 0 {
		mime = set.Representations[0].MimeType
	}
	switch ct := string(set.ContentType); {
	case ct == "video", strings.HasPrefix(mime, "video/"):
		return KindVideo, true
	case ct == "audio", strings.HasPrefix(mime, "audio/"):
		return KindAudio, true
	default:
		return "", false
	}
}

func parseMPD(manifestURL string, body []byte) (video, audio []Track, live bool, err error) {
	doc, err := mpd.ReadFromString(string(body))
	if err != nil {
		return nil, nil, false, fmt.Errorf("parse manifest: %w", err)
	}
	if len(doc.Periods) == 0 {
		return nil, nil, false, errors.New("parse manifest: no period")
	}

	for i, set := range doc.Periods[0].AdaptationSets {
		kind, ok := adaptationKind(set)
		if !ok || len(set.Representations) == 0 {
			continue
		}
		id := strconv.Itoa(i)
		if set.Id != nil {
			id = strconv.FormatUint(uint64(*set.Id), 10)
		}
		track := Track{ID: id, Kind: kind, Language: set.Lang}
		for _, r := range set.Representations {
			track.Representations = append(track.Representations, Representation{
				ID:         r.Id,
				Bitrate:    int64(r.Bandwidth),
				Width:      int(r.Width),
				Height:     int(r.Height),
				SampleRate: sampleRate(r.AudioSamplingRate),
				URL:        manifestURL,
			})
		}
		if kind == KindVideo {
			video = append(video, track)
		} else {
			audio = append(audio, track)
		}
	}
	if len(video) == 0 && len(audio) == 0 {
		return nil, nil, false, errors.New("parse manifest: no playable adaptation set")
	}
	return video, audio, doc.Type != nil && *doc.Type == "dynamic", nil
}

// sampleRate reads the first value of an audioSamplingRate list.
func sampleRate[T ~string](v *T) int {
	if v == nil {
		return 0
	}
	fields := strings.Fields(string(*v))
	if len(fields) == 0 {
		return 0
	}
	rate, _ := strconv.Atoi(fields[0])
	return rate
}
