// Package adapter wraps one streaming technology and a media element behind
// a single control surface.
//
// An Adapter is bound to one (SourceType, URL) pair for its whole life. It
// reports what happens on the element as Events through the Emit callback
// given at construction; after Destroy it emits nothing.
package adapter

import (
	"fmt"
	"strings"

	"github.com/llehouerou/flipplayer/internal/media"
	"github.com/llehouerou/flipplayer/internal/runloop"
)

// SourceType selects the delivery mechanism.
type SourceType int

const (
	Progressive SourceType = iota
	HLS
	DASH
)

func (t SourceType) String() string {
	switch t {
	case Progressive:
		return "progressive"
	case HLS:
		return "hls"
	case DASH:
		return "dash"
	default:
		return fmt.Sprintf("SourceType(%d)", int(t))
	}
}

// ParseSourceType maps "progressive", "hls" or "dash" (any case).
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "progressive", "":
		return Progressive, nil
	case "hls":
		return HLS, nil
	case "dash":
		return DASH, nil
	default:
		return 0, fmt.Errorf("unknown source type %q", s)
	}
}

// Kind separates video tracks from audio tracks.
type Kind = media.StreamKind

const (
	KindVideo = media.Video
	KindAudio = media.Audio
)

// Representation is one encoded variant of a track.
type Representation struct {
	ID         string
	Bitrate    int64
	Width      int
	Height     int
	SampleRate int
	URL        string
}

// Track groups the representations of one video or audio stream.
type Track struct {
	ID                     string
	Kind                   Kind
	Language               string
	Representations        []Representation
	ActiveRepresentationID string
}

// Representation returns the representation with the given id.
func (t Track) Representation(id string) (Representation, bool) {
	for _, r := range t.Representations {
		if r.ID == id {
			return r, true
		}
	}
	return Representation{}, false
}

// Format is one progressive file of a video at a given quality.
type Format struct {
	URL     string
	Label   string
	Height  int
	Bitrate int64
}

// Source describes what to play.
type Source struct {
	Type SourceType
	URL  string
	// Formats lists the progressive files; empty means URL is the only one.
	Formats []Format
	Live    bool
}

// InitOptions are applied when the adapter starts loading.
type InitOptions struct {
	StartTime float64
	Autoplay  bool
	Volume    float64
	Muted     bool
	// MaxVideoHeight caps automatic progressive format choice; 0 means no cap.
	MaxVideoHeight int
}

// Options bind an adapter to its collaborators.
type Options struct {
	Element media.Element
	Source  Source
	Loop    *runloop.Loop
	Fetcher Fetcher
	Emit    func(Event)
}

// Adapter is the uniform control surface over one delivery mechanism. All
// methods run on the loop and never block on the network.
type Adapter interface {
	Initialize(opts InitOptions)
	Play()
	Pause()
	SetVolume(v float64)
	SetPlaybackRate(rate float64)
	SetTime(t float64)
	SetLanguage(code string)
	SetRepresentation(kind Kind, trackID, representationID string)
	SetAutoQuality(kind Kind)
	// Destroy detaches every element listener and cancels pending work.
	// Calling it again does nothing.
	Destroy()
}

// New builds the adapter for t. Selection depends on t alone.
func New(t SourceType, opts Options) (Adapter, error) {
	if opts.Fetcher == nil {
		opts.Fetcher = NewHTTPFetcher()
	}
	switch t {
	case Progressive:
		return newProgressive(opts), nil
	case HLS:
		return newHLS(opts), nil
	case DASH:
		return newDASH(opts), nil
	default:
		return nil, fmt.Errorf("no adapter for %s", t)
	}
}
