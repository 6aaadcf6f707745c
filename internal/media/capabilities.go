package media

// StreamKind separates video renditions from audio renditions.
type StreamKind string

const (
	Video StreamKind = "video"
	Audio StreamKind = "audio"
)

// RenditionSelector is implemented by elements that can switch between the
// renditions of an adaptive stream in place, without reloading it.
//
// Indexes follow manifest order within a kind. A selection is only a
// request; the rendition actually on screen is reported through
// OnRenditionRendered.
type RenditionSelector interface {
	SelectRendition(kind StreamKind, index int) error
	SetAutoRendition(kind StreamKind) error
	OnRenditionRendered(fn func(kind StreamKind, index int)) (off func())
}

// LanguageSelector switches the audio language of multi-language streams.
type LanguageSelector interface {
	SetLanguage(code string) error
}

// Captions toggles text tracks.
type Captions interface {
	// CaptionTracks returns the ids of available text tracks in order.
	CaptionTracks() []string
	// ActiveCaption is "" when captions are off.
	ActiveCaption() string
	// SetCaption shows the given track; "" hides captions.
	SetCaption(id string) error
}

// Fullscreen is the window-level fullscreen capability. Requests may be
// refused; the actual state is only known from OnFullscreenChange.
type Fullscreen interface {
	RequestFullscreen() error
	ExitFullscreen() error
	IsFullscreen() bool
	OnFullscreenChange(fn func(fullscreen bool)) (off func())
}
