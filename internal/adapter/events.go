package adapter

// Event is a state update pushed from an adapter to its owner.
type Event interface {
	adapterEvent()
}

// BufferingChanged reports whether a decodable frame is missing.
type BufferingChanged struct {
	Buffering bool
}

// TimeUpdated reports the playback position in seconds.
type TimeUpdated struct {
	Time float64
}

// DurationKnown reports the media duration. Live streams report the end of
// the seekable window.
type DurationKnown struct {
	Duration float64
	Live     bool
}

// TracksChanged replaces the track lists wholesale.
type TracksChanged struct {
	Video []Track
	Audio []Track
}

// RepresentationChanged tracks a rendition switch. Requested is what was
// last asked for ("" for automatic selection); Rendered is what is actually
// playing. They differ while a switch is in flight.
type RepresentationChanged struct {
	Kind      Kind
	TrackID   string
	Requested string
	Rendered  string
}

// Pending reports whether a manual switch has not landed yet. Automatic
// selection is never pending.
func (e RepresentationChanged) Pending() bool {
	return e.Requested != "" && e.Requested != e.Rendered
}

// PlayingChanged reports the element entering or leaving playback.
type PlayingChanged struct {
	Playing bool
}

// VolumeChanged mirrors the element's volume and mute state.
type VolumeChanged struct {
	Volume float64
	Muted  bool
}

// RateChanged reports the applied playback rate.
type RateChanged struct {
	Rate float64
}

// BufferLevelChanged reports the buffered fraction of the media, 0..1.
type BufferLevelChanged struct {
	Level float64
}

// ErrorOccurred reports a failure. Fatal errors halt playback.
type ErrorOccurred struct {
	Err   error
	Fatal bool
}

// Ended reports the end of the stream.
type Ended struct{}

func (BufferingChanged) adapterEvent()      {}
func (TimeUpdated) adapterEvent()           {}
func (DurationKnown) adapterEvent()         {}
func (TracksChanged) adapterEvent()         {}
func (RepresentationChanged) adapterEvent() {}
func (PlayingChanged) adapterEvent()        {}
func (VolumeChanged) adapterEvent()         {}
func (RateChanged) adapterEvent()           {}
func (BufferLevelChanged) adapterEvent()    {}
func (ErrorOccurred) adapterEvent()         {}
func (Ended) adapterEvent()                 {}
