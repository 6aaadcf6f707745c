package media

import "math"

// Event is a notification emitted by an Element.
type Event int

const (
	EventLoadedMetadata Event = iota
	EventTimeUpdate
	EventProgress
	EventVolumeChange
	EventPlaying
	EventPause
	EventCanPlay
	EventWaiting
	EventEnded
	EventError
	// EventLoopChange fires when the loop attribute changes, whoever
	// changed it.
	EventLoopChange
	// EventAbort answers a load that a later Load replaced before it
	// finished.
	EventAbort
)

var eventNames = [...]string{
	"loadedmetadata",
	"timeupdate",
	"progress",
	"volumechange",
	"playing",
	"pause",
	"canplay",
	"waiting",
	"ended",
	"error",
	"loopchange",
	"abort",
}

func (e Event) String() string {
	if e < 0 || int(e) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[e]
}

// TimeRange is a buffered or seekable span, in seconds.
type TimeRange struct {
	Start float64
	End   float64
}

// Element is the native playback surface an adapter drives.
//
// All methods and all listener callbacks run on the player loop. Listeners
// are removed by calling the function On returns; removing twice is a no-op.
type Element interface {
	// Load replaces the current source. Loading is asynchronous: every
	// accepted Load is answered, in call order, by exactly one of
	// EventLoadedMetadata, EventError or EventAbort.
	Load(src string) error
	Play() error
	Pause() error
	Paused() bool

	CurrentTime() float64
	SetCurrentTime(t float64) error
	// Duration is 0 while unknown and +Inf for an unbounded live stream.
	Duration() float64
	Buffered() []TimeRange
	Seekable() []TimeRange

	Volume() float64
	SetVolume(v float64) error
	Muted() bool
	SetMuted(muted bool) error
	PlaybackRate() float64
	SetPlaybackRate(rate float64) error
	Loop() bool
	SetLoop(loop bool) error

	// Err is the error behind the last EventError.
	Err() error

	On(ev Event, fn func()) (off func())
}

// IsLive reports whether d is the duration of an unbounded stream.
func IsLive(d float64) bool {
	return math.IsInf(d, 1)
}

// BufferLevel returns how much of duration is buffered ahead of position,
// as a fraction in [0, 1] of the whole duration.
func BufferLevel(ranges []TimeRange, position, duration float64) float64 {
	if duration <= 0 || IsLive(duration) {
		return 0
	}
	for _, r := range ranges {
		if position >= r.Start && position <= r.End {
			return math.Min(1, r.End/duration)
		}
	}
	return 0
}
