// internal/playback/state.go
package playback

import "github.com/llehouerou/flipplayer/internal/adapter"

// Status summarizes a State for displays and the media session.
type Status int

const (
	StatusIdle Status = iota
	StatusBuffering
	StatusPlaying
	StatusPaused
	StatusEnded
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusBuffering:
		return "Buffering"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	case StatusEnded:
		return "Ended"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a source is loaded and playable.
func (s Status) IsActive() bool {
	return s == StatusBuffering || s == StatusPlaying || s == StatusPaused
}

// State is the canonical playback state. Only the Orchestrator mutates it;
// everyone else gets copies.
type State struct {
	Playing     bool
	Buffering   bool
	BufferLevel float64

	CurrentTime   float64
	Duration      float64
	DurationKnown bool
	Live          bool
	Ended         bool

	Volume       float64
	Muted        bool
	Loop         bool
	PlaybackRate float64

	VideoTracks           []adapter.Track
	AudioTracks           []adapter.Track
	AutomaticVideoQuality bool
	AutomaticAudioQuality bool
	// Pending ids are requested representations not yet rendered.
	PendingVideoRepresentation string
	PendingAudioRepresentation string
	SelectedLanguage           string

	PlayerError   error
	BufferMessage string
}

// Status derives the display status.
func (s State) Status() Status {
	switch {
	case s.PlayerError != nil:
		return StatusFailed
	case s.Ended:
		return StatusEnded
	case s.Buffering:
		return StatusBuffering
	case s.Playing:
		return StatusPlaying
	case s.DurationKnown:
		return StatusPaused
	default:
		return StatusIdle
	}
}

// Progress returns CurrentTime as a fraction of Duration, 0 when unknown.
func (s State) Progress() float64 {
	if !s.DurationKnown || s.Duration <= 0 {
		return 0
	}
	return min(1, s.CurrentTime/s.Duration)
}
