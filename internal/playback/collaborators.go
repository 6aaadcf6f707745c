package playback

import (
	"context"

	"github.com/llehouerou/flipplayer/internal/errmsg"
	"github.com/llehouerou/flipplayer/internal/state"
)

// Settings are the user preferences the orchestrator reads. They are read
// on every use, so changes apply without remounting.
type Settings interface {
	SaveVideoHistory() bool
	AlwaysLoopVideo() bool
	DefaultVideoSpeed() float64
	// MaxVideoQuality is the tallest automatic progressive format, 0 for
	// no cap.
	MaxVideoQuality() int
	Autoplay() bool
}

// VolumeStore persists the volume across runs. It is read once on mount.
type VolumeStore interface {
	GetVolume() (*state.VolumeState, error)
	SaveVolume(volume float64, muted bool)
}

// History receives watch progress. Calls run off the player loop.
type History interface {
	SaveProgress(ctx context.Context, videoID string, progress, length float64) error
}

// Session reports whether a user is signed in.
type Session interface {
	LoggedIn() bool
}

// ErrorReporter shows errors to the user.
type ErrorReporter interface {
	ReportError(op errmsg.Op, err error)
}

// MediaAction is an OS-level transport control.
type MediaAction int

const (
	ActionPlay MediaAction = iota
	ActionPause
	ActionSeekForward
	ActionSeekBackward
	ActionSeekTo
)

// ActionDetails carries the argument of a media action.
type ActionDetails struct {
	// SeekOffset is the step of SeekForward and SeekBackward; 0 means the
	// default step.
	SeekOffset float64
	// SeekTime is the absolute target of SeekTo.
	SeekTime float64
}

// MediaSession is the OS media-session capability. Handlers may be called
// from any goroutine.
type MediaSession interface {
	SetActionHandler(action MediaAction, fn func(ActionDetails))
	ClearActionHandlers()
	SetMetadata(v Video)
	SetPlaybackState(status Status)
	SetPositionState(duration, rate, position float64)
}
