package playback

import "github.com/llehouerou/flipplayer/internal/errmsg"

// StateChange pairs the snapshots around one mutation.
type StateChange struct {
	Previous State
	Current  State
}

// ErrorEvent is a failure shown to the user. Fatal errors also set
// State.PlayerError.
type ErrorEvent struct {
	Operation errmsg.Op
	Err       error
	Fatal     bool
}
