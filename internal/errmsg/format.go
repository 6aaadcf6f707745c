// Package errmsg turns player failures into messages for the user.
package errmsg

import "fmt"

// Op names a step that can fail, phrased to follow "Failed to".
type Op string

const (
	// Startup
	OpLaunchMPV   Op = "start mpv"
	OpConfigLoad  Op = "load configuration"
	OpStateOpen   Op = "open state database"
	OpMediaKeys   Op = "register media keys"
	OpSessionLoad Op = "read session"

	// Playback
	OpLoadSource    Op = "load video"
	OpPlayback      Op = "play video"
	OpSwitchQuality Op = "switch quality"
	OpSegmentsLoad  Op = "load skip segments"

	// Persistence
	OpVolumeLoad   Op = "load saved volume"
	OpVolumeSave   Op = "save volume"
	OpSaveProgress Op = "save watch progress"
)

// Failed is the message without a cause, for logs that carry the error
// separately.
func (o Op) Failed() string {
	return "Failed to " + string(o)
}

// Format returns "Failed to <op>: <err>", or "" for a nil error.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", op.Failed(), err)
}

// Error pairs a failed step with its cause.
type Error struct {
	Op  Op
	Err error
}

// Wrap returns nil for a nil err.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
