package adapter

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelector means the element cannot switch renditions in place.
	ErrNoSelector = errors.New("element cannot select renditions")
	// ErrUnknownRepresentation means the requested id is not in the track.
	ErrUnknownRepresentation = errors.New("unknown representation")
)

// InitError means the source could not be loaded at all.
type InitError struct {
	Source SourceType
	URL    string
	Err    error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s source %s: %v", e.Source, e.URL, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// SwitchError means a rendition switch failed; playback continues on the
// previous representation.
type SwitchError struct {
	Kind             Kind
	TrackID          string
	RepresentationID string
	Err              error
}

func (e *SwitchError) Error() string {
	return fmt.Sprintf("switch %s track %s to %q: %v", e.Kind, e.TrackID, e.RepresentationID, e.Err)
}

func (e *SwitchError) Unwrap() error { return e.Err }
