// internal/playback/state_test.go
package playback

import (
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusIdle, "Idle"},
		{StatusBuffering, "Buffering"},
		{StatusPlaying, "Playing"},
		{StatusPaused, "Paused"},
		{StatusEnded, "Ended"},
		{StatusFailed, "Failed"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestState_Status(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  Status
	}{
		{"empty", State{}, StatusIdle},
		{"buffering wins over playing", State{Buffering: true, Playing: true}, StatusBuffering},
		{"playing", State{Playing: true, DurationKnown: true}, StatusPlaying},
		{"paused", State{DurationKnown: true}, StatusPaused},
		{"ended", State{Ended: true, DurationKnown: true}, StatusEnded},
		{"error wins", State{PlayerError: errors.New("x"), Playing: true}, StatusFailed},
	}
	for _, tt := range tests {
		if got := tt.state.Status(); got != tt.want {
			t.Errorf("%s: Status() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestState_Progress(t *testing.T) {
	if got := (State{CurrentTime: 5}).Progress(); got != 0 {
		t.Errorf("unknown duration: Progress() = %v, want 0", got)
	}
	if got := (State{CurrentTime: 25, Duration: 100, DurationKnown: true}).Progress(); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}
}
