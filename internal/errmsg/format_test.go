package errmsg

import (
	"errors"
	"io/fs"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{"nil error", OpLoadSource, nil, ""},
		{"load", OpLoadSource, errors.New("manifest not found"), "Failed to load video: manifest not found"},
		{"quality switch", OpSwitchQuality, errors.New("unknown representation"), "Failed to switch quality: unknown representation"},
		{"playback", OpPlayback, errors.New("decoder error"), "Failed to play video: decoder error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, got, tt.expected)
			}
		})
	}
}

func TestFailed(t *testing.T) {
	if got := OpSaveProgress.Failed(); got != "Failed to save watch progress" {
		t.Errorf("Failed() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(OpConfigLoad, nil) != nil {
		t.Error("Wrap(nil) != nil")
	}

	err := Wrap(OpConfigLoad, fs.ErrPermission)
	if err.Error() != "Failed to load configuration: permission denied" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is does not reach the cause")
	}
	var e *Error
	if !errors.As(err, &e) || e.Op != OpConfigLoad {
		t.Errorf("errors.As = %+v", e)
	}
}
