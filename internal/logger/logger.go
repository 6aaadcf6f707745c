// Package logger provides structured logging using zerolog.
//
// The terminal belongs to the UI, so logs go to a file under the XDG state
// directory unless a writer is supplied.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

const (
	appName     = "flipplayer"
	logFileName = "flipplayer.log"

	logLevelDebug = "debug"
	logLevelInfo  = "info"
	logLevelWarn  = "warn"
	logLevelError = "error"
)

// Log is the global logger instance. It discards everything until Init.
var Log = zerolog.Nop()

// Init configures the global logger. A nil out opens the log file; the
// returned closer releases it.
func Init(level string, pretty bool, out io.Writer) (io.Closer, error) {
	zerolog.TimeFieldFormat = time.RFC3339

	var closer io.Closer = nopCloser{}
	if out == nil {
		f, err := openLogFile()
		if err != nil {
			return nil, err
		}
		out, closer = f, f
	}

	if pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		}
	}

	zerolog.SetGlobalLevel(parseLogLevel(level))

	Log = zerolog.New(out).
		With().
		Timestamp().
		Logger()
	return closer, nil
}

// Path returns the log file location.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

func openLogFile() (*os.File, error) {
	path, err := Path()
	if err != nil {
		return nil, fmt.Errorf("resolve log path: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// parseLogLevel converts a string log level to zerolog.Level
func parseLogLevel(level string) zerolog.Level {
	switch level {
	case logLevelDebug:
		return zerolog.DebugLevel
	case logLevelInfo:
		return zerolog.InfoLevel
	case logLevelWarn:
		return zerolog.WarnLevel
	case logLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
