package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console logger writing to w at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Component returns a child logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

// ParseLevel maps a level name onto a zerolog level.
func ParseLevel(value string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
