package kdotool

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates the diagnostic logger. Diagnostics go to stderr so that
// RESULT forwarding on stdout stays machine-readable. The debug flag wins
// over the configured level.
func NewLogger(debug bool, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.ErrorLevel
	}

	if debug {
		lvl = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
