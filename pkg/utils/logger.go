package utils

import (
	"os"

	"github.com/rs/zerolog"
)

// CreateLogger initializes and returns a console logger writing to stderr,
// so warnings never interleave with machine-readable report output on
// stdout. Components receive this logger explicitly; there is no global
// logging state.
func CreateLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
