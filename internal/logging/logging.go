// Package logging configures the structured logger for the scaffold CLI.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger. With trace enabled every external command
// invocation is logged at debug level; otherwise only warnings surface.
func New(trace bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	level := zerolog.WarnLevel
	if trace {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "scaffold").Logger()
}
