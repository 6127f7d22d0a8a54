// Package logging sets up the daemon's structured logger, a
// console-writer on top of zerolog in place of the plain standard
// library "log" package.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds a console-writing zerolog.Logger at the given verbosity.
// verbosity 0 is Info, 1 (-v) is Debug, 2+ (-d) is Trace, the last tier
// reserved for the chattiest per-update logging.
func New(verbosity int, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}

	level := zerolog.InfoLevel
	switch {
	case verbosity >= 2:
		level = zerolog.TraceLevel
	case verbosity == 1:
		level = zerolog.DebugLevel
	}

	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}
