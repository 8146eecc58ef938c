// Package logging constructs the process logger. The logger is built once in
// main and handed to every collaborator that needs it; there is no package
// global to configure.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a leveled logger writing human-readable lines to stderr.
// The level is INFO by default and DEBUG when verbose is set.
func New(verbose bool) zerolog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination, for tests.
func NewWithWriter(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	log := zerolog.New(console).Level(level).With().Timestamp().Logger()

	if verbose {
		log.Debug().Msg("logging configured at DEBUG level")
	} else {
		log.Info().Msg("logging configured at INFO level")
	}

	return log
}
