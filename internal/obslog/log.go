// Package obslog configures the shared zerolog logger used across the
// pipeline stages. Every stage logs through a *zerolog.Logger rather than
// the global log package so tests can redirect output and callers embedding
// the core can supply their own sink.
package obslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console-formatted logger suitable for CLI use. Pass
// os.Stdout or any io.Writer; nil defaults to os.Stderr.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// NewJSON returns a structured JSON logger, the format used when the
// pipeline runs as a long-lived service rather than an interactive CLI.
func NewJSON(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, used as the zero value in
// packages that accept an optional logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
