// Package logger constructs the process-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger configured for the given environment: pretty
// console output in dev, JSON elsewhere.
func New(env string) zerolog.Logger {
	var l zerolog.Logger
	if env == "dev" {
		l = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		l = zerolog.New(os.Stdout)
	}
	return l.Level(zerolog.InfoLevel).With().Timestamp().Logger()
}
