package logger

import (
	"io"

	"github.com/rs/zerolog"
)

// New creates a JSON zerolog.Logger writing to w at the given level. If the
// level string is invalid, it defaults to info.
func New(level string, w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// NewConsole works like New, but writes human readable lines.
func NewConsole(level string, w io.Writer) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: w, NoColor: true})
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
