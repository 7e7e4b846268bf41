// Package log builds the process logger: the log/slog API backed by zerolog.
package log

import (
	"io"
	"log/slog"

	"github.com/rs/zerolog"
	slogzerolog "github.com/samber/slog-zerolog"
)

// NewLogger returns a slog.Logger writing through zerolog to w, as JSON when
// format is "json" and human-readable otherwise.
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	var zerologLogger zerolog.Logger
	if format == "json" {
		zerologLogger = zerolog.New(w)
	} else {
		zerologLogger = zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true})
	}
	return slog.New(slogzerolog.Option{Level: level, Logger: &zerologLogger}.NewZerologHandler())
}
