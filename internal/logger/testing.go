package logger

import (
	"log/slog"
	"os"
)

// NewTestLogger creates a logger for tests.
// Output is dropped unless TEST_DEBUG is set, in which case everything down
// to DEBUG is written to stderr in the pretty format.
func NewTestLogger() *slog.Logger {
	if os.Getenv("TEST_DEBUG") == "" {
		return slog.New(slog.DiscardHandler)
	}

	return NewLoggerTo(os.Stderr, Config{
		Level:  slog.LevelDebug,
		Format: FormatPretty,
	})
}
