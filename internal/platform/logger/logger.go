package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Handlers receive it via
// constructor injection rather than reaching for slog.Default.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
