package sync

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger builds a *slog.Logger from LogSettings. Per-request diagnostics
// (URL, body, status) are only emitted at debug level; routine runs at info
// stay quiet regardless of record volume.
func NewLogger(settings LogSettings, output io.Writer) *slog.Logger {
	level := parseLogLevel(settings.Level)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(settings.Format, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
