// Package logging configures the slog logger the reporting boundary writes to.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a config/flag level name onto a slog level. Unknown names
// fall back to Warn, the quiet default for a command-line run.
func ParseLevel(levelStr string) slog.Level {
	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Setup builds a text logger writing to w at the given level. Debug level
// additionally records source positions.
func Setup(levelStr string, w io.Writer) *slog.Logger {
	level := ParseLevel(levelStr)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
