// Package logging builds the slog loggers used by the server and CLI.
//
// Standard output carries the MCP protocol, so loggers are always handed an
// explicit writer (stderr in production).
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Output formats accepted by New.
const (
	FormatPretty = "pretty"
	FormatText   = "text"
	FormatJSON   = "json"
)

// New returns a logger writing to w at the given level (debug, info, warn,
// error). format is "json", "text" or "pretty"; anything else is treated as
// "pretty", a colorized tint handler.
func New(w io.Writer, level, format string) *slog.Logger {
	lvl := ParseLevel(level)
	var handler slog.Handler
	switch strings.ToLower(format) {
	case FormatJSON:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	case FormatText:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
		})
	}
	return slog.New(handler)
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// ParseLevel maps a level name to a slog.Level. Unknown names give info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// ValidLevel reports whether level is one ParseLevel knows by name.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// ValidFormat reports whether format is one New knows by name.
func ValidFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatPretty, FormatText, FormatJSON:
		return true
	}
	return false
}

// LogToolComplete logs a successful tool call.
func LogToolComplete(logger *slog.Logger, tool string, duration time.Duration, attrs ...any) {
	args := append([]any{"tool", tool, "duration_ms", duration.Milliseconds()}, attrs...)
	logger.Debug("tool completed", args...)
}

// LogToolError logs a failed tool call.
func LogToolError(logger *slog.Logger, tool string, duration time.Duration, err error) {
	logger.Warn("tool failed",
		"tool", tool,
		"duration_ms", duration.Milliseconds(),
		"error", err,
	)
}
