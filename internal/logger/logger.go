// Package logger builds the diagnostic logger shared by the git-mit
// binaries. Diagnostics go to stderr as slog text records; user-facing
// output is written by the commands themselves.
package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// EnvVar overrides the log level, e.g. GIT_MIT_LOG=debug.
const EnvVar = "GIT_MIT_LOG"

// ParseLevel converts a level name. Unknown names report ok == false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

// Level picks the effective level: debug when verbose, otherwise the
// level named by env, otherwise warn.
func Level(verbose bool, env string) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	if l, ok := ParseLevel(env); ok {
		return l
	}
	return slog.LevelWarn
}

// New creates a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

type ctxKey struct{}

// WithContext stores l in ctx.
func WithContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return Discard()
}
