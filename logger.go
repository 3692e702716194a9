package waygraph

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with waygraph-specific helpers so every operation
// logs with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithGeneration tags the logger with a snapshot generation.
func (l *Logger) WithGeneration(gen uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", gen),
	}
}

// LogCommit logs a committed delta.
func (l *Logger) LogCommit(nodes, edges int, err error) {
	if err != nil {
		l.Error("commit failed",
			"nodes", nodes,
			"edges", edges,
			"error", err,
		)
		return
	}
	l.Debug("commit completed",
		"nodes", nodes,
		"edges", edges,
	)
}

// LogDedup logs a deduplication run.
func (l *Logger) LogDedup(removed, groups int) {
	if removed == 0 {
		l.Debug("dedup found no duplicates")
		return
	}
	l.Info("dedup completed",
		"removed", removed,
		"groups", groups,
	)
}

// LogHistory logs an undo or redo step.
func (l *Logger) LogHistory(op string, undo, redo int, err error) {
	if err != nil {
		l.Warn(op+" failed", "error", err)
		return
	}
	l.Debug(op+" completed",
		"undo_depth", undo,
		"redo_depth", redo,
	)
}
