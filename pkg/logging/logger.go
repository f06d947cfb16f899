package logging

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with application-specific functionality
type Logger struct {
	*slog.Logger
}

// New creates a new JSON logger with the specified level
func New(level string) *Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return &Logger{Logger: slog.New(handler)}
}

// Default returns a logger with default settings
func Default() *Logger {
	return New("info")
}

// With returns a logger that includes the given attributes on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
