package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"default info", "", slog.LevelInfo},
		{"unknown falls back to info", "verbose", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level")
	}
	if logger.Logger == nil {
		t.Fatal("Default() returned Logger with nil slog.Logger")
	}
}

func TestWith(t *testing.T) {
	logger := Default().With("component", "test")
	if logger == nil || logger.Logger == nil {
		t.Fatal("With() returned nil logger")
	}
	logger.Info("attribute logger works")
}
