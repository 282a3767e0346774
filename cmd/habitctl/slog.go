package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// setupLogger configures the default slog logger. Debug level gets the
// colorized tint handler for interactive troubleshooting; everything else
// logs JSON to stderr so normal command output on stdout stays clean.
func setupLogger(levelStr string) error {
	level := slog.LevelInfo
	if levelStr != "" {
		if err := level.UnmarshalText([]byte(levelStr)); err != nil {
			return err
		}
	}

	if level == slog.LevelDebug {
		slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.TimeOnly,
		})))
		return nil
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}
