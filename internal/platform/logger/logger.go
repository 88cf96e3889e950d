// Package logger provides structured logging functionality for the
// application.
//
// It utilizes Go's standard library log/slog package to implement
// structured JSON logging with configurable log levels, and carries
// request-scoped loggers through context.Context.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/novatech/taskflow/internal/config"
)

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger with the configured
// level, sets it as the process default, and returns it.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo

		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	log := slog.New(handler)
	slog.SetDefault(log)

	return log, nil
}
