// Package logging builds the zap loggers used by trajview.
// Log lines go to stderr or to the configured file. While the viewer owns
// the terminal and no file is configured, logging is discarded.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trajview/internal/config"
)

// Category names a subsystem; it becomes the logger name.
type Category string

const (
	CategoryBoot   Category = "boot"   // Config and startup
	CategoryLoad   Category = "load"   // Reading and reshaping trajectory files
	CategoryViewer Category = "viewer" // Interactive viewer
	CategoryWatch  Category = "watch"  // Input file watcher
)

// New builds a logger from cfg. verbose forces debug level.
func New(cfg config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Sampling = nil
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Format != "json" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForViewer returns the logger to use while the viewer holds the terminal:
// logger itself when lines go to a file, a no-op otherwise.
func ForViewer(logger *zap.Logger, cfg config.LoggingConfig) *zap.Logger {
	if logger == nil || cfg.File == "" {
		return zap.NewNop()
	}
	return logger
}

// Named returns a child logger for a category. A nil logger yields a no-op.
func Named(logger *zap.Logger, category Category) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(string(category))
}
