// Package logging builds the structured zap logger shared by every binary.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production zap logger at the requested level.
func New(level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Must is New that falls back to a development logger instead of failing.
func Must(level string) *zap.Logger {
	logger, err := New(level)
	if err != nil {
		fallback, _ := zap.NewDevelopment()
		fallback.Warn("falling back to development logger", zap.Error(err))
		return fallback
	}
	return logger
}
