package config

import (
	"context"
	"log/slog"
)

// Context keys for values threaded through cobra's command context.
type (
	configKey struct{}
	loggerKey struct{}
)

// WithConfig stores the loaded config in a context.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from a context, falling back to
// defaults when none was stored.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}
	return &Config{
		ManifestPath: DefaultManifest,
		StatePath:    DefaultStateFile,
		OutputFormat: DefaultOutput,
	}
}

// WithLogger stores the logger in a context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom retrieves the logger from a context, falling back to a
// discard logger.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
