// ABOUTME: This file provides the slog JSON logger shared by every package
// ABOUTME: Output keeps time/level/msg keys with lowercase levels and a service attribute
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger settings read from the environment.
type Config struct {
	Level       string `env:"LOG_LEVEL" default:"info"`
	ServiceName string `env:"SERVICE_NAME" default:"flyer-ingest"`
	Version     string `env:"SERVICE_VERSION" default:"1.0.0"`
}

// LoadConfigFromEnv loads logger configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		Level:       getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceName: getEnvOrDefault("SERVICE_NAME", "flyer-ingest"),
		Version:     getEnvOrDefault("SERVICE_VERSION", "1.0.0"),
	}
}

// Init builds the process logger on stdout and installs it as the slog default.
func Init(cfg Config, otelEnabled bool) *slog.Logger {
	logger := New(os.Stdout, cfg, otelEnabled)
	slog.SetDefault(logger)
	return logger
}

// New creates a JSON logger writing to output. Records carry trace and
// pipeline context from the ctx passed to the *Context logging methods. When
// otelEnabled is set, records are also exported through the otelslog bridge.
func New(output io.Writer, cfg Config, otelEnabled bool) *slog.Logger {
	level := ParseLevel(cfg.Level)

	options := &slog.HandlerOptions{
		Level:     level,
		AddSource: false,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.Attr{Key: "level", Value: slog.StringValue(strings.ToLower(lvl.String()))}
				}
			}
			return a
		},
	}

	var handler slog.Handler = NewTraceContextHandler(slog.NewJSONHandler(output, options))
	if otelEnabled {
		handler = newOTelTee(cfg.ServiceName, handler)
	}

	return slog.New(handler).With("service", cfg.ServiceName, "version", cfg.Version)
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
