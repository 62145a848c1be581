// SPDX-License-Identifier: MIT

// Package log provides structured logging utilities backed by zerolog.
package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stdout)
	Service string    // optional service name attached to every log entry
	Version string    // optional version string attached to every log entry
}

var (
	mu         sync.Mutex
	configured bool
	base       zerolog.Logger
)

// Configure applies cfg to the global zerolog logger. Calling it again
// reconfigures, so startup code may log with defaults before the effective
// configuration is loaded and apply the configured level afterwards.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	configure(cfg)
}

func configure(cfg Config) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		if parsed, err := zerolog.ParseLevel(cfg.Level); err == nil {
			level = parsed
		}
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	writer := cfg.Output
	if writer == nil {
		writer = os.Stdout
	}

	service := cfg.Service
	if service == "" {
		service = os.Getenv("LOG_SERVICE")
		if service == "" {
			service = "epgview"
		}
	}

	version := cfg.Version
	if version == "" {
		version = os.Getenv("VERSION")
	}

	base = zerolog.New(writer).With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()
	configured = true
}

func logger() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if !configured {
		configure(Config{})
	}
	return base
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	return logger()
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	l := logger().With().Str("component", component).Logger()
	return l
}

// Derive attaches arbitrary fields to a child logger using the provided builder function.
func Derive(build func(*zerolog.Context)) zerolog.Logger {
	ctx := logger().With()
	if build != nil {
		build(&ctx)
	}
	return ctx.Logger()
}
