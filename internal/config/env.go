// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/epgview/epgview/internal/log"
)

// ParseString reads a string from environment variable or returns the default.
// It logs the source (environment or default) for observability.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if value, exists := os.LookupEnv(key); exists && value != "" {
		logger.Debug().
			Str("key", key).
			Str("value", value).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

// ParseInt reads an integer from environment variable or returns the default.
// It falls back to default on parse errors.
func ParseInt(key string, defaultValue int) int {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment variable, using default")
	}
	return defaultValue
}

// ParseBool reads a boolean from environment variable or returns the default.
func ParseBool(key string, defaultValue bool) bool {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Bool("default", defaultValue).
			Msg("invalid boolean in environment variable, using default")
	}
	return defaultValue
}

// ParseDuration reads a duration in Go duration format (e.g. "5s") from
// environment variable or returns the default.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	logger := log.WithComponent("config")
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Dur("default", defaultValue).
			Msg("invalid duration in environment variable, using default")
	}
	return defaultValue
}

// ParseStringSlice reads a comma-separated list from environment variable or
// returns the default. Empty items are dropped.
func ParseStringSlice(key string, defaultValue []string) []string {
	raw := ParseString(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// applyEnv overlays EPGVIEW_* environment variables onto cfg.
func applyEnv(cfg Config) Config {
	cfg.ListenAddr = ParseString("EPGVIEW_LISTEN", cfg.ListenAddr)
	cfg.GuideURL = ParseString("EPGVIEW_GUIDE_URL", cfg.GuideURL)
	cfg.FetchTimeout = ParseDuration("EPGVIEW_FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.RefreshInterval = ParseDuration("EPGVIEW_REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.SourcesAPIBase = ParseString("EPGVIEW_SOURCES_API", cfg.SourcesAPIBase)
	cfg.SourcesRepo = ParseString("EPGVIEW_SOURCES_REPO", cfg.SourcesRepo)
	cfg.SourcesPaths = ParseStringSlice("EPGVIEW_SOURCES_PATHS", cfg.SourcesPaths)
	cfg.DefaultTheme = ParseString("EPGVIEW_THEME", cfg.DefaultTheme)
	cfg.LogLevel = ParseString("EPGVIEW_LOG_LEVEL", cfg.LogLevel)
	cfg.MetricsEnabled = ParseBool("EPGVIEW_METRICS_ENABLED", cfg.MetricsEnabled)
	cfg.RateLimitRPS = ParseInt("EPGVIEW_RATE_LIMIT_RPS", cfg.RateLimitRPS)
	return cfg
}
