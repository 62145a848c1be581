// SPDX-License-Identifier: MIT

// Package config loads service configuration with precedence ENV > file > defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config is the effective service configuration.
type Config struct {
	ListenAddr string

	// Guide source
	GuideURL        string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration

	// Source listing
	SourcesAPIBase string
	SourcesRepo    string
	SourcesPaths   []string

	// Presentation
	DefaultTheme string

	// Observability
	LogLevel       string
	MetricsEnabled bool

	// API protection
	RateLimitRPS int
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ListenAddr:      ":8080",
		GuideURL:        "https://raw.githubusercontent.com/migpaniag/EPGS/main/all_in_one/all_in_one.xml",
		FetchTimeout:    30 * time.Second,
		RefreshInterval: 5 * time.Minute,
		SourcesAPIBase:  "https://api.github.com",
		SourcesRepo:     "migpaniag/EPGS",
		SourcesPaths:    []string{"all_in_one", "channels"},
		DefaultTheme:    "dark",
		LogLevel:        "info",
		MetricsEnabled:  true,
		RateLimitRPS:    60,
	}
}

// Validate rejects configurations the server cannot start with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	u, err := url.Parse(c.GuideURL)
	if err != nil {
		return fmt.Errorf("guide url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("guide url %q must be http or https", c.GuideURL)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must not be negative, got %s", c.RefreshInterval)
	}
	if c.DefaultTheme != "dark" && c.DefaultTheme != "light" {
		return fmt.Errorf("theme %q must be dark or light", c.DefaultTheme)
	}
	if c.SourcesRepo != "" && len(strings.Split(strings.Trim(c.SourcesRepo, "/"), "/")) != 2 {
		return fmt.Errorf("sources repo %q must be owner/name", c.SourcesRepo)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
