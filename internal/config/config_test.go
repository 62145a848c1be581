// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Defaults().Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "empty_listen", mutate: func(c *Config) { c.ListenAddr = " " }, ok: false},
		{name: "ftp_guide_url", mutate: func(c *Config) { c.GuideURL = "ftp://host/guide.xml" }, ok: false},
		{name: "zero_fetch_timeout", mutate: func(c *Config) { c.FetchTimeout = 0 }, ok: false},
		{name: "negative_refresh", mutate: func(c *Config) { c.RefreshInterval = -time.Second }, ok: false},
		{name: "zero_refresh_allowed", mutate: func(c *Config) { c.RefreshInterval = 0 }, ok: true},
		{name: "unknown_theme", mutate: func(c *Config) { c.DefaultTheme = "sepia" }, ok: false},
		{name: "light_theme", mutate: func(c *Config) { c.DefaultTheme = "light" }, ok: true},
		{name: "bad_repo", mutate: func(c *Config) { c.SourcesRepo = "just-a-name" }, ok: false},
		{name: "empty_repo_allowed", mutate: func(c *Config) { c.SourcesRepo = "" }, ok: true},
		{name: "negative_rate_limit", mutate: func(c *Config) { c.RateLimitRPS = -1 }, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoaderFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen: ":9999"
guide:
  url: "https://example.test/guide.xml"
  refreshInterval: 90s
theme: light
sources:
  paths: [one, two, three]
`), 0o600))

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "https://example.test/guide.xml", cfg.GuideURL)
	assert.Equal(t, 90*time.Second, cfg.RefreshInterval)
	assert.Equal(t, "light", cfg.DefaultTheme)
	assert.Equal(t, []string{"one", "two", "three"}, cfg.SourcesPaths)

	// Untouched keys keep their defaults
	assert.Equal(t, Defaults().FetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, Defaults().SourcesRepo, cfg.SourcesRepo)
}

func TestLoaderEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9999\"\n"), 0o600))

	t.Setenv("EPGVIEW_LISTEN", ":7777")
	t.Setenv("EPGVIEW_SOURCES_PATHS", "a, b ,")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.ListenAddr)
	assert.Equal(t, []string{"a", "b"}, cfg.SourcesPaths)
}

func TestLoaderMissingFileFallsBack(t *testing.T) {
	cfg, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml")).Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults().ListenAddr, cfg.ListenAddr)
}

func TestLoaderMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unclosed"), 0o600))

	_, err := NewLoader(path).Load()
	assert.Error(t, err)
}

func TestLoaderRejectsInvalidResult(t *testing.T) {
	t.Setenv("EPGVIEW_GUIDE_URL", "gopher://host/guide.xml")
	_, err := NewLoader("").Load()
	assert.Error(t, err)
}

func TestHolderReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":8081\"\n"), 0o600))

	loader := NewLoader(path)
	initial, err := loader.Load()
	require.NoError(t, err)

	h := NewHolder(initial, loader, path)
	assert.Equal(t, ":8081", h.Current().ListenAddr)

	require.NoError(t, os.WriteFile(path, []byte("listen: \":8082\"\n"), 0o600))
	require.NoError(t, h.Reload(context.Background()))
	assert.Equal(t, ":8082", h.Current().ListenAddr)

	// A broken file keeps the previous configuration
	require.NoError(t, os.WriteFile(path, []byte("listen: [broken"), 0o600))
	require.Error(t, h.Reload(context.Background()))
	assert.Equal(t, ":8082", h.Current().ListenAddr)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("EPGVIEW_TEST_STR", "value")
	assert.Equal(t, "value", ParseString("EPGVIEW_TEST_STR", "fallback"))
	assert.Equal(t, "fallback", ParseString("EPGVIEW_TEST_UNSET", "fallback"))

	t.Setenv("EPGVIEW_TEST_INT", "42")
	assert.Equal(t, 42, ParseInt("EPGVIEW_TEST_INT", 7))
	t.Setenv("EPGVIEW_TEST_INT", "nope")
	assert.Equal(t, 7, ParseInt("EPGVIEW_TEST_INT", 7))

	t.Setenv("EPGVIEW_TEST_BOOL", "true")
	assert.True(t, ParseBool("EPGVIEW_TEST_BOOL", false))

	t.Setenv("EPGVIEW_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, ParseDuration("EPGVIEW_TEST_DUR", time.Minute))
	t.Setenv("EPGVIEW_TEST_DUR", "soon")
	assert.Equal(t, time.Minute, ParseDuration("EPGVIEW_TEST_DUR", time.Minute))
}
