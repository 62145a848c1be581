// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML layout of config.yaml. Pointer fields
// distinguish "absent" from "zero" so the file only overrides what it sets.
type fileConfig struct {
	Listen *string `yaml:"listen"`
	Guide  struct {
		URL             *string        `yaml:"url"`
		FetchTimeout    *time.Duration `yaml:"fetchTimeout"`
		RefreshInterval *time.Duration `yaml:"refreshInterval"`
	} `yaml:"guide"`
	Sources struct {
		API   *string  `yaml:"api"`
		Repo  *string  `yaml:"repo"`
		Paths []string `yaml:"paths"`
	} `yaml:"sources"`
	Theme *string `yaml:"theme"`
	Log   struct {
		Level *string `yaml:"level"`
	} `yaml:"log"`
	Metrics struct {
		Enabled *bool `yaml:"enabled"`
	} `yaml:"metrics"`
	RateLimit struct {
		RPS *int `yaml:"rps"`
	} `yaml:"rateLimit"`
}

// applyFile overlays the YAML file at path onto cfg. A missing file is not an
// error; a malformed one is.
func applyFile(cfg Config, path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path originates from operator configuration
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Listen != nil {
		cfg.ListenAddr = *fc.Listen
	}
	if fc.Guide.URL != nil {
		cfg.GuideURL = *fc.Guide.URL
	}
	if fc.Guide.FetchTimeout != nil {
		cfg.FetchTimeout = *fc.Guide.FetchTimeout
	}
	if fc.Guide.RefreshInterval != nil {
		cfg.RefreshInterval = *fc.Guide.RefreshInterval
	}
	if fc.Sources.API != nil {
		cfg.SourcesAPIBase = *fc.Sources.API
	}
	if fc.Sources.Repo != nil {
		cfg.SourcesRepo = *fc.Sources.Repo
	}
	if len(fc.Sources.Paths) > 0 {
		cfg.SourcesPaths = fc.Sources.Paths
	}
	if fc.Theme != nil {
		cfg.DefaultTheme = *fc.Theme
	}
	if fc.Log.Level != nil {
		cfg.LogLevel = *fc.Log.Level
	}
	if fc.Metrics.Enabled != nil {
		cfg.MetricsEnabled = *fc.Metrics.Enabled
	}
	if fc.RateLimit.RPS != nil {
		cfg.RateLimitRPS = *fc.RateLimit.RPS
	}
	return cfg, nil
}
