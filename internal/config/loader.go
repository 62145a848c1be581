// SPDX-License-Identifier: MIT

package config

import "fmt"

// Loader resolves the effective configuration with precedence
// ENV > file > defaults.
type Loader struct {
	path string // optional config.yaml path; empty skips the file layer
}

// NewLoader creates a loader for the optional config file at path.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load resolves and validates the configuration.
func (l *Loader) Load() (Config, error) {
	cfg := Defaults()

	if l.path != "" {
		merged, err := applyFile(cfg, l.path)
		if err != nil {
			return Config{}, err
		}
		cfg = merged
	}

	cfg = applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
