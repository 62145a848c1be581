// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/epgview/epgview/internal/config"
)

func runConfigCLI(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printConfigUsage()
		return 0
	}

	switch args[0] {
	case "validate":
		return runConfigValidate(args[1:])
	case "dump":
		return runConfigDump(args[1:])
	case "init":
		return runConfigInit(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", args[0])
		printConfigUsage()
		return 2
	}
}

func printConfigUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  epgview config validate [--file|-f config.yaml]")
	fmt.Fprintln(os.Stderr, "  epgview config dump [--file|-f config.yaml] [--format=yaml|json]")
	fmt.Fprintln(os.Stderr, "  epgview config init [--file|-f config.yaml]")
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("epgview config validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		configPath = "config.yaml"
	}
	if _, err := os.Stat(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s not found\n", configPath)
		return 2
	}

	if _, err := config.NewLoader(configPath).Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error in %s:\n  %v\n", configPath, err)
		return 1
	}

	fmt.Printf("%s is valid\n", configPath)
	return 0
}

func runConfigDump(args []string) int {
	fs := flag.NewFlagSet("epgview config dump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var file string
	var format string
	fs.StringVar(&file, "file", "", "path to YAML configuration file")
	fs.StringVar(&file, "f", "", "path to YAML configuration file (shorthand)")
	fs.StringVar(&format, "format", "yaml", "output format: yaml or json")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Dump resolves the full precedence chain, so a missing file still works
	path := strings.TrimSpace(file)
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	cfg, err := config.NewLoader(path).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error:\n  %v\n", err)
		return 1
	}
	dump := dumpFromConfig(cfg)

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(dump); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode YAML: %v\n", err)
			return 1
		}
		_ = enc.Close()
		return 0
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dump); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unsupported format: %s (use yaml or json)\n", format)
		return 2
	}
}

// dumpConfig mirrors the config file layout, with durations rendered as
// strings instead of nanosecond counts.
type dumpConfig struct {
	Listen string `yaml:"listen" json:"listen"`
	Guide  struct {
		URL             string `yaml:"url" json:"url"`
		FetchTimeout    string `yaml:"fetchTimeout" json:"fetchTimeout"`
		RefreshInterval string `yaml:"refreshInterval" json:"refreshInterval"`
	} `yaml:"guide" json:"guide"`
	Sources struct {
		API   string   `yaml:"api" json:"api"`
		Repo  string   `yaml:"repo" json:"repo"`
		Paths []string `yaml:"paths" json:"paths"`
	} `yaml:"sources" json:"sources"`
	Theme string `yaml:"theme" json:"theme"`
	Log   struct {
		Level string `yaml:"level" json:"level"`
	} `yaml:"log" json:"log"`
	Metrics struct {
		Enabled bool `yaml:"enabled" json:"enabled"`
	} `yaml:"metrics" json:"metrics"`
	RateLimit struct {
		RPS int `yaml:"rps" json:"rps"`
	} `yaml:"rateLimit" json:"rateLimit"`
}

func dumpFromConfig(cfg config.Config) dumpConfig {
	var d dumpConfig
	d.Listen = cfg.ListenAddr
	d.Guide.URL = cfg.GuideURL
	d.Guide.FetchTimeout = cfg.FetchTimeout.String()
	d.Guide.RefreshInterval = cfg.RefreshInterval.String()
	d.Sources.API = cfg.SourcesAPIBase
	d.Sources.Repo = cfg.SourcesRepo
	d.Sources.Paths = cfg.SourcesPaths
	d.Theme = cfg.DefaultTheme
	d.Log.Level = cfg.LogLevel
	d.Metrics.Enabled = cfg.MetricsEnabled
	d.RateLimit.RPS = cfg.RateLimitRPS
	return d
}

const starterConfig = `# epgview configuration. Every key can also be set via EPGVIEW_* environment
# variables, which take precedence over this file.
listen: ":8080"

guide:
  url: "https://raw.githubusercontent.com/migpaniag/EPGS/main/all_in_one/all_in_one.xml"
  fetchTimeout: 30s
  refreshInterval: 5m

sources:
  repo: "migpaniag/EPGS"
  paths:
    - all_in_one
    - channels

theme: dark

log:
  level: info

metrics:
  enabled: true

rateLimit:
  rps: 60
`

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("epgview config init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var file string
	fs.StringVar(&file, "file", "", "path to write the starter config")
	fs.StringVar(&file, "f", "", "path to write the starter config (shorthand)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	configPath := strings.TrimSpace(file)
	if configPath == "" {
		configPath = "config.yaml"
	}
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: %s already exists, refusing to overwrite\n", configPath)
		return 1
	}

	// Atomic write: no partial config file on crash
	if err := renameio.WriteFile(configPath, []byte(starterConfig), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", configPath, err)
		return 1
	}

	fmt.Printf("wrote starter configuration to %s\n", configPath)
	return 0
}
