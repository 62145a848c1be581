// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/epgview/epgview/internal/api"
	"github.com/epgview/epgview/internal/config"
	"github.com/epgview/epgview/internal/epg"
	"github.com/epgview/epgview/internal/fetch"
	"github.com/epgview/epgview/internal/guide"
	"github.com/epgview/epgview/internal/log"
	"github.com/epgview/epgview/internal/sources"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

// guideSource adapts the fetch client to the store and follows config
// reloads: when the guide URL changes, the next fetch uses a fresh client.
type guideSource struct {
	holder *config.Holder

	mu     sync.Mutex
	url    string
	client *fetch.Client
}

func (g *guideSource) Guide(ctx context.Context) (*epg.TV, error) {
	cfg := g.holder.Current()

	g.mu.Lock()
	if g.client == nil || g.url != cfg.GuideURL {
		g.client = fetch.New(cfg.GuideURL, cfg.FetchTimeout)
		g.url = cfg.GuideURL
	}
	client := g.client
	g.mu.Unlock()

	return client.Guide(ctx)
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "config" {
		os.Exit(runConfigCLI(os.Args[2:]))
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Safe defaults until the configuration is loaded
	log.Configure(log.Config{
		Level:   "info",
		Service: "epgview",
		Version: version,
	})
	logger := log.WithComponent("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Explicit --config wins; otherwise pick up ./config.yaml when present
	effectiveConfigPath := strings.TrimSpace(*configPath)
	if effectiveConfigPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			effectiveConfigPath = "config.yaml"
		}
	}

	loader := config.NewLoader(effectiveConfigPath)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "config.load_failed").
			Str(log.FieldPath, effectiveConfigPath).
			Msg("failed to load configuration")
	}

	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: "epgview",
		Version: version,
	})

	if effectiveConfigPath != "" {
		logger.Info().
			Str(log.FieldEvent, "config.loaded").
			Str("source", "file").
			Str(log.FieldPath, effectiveConfigPath).
			Msg("loaded configuration from file")
	} else {
		logger.Info().
			Str(log.FieldEvent, "config.loaded").
			Str("source", "env+defaults").
			Msg("loaded configuration from environment and defaults")
	}

	holder := config.NewHolder(cfg, loader, effectiveConfigPath)
	if err := holder.StartWatcher(ctx); err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "config.watcher_failed").
			Msg("config file watcher not started")
	}

	// SIGHUP triggers a reload, same path as the file watcher
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := holder.Reload(ctx); err != nil {
					logger.Error().Err(err).Msg("SIGHUP config reload failed")
				}
			}
		}
	}()

	store := guide.NewStore(&guideSource{holder: holder}, cfg.RefreshInterval)
	src := sources.New(cfg.SourcesAPIBase, cfg.SourcesRepo, cfg.SourcesPaths, cfg.FetchTimeout)

	logger.Info().
		Str(log.FieldEvent, "startup").
		Str("version", version).
		Str("commit", commit).
		Str("build_date", buildDate).
		Str("addr", cfg.ListenAddr).
		Str(log.FieldSourceURL, cfg.GuideURL).
		Msg("starting epgview")

	if config.ParseBool("EPGVIEW_INITIAL_REFRESH", true) {
		if _, err := store.Refresh(ctx); err != nil {
			logger.Error().Err(err).Msg("initial guide fetch failed")
			logger.Warn().Msg("guide stays empty until the next request or POST /api/refresh")
		}
	}

	server, err := api.New(holder, store, src)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "server.init_failed").
			Msg("failed to build HTTP server")
	}

	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Fatal().
			Err(err).
			Str(log.FieldEvent, "server.failed").
			Msg("HTTP server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Str(log.FieldEvent, "shutdown").Msg("server exiting")
}
