// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/epgview/epgview/internal/log"
)

// Holder holds configuration with atomic reloading. Reads are thread-safe; a
// reload either applies a fully valid configuration or keeps the old one.
type Holder struct {
	mu      sync.RWMutex
	current Config

	loader  *Loader
	path    string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
}

// NewHolder creates a holder with the given initial configuration.
func NewHolder(initial Config, loader *Loader, path string) *Holder {
	return &Holder{
		current: initial,
		loader:  loader,
		path:    path,
		logger:  log.WithComponent("config"),
	}
}

// Current returns the current configuration.
func (h *Holder) Current() Config {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Reload re-resolves the configuration. On failure the previous configuration
// stays in place and the error is returned.
func (h *Holder) Reload(_ context.Context) error {
	newCfg, err := h.loader.Load()
	if err != nil {
		h.logger.Error().
			Err(err).
			Str(log.FieldEvent, "config.reload_failed").
			Msg("failed to load new configuration")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	old := h.current
	h.current = newCfg
	h.mu.Unlock()

	if old.GuideURL != newCfg.GuideURL {
		h.logger.Info().
			Str("old", old.GuideURL).
			Str("new", newCfg.GuideURL).
			Str(log.FieldEvent, "config.guide_url_changed").
			Msg("guide source URL changed")
	}
	h.logger.Info().Str(log.FieldEvent, "config.reload_success").Msg("configuration reloaded")
	return nil
}

// StartWatcher watches the config file and reloads on changes. A holder
// without a file path is ENV-only and skips watching.
func (h *Holder) StartWatcher(ctx context.Context) error {
	if h.path == "" {
		h.logger.Info().
			Str(log.FieldEvent, "config.watcher_disabled").
			Msg("config file watcher disabled (using ENV-only configuration)")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(h.path); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch config file: %w", err)
	}
	h.watcher = watcher

	h.logger.Info().
		Str(log.FieldEvent, "config.watcher_started").
		Str(log.FieldPath, h.path).
		Msg("watching config file for changes")

	go h.watchLoop(ctx)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context) {
	// Debounce so editors that write in several bursts trigger one reload
	var debounce *time.Timer
	const debounceDelay = 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			h.logger.Info().Str(log.FieldEvent, "config.watcher_stopped").Msg("config watcher stopped")
			_ = h.watcher.Close()
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			// Write and Create cover vim, nano and plain redirection
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					if err := h.Reload(ctx); err != nil {
						h.logger.Error().
							Err(err).
							Str(log.FieldEvent, "config.auto_reload_failed").
							Msg("automatic config reload failed")
					}
				})
			}

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
			h.logger.Error().
				Err(err).
				Str(log.FieldEvent, "config.watcher_error").
				Msg("config watcher error")
		}
	}
}
