// SPDX-License-Identifier: MIT

// Package api provides the HTTP server for the guide viewer.
package api

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/epgview/epgview/internal/config"
	"github.com/epgview/epgview/internal/guide"
	"github.com/epgview/epgview/internal/log"
	"github.com/epgview/epgview/internal/sources"
	"github.com/epgview/epgview/web"
)

// ConfigProvider yields the current configuration. Implemented by
// config.Holder. Per-request settings (the default theme) follow a hot
// reload; router-level settings (metrics endpoint, rate limit) are read once
// when Handler builds the router.
type ConfigProvider interface {
	Current() config.Config
}

// Server is the HTTP server for the guide viewer.
type Server struct {
	cfg     ConfigProvider
	store   *guide.Store
	sources *sources.Client
	tmpl    *template.Template

	startTime time.Time
	now       func() time.Time // injectable for tests
}

// Option allows functional configuration of the Server.
type Option func(*Server)

// WithNow overrides the clock used to resolve the default day (for tests).
func WithNow(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the server with its embedded templates parsed.
func New(cfg ConfigProvider, store *guide.Store, src *sources.Client, opts ...Option) (*Server, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		store:     store,
		sources:   src,
		tmpl:      tmpl,
		startTime: time.Now(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler builds the chi router with the canonical middleware stack.
func (s *Server) Handler() http.Handler {
	cfg := s.cfg.Current()

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(log.Middleware())
	r.Use(securityHeaders)
	r.Use(metricsMiddleware())

	r.Get("/", s.handleGuidePage)
	r.Get("/sources", s.handleSourcesPage)
	r.Get("/healthz", s.handleHealth)

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httprate.LimitByIP(cfg.RateLimitRPS, time.Second))
		}
		api.Get("/guide", s.handleGuideJSON)
		api.Get("/sources", s.handleSourcesJSON)
		api.Post("/refresh", s.handleRefresh)
	})

	return r
}
