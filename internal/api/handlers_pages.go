// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"time"

	"github.com/epgview/epgview/internal/guide"
	"github.com/epgview/epgview/internal/log"
	"github.com/epgview/epgview/internal/metrics"
	"github.com/epgview/epgview/internal/sources"
)

// guidePageData feeds the guide template. On Error, rows are absent and the
// page shows the error text instead (all-or-nothing per load).
type guidePageData struct {
	Theme    string
	Day      string
	PrevDay  string
	NextDay  string
	Headline string
	Query    string
	Slots    []string
	Rows     []guide.Row
	Error    string
}

func (s *Server) handleGuidePage(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	day, ok := s.dayParam(w, r)
	if !ok {
		return
	}
	query := r.URL.Query().Get("q")

	data := guidePageData{
		Theme:    s.cfg.Current().DefaultTheme,
		Day:      day.String(),
		PrevDay:  day.Prev().String(),
		NextDay:  day.Next().String(),
		Headline: day.Headline(),
		Query:    query,
		Slots:    guide.TimeSlots(),
	}

	doc, err := s.store.Document(r.Context())
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "guide.load_failed").
			Str(log.FieldDay, day.String()).
			Msg("guide load failed")
		data.Error = err.Error()
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "guide.html", data)
		return
	}

	start := time.Now()
	sched := guide.Build(doc, day, guide.Options{ChannelQuery: query})
	metrics.ObserveScheduleBuild(time.Since(start))

	data.Rows = sched.Rows
	s.render(w, r, "guide.html", data)
}

type sourcesPageData struct {
	Theme string
	Files []sources.File
	Error string
}

func (s *Server) handleSourcesPage(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	data := sourcesPageData{Theme: s.cfg.Current().DefaultTheme}

	files, err := s.sources.List(r.Context())
	if err != nil {
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "sources.list_failed").
			Msg("sources listing failed")
		data.Error = err.Error()
		w.WriteHeader(http.StatusBadGateway)
		s.render(w, r, "sources.html", data)
		return
	}

	data.Files = files
	s.render(w, r, "sources.html", data)
}

// dayParam resolves the requested day, defaulting to today. A malformed value
// is a client error.
func (s *Server) dayParam(w http.ResponseWriter, r *http.Request) (guide.Day, bool) {
	raw := r.URL.Query().Get("day")
	if raw == "" {
		return guide.DayOf(s.now()), true
	}
	day, err := guide.ParseDay(raw)
	if err != nil {
		http.Error(w, "invalid day, expected YYYY-MM-DD", http.StatusBadRequest)
		return guide.Day{}, false
	}
	return day, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str("template", name).
			Msg("template execution failed")
	}
}
