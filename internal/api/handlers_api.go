// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/epgview/epgview/internal/guide"
	"github.com/epgview/epgview/internal/log"
	"github.com/epgview/epgview/internal/metrics"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := log.WithComponent("api")
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleGuideJSON(w http.ResponseWriter, r *http.Request) {
	day, ok := s.dayParam(w, r)
	if !ok {
		return
	}

	doc, err := s.store.Document(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	start := time.Now()
	sched := guide.Build(doc, day, guide.Options{ChannelQuery: r.URL.Query().Get("q")})
	metrics.ObserveScheduleBuild(time.Since(start))

	writeJSON(w, http.StatusOK, sched)
}

func (s *Server) handleSourcesJSON(w http.ResponseWriter, r *http.Request) {
	files, err := s.sources.List(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	logger := log.WithComponentFromContext(r.Context(), "api")

	doc, err := s.store.Refresh(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	logger.Info().
		Str(log.FieldEvent, "guide.refresh_triggered").
		Int("channels", len(doc.Channels)).
		Msg("guide refreshed on request")
	writeJSON(w, http.StatusOK, s.store.Status())
}

// healthResponse reports liveness plus the shape of the applied guide document.
type healthResponse struct {
	Status        string       `json:"status"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Guide         guide.Status `json:"guide"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.store.Status()

	status := "ok"
	if st.LoadedAt.IsZero() {
		status = "empty"
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:        status,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Guide:         st,
	})
}
