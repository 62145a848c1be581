// SPDX-License-Identifier: MIT

package guide

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/epgview/epgview/internal/epg"
	"github.com/epgview/epgview/internal/log"
	"github.com/epgview/epgview/internal/metrics"
)

// Fetcher retrieves the current guide document from its source.
type Fetcher interface {
	Guide(ctx context.Context) (*epg.TV, error)
}

// Store holds the most recently fetched guide document. Concurrent loads are
// collapsed into one upstream fetch, and every load carries a generation so a
// slow response can never overwrite a newer one.
type Store struct {
	fetcher Fetcher
	ttl     time.Duration

	group singleflight.Group

	mu       sync.RWMutex
	doc      *epg.TV
	loadedAt time.Time
	gen      uint64 // newest initiated load
	applied  uint64 // generation of the applied document
}

// Status describes the last successful load, for health reporting.
type Status struct {
	LoadedAt   time.Time `json:"loaded_at"`
	Channels   int       `json:"channels"`
	Programmes int       `json:"programmes"`
}

// NewStore creates a store that refetches the document once the previous copy
// is older than ttl. A non-positive ttl refetches on every Document call.
func NewStore(fetcher Fetcher, ttl time.Duration) *Store {
	return &Store{fetcher: fetcher, ttl: ttl}
}

// Document returns the current guide document, fetching it if the cached copy
// is missing or stale. On fetch failure a stale copy is not substituted: the
// caller surfaces the error all-or-nothing.
func (s *Store) Document(ctx context.Context) (*epg.TV, error) {
	s.mu.RLock()
	doc, loadedAt := s.doc, s.loadedAt
	s.mu.RUnlock()

	if doc != nil && s.ttl > 0 && time.Since(loadedAt) < s.ttl {
		return doc, nil
	}
	return s.Refresh(ctx)
}

// Refresh forces a fetch of the guide document, deduplicating concurrent
// callers through singleflight.
func (s *Store) Refresh(ctx context.Context) (*epg.TV, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	v, err, shared := s.group.Do("guide", func() (any, error) {
		// The flight can outlive the caller that started it; joined callers
		// must not fail because the first caller was cancelled.
		return s.fetcher.Guide(context.WithoutCancel(ctx))
	})
	if err != nil {
		metrics.RecordGuideFetch("failure")
		return nil, err
	}
	doc := v.(*epg.TV)
	metrics.RecordGuideFetch("success")

	logger := log.WithComponentFromContext(ctx, "store")

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen < s.applied {
		// A newer load finished first; keep its document.
		logger.Debug().
			Str(log.FieldEvent, "guide.stale_load_discarded").
			Uint64("generation", gen).
			Msg("discarding stale guide load")
		return s.doc, nil
	}
	s.doc = doc
	s.applied = gen
	s.loadedAt = time.Now()
	metrics.SetGuideCounts(len(doc.Channels), len(doc.Programs))

	logger.Info().
		Str(log.FieldEvent, "guide.loaded").
		Int("channels", len(doc.Channels)).
		Int("programmes", len(doc.Programs)).
		Bool("shared", shared).
		Msg("guide document loaded")
	return doc, nil
}

// Status reports the shape of the applied document. Channels and Programmes
// are zero until the first successful load.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := Status{LoadedAt: s.loadedAt}
	if s.doc != nil {
		st.Channels = len(s.doc.Channels)
		st.Programmes = len(s.doc.Programs)
	}
	return st
}
