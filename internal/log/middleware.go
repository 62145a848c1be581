// SPDX-License-Identifier: MIT

package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Middleware returns an HTTP middleware that assigns a request ID, stores a
// request-scoped logger in the context and emits one access-log entry per request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}

			logger := Base().With().Str(FieldRequestID, rid).Logger()
			ctx := ContextWithRequestID(r.Context(), rid)
			ctx = logger.WithContext(ctx)

			lw := &logWriter{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Request-ID", rid)
			next.ServeHTTP(lw, r.WithContext(ctx))

			logger.Info().
				Str(FieldEvent, "http.request").
				Str("method", r.Method).
				Str(FieldPath, r.URL.Path).
				Int("status", lw.status).
				Int("bytes", lw.bytes).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

// logWriter wraps http.ResponseWriter to capture status and size.
type logWriter struct {
	http.ResponseWriter
	status  int
	bytes   int
	written bool
}

func (lw *logWriter) WriteHeader(status int) {
	if !lw.written {
		lw.status = status
		lw.written = true
	}
	lw.ResponseWriter.WriteHeader(status)
}

func (lw *logWriter) Write(b []byte) (int, error) {
	if !lw.written {
		lw.written = true
	}
	n, err := lw.ResponseWriter.Write(b)
	lw.bytes += n
	return n, err
}
