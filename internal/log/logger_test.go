// SPDX-License-Identifier: MIT

package log

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOutput bytes.Buffer

func TestMain(m *testing.M) {
	// The global logger is shared, so the whole package logs into one buffer.
	Configure(Config{Level: "debug", Output: &testOutput, Service: "epgview-test", Version: "test"})
	m.Run()
}

func lastEntry(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(testOutput.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestWithComponentAnnotatesEntries(t *testing.T) {
	logger := WithComponent("guide")
	logger.Info().Str(FieldEvent, "test.event").Msg("hello")

	entry := lastEntry(t)
	assert.Equal(t, "guide", entry[FieldComponent])
	assert.Equal(t, "test.event", entry[FieldEvent])
	assert.Equal(t, "epgview-test", entry["service"])
}

func TestConfigureReapplies(t *testing.T) {
	defer Configure(Config{Level: "debug", Output: &testOutput, Service: "epgview-test", Version: "test"})

	var buf bytes.Buffer
	Configure(Config{Level: "error", Output: &buf, Service: "epgview-test", Version: "test2"})
	assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	logger := WithComponent("guide")
	logger.Info().Msg("suppressed")
	assert.Empty(t, buf.Bytes())

	logger.Error().Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "kept", entry["message"])
	assert.Equal(t, "test2", entry["version"])
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestWithComponentFromContextCarriesRequestID(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-456")
	logger := WithComponentFromContext(ctx, "api")
	logger.Info().Msg("scoped")

	entry := lastEntry(t)
	assert.Equal(t, "req-456", entry[FieldRequestID])
	assert.Equal(t, "api", entry[FieldComponent])
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	var seen string
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guide", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))

	entry := lastEntry(t)
	assert.Equal(t, "http.request", entry[FieldEvent])
	assert.EqualValues(t, http.StatusTeapot, entry["status"])
}

func TestMiddlewareKeepsUpstreamRequestID(t *testing.T) {
	h := Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "upstream-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "upstream-1", rec.Header().Get("X-Request-ID"))
}
