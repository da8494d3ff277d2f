// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package metrics_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tabletop/internal/platform/metrics"
)

func scrape(t *testing.T, handler http.Handler) string {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	body, err := io.ReadAll(recorder.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(collector.Middleware)
	router.Get("/combats/{combatID}", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/combats/1", "/combats/2"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	body := scrape(t, collector.Handler())
	assert.Contains(t, body, `tabletop_http_requests_total{method="GET",route="/combats/{combatID}",status="404"} 2`)
	assert.Contains(t, body, `tabletop_http_request_duration_seconds_count{method="GET",route="/combats/{combatID}"} 2`)
	assert.NotContains(t, body, `route="/combats/1"`)
}

func TestRecordPublish(t *testing.T) {
	collector := metrics.New()

	collector.RecordPublish(nil)
	collector.RecordPublish(nil)
	collector.RecordPublish(errors.New("broker down"))

	body := scrape(t, collector.Handler())
	assert.Contains(t, body, `tabletop_session_publishes_total{outcome="ok"} 2`)
	assert.Contains(t, body, `tabletop_session_publishes_total{outcome="error"} 1`)
}
