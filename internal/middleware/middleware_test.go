package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestLoggerSetsTraceID(t *testing.T) {
	var seen string
	handler := RequestLogger()(RouteGroup("test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TraceID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Errorf("Expected a trace id in the request context")
	}
	if rec.Header().Get(TraceHeader) != seen {
		t.Errorf("Expected the trace id header to be %q, got %q", seen, rec.Header().Get(TraceHeader))
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
}

func TestRequestLoggerRecovers(t *testing.T) {
	handler := RequestLogger()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"message"`) || strings.Contains(rec.Body.String(), "boom") {
		t.Errorf("Expected a generic JSON message, got %s", rec.Body.String())
	}
}
