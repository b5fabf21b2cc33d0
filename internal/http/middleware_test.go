package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestLoggerAssignsRequestID(t *testing.T) {
	t.Parallel()

	var seen *slog.Logger
	handler := RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = LoggerFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/classes", nil))

	if seen == nil {
		t.Fatalf("expected a request-scoped logger in context")
	}
	if recorder.Header().Get(requestIDHeader) == "" {
		t.Errorf("expected an X-Request-ID response header")
	}
}

func TestRequestLoggerReusesInboundRequestID(t *testing.T) {
	t.Parallel()

	handler := RequestLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/classes", nil)
	req.Header.Set(requestIDHeader, "caller-supplied-id")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if got := recorder.Header().Get(requestIDHeader); got != "caller-supplied-id" {
		t.Errorf("request id = %q, want the inbound id echoed back", got)
	}
}
