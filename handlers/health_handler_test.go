package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) PingContext(_ context.Context) error { return s.err }

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(&stubPinger{}, &stubResolver{}, testDiscardLogger())

	rr := httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	env := assertEnvelope(t, rr, http.StatusOK, true)
	content, ok := env.Content.(map[string]any)
	if !ok {
		t.Fatalf("unexpected content shape: %T", env.Content)
	}
	if content["status"] != "ok" {
		t.Fatalf("unexpected status %v", content["status"])
	}
	if _, ok := content["uptime"]; !ok {
		t.Fatal("uptime missing from health payload")
	}
	if _, ok := content["timestamp"]; !ok {
		t.Fatal("timestamp missing from health payload")
	}
}

func TestReadiness(t *testing.T) {
	h := NewHealthHandler(&stubPinger{}, &stubResolver{}, testDiscardLogger())

	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assertEnvelope(t, rr, http.StatusOK, true)
}

func TestReadinessFailsWhenStorageDown(t *testing.T) {
	h := NewHealthHandler(&stubPinger{err: errors.New("down")}, &stubResolver{}, testDiscardLogger())

	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assertEnvelope(t, rr, http.StatusServiceUnavailable, false)
}
