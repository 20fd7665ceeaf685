package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type upstreamStatusStub struct{ available bool }

func (s upstreamStatusStub) Available() bool { return s.available }

func TestHealth_ProcessUp(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	h.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "UP" {
		t.Errorf("expected UP, got %q", resp.Status)
	}
	if resp.Checks["process"].Status != "UP" {
		t.Errorf("expected process check UP, got %+v", resp.Checks)
	}
}

func TestReady_RedisDown(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without redis, got %d", rec.Code)
	}
}

func TestReady_OpenUpstreamBreaker(t *testing.T) {
	h := NewHealthHandler(nil, nil, upstreamStatusStub{available: false})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()

	h.Ready(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 with an open upstream breaker, got %d", rec.Code)
	}

	var resp struct {
		Checks map[string]Check `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Checks["upstream"].Status != "DOWN" {
		t.Errorf("expected upstream check DOWN, got %+v", resp.Checks)
	}
}
