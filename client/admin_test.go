package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDebugMux_State(t *testing.T) {
	s := NewSession(testConfig())
	s.Deliver(keyFrame(t, OpAttributePuppet, "me"))
	s.Deliver(digestFrame(t, "m1", 4, 4, map[string]Point{"me": {X: 8, Y: 0}}))
	s.Press(DirUp)

	mux := NewDebugMux(s)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/state", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Session     string `json:"session"`
		MapKey      string `json:"map_key"`
		LocalPuppet string `json:"local_puppet"`
		Camera      Offset `json:"camera"`
		Puppets     []struct {
			ID     string `json:"id"`
			Y      float64
			Facing string `json:"facing"`
		} `json:"puppets"`
		Held []string `json:"held"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Session != s.ID || got.MapKey != "m1" || got.LocalPuppet != "me" {
		t.Errorf("state = %+v", got)
	}
	if len(got.Puppets) != 1 || got.Puppets[0].Facing != "DOWN" || got.Puppets[0].Y != 48 {
		t.Errorf("puppets = %+v", got.Puppets)
	}
	if got.Camera != (Offset{X: 312, Y: 192}) {
		t.Errorf("camera = %+v", got.Camera)
	}
	if len(got.Held) != 1 || got.Held[0] != "UP" {
		t.Errorf("held = %v", got.Held)
	}
}

func TestDebugMux_MetricsAndMethods(t *testing.T) {
	s := NewSession(testConfig())
	s.Deliver([]byte("garbage"))
	mux := NewDebugMux(s)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	var body struct {
		Metrics map[string]int64 `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Metrics["events_malformed"] != 1 {
		t.Errorf("metrics = %v", body.Metrics)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/debug/state", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Body.String() != "ok" {
		t.Errorf("healthz = %q", rec.Body.String())
	}
}
