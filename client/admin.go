package client

import (
	"encoding/json"
	"net/http"
)

// NewDebugMux serves read-only views of s for local inspection.
//
//	GET /debug/state  world, puppets, camera and held keys
//	GET /metrics      event and intent counters
//	GET /healthz      liveness
func NewDebugMux(s *Session) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/state", HandleDebugState(s))
	mux.HandleFunc("/metrics", HandleMetrics(s))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// HandleDebugState writes the session snapshot as JSON.
func HandleDebugState(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, s.Snapshot())
	}
}

// HandleMetrics writes the session counters as JSON.
func HandleMetrics(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, map[string]any{
			"session": s.ID,
			"metrics": s.Metrics().Snapshot(),
		})
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.Warnw("encoding debug response", "error", err)
	}
}
