package client

import (
	"encoding/json"
	"testing"
)

// testConfig uses 16px tiles and puppets on a 640x480 screen.
func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.TileSize = 16
	cfg.Puppet = PuppetConfig{Width: 16, Height: 16}
	return cfg
}

func frame(t *testing.T, opcode string, message any) []byte {
	t.Helper()
	b, err := json.Marshal(map[string]any{"opcode": opcode, "message": message})
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return b
}

func digestFrame(t *testing.T, mapKey string, w, h int, puppets map[string]Point) []byte {
	t.Helper()
	return frame(t, string(OpInstanceDigest), map[string]any{
		"map": map[string]any{
			"map_key": mapKey,
			"digest":  map[string]any{"width": w, "height": h},
		},
		"puppets": puppets,
	})
}

func keyFrame(t *testing.T, op Opcode, id string) []byte {
	t.Helper()
	return frame(t, string(op), map[string]any{"puppet_key": id})
}

func movesFrame(t *testing.T, id string, x, y float64) []byte {
	t.Helper()
	return frame(t, string(OpPuppetMoves), map[string]any{
		"puppet_key": id,
		"position":   map[string]any{"x": x, "y": y},
	})
}

func entersFrame(t *testing.T, id string, x, y float64) []byte {
	t.Helper()
	return frame(t, string(OpPuppetEnters), map[string]any{
		"puppet_key": id,
		"digest":     map[string]any{"x": x, "y": y},
	})
}

type recordingTransport struct {
	sent []string
	err  error
}

func (r *recordingTransport) Send(tok string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, tok)
	return nil
}

func (r *recordingTransport) count(tok string) int {
	n := 0
	for _, s := range r.sent {
		if s == tok {
			n++
		}
	}
	return n
}

type recordingRenderer struct {
	effects []Effect
}

func (r *recordingRenderer) Apply(e Effect) { r.effects = append(r.effects, e) }
