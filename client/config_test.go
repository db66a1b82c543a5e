package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfig_OverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.yaml")
	data := `
server_url: wss://world.example:4443/ws
screen:
  width: 800
  height: 600
tile_size: 24
keys:
  UP: W
  LEFT: A
ping_period: 5s
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != "wss://world.example:4443/ws" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.Screen.Width != 800 || cfg.Screen.Height != 600 || cfg.TileSize != 24 {
		t.Errorf("screen %+v tile %v", cfg.Screen, cfg.TileSize)
	}
	if cfg.Puppet.Height != 32 {
		t.Errorf("Puppet.Height = %v, want default 32", cfg.Puppet.Height)
	}
	if cfg.Timeouts().PingPeriod != 5*time.Second {
		t.Errorf("PingPeriod = %v", cfg.Timeouts().PingPeriod)
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("Bindings() error = %v", err)
	}
	if bindings[DirUp] != "W" || bindings[DirLeft] != "A" || bindings[DirDown] != "ArrowDown" {
		t.Errorf("bindings = %v", bindings)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("PUPPET_SERVER_URL", "ws://10.0.0.5:4000")
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ServerURL != "ws://10.0.0.5:4000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestConfig_ValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ServerURL = "http://localhost:4000"
	cfg.Screen.Width = 0
	cfg.TileSize = -1
	cfg.PongWait = "soon"
	cfg.Keys["sideways"] = "Q"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if n := len(multierr.Errors(err)); n != 5 {
		t.Errorf("got %d errors, want 5: %v", n, err)
	}
}

func TestConfig_DuplicateKeyBinding(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys["UP"] = "ArrowDown"
	if _, err := cfg.Bindings(); err == nil {
		t.Fatal("expected error for key bound twice")
	}
}
