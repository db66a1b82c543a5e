package client

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type ScreenConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type PuppetConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Config is the client's YAML configuration.
type Config struct {
	ServerURL      string            `yaml:"server_url"`
	Screen         ScreenConfig      `yaml:"screen"`
	TileSize       float64           `yaml:"tile_size"`
	Puppet         PuppetConfig      `yaml:"puppet"`
	Keys           map[string]string `yaml:"keys"` // direction -> key name
	Log            LogConfig         `yaml:"log"`
	DebugAddr      string            `yaml:"debug_addr"`
	SendBuffer     int               `yaml:"send_buffer"`
	InboundBuffer  int               `yaml:"inbound_buffer"`
	PingPeriod     string            `yaml:"ping_period"`
	PongWait       string            `yaml:"pong_wait"`
	WriteWait      string            `yaml:"write_wait"`
	AnimationSpeed float64           `yaml:"animation_speed"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		ServerURL: "ws://localhost:4000",
		Screen:    ScreenConfig{Width: 640, Height: 480},
		TileSize:  32,
		Puppet:    PuppetConfig{Width: 32, Height: 32},
		Keys: map[string]string{
			"UP":    "ArrowUp",
			"DOWN":  "ArrowDown",
			"LEFT":  "ArrowLeft",
			"RIGHT": "ArrowRight",
		},
		Log:            LogConfig{File: "client.log", Level: "info"},
		SendBuffer:     64,
		InboundBuffer:  256,
		PingPeriod:     "54s",
		PongWait:       "60s",
		WriteWait:      "10s",
		AnimationSpeed: 0.08,
	}
}

// LoadConfig overlays the YAML file at path (if any) and the environment
// on the defaults, then validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if u := os.Getenv("PUPPET_SERVER_URL"); u != "" {
		cfg.ServerURL = u
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var err error

	u, perr := url.Parse(c.ServerURL)
	if perr != nil {
		err = multierr.Append(err, fmt.Errorf("parsing server_url: %w", perr))
	} else if u.Scheme != "ws" && u.Scheme != "wss" {
		err = multierr.Append(err, fmt.Errorf("server_url scheme must be ws or wss, got %q", u.Scheme))
	}

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("invalid screen size %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("tile_size must be positive"))
	}
	if c.Puppet.Width <= 0 || c.Puppet.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("invalid puppet size %gx%g", c.Puppet.Width, c.Puppet.Height))
	}
	if c.SendBuffer <= 0 {
		err = multierr.Append(err, fmt.Errorf("send_buffer must be positive"))
	}
	if c.InboundBuffer <= 0 {
		err = multierr.Append(err, fmt.Errorf("inbound_buffer must be positive"))
	}
	if c.AnimationSpeed < 0 {
		err = multierr.Append(err, fmt.Errorf("animation_speed must not be negative"))
	}

	for name, v := range map[string]string{
		"ping_period": c.PingPeriod,
		"pong_wait":   c.PongWait,
		"write_wait":  c.WriteWait,
	} {
		if d, perr := time.ParseDuration(v); perr != nil {
			err = multierr.Append(err, fmt.Errorf("parsing %s: %w", name, perr))
		} else if d <= 0 {
			err = multierr.Append(err, fmt.Errorf("%s must be positive", name))
		}
	}

	if _, kerr := c.Bindings(); kerr != nil {
		err = multierr.Append(err, kerr)
	}
	return err
}

// Bindings parses the key map.
func (c *Config) Bindings() (map[Direction]string, error) {
	var err error
	out := make(map[Direction]string, len(c.Keys))
	seen := make(map[string]Direction, len(c.Keys))
	for name, key := range c.Keys {
		dir, derr := ParseDirection(name)
		if derr != nil {
			err = multierr.Append(err, fmt.Errorf("keys: %w", derr))
			continue
		}
		if key == "" {
			err = multierr.Append(err, fmt.Errorf("keys: %s has no key", dir))
			continue
		}
		if _, dup := out[dir]; dup {
			err = multierr.Append(err, fmt.Errorf("keys: %s bound more than once", dir))
			continue
		}
		if other, dup := seen[key]; dup {
			err = multierr.Append(err, fmt.Errorf("keys: %q bound to both %s and %s", key, other, dir))
			continue
		}
		seen[key] = dir
		out[dir] = key
	}
	return out, err
}

// Timeouts is the parsed websocket timing.
type Timeouts struct {
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
}

// Timeouts parses the duration fields. Call Validate first.
func (c *Config) Timeouts() Timeouts {
	ping, _ := time.ParseDuration(c.PingPeriod)
	pong, _ := time.ParseDuration(c.PongWait)
	write, _ := time.ParseDuration(c.WriteWait)
	return Timeouts{PingPeriod: ping, PongWait: pong, WriteWait: write}
}
