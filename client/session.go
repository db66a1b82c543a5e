package client

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transport carries outbound intent tokens to the server.
type Transport interface {
	Send(token string) error
}

// Session is the top-level controller. It owns the world, the input
// stack and the dispatcher, and is the only path by which inbound events
// and key edges reach them. All methods are safe for concurrent use, but
// events are applied strictly one at a time in call order.
type Session struct {
	mu sync.RWMutex

	ID         string
	world      *WorldState
	dispatcher *Dispatcher
	input      *InputStack
	keyboard   *Keyboard

	transport Transport
	renderer  Renderer
	metrics   *Metrics
	log       *zap.SugaredLogger
	onDesync  func(error)
}

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *zap.SugaredLogger) Option { return func(s *Session) { s.log = l } }
func WithRenderer(r Renderer) Option        { return func(s *Session) { s.renderer = r } }
func WithTransport(t Transport) Option      { return func(s *Session) { s.transport = t } }
func WithMetrics(m *Metrics) Option         { return func(s *Session) { s.metrics = m } }

// WithDesyncHandler registers fn to hear about events that show local
// state has drifted from the server. fn runs with the session locked and
// must not call back into it.
func WithDesyncHandler(fn func(error)) Option { return func(s *Session) { s.onDesync = fn } }

// NewSession builds a session from cfg. cfg must be valid.
func NewSession(cfg *Config, opts ...Option) *Session {
	world := NewWorldState(cfg.TileSize, cfg.Puppet.Width, cfg.Puppet.Height)
	camera := Camera{ScreenWidth: float64(cfg.Screen.Width), ScreenHeight: float64(cfg.Screen.Height)}
	bindings, _ := cfg.Bindings()
	input := &InputStack{}

	s := &Session{
		ID:         uuid.NewString(),
		world:      world,
		dispatcher: NewDispatcher(world, camera),
		input:      input,
		keyboard:   NewKeyboard(input, bindings),
		renderer:   NopRenderer{},
		metrics:    &Metrics{},
		log:        Log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.ID)
	return s
}

// SetTransport swaps the outbound transport; nil means disconnected.
func (s *Session) SetTransport(t Transport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport = t
}

// Metrics returns the session's counters.
func (s *Session) Metrics() *Metrics { return s.metrics }

// Deliver decodes and applies one inbound frame. Errors are logged and
// counted, never returned, so one bad frame cannot stop the stream.
func (s *Session) Deliver(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deliver(data)
}

func (s *Session) deliver(data []byte) {
	ev, err := Decode(data)
	if err != nil {
		s.metrics.IncMalformed()
		s.log.Warnw("dropping inbound message", "error", err, "bytes", len(data))
		return
	}
	if u, ok := ev.(UnknownEvent); ok {
		s.metrics.IncIgnored()
		s.log.Debugw("ignoring unknown opcode", "opcode", u.Op)
		return
	}

	effects, err := s.dispatcher.Dispatch(ev)
	if err != nil {
		s.reject(ev, err)
		return
	}
	s.metrics.IncApplied()
	for _, e := range effects {
		s.renderer.Apply(e)
	}
}

func (s *Session) reject(ev Event, err error) {
	switch {
	case errors.Is(err, ErrDuplicateEntity):
		s.metrics.IncDuplicate()
	case errors.Is(err, ErrDanglingReference), errors.Is(err, ErrNoInstance):
		s.metrics.IncDangling()
	}
	s.log.Warnw("dropping inbound event", "opcode", ev.Opcode(), "error", err)
	if IsDesync(err) && s.onDesync != nil {
		s.onDesync(err)
	}
}

// Pump applies every frame already waiting on inbound without blocking
// and returns how many it consumed.
func (s *Session) Pump(inbound <-chan []byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for {
		select {
		case data, ok := <-inbound:
			if !ok {
				return n
			}
			s.deliver(data)
			n++
		default:
			return n
		}
	}
}

// KeyDown reports a raw key-down from the keyboard source.
func (s *Session) KeyDown(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transmit(s.keyboard.KeyDown(key))
}

// KeyUp reports a raw key-up from the keyboard source.
func (s *Session) KeyUp(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transmit(s.keyboard.KeyUp(key))
}

// Press pushes dir onto the input stack and transmits the decision.
func (s *Session) Press(dir Direction) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.input.Press(dir)
	s.transmit(d)
	return d
}

// Release drops dir from the input stack and transmits the decision.
func (s *Session) Release(dir Direction) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.input.Release(dir)
	s.transmit(d)
	return d
}

// transmit sends d's tokens. With no transport, the stack still tracks the
// keys but nothing is sent.
func (s *Session) transmit(d Decision) {
	for _, tok := range d.Tokens() {
		if s.transport == nil {
			s.log.Debugw("not connected, dropping intent", "token", tok)
			continue
		}
		if err := s.transport.Send(tok); err != nil {
			s.metrics.IncIntentsFailed()
			if errors.Is(err, ErrNotConnected) {
				s.log.Debugw("not connected, dropping intent", "token", tok)
			} else {
				s.log.Warnw("sending intent", "token", tok, "error", err)
			}
			continue
		}
		s.metrics.IncIntentsSent()
	}
}

// DepthOrder runs the per-tick depth sort and returns the stacking order.
func (s *Session) DepthOrder() []PuppetID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world.Puppets.DepthOrder()
}

// Snapshot is a consistent read-only copy of the session state.
type Snapshot struct {
	Session     string         `json:"session"`
	Instance    string         `json:"instance"`
	MapKey      string         `json:"map_key"`
	MapWidth    float64        `json:"map_width"`
	MapHeight   float64        `json:"map_height"`
	Visible     bool           `json:"visible"`
	LocalPuppet PuppetID       `json:"local_puppet,omitempty"`
	Camera      *Offset        `json:"camera,omitempty"`
	Puppets     []Puppet       `json:"puppets"`
	Held        []Direction    `json:"held"`
	Metrics     map[string]any `json:"metrics"`
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Session:     s.ID,
		Instance:    s.world.Instance,
		MapKey:      s.world.MapKey,
		MapWidth:    s.world.MapWidth,
		MapHeight:   s.world.MapHeight,
		Visible:     s.world.Visible,
		LocalPuppet: s.world.LocalPuppet,
		Puppets:     s.world.Puppets.Snapshot(),
		Held:        s.input.Held(),
		Metrics:     s.metrics.Snapshot(),
	}
	if off, ok := s.dispatcher.CameraOffset(); ok {
		snap.Camera = &off
	}
	return snap
}
