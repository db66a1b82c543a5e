package client

import (
	"context"
	"time"
)

const (
	// TicksPerSecond is the frame rate of the headless loop. It matches
	// ebiten's default update rate.
	TicksPerSecond = 60
)

var tickInterval = time.Second / TicksPerSecond

// Tick is one frame: apply waiting inbound events, then depth-sort the
// visuals. It returns the stacking order to draw in.
func (s *Session) Tick(inbound <-chan []byte) []PuppetID {
	s.Pump(inbound)
	s.metrics.IncTicks()
	return s.DepthOrder()
}

// Run ticks the session without a window until ctx is cancelled or done
// is closed.
func (s *Session) Run(ctx context.Context, inbound <-chan []byte, done <-chan struct{}) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			s.Pump(inbound)
			return ErrNotConnected
		case <-ticker.C:
			s.Tick(inbound)
		}
	}
}
