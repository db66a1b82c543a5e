package client

import (
	"sync/atomic"
)

// Metrics counts what happened to inbound events and outbound intents.
type Metrics struct {
	Applied       int64 // events applied to the world
	Ignored       int64 // unknown opcodes
	Malformed     int64 // undecodable events
	Dangling      int64 // events naming an absent puppet, or arriving before an instance
	Duplicate     int64 // events introducing a present puppet
	IntentsSent   int64 // tokens handed to the transport
	IntentsFailed int64 // tokens the transport refused
	Ticks         int64
}

func (m *Metrics) IncApplied()       { atomic.AddInt64(&m.Applied, 1) }
func (m *Metrics) IncIgnored()       { atomic.AddInt64(&m.Ignored, 1) }
func (m *Metrics) IncMalformed()     { atomic.AddInt64(&m.Malformed, 1) }
func (m *Metrics) IncDangling()      { atomic.AddInt64(&m.Dangling, 1) }
func (m *Metrics) IncDuplicate()     { atomic.AddInt64(&m.Duplicate, 1) }
func (m *Metrics) IncIntentsSent()   { atomic.AddInt64(&m.IntentsSent, 1) }
func (m *Metrics) IncIntentsFailed() { atomic.AddInt64(&m.IntentsFailed, 1) }
func (m *Metrics) IncTicks()         { atomic.AddInt64(&m.Ticks, 1) }

// Snapshot returns a read-only copy for the debug endpoint.
func (m *Metrics) Snapshot() map[string]any {
	return map[string]any{
		"events_applied":   atomic.LoadInt64(&m.Applied),
		"events_ignored":   atomic.LoadInt64(&m.Ignored),
		"events_malformed": atomic.LoadInt64(&m.Malformed),
		"events_dangling":  atomic.LoadInt64(&m.Dangling),
		"events_duplicate": atomic.LoadInt64(&m.Duplicate),
		"intents_sent":     atomic.LoadInt64(&m.IntentsSent),
		"intents_failed":   atomic.LoadInt64(&m.IntentsFailed),
		"ticks":            atomic.LoadInt64(&m.Ticks),
	}
}
