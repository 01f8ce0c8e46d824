package redis

import "sync/atomic"

// Stats contains statistics about client operations.
// All fields are safe for concurrent access through Client.Stats.
//
// For Prometheus integration, expose these as:
//   - Counters: Sends, Replies, Events, Errors
type Stats struct {
	Sends   uint64 // commands issued
	Replies uint64 // replies decoded, including push-style ones
	Events  uint64 // asynchronous events emitted
	Errors  uint64 // transport, protocol and server-reported errors
}

// statsCollector provides internal methods for updating stats.
// Not exported - the client updates its own stats.
type statsCollector struct {
	sends   atomic.Uint64
	replies atomic.Uint64
	events  atomic.Uint64
	errors  atomic.Uint64
}

func newStatsCollector() *statsCollector {
	return &statsCollector{}
}

func (c *statsCollector) recordSend()  { c.sends.Add(1) }
func (c *statsCollector) recordReply() { c.replies.Add(1) }
func (c *statsCollector) recordEvent() { c.events.Add(1) }
func (c *statsCollector) recordError() { c.errors.Add(1) }

func (c *statsCollector) snapshot() Stats {
	return Stats{
		Sends:   c.sends.Load(),
		Replies: c.replies.Load(),
		Events:  c.events.Load(),
		Errors:  c.errors.Load(),
	}
}
