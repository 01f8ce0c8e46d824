package redis

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/damianof/then-redis/resp"
)

// Breaker wraps command execution with a circuit breaker. The client core
// never retries or reconnects on its own; callers layering that policy on
// top can use a Breaker to stop hammering an endpoint that keeps failing.
type Breaker struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[*resp.Reply]
}

// NewBreaker creates a breaker around client. The breaker trips when at
// least 3 requests in the interval failed at a ratio of 0.6 or more, and
// probes again with maxRequests trial commands after timeout.
func NewBreaker(client *Client, maxRequests uint32, interval, timeout time.Duration) *Breaker {
	settings := gobreaker.Settings{
		Name:        client.cfg.Addr(),
		MaxRequests: maxRequests,
		Interval:    interval,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}
	return &Breaker{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resp.Reply](settings),
	}
}

// Do issues a command through the breaker and waits for its reply. When the
// breaker is open, Do fails immediately without touching the connection.
func (b *Breaker) Do(ctx context.Context, name string, args ...any) (*resp.Reply, error) {
	return b.cb.Execute(func() (*resp.Reply, error) {
		return b.client.Send(name, args...).Result(ctx)
	})
}

// State returns the breaker's current state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
