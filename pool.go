package redis

import (
	"context"
	"fmt"

	"github.com/jackc/puddle/v2"
)

// ClientPool is a pool of connected clients for applications that need more
// concurrency than one pipeline provides. Every pooled client still owns
// exactly one connection to the configured endpoint; pooling changes how
// many pipelines exist, not how each one behaves.
type ClientPool struct {
	pool *puddle.Pool[*Client]
}

// NewClientPool creates a pool of up to maxSize clients sharing one
// configuration. Clients are created and connected lazily on Acquire.
func NewClientPool(cfg *Config, maxSize int32) (*ClientPool, error) {
	if maxSize <= 0 {
		return nil, fmt.Errorf("redis: pool size must be positive, got %d", maxSize)
	}

	poolConfig := &puddle.Config[*Client]{
		Constructor: func(ctx context.Context) (*Client, error) {
			client := NewClient(cfg)
			if _, err := client.Connect().Result(ctx); err != nil {
				client.Close()
				return nil, err
			}
			return client, nil
		},
		Destructor: func(client *Client) {
			_ = client.Close()
		},
		MaxSize: maxSize,
	}

	pool, err := puddle.NewPool(poolConfig)
	if err != nil {
		return nil, err
	}
	return &ClientPool{pool: pool}, nil
}

// Acquire returns a pooled client resource, connecting a new client when the
// pool has capacity and no idle one is available. Call Release on the
// resource when done, or Destroy if the client's connection went down.
func (p *ClientPool) Acquire(ctx context.Context) (*puddle.Resource[*Client], error) {
	return p.pool.Acquire(ctx)
}

// Stat returns a snapshot of pool statistics.
func (p *ClientPool) Stat() *puddle.Stat {
	return p.pool.Stat()
}

// Close destroys all pooled clients and their connections.
func (p *ClientPool) Close() {
	p.pool.Close()
}
