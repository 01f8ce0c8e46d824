package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/damianof/then-redis/resp"
)

func TestCallFulfill(t *testing.T) {
	c := newCall()

	select {
	case <-c.Done():
		t.Fatal("call fulfilled before resolution")
	default:
	}

	c.fulfill(resp.NewStatus("OK"))

	reply, err := c.Result(context.Background())
	require.NoError(t, err)
	require.Equal(t, resp.NewStatus("OK"), reply)

	select {
	case <-c.Done():
	default:
		t.Fatal("Done channel not closed after fulfillment")
	}
}

func TestCallFail(t *testing.T) {
	c := newCall()
	failure := errors.New("connection gone")
	c.fail(failure)

	reply, err := c.Result(context.Background())
	require.ErrorIs(t, err, failure)
	require.Nil(t, reply)
}

func TestCallResolvesOnce(t *testing.T) {
	c := newCall()
	c.fulfill(resp.NewInteger(1))
	c.fail(errors.New("too late"))
	c.fulfill(resp.NewInteger(2))

	reply, err := c.Result(context.Background())
	require.NoError(t, err)
	require.Equal(t, resp.NewInteger(1), reply)
}

func TestCallResultContextCancelled(t *testing.T) {
	c := newCall()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Result(ctx)
	require.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = c.Result(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The call itself is still pending and resolvable.
	c.fulfill(resp.NewStatus("OK"))
	reply, err := c.Result(context.Background())
	require.NoError(t, err)
	require.Equal(t, resp.NewStatus("OK"), reply)
}

func TestCallQueueFIFO(t *testing.T) {
	var q callQueue

	_, ok := q.dequeue()
	require.False(t, ok)

	first, second, third := newCall(), newCall(), newCall()
	q.enqueue(first)
	q.enqueue(second)
	q.enqueue(third)
	require.Equal(t, 3, q.len())

	c, ok := q.dequeue()
	require.True(t, ok)
	require.Same(t, first, c)

	c, ok = q.dequeue()
	require.True(t, ok)
	require.Same(t, second, c)

	require.Equal(t, 1, q.len())
}

func TestCallQueueDrain(t *testing.T) {
	var q callQueue
	first, second := newCall(), newCall()
	q.enqueue(first)
	q.enqueue(second)

	drained := q.drain()
	require.Len(t, drained, 2)
	require.Same(t, first, drained[0])
	require.Same(t, second, drained[1])
	require.Equal(t, 0, q.len())
	require.Empty(t, q.drain())
}
