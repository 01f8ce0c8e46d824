package redis

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/damianof/then-redis/internal/testutils"
	"github.com/damianof/then-redis/resp"
)

func TestNewClientPoolInvalidSize(t *testing.T) {
	_, err := NewClientPool(DefaultConfig(), 0)
	require.Error(t, err)

	_, err = NewClientPool(DefaultConfig(), -1)
	require.Error(t, err)
}

func TestClientPool(t *testing.T) {
	var mu sync.Mutex
	var mocks []*testutils.ConnectionMock

	cfg := DefaultConfig()
	cfg.dialer = func(ctx context.Context) (net.Conn, error) {
		mu.Lock()
		defer mu.Unlock()
		mock := testutils.NewConnectionMock()
		mocks = append(mocks, mock)
		return mock, nil
	}

	pool, err := NewClientPool(cfg, 2)
	require.NoError(t, err)
	defer pool.Close()

	ctx := testContext(t)

	res, err := pool.Acquire(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, pool.Stat().TotalResources())

	mu.Lock()
	mock := mocks[0]
	mu.Unlock()

	call := res.Value().Ping()
	mock.Feed("+PONG\r\n")
	reply, err := call.Result(ctx)
	require.NoError(t, err)
	require.Equal(t, resp.NewStatus("PONG"), reply)

	// A released client is reused instead of a new one being connected.
	res.Release()
	require.EqualValues(t, 1, pool.Stat().IdleResources())

	res2, err := pool.Acquire(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, pool.Stat().TotalResources())
	res2.Release()

	mu.Lock()
	require.Len(t, mocks, 1)
	mu.Unlock()
}

func TestClientPoolConnectFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.dialer = func(ctx context.Context) (net.Conn, error) {
		return nil, net.ErrClosed
	}

	pool, err := NewClientPool(cfg, 1)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Acquire(testContext(t))
	require.ErrorIs(t, err, net.ErrClosed)
	require.EqualValues(t, 0, pool.Stat().TotalResources())
}
