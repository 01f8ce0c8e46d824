package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/require"

	"github.com/damianof/then-redis/internal/testutils"
	"github.com/damianof/then-redis/resp"
)

// respondEach feeds one scripted reply per command observed on the wire.
func respondEach(t *testing.T, mock *testutils.ConnectionMock, reply string, done <-chan struct{}) {
	t.Helper()
	go func() {
		served := 0
		for {
			select {
			case <-done:
				return
			default:
			}
			written := mock.WrittenData()
			commands := strings.Count(written, "*1\r\n")
			for served < commands {
				mock.Feed(reply)
				served++
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()
}

func TestBreakerPassesReplies(t *testing.T) {
	client, mock, _ := newReadyClient(t, nil)
	breaker := NewBreaker(client, 1, time.Minute, time.Minute)
	require.Equal(t, gobreaker.StateClosed, breaker.State())

	done := make(chan struct{})
	defer close(done)
	respondEach(t, mock, "+PONG\r\n", done)

	reply, err := breaker.Do(testContext(t), "PING")
	require.NoError(t, err)
	require.Equal(t, resp.NewStatus("PONG"), reply)
	require.Equal(t, gobreaker.StateClosed, breaker.State())
}

func TestBreakerTripsAfterRepeatedFailures(t *testing.T) {
	client, mock, _ := newReadyClient(t, nil)
	breaker := NewBreaker(client, 1, time.Minute, time.Minute)

	done := make(chan struct{})
	defer close(done)
	respondEach(t, mock, "-ERR boom\r\n", done)

	ctx := testContext(t)
	for i := 0; i < 3; i++ {
		_, err := breaker.Do(ctx, "PING")
		var replyErr *resp.ReplyError
		require.ErrorAs(t, err, &replyErr)
	}

	// Three failures at full failure ratio open the breaker; further calls
	// fail without touching the connection.
	require.Equal(t, gobreaker.StateOpen, breaker.State())

	before := mock.WrittenData()
	_, err := breaker.Do(ctx, "PING")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, before, mock.WrittenData())
}
