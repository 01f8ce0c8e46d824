package redis

import (
	"context"
	"sync"

	"github.com/damianof/then-redis/resp"
)

// Call is one outstanding command. It is fulfilled exactly once, with either
// the decoded reply or a failure, when the matching reply arrives or the
// connection goes down.
type Call struct {
	ready chan struct{}
	once  sync.Once

	reply *resp.Reply
	err   error
}

func newCall() *Call {
	return &Call{ready: make(chan struct{})}
}

// Result returns the call's reply, blocking until it is fulfilled or ctx is
// done. A server error reply and a connection failure both surface as the
// returned error.
func (c *Call) Result(ctx context.Context) (*resp.Reply, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case <-c.ready:
		return c.reply, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done returns a channel closed when the call is fulfilled.
func (c *Call) Done() <-chan struct{} {
	return c.ready
}

// fulfill resolves the call with a reply. Only the first resolution of a
// call takes effect.
func (c *Call) fulfill(reply *resp.Reply) {
	c.resolve(reply, nil)
}

// fail resolves the call with an error. Only the first resolution of a call
// takes effect.
func (c *Call) fail(err error) {
	c.resolve(nil, err)
}

func (c *Call) resolve(reply *resp.Reply, err error) {
	c.once.Do(func() {
		c.reply = reply
		c.err = err
		close(c.ready)
	})
}

// callQueue is the ordered queue of calls awaiting a reply. Queue order is
// identical to the order requests were written to the socket, so replies
// correlate strictly FIFO with no request IDs.
type callQueue struct {
	calls []*Call
}

func (q *callQueue) enqueue(c *Call) {
	q.calls = append(q.calls, c)
}

// dequeue removes and returns the oldest call, or false if the queue is
// empty.
func (q *callQueue) dequeue() (*Call, bool) {
	if len(q.calls) == 0 {
		return nil, false
	}
	c := q.calls[0]
	q.calls[0] = nil
	q.calls = q.calls[1:]
	return c, true
}

// drain removes and returns all queued calls in FIFO order.
func (q *callQueue) drain() []*Call {
	calls := q.calls
	q.calls = nil
	return calls
}

func (q *callQueue) len() int {
	return len(q.calls)
}
