package redis

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/damianof/then-redis/resp"
)

// connState is the connection lifecycle state. A client cycles
// disconnected -> connecting -> ready -> disconnected; a new cycle may start
// after teardown.
type connState int

const (
	stateDisconnected connState = iota
	stateConnecting
	stateReady
)

// Client is a pipelining client for a single connection to a single server.
//
// Commands are issued with Send (or the typed convenience methods), which
// never blocks: it returns a Call fulfilled when the matching reply arrives.
// Replies correlate to calls strictly FIFO, so any number of commands can be
// in flight at once. Asynchronous pub/sub traffic and monitor output are
// multiplexed over the same connection and delivered to OnEvent observers.
//
// The first Send establishes the connection automatically; Connect does so
// explicitly and is idempotent. The client never reconnects or retries on
// its own.
type Client struct {
	cfg Config

	mu          sync.Mutex
	state       connState
	conn        net.Conn
	generation  uint64 // bumped per physical connection, guards stale read loops
	pending     callQueue
	buffered    []pendingWrite
	connectCall *Call
	listeners   []func(Event)
	isMonitor   bool
	closing     bool

	stats *statsCollector
}

// pendingWrite is a command buffered while no connection is ready. Buffered
// writes flush to the socket in the exact order they were buffered.
type pendingWrite struct {
	call *Call
	data []byte
}

// NewClient creates a client with the given configuration. A nil config
// resolves options from the environment (ConfigFromEnv).
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = ConfigFromEnv()
	}
	return &Client{
		cfg:   *cfg.withDefaults(),
		stats: newStatsCollector(),
	}
}

// OnEvent registers an observer for asynchronous events. Observers run on
// the connection's reader goroutine, in reply arrival order; they must not
// block.
func (c *Client) OnEvent(fn func(Event)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Send issues a command. The name is case-insensitive; arguments are coerced
// to their string representation. Send never blocks: when the connection is
// ready the command is written immediately, otherwise it is buffered and a
// connect is triggered. The returned Call resolves with the command's reply.
func (c *Client) Send(name string, args ...any) *Call {
	call := newCall()
	data := encodeCommand(name, args)

	c.mu.Lock()
	switch c.state {
	case stateReady:
		c.pending.enqueue(call)
		c.stats.recordSend()
		c.writeLocked(data)
		c.mu.Unlock()
		return call

	case stateConnecting:
		c.buffered = append(c.buffered, pendingWrite{call: call, data: data})
		c.stats.recordSend()
		c.mu.Unlock()
		return call

	default: // stateDisconnected
		c.buffered = append(c.buffered, pendingWrite{call: call, data: data})
		c.stats.recordSend()
		c.mu.Unlock()
		c.Connect()
		return call
	}
}

// Connect establishes the connection, returning a Call that resolves with
// the pair [auth reply, select reply] once the handshake completes.
// Idempotent: while a connection attempt is outstanding or established,
// every Connect returns the same Call and no second socket is opened.
func (c *Client) Connect() *Call {
	c.mu.Lock()
	if c.connectCall != nil {
		call := c.connectCall
		c.mu.Unlock()
		return call
	}

	call := newCall()
	c.connectCall = call
	c.state = stateConnecting
	c.mu.Unlock()

	go c.dial(call)
	return call
}

// Close initiates a graceful disconnect. Calls still outstanding fail with
// ErrClosed. No-op when no connection exists or is being established.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.state == stateDisconnected {
		c.mu.Unlock()
		return nil
	}
	c.closing = true
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		// The reader goroutine performs the teardown.
		return conn.Close()
	}
	// Still connecting; the dialer observes closing and aborts.
	return nil
}

// Monitor puts the connection into monitor mode and issues the MONITOR
// command. Once in monitor mode, every reply without an outstanding call is
// delivered as a monitor event.
func (c *Client) Monitor() *Call {
	c.mu.Lock()
	c.isMonitor = true
	c.mu.Unlock()
	return c.Send(CmdMonitor)
}

// Stats returns a snapshot of client statistics.
func (c *Client) Stats() Stats {
	return c.stats.snapshot()
}

// outstanding reports the number of calls awaiting a reply.
func (c *Client) outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.len()
}

func (c *Client) dial(connectCall *Call) {
	dialFn := c.cfg.dialer
	if dialFn == nil {
		dialFn = func(ctx context.Context) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "tcp", c.cfg.Addr())
		}
	}

	conn, err := dialFn(context.Background())
	if err != nil {
		c.dialFailed(connectCall, err)
		return
	}

	c.mu.Lock()
	if c.closing || c.connectCall != connectCall {
		c.closing = false
		c.state = stateDisconnected
		c.connectCall = nil
		orphaned := c.buffered
		c.buffered = nil
		c.mu.Unlock()

		conn.Close()
		connectCall.fail(ErrClosed)
		// Close aborted the connect; no later cycle will flush these.
		for _, pw := range orphaned {
			pw.call.fail(ErrClosed)
		}
		return
	}

	if tcp, ok := conn.(*net.TCPConn); ok {
		tcp.SetNoDelay(!c.cfg.DisableNoDelay)
	}

	c.conn = conn
	c.generation++
	gen := c.generation
	c.state = stateReady

	go c.readLoop(conn, gen)

	// The handshake is always the first traffic on the wire; writes
	// buffered while disconnected follow it in their original order.
	auth, sel := c.handshakeLocked()
	c.flushBufferedLocked()
	c.mu.Unlock()

	c.cfg.Logger.Debug("redis: connected", "addr", conn.RemoteAddr())
	go c.resolveConnect(connectCall, auth, sel)
}

// dialFailed handles a transport error before any connection object existed:
// the in-flight connect fails, buffered writes stay buffered for a later
// cycle. When Close was requested meanwhile there is no later cycle, so the
// buffered calls fail too.
func (c *Client) dialFailed(connectCall *Call, err error) {
	c.mu.Lock()
	closing := c.closing
	c.state = stateDisconnected
	c.connectCall = nil
	c.closing = false
	var orphaned []pendingWrite
	if closing {
		orphaned = c.buffered
		c.buffered = nil
	}
	c.mu.Unlock()

	c.stats.recordError()
	connectCall.fail(err)
	for _, pw := range orphaned {
		pw.call.fail(ErrClosed)
	}
	c.emit(Event{Kind: EventError, Err: err})
}

// handshakeLocked issues the authentication and database-selection calls.
// When a step is not configured it resolves immediately with a fixed success
// marker.
func (c *Client) handshakeLocked() (auth, sel *Call) {
	auth = newCall()
	if c.cfg.Password != "" {
		c.pending.enqueue(auth)
		c.writeLocked(resp.AppendCommandStrings(nil, CmdAuth, c.cfg.Password))
	} else {
		auth.fulfill(resp.NewStatus(statusOK))
	}

	sel = newCall()
	if c.cfg.Database != 0 {
		c.pending.enqueue(sel)
		c.writeLocked(resp.AppendCommandStrings(nil, CmdSelect, strconv.Itoa(c.cfg.Database)))
	} else {
		sel.fulfill(resp.NewStatus(statusOK))
	}
	return auth, sel
}

// flushBufferedLocked drains the pending-write buffer to the socket. Each
// buffered command joins the call queue exactly as if sent after readiness.
func (c *Client) flushBufferedLocked() {
	buffered := c.buffered
	c.buffered = nil
	for _, pw := range buffered {
		c.pending.enqueue(pw.call)
		c.writeLocked(pw.data)
	}
}

// writeLocked writes a frame to the socket. On failure the connection is
// closed; the reader goroutine then fails every outstanding call, including
// the one whose write failed.
func (c *Client) writeLocked(data []byte) {
	if c.conn == nil {
		return
	}
	if _, err := c.conn.Write(data); err != nil {
		c.cfg.Logger.Debug("redis: write failed", "err", err)
		c.conn.Close()
	}
}

// resolveConnect fulfills the connect call with [auth reply, select reply]
// once both handshake steps resolve.
func (c *Client) resolveConnect(connectCall, auth, sel *Call) {
	ctx := context.Background()

	authReply, err := auth.Result(ctx)
	if err != nil {
		connectCall.fail(err)
		return
	}
	selReply, err := sel.Result(ctx)
	if err != nil {
		connectCall.fail(err)
		return
	}
	connectCall.fulfill(resp.NewArray(authReply, selReply))
}

func (c *Client) readLoop(conn net.Conn, gen uint64) {
	reader := resp.NewReader(conn)
	for {
		if c.cfg.Timeout > 0 {
			conn.SetReadDeadline(time.Now().Add(c.cfg.Timeout))
		}

		reply, err := reader.ReadReply()
		if err != nil {
			var parseErr *resp.ParseError
			if errors.As(err, &parseErr) && !isStreamFailure(parseErr) {
				// Malformed reply: surface it and keep reading. Pending
				// calls are failed by a later correlated failure or close.
				c.stats.recordError()
				c.emit(Event{Kind: EventError, Err: parseErr})
				continue
			}
			c.connLost(conn, gen, err)
			return
		}

		c.dispatch(reply)
	}
}

// connLost tears down the connection: the connect call (if unresolved) and
// every queued call fail exactly once, in FIFO order, then observers get the
// close notification.
func (c *Client) connLost(conn net.Conn, gen uint64, cause error) {
	conn.Close()

	c.mu.Lock()
	if c.generation != gen {
		// A stale reader for a connection already replaced.
		c.mu.Unlock()
		return
	}
	closing := c.closing
	c.closing = false
	c.state = stateDisconnected
	c.conn = nil
	c.isMonitor = false
	connectCall := c.connectCall
	c.connectCall = nil
	drained := c.pending.drain()
	c.mu.Unlock()

	graceful := closing || errors.Is(cause, io.EOF)
	failErr := cause
	if graceful {
		failErr = ErrClosed
	}

	if connectCall != nil {
		connectCall.fail(failErr)
	}
	for _, call := range drained {
		call.fail(failErr)
	}

	if !graceful {
		c.stats.recordError()
		c.emit(Event{Kind: EventError, Err: cause})
	}
	c.cfg.Logger.Debug("redis: connection closed", "graceful", graceful, "outstanding", len(drained))
	c.emit(Event{Kind: EventClose})
}

// emit delivers an event to every registered observer.
func (c *Client) emit(ev Event) {
	c.mu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// isStreamFailure reports whether a parse error is really a broken stream
// (EOF or a socket error mid-frame) rather than malformed input.
func isStreamFailure(e *resp.ParseError) bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, io.EOF) || errors.Is(e.Err, io.ErrUnexpectedEOF) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr)
}

// encodeCommand serializes a command into wire framing. Command names are
// case-insensitive aliases of one canonical form.
func encodeCommand(name string, args []any) []byte {
	strs := make([]string, len(args))
	for i, arg := range args {
		strs[i] = formatArg(arg)
	}
	return resp.AppendCommandStrings(nil, strings.ToUpper(name), strs...)
}
