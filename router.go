package redis

import (
	"github.com/damianof/then-redis/resp"
)

// dispatch routes one decoded reply. Replies fall into three categories:
//
//  1. Asynchronous pub/sub payloads (message, pmessage): emitted as events,
//     the call queue is never touched.
//  2. Ordinary correlated replies: the oldest pending call is dequeued and
//     fulfilled. Subscription acks are dual-dispatched: the first ack
//     resolves the call that issued the command, and every ack is
//     additionally broadcast as an event, since one command covering several
//     channels produces one ack each.
//  3. Replies with no pending call: still an event when they are
//     subscription acks (later acks of a multi-channel command) or when the
//     connection is in monitor mode; anything else is a protocol violation
//     surfaced through the error event.
func (c *Client) dispatch(reply *resp.Reply) {
	c.stats.recordReply()

	var kind EventKind
	isPush := false
	if tag, ok := reply.PushTag(); ok {
		kind, isPush = pushKinds[tag]
	}

	if isPush && (kind == EventMessage || kind == EventPMessage) {
		c.stats.recordEvent()
		c.emit(eventFromPush(kind, reply))
		return
	}

	c.mu.Lock()
	call, matched := c.pending.dequeue()
	monitor := c.isMonitor
	c.mu.Unlock()

	if matched {
		c.fulfillCall(call, reply)
		if isPush && isSubscriptionKind(kind) {
			c.stats.recordEvent()
			c.emit(eventFromPush(kind, reply))
		}
		return
	}

	switch {
	case isPush && isSubscriptionKind(kind):
		c.stats.recordEvent()
		c.emit(eventFromPush(kind, reply))

	case monitor:
		c.stats.recordEvent()
		c.emit(Event{Kind: EventMonitor, Line: reply.Text()})

	default:
		c.stats.recordError()
		c.emit(Event{Kind: EventError, Err: &ProtocolError{
			Message: "unexpected reply with no outstanding call",
		}})
	}
}

// fulfillCall resolves a correlated call: error replies fail it, everything
// else succeeds. In raw mode the payload is opaque, so the error check is
// skipped and the call always resolves with the decoded value.
func (c *Client) fulfillCall(call *Call, reply *resp.Reply) {
	if reply.IsError() && !c.cfg.RawMode {
		c.stats.recordError()
		call.fail(reply.Err())
		return
	}
	call.fulfill(reply)
}
