package redis

import (
	"github.com/damianof/then-redis/resp"
)

// EventKind identifies an asynchronous notification from the client.
type EventKind int

const (
	// EventError reports a protocol or transport failure.
	EventError EventKind = iota
	// EventClose reports that the connection terminated.
	EventClose
	// EventMessage delivers a pub/sub payload for a subscribed channel.
	EventMessage
	// EventPMessage delivers a pub/sub payload matched by a pattern.
	EventPMessage
	// EventSubscribe, EventUnsubscribe, EventPSubscribe and EventPUnsubscribe
	// report subscription acks. One ack arrives per channel, even when a
	// single command named several channels.
	EventSubscribe
	EventUnsubscribe
	EventPSubscribe
	EventPUnsubscribe
	// EventMonitor delivers one line of the server's monitor feed.
	EventMonitor
)

func (k EventKind) String() string {
	switch k {
	case EventError:
		return "error"
	case EventClose:
		return "close"
	case EventMessage:
		return "message"
	case EventPMessage:
		return "pmessage"
	case EventSubscribe:
		return "subscribe"
	case EventUnsubscribe:
		return "unsubscribe"
	case EventPSubscribe:
		return "psubscribe"
	case EventPUnsubscribe:
		return "punsubscribe"
	case EventMonitor:
		return "monitor"
	}
	return "unknown"
}

// Event is an asynchronous notification. Kind selects which fields are
// meaningful.
type Event struct {
	Kind EventKind

	// Channel is set for message, pmessage and channel subscription acks.
	Channel string

	// Pattern is set for pmessage and pattern subscription acks.
	Pattern string

	// Payload is the published message body (message, pmessage).
	Payload []byte

	// Count is the active subscription count reported by subscription acks.
	Count int64

	// Line is one line of the monitor feed (monitor).
	Line string

	// Err is the failure being reported (error).
	Err error
}

// pushKinds maps wire type tags of push-style replies to event kinds.
var pushKinds = map[string]EventKind{
	"message":      EventMessage,
	"pmessage":     EventPMessage,
	"subscribe":    EventSubscribe,
	"unsubscribe":  EventUnsubscribe,
	"psubscribe":   EventPSubscribe,
	"punsubscribe": EventPUnsubscribe,
}

// isSubscriptionKind reports whether the kind is a subscription-management
// ack, the dual-dispatch category: it both resolves a pending call (first
// ack only) and is broadcast as an event (every ack).
func isSubscriptionKind(k EventKind) bool {
	switch k {
	case EventSubscribe, EventUnsubscribe, EventPSubscribe, EventPUnsubscribe:
		return true
	}
	return false
}

// eventFromPush builds the typed event for a push-style array reply. The tag
// has already been matched against pushKinds.
func eventFromPush(kind EventKind, reply *resp.Reply) Event {
	ev := Event{Kind: kind}
	elems := reply.Elems

	switch kind {
	case EventMessage:
		if len(elems) > 1 {
			ev.Channel = elems[1].Text()
		}
		if len(elems) > 2 {
			ev.Payload = elems[2].Bulk
		}

	case EventPMessage:
		if len(elems) > 1 {
			ev.Pattern = elems[1].Text()
		}
		if len(elems) > 2 {
			ev.Channel = elems[2].Text()
		}
		if len(elems) > 3 {
			ev.Payload = elems[3].Bulk
		}

	case EventSubscribe, EventUnsubscribe:
		if len(elems) > 1 {
			ev.Channel = elems[1].Text()
		}
		if len(elems) > 2 {
			ev.Count = elems[2].Int
		}

	case EventPSubscribe, EventPUnsubscribe:
		if len(elems) > 1 {
			ev.Pattern = elems[1].Text()
		}
		if len(elems) > 2 {
			ev.Count = elems[2].Int
		}
	}

	return ev
}
