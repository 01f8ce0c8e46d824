package redis

import "errors"

// ErrClosed is the failure applied to every call still queued when the
// connection terminates without a transport error.
var ErrClosed = errors.New("redis: connection closed")

// ProtocolError reports a correlation violation: the server sent a reply
// with no outstanding call that is neither an asynchronous push nor part of
// a monitor feed. It is surfaced through the error event and does not tear
// down the connection.
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	return "redis protocol: " + e.Message
}
