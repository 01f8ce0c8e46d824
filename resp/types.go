package resp

import "strconv"

// Type identifies the shape of a decoded reply. Values match the RESP type
// markers on the wire.
type Type byte

const (
	TypeStatus  Type = '+' // simple status string
	TypeError   Type = '-' // error reply
	TypeInteger Type = ':' // integer reply
	TypeBulk    Type = '$' // bulk string
	TypeArray   Type = '*' // array (multi-bulk) reply
	TypeNil     Type = '_' // null bulk string or null array
)

// Reply represents a single decoded server reply.
// This is a low-level container without parsing logic. Exactly one of the
// value fields is meaningful, selected by Type.
type Reply struct {
	// Type is the reply shape.
	Type Type

	// Str holds the text of status and error replies.
	Str string

	// Int holds the value of integer replies.
	Int int64

	// Bulk holds the payload of bulk string replies.
	Bulk []byte

	// Elems holds the elements of array replies, possibly nested.
	Elems []*Reply
}

// NewStatus returns a status reply.
func NewStatus(s string) *Reply { return &Reply{Type: TypeStatus, Str: s} }

// NewError returns an error reply carrying the server's message.
func NewError(msg string) *Reply { return &Reply{Type: TypeError, Str: msg} }

// NewInteger returns an integer reply.
func NewInteger(n int64) *Reply { return &Reply{Type: TypeInteger, Int: n} }

// NewBulk returns a bulk string reply.
func NewBulk(b []byte) *Reply { return &Reply{Type: TypeBulk, Bulk: b} }

// NewBulkString returns a bulk string reply from a string.
func NewBulkString(s string) *Reply { return &Reply{Type: TypeBulk, Bulk: []byte(s)} }

// NewNil returns a null reply.
func NewNil() *Reply { return &Reply{Type: TypeNil} }

// NewArray returns an array reply with the given elements.
func NewArray(elems ...*Reply) *Reply { return &Reply{Type: TypeArray, Elems: elems} }

// IsError reports whether the reply is an error reply.
func (r *Reply) IsError() bool { return r.Type == TypeError }

// IsNil reports whether the reply is a null reply.
func (r *Reply) IsNil() bool { return r.Type == TypeNil }

// Err converts an error reply into a Go error. Returns nil for any other
// reply type.
func (r *Reply) Err() error {
	if r.Type != TypeError {
		return nil
	}
	return &ReplyError{Message: r.Str}
}

// Text renders the reply value as a string: the status or error text, the
// decimal form of an integer, or the bulk payload. Nil replies render empty.
// Array replies render as their first element's text, which is primarily
// useful with push-style replies.
func (r *Reply) Text() string {
	switch r.Type {
	case TypeStatus, TypeError:
		return r.Str
	case TypeInteger:
		return strconv.FormatInt(r.Int, 10)
	case TypeBulk:
		return string(r.Bulk)
	case TypeArray:
		if len(r.Elems) > 0 {
			return r.Elems[0].Text()
		}
	}
	return ""
}

// PushTag returns the type tag of a push-style array reply: the first
// element, when it is a bulk or status string. Pub/sub notifications and
// subscription acks are arrays tagged "message", "pmessage", "subscribe",
// and so on.
func (r *Reply) PushTag() (string, bool) {
	if r.Type != TypeArray || len(r.Elems) == 0 {
		return "", false
	}
	first := r.Elems[0]
	switch first.Type {
	case TypeBulk:
		return string(first.Bulk), true
	case TypeStatus:
		return first.Str, true
	}
	return "", false
}
