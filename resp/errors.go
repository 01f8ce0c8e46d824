package resp

// ReplyError is a server-reported error reply correlated to a single
// command. It fails only the call that produced it; the connection protocol
// state remains valid.
type ReplyError struct {
	Message string
}

func (e *ReplyError) Error() string {
	return e.Message
}

// ParseError is a client-side decoding failure: the byte stream did not
// conform to the wire framing. The decoder's position in the stream is
// undefined afterwards, so callers should treat the connection as suspect.
type ParseError struct {
	Message string
	Err     error // underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "resp: " + e.Message + ": " + e.Err.Error()
	}
	return "resp: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
