package resp

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

// Reader decodes replies from a byte stream. It consumes exactly the bytes
// of each reply, so decoded values come out one at a time, in arrival order.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader decoding from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadReply reads and decodes a single reply, blocking until one is
// available. Server error replies are returned as TypeError Reply values,
// not as Go errors. A Go error indicates an I/O failure or a malformed
// stream (ParseError).
func (r *Reader) ReadReply() (*Reply, error) {
	line, err := r.readLine()
	if err != nil {
		return nil, err
	}
	if len(line) == 0 {
		return nil, &ParseError{Message: "empty reply line"}
	}

	marker, rest := line[0], line[1:]
	switch Type(marker) {
	case TypeStatus:
		return &Reply{Type: TypeStatus, Str: string(rest)}, nil

	case TypeError:
		return &Reply{Type: TypeError, Str: string(rest)}, nil

	case TypeInteger:
		n, err := strconv.ParseInt(string(rest), 10, 64)
		if err != nil {
			return nil, &ParseError{Message: "invalid integer reply", Err: err}
		}
		return &Reply{Type: TypeInteger, Int: n}, nil

	case TypeBulk:
		return r.readBulk(rest)

	case TypeArray:
		return r.readArray(rest)

	default:
		return nil, &ParseError{Message: "unknown reply marker " + strconv.QuoteRune(rune(marker))}
	}
}

func (r *Reader) readBulk(header []byte) (*Reply, error) {
	size, err := strconv.Atoi(string(header))
	if err != nil {
		return nil, &ParseError{Message: "invalid bulk length", Err: err}
	}
	if size < 0 {
		return &Reply{Type: TypeNil}, nil
	}

	// Read payload and trailing CRLF in one go.
	buf := make([]byte, size+2)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, &ParseError{Message: "short bulk payload", Err: err}
	}
	if !bytes.HasSuffix(buf, crlf) {
		return nil, &ParseError{Message: "bulk payload missing terminator"}
	}
	return &Reply{Type: TypeBulk, Bulk: buf[:size]}, nil
}

func (r *Reader) readArray(header []byte) (*Reply, error) {
	n, err := strconv.Atoi(string(header))
	if err != nil {
		return nil, &ParseError{Message: "invalid array length", Err: err}
	}
	if n < 0 {
		return &Reply{Type: TypeNil}, nil
	}

	elems := make([]*Reply, 0, n)
	for i := 0; i < n; i++ {
		elem, err := r.ReadReply()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	return &Reply{Type: TypeArray, Elems: elems}, nil
}

// readLine reads one CRLF-terminated line, without the terminator.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.r.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// Line exceeds buffer, fall back to ReadBytes (allocates).
		line, err = r.r.ReadBytes('\n')
	}
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, &ParseError{Message: "line missing CRLF terminator"}
	}
	return line[:len(line)-2], nil
}
