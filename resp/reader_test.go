package resp

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// oneByteReader delivers the stream one byte per Read, exercising decoding
// of replies split across arbitrary chunk boundaries.
type oneByteReader struct {
	r io.Reader
}

func (o *oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}

func TestReadReply(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Reply
	}{
		{
			name:     "status",
			input:    "+OK\r\n",
			expected: NewStatus("OK"),
		},
		{
			name:     "error",
			input:    "-ERR unknown command\r\n",
			expected: NewError("ERR unknown command"),
		},
		{
			name:     "integer",
			input:    ":1000\r\n",
			expected: NewInteger(1000),
		},
		{
			name:     "negative integer",
			input:    ":-42\r\n",
			expected: NewInteger(-42),
		},
		{
			name:     "bulk string",
			input:    "$5\r\nhello\r\n",
			expected: NewBulkString("hello"),
		},
		{
			name:     "empty bulk string",
			input:    "$0\r\n\r\n",
			expected: NewBulk([]byte{}),
		},
		{
			name:     "bulk string containing CRLF",
			input:    "$7\r\nab\r\ncd!\r\n",
			expected: NewBulkString("ab\r\ncd!"),
		},
		{
			name:     "null bulk string",
			input:    "$-1\r\n",
			expected: NewNil(),
		},
		{
			name:     "null array",
			input:    "*-1\r\n",
			expected: NewNil(),
		},
		{
			name:     "empty array",
			input:    "*0\r\n",
			expected: &Reply{Type: TypeArray, Elems: []*Reply{}},
		},
		{
			name:  "flat array",
			input: "*3\r\n$3\r\nfoo\r\n:7\r\n$-1\r\n",
			expected: NewArray(
				NewBulkString("foo"),
				NewInteger(7),
				NewNil(),
			),
		},
		{
			name:  "nested array",
			input: "*2\r\n*2\r\n+a\r\n+b\r\n:1\r\n",
			expected: NewArray(
				NewArray(NewStatus("a"), NewStatus("b")),
				NewInteger(1),
			),
		},
		{
			name:  "pub sub message shape",
			input: "*3\r\n$7\r\nmessage\r\n$5\r\nchan1\r\n$5\r\nhello\r\n",
			expected: NewArray(
				NewBulkString("message"),
				NewBulkString("chan1"),
				NewBulkString("hello"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := NewReader(strings.NewReader(tt.input)).ReadReply()
			require.NoError(t, err)
			require.Equal(t, tt.expected, reply)

			// Same result when bytes arrive one at a time.
			chunked := NewReader(&oneByteReader{r: strings.NewReader(tt.input)})
			reply, err = chunked.ReadReply()
			require.NoError(t, err)
			require.Equal(t, tt.expected, reply)
		})
	}
}

func TestReadReplySequence(t *testing.T) {
	input := "+OK\r\n:5\r\n$2\r\nhi\r\n"
	r := NewReader(strings.NewReader(input))

	reply, err := r.ReadReply()
	require.NoError(t, err)
	require.Equal(t, NewStatus("OK"), reply)

	reply, err = r.ReadReply()
	require.NoError(t, err)
	require.Equal(t, NewInteger(5), reply)

	reply, err = r.ReadReply()
	require.NoError(t, err)
	require.Equal(t, NewBulkString("hi"), reply)

	_, err = r.ReadReply()
	require.ErrorIs(t, err, io.EOF)
}

func TestReadReplyMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown marker", "?what\r\n"},
		{"invalid integer", ":abc\r\n"},
		{"invalid bulk length", "$x\r\n"},
		{"invalid array length", "*x\r\n"},
		{"missing CR", "+OK\n"},
		{"bulk payload missing terminator", "$3\r\nabcXY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(strings.NewReader(tt.input)).ReadReply()
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestReadReplyTruncated(t *testing.T) {
	// A bulk header promising more payload than the stream holds is a parse
	// error wrapping the I/O failure.
	_, err := NewReader(strings.NewReader("$10\r\nabc")).ReadReply()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCommandRoundTrip(t *testing.T) {
	// A command encoded by AppendCommand decodes to the array-of-bulk-strings
	// representation the peer observes.
	args := []string{"SET", "key", "héllo wörld"}
	buf := AppendCommandStrings(nil, args[0], args[1:]...)

	reply, err := NewReader(strings.NewReader(string(buf))).ReadReply()
	require.NoError(t, err)
	require.Equal(t, TypeArray, reply.Type)
	require.Len(t, reply.Elems, len(args))
	for i, arg := range args {
		require.Equal(t, TypeBulk, reply.Elems[i].Type)
		require.Equal(t, arg, string(reply.Elems[i].Bulk))
	}
}

func TestReplyHelpers(t *testing.T) {
	require.True(t, NewError("ERR x").IsError())
	require.False(t, NewStatus("OK").IsError())
	require.True(t, NewNil().IsNil())

	require.EqualError(t, NewError("ERR boom").Err(), "ERR boom")
	require.NoError(t, NewStatus("OK").Err())

	require.Equal(t, "OK", NewStatus("OK").Text())
	require.Equal(t, "42", NewInteger(42).Text())
	require.Equal(t, "data", NewBulkString("data").Text())
	require.Equal(t, "", NewNil().Text())

	tag, ok := NewArray(NewBulkString("message"), NewBulkString("c")).PushTag()
	require.True(t, ok)
	require.Equal(t, "message", tag)

	_, ok = NewArray(NewInteger(1)).PushTag()
	require.False(t, ok)

	_, ok = NewStatus("OK").PushTag()
	require.False(t, ok)
}
