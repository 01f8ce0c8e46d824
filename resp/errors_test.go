package resp

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplyErrorMessage(t *testing.T) {
	err := &ReplyError{Message: "ERR unknown command"}
	require.Equal(t, "ERR unknown command", err.Error())
}

func TestParseErrorWrapping(t *testing.T) {
	err := &ParseError{Message: "short bulk payload", Err: io.ErrUnexpectedEOF}
	require.Equal(t, "resp: short bulk payload: unexpected EOF", err.Error())
	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	bare := &ParseError{Message: "line missing CRLF terminator"}
	require.Equal(t, "resp: line missing CRLF terminator", bare.Error())
	require.Nil(t, errors.Unwrap(bare))
}
