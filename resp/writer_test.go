package resp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendCommand(t *testing.T) {
	tests := []struct {
		name     string
		cmd      string
		args     []string
		expected string
	}{
		{
			name:     "no arguments",
			cmd:      "PING",
			args:     nil,
			expected: "*1\r\n$4\r\nPING\r\n",
		},
		{
			name:     "single argument",
			cmd:      "GET",
			args:     []string{"mykey"},
			expected: "*2\r\n$3\r\nGET\r\n$5\r\nmykey\r\n",
		},
		{
			name:     "two arguments",
			cmd:      "SET",
			args:     []string{"key", "value"},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n",
		},
		{
			name:     "empty argument",
			cmd:      "SET",
			args:     []string{"key", ""},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$0\r\n\r\n",
		},
		{
			name:     "argument containing line terminator",
			cmd:      "SET",
			args:     []string{"key", "a\r\nb"},
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$4\r\na\r\nb\r\n",
		},
		{
			name: "multi-byte text framed by byte length",
			cmd:  "SET",
			args: []string{"key", "héllo"},
			// "héllo" is 5 runes but 6 bytes.
			expected: "*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$6\r\nhéllo\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			byteArgs := make([][]byte, len(tt.args))
			for i, a := range tt.args {
				byteArgs[i] = []byte(a)
			}

			got := AppendCommand(nil, []byte(tt.cmd), byteArgs...)
			require.Equal(t, tt.expected, string(got))

			gotStrings := AppendCommandStrings(nil, tt.cmd, tt.args...)
			require.Equal(t, tt.expected, string(gotStrings))
		})
	}
}

func TestAppendCommandExtendsBuffer(t *testing.T) {
	buf := AppendCommandStrings(nil, "PING")
	buf = AppendCommandStrings(buf, "GET", "k")
	require.Equal(t, "*1\r\n$4\r\nPING\r\n*2\r\n$3\r\nGET\r\n$1\r\nk\r\n", string(buf))
}

func TestAppendCommandBinaryArgument(t *testing.T) {
	value := []byte{0x00, 0xff, 0x0d, 0x0a}
	got := AppendCommand(nil, []byte("SET"), []byte("bin"), value)
	require.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nbin\r\n$4\r\n\x00\xff\r\n\r\n", string(got))
}
