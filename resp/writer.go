package resp

import "strconv"

var crlf = []byte("\r\n")

// AppendCommand appends the wire encoding of a command to dst and returns
// the extended buffer. The command name and each argument become one bulk
// string each, under an array header declaring the element count:
//
//	*<1+len(args)>\r\n$<len>\r\n<name>\r\n$<len>\r\n<arg>\r\n...
//
// Lengths are byte lengths of the encoded strings, so multi-byte text is
// framed correctly. The encoding is total: any name/argument bytes produce a
// well-formed frame.
func AppendCommand(dst []byte, name []byte, args ...[]byte) []byte {
	dst = appendArrayHeader(dst, 1+len(args))
	dst = appendBulk(dst, name)
	for _, arg := range args {
		dst = appendBulk(dst, arg)
	}
	return dst
}

// AppendCommandStrings is AppendCommand for string arguments.
func AppendCommandStrings(dst []byte, name string, args ...string) []byte {
	dst = appendArrayHeader(dst, 1+len(args))
	dst = appendBulkString(dst, name)
	for _, arg := range args {
		dst = appendBulkString(dst, arg)
	}
	return dst
}

func appendArrayHeader(dst []byte, n int) []byte {
	dst = append(dst, byte(TypeArray))
	dst = strconv.AppendInt(dst, int64(n), 10)
	return append(dst, crlf...)
}

func appendBulk(dst []byte, b []byte) []byte {
	dst = append(dst, byte(TypeBulk))
	dst = strconv.AppendInt(dst, int64(len(b)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, b...)
	return append(dst, crlf...)
}

func appendBulkString(dst []byte, s string) []byte {
	dst = append(dst, byte(TypeBulk))
	dst = strconv.AppendInt(dst, int64(len(s)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, s...)
	return append(dst, crlf...)
}
