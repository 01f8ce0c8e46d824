// Package resp provides a low-level wire protocol implementation for the
// Redis Serialization Protocol (RESP2).
//
// This package serves as a foundation for building higher-level clients with
// different properties (pipelining, pub/sub multiplexing, monitoring). It
// focuses on correctness for serialization and parsing, without imposing
// architectural decisions on clients.
//
// # Core Types
//
// Reply is a pure data container for a single decoded server reply:
//
//   - TypeStatus: simple status string (+OK\r\n)
//   - TypeError: error reply (-ERR unknown command\r\n)
//   - TypeInteger: integer reply (:42\r\n)
//   - TypeBulk: length-prefixed bulk string ($5\r\nhello\r\n)
//   - TypeNil: null bulk or null array ($-1\r\n, *-1\r\n)
//   - TypeArray: array of replies, possibly nested (*2\r\n...)
//
// # Serialization
//
// Commands are encoded as arrays of bulk strings:
//
//	buf := resp.AppendCommand(nil, []byte("SET"), []byte("key"), []byte("value"))
//	conn.Write(buf)
//
// AppendCommand frames each element by its encoded byte length, so multi-byte
// text round-trips correctly.
//
// # Parsing
//
// Reader decodes replies from a byte stream, one at a time, in arrival order:
//
//	r := resp.NewReader(conn)
//	for {
//	    reply, err := r.ReadReply()
//	    if err != nil {
//	        return err
//	    }
//	    // dispatch reply
//	}
//
// Error replies from the server are returned as Reply values with TypeError,
// not as Go errors. Go errors returned by ReadReply indicate I/O failures or
// malformed input (ParseError).
//
// # Thread Safety
//
// Reply values are not thread-safe. A Reader must be fed by a single
// goroutine.
package resp
