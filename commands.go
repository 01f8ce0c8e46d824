package redis

import (
	"fmt"
	"strconv"
)

// statusOK is the fixed success marker used for handshake steps that are
// configured away.
const statusOK = "OK"

// Canonical command names. Send accepts any casing; these constants are the
// canonical forms used by the convenience methods.
const (
	CmdAuth    = "AUTH"
	CmdSelect  = "SELECT"
	CmdPing    = "PING"
	CmdEcho    = "ECHO"
	CmdQuit    = "QUIT"
	CmdMonitor = "MONITOR"

	CmdGet    = "GET"
	CmdSet    = "SET"
	CmdSetNX  = "SETNX"
	CmdGetSet = "GETSET"
	CmdDel    = "DEL"
	CmdExists = "EXISTS"
	CmdExpire = "EXPIRE"
	CmdTTL    = "TTL"
	CmdKeys   = "KEYS"
	CmdType   = "TYPE"
	CmdIncr   = "INCR"
	CmdIncrBy = "INCRBY"
	CmdDecr   = "DECR"
	CmdDecrBy = "DECRBY"
	CmdAppend = "APPEND"
	CmdMGet   = "MGET"
	CmdMSet   = "MSET"

	CmdLPush  = "LPUSH"
	CmdRPush  = "RPUSH"
	CmdLPop   = "LPOP"
	CmdRPop   = "RPOP"
	CmdLLen   = "LLEN"
	CmdLRange = "LRANGE"

	CmdHSet    = "HSET"
	CmdHGet    = "HGET"
	CmdHDel    = "HDEL"
	CmdHGetAll = "HGETALL"
	CmdHKeys   = "HKEYS"
	CmdHLen    = "HLEN"

	CmdSAdd      = "SADD"
	CmdSRem      = "SREM"
	CmdSMembers  = "SMEMBERS"
	CmdSIsMember = "SISMEMBER"
	CmdSCard     = "SCARD"

	CmdPublish      = "PUBLISH"
	CmdSubscribe    = "SUBSCRIBE"
	CmdUnsubscribe  = "UNSUBSCRIBE"
	CmdPSubscribe   = "PSUBSCRIBE"
	CmdPUnsubscribe = "PUNSUBSCRIBE"

	CmdFlushDB  = "FLUSHDB"
	CmdFlushAll = "FLUSHALL"
	CmdDBSize   = "DBSIZE"
	CmdInfo     = "INFO"
)

// formatArg coerces a command argument to its string representation.
// []byte passes through byte-for-byte, so binary values stay intact.
func formatArg(arg any) string {
	switch v := arg.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Connection commands.

func (c *Client) Auth(password string) *Call { return c.Send(CmdAuth, password) }
func (c *Client) Select(db int) *Call        { return c.Send(CmdSelect, db) }
func (c *Client) Ping() *Call                { return c.Send(CmdPing) }
func (c *Client) Echo(message string) *Call  { return c.Send(CmdEcho, message) }
func (c *Client) Quit() *Call                { return c.Send(CmdQuit) }

// String and key commands.

func (c *Client) Get(key string) *Call                  { return c.Send(CmdGet, key) }
func (c *Client) Set(key string, value any) *Call       { return c.Send(CmdSet, key, value) }
func (c *Client) SetNX(key string, value any) *Call     { return c.Send(CmdSetNX, key, value) }
func (c *Client) GetSet(key string, value any) *Call    { return c.Send(CmdGetSet, key, value) }
func (c *Client) Del(keys ...string) *Call              { return c.Send(CmdDel, toArgs(keys)...) }
func (c *Client) Exists(key string) *Call               { return c.Send(CmdExists, key) }
func (c *Client) Expire(key string, seconds int) *Call  { return c.Send(CmdExpire, key, seconds) }
func (c *Client) TTL(key string) *Call                  { return c.Send(CmdTTL, key) }
func (c *Client) Keys(pattern string) *Call             { return c.Send(CmdKeys, pattern) }
func (c *Client) Type(key string) *Call                 { return c.Send(CmdType, key) }
func (c *Client) Incr(key string) *Call                 { return c.Send(CmdIncr, key) }
func (c *Client) IncrBy(key string, delta int64) *Call  { return c.Send(CmdIncrBy, key, delta) }
func (c *Client) Decr(key string) *Call                 { return c.Send(CmdDecr, key) }
func (c *Client) DecrBy(key string, delta int64) *Call  { return c.Send(CmdDecrBy, key, delta) }
func (c *Client) Append(key string, value any) *Call    { return c.Send(CmdAppend, key, value) }
func (c *Client) MGet(keys ...string) *Call             { return c.Send(CmdMGet, toArgs(keys)...) }

// MSet sets several keys at once; pairs alternates keys and values.
func (c *Client) MSet(pairs ...any) *Call { return c.Send(CmdMSet, pairs...) }

// List commands.

func (c *Client) LPush(key string, values ...any) *Call { return c.Send(CmdLPush, prepend(key, values)...) }
func (c *Client) RPush(key string, values ...any) *Call { return c.Send(CmdRPush, prepend(key, values)...) }
func (c *Client) LPop(key string) *Call                 { return c.Send(CmdLPop, key) }
func (c *Client) RPop(key string) *Call                 { return c.Send(CmdRPop, key) }
func (c *Client) LLen(key string) *Call                 { return c.Send(CmdLLen, key) }
func (c *Client) LRange(key string, start, stop int) *Call {
	return c.Send(CmdLRange, key, start, stop)
}

// Hash commands.

func (c *Client) HSet(key, field string, value any) *Call { return c.Send(CmdHSet, key, field, value) }
func (c *Client) HGet(key, field string) *Call            { return c.Send(CmdHGet, key, field) }
func (c *Client) HDel(key string, fields ...string) *Call {
	return c.Send(CmdHDel, prepend(key, toArgs(fields))...)
}
func (c *Client) HGetAll(key string) *Call { return c.Send(CmdHGetAll, key) }
func (c *Client) HKeys(key string) *Call   { return c.Send(CmdHKeys, key) }
func (c *Client) HLen(key string) *Call    { return c.Send(CmdHLen, key) }

// Set commands.

func (c *Client) SAdd(key string, members ...any) *Call { return c.Send(CmdSAdd, prepend(key, members)...) }
func (c *Client) SRem(key string, members ...any) *Call { return c.Send(CmdSRem, prepend(key, members)...) }
func (c *Client) SMembers(key string) *Call             { return c.Send(CmdSMembers, key) }
func (c *Client) SIsMember(key string, member any) *Call {
	return c.Send(CmdSIsMember, key, member)
}
func (c *Client) SCard(key string) *Call { return c.Send(CmdSCard, key) }

// Pub/sub commands. Subscription acks resolve the call with the first ack
// and reach OnEvent observers once per channel.

func (c *Client) Publish(channel string, message any) *Call {
	return c.Send(CmdPublish, channel, message)
}
func (c *Client) Subscribe(channels ...string) *Call {
	return c.Send(CmdSubscribe, toArgs(channels)...)
}
func (c *Client) Unsubscribe(channels ...string) *Call {
	return c.Send(CmdUnsubscribe, toArgs(channels)...)
}
func (c *Client) PSubscribe(patterns ...string) *Call {
	return c.Send(CmdPSubscribe, toArgs(patterns)...)
}
func (c *Client) PUnsubscribe(patterns ...string) *Call {
	return c.Send(CmdPUnsubscribe, toArgs(patterns)...)
}

// Server commands.

func (c *Client) FlushDB() *Call  { return c.Send(CmdFlushDB) }
func (c *Client) FlushAll() *Call { return c.Send(CmdFlushAll) }
func (c *Client) DBSize() *Call   { return c.Send(CmdDBSize) }
func (c *Client) Info() *Call     { return c.Send(CmdInfo) }

func toArgs(strs []string) []any {
	args := make([]any, len(strs))
	for i, s := range strs {
		args[i] = s
	}
	return args
}

func prepend(first any, rest []any) []any {
	return append([]any{first}, rest...)
}
