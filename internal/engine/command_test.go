package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecute_SetGet(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	a.Equal(Simple("OK"), db.Execute("SET", []string{"foo", "bar"}, 0))
	a.Equal(Bulk("bar"), db.Execute("GET", []string{"foo"}, 0))
	a.Equal(NilBulk(), db.Execute("GET", []string{"nope"}, 0))
}

func TestExecute_CaseInsensitiveVerbs(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	a.Equal(Simple("OK"), db.Execute("set", []string{"foo", "bar"}, 0))
	a.Equal(Bulk("bar"), db.Execute("get", []string{"foo"}, 0))
}

func TestExecute_RPushLRange(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	a.Equal(Integer(2), db.Execute("RPUSH", []string{"mylist", "a", "b"}, 0))
	a.Equal(BulkArray([]string{"a", "b"}), db.Execute("LRANGE", []string{"mylist", "0", "-1"}, 0))

	a.Equal(Integer(3), db.Execute("RPUSH", []string{"mylist", "c"}, 0))
	a.Equal(BulkArray([]string{"b", "c"}), db.Execute("LRANGE", []string{"mylist", "1", "2"}, 0))

	a.Equal(BulkArray(nil), db.Execute("LRANGE", []string{"nosuch", "0", "-1"}, 0))
}

func TestExecute_ZAddZRange(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	reply := db.Execute("ZADD", []string{"board", "100", "alice", "200", "bob", "50", "dan"}, 0)
	a.Equal(Integer(3), reply)
	a.Equal(BulkArray([]string{"dan", "alice"}), db.Execute("ZRANGE", []string{"board", "0", "1"}, 0))
	a.Equal(BulkArray([]string{"dan", "alice", "bob"}), db.Execute("ZRANGE", []string{"board", "0", "-1"}, 0))

	// Same score: no-op. New score: update, still not an insertion.
	a.Equal(Integer(0), db.Execute("ZADD", []string{"board", "100", "alice"}, 0))
	a.Equal(Integer(0), db.Execute("ZADD", []string{"board", "300", "alice"}, 0))
	a.Equal(BulkArray([]string{"dan", "bob", "alice"}), db.Execute("ZRANGE", []string{"board", "0", "-1"}, 0))

	a.Equal(Integer(1), db.Execute("ZREM", []string{"board", "dan", "ghost"}, 0))
	a.Equal(BulkArray([]string{"bob", "alice"}), db.Execute("ZRANGE", []string{"board", "0", "-1"}, 0))
}

func TestExecute_PassiveExpiry(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	now := int64(10_000)
	a.Equal(Simple("OK"), db.Execute("SET", []string{"mykey", "hello", "PX", "500"}, now))

	a.Equal(Bulk("hello"), db.Execute("GET", []string{"mykey"}, now+499))
	// Past the deadline the key is gone regardless of whether the
	// reconciler has run.
	a.Equal(NilBulk(), db.Execute("GET", []string{"mykey"}, now+500))
	a.Equal(0, db.Keyspace().Len())
}

func TestExecute_ShorterExpiryWins(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	now := int64(10_000)
	db.Execute("SET", []string{"k", "v1", "PX", "10000"}, now)
	db.Execute("SET", []string{"k", "v2", "PX", "50"}, now)

	a.Equal(NilBulk(), db.Execute("GET", []string{"k"}, now+50))
}

func TestExecute_ExpiredKeyNeverReportsWrongType(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	now := int64(10_000)
	db.Execute("SET", []string{"k", "scalar", "PX", "10"}, now)

	// After expiry the key behaves as never-created: RPUSH starts a fresh
	// list instead of failing with WRONGTYPE.
	a.Equal(Integer(1), db.Execute("RPUSH", []string{"k", "x"}, now+20))
	a.Equal(Simple("list"), db.Execute("TYPE", []string{"k"}, now+20))
}

func TestExecute_WrongType(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	db.Execute("RPUSH", []string{"l", "x"}, 0)
	db.Execute("SET", []string{"s", "v"}, 0)
	db.Execute("ZADD", []string{"z", "1", "m"}, 0)

	for _, tc := range []struct {
		verb string
		args []string
	}{
		{"GET", []string{"l"}},
		{"RPUSH", []string{"s", "x"}},
		{"LRANGE", []string{"z", "0", "-1"}},
		{"ZADD", []string{"l", "1", "m"}},
		{"ZRANGE", []string{"s", "0", "-1"}},
		{"ZREM", []string{"l", "m"}},
	} {
		reply := db.Execute(tc.verb, tc.args, 0)
		a.True(reply.IsError(), "%s on wrong variant must error", tc.verb)
		a.Contains(reply.Str, "WRONGTYPE")
	}
}

func TestExecute_OverwriteDiscardsOldVariant(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	db.Execute("RPUSH", []string{"k", "a", "b"}, 0)
	a.Equal(Simple("OK"), db.Execute("SET", []string{"k", "v"}, 0), "SET over a list is legal")
	a.Equal(Bulk("v"), db.Execute("GET", []string{"k"}, 0))
	a.Equal(Simple("string"), db.Execute("TYPE", []string{"k"}, 0))
}

func TestExecute_DelAndType(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	db.Execute("SET", []string{"a", "1"}, 0)
	db.Execute("SET", []string{"b", "2"}, 0)
	a.Equal(Integer(2), db.Execute("DEL", []string{"a", "b", "ghost"}, 0))
	a.Equal(Simple("none"), db.Execute("TYPE", []string{"a"}, 0))
}

func TestExecute_PingEcho(t *testing.T) {
	a := assert.New(t)
	db := newDB(t)

	a.Equal(Simple("PONG"), db.Execute("PING", nil, 0))
	a.Equal(Bulk("hey"), db.Execute("PING", []string{"hey"}, 0))
	a.Equal(Bulk("hello"), db.Execute("ECHO", []string{"hello"}, 0))
}

func TestExecute_MalformedArguments(t *testing.T) {
	db := newDB(t)

	tests := []struct {
		name string
		verb string
		args []string
	}{
		{"set missing value", "SET", []string{"k"}},
		{"set bad px", "SET", []string{"k", "v", "PX", "soon"}},
		{"set negative px", "SET", []string{"k", "v", "PX", "-5"}},
		{"set wrong option", "SET", []string{"k", "v", "EX", "5"}},
		{"get no key", "GET", nil},
		{"rpush no items", "RPUSH", []string{"k"}},
		{"lrange bad start", "LRANGE", []string{"k", "x", "1"}},
		{"zadd dangling pair", "ZADD", []string{"k", "1", "m", "2"}},
		{"zadd bad score", "ZADD", []string{"k", "high", "m"}},
		{"echo no arg", "ECHO", nil},
		{"unknown verb", "FLUSHALL", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := db.Execute(tt.verb, tt.args, 0)
			assert.True(t, reply.IsError())
		})
	}

	// Validation precedes mutation: the failed ZADD left nothing behind.
	assert.Equal(t, Simple("none"), db.Execute("TYPE", []string{"k"}, 0))
}
