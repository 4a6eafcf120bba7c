package engine

import (
	"log/slog"
	"strconv"
	"strings"
)

const wrongTypeMsg = "WRONGTYPE Operation against a key holding the wrong kind of value"

// Execute runs one decoded command against the database and returns its
// reply. The caller supplies now (absolute unix milliseconds), keeping the
// engine deterministic and testable without a real clock. Argument
// validation completes before any mutation, so a malformed command never
// leaves partial state behind.
func (db *DB) Execute(verb string, args []string, now int64) Reply {
	switch strings.ToUpper(verb) {
	case "PING":
		return db.ping(args)
	case "ECHO":
		return db.echo(args)
	case "SET":
		return db.set(args, now)
	case "GET":
		return db.get(args, now)
	case "DEL":
		return db.del(args, now)
	case "TYPE":
		return db.typeOf(args, now)
	case "RPUSH":
		return db.rpush(args, now)
	case "LRANGE":
		return db.lrange(args, now)
	case "ZADD":
		return db.zadd(args, now)
	case "ZRANGE":
		return db.zrange(args, now)
	case "ZREM":
		return db.zrem(args, now)
	default:
		return Errorf("ERR unknown command '%s'", verb)
	}
}

func arityError(verb string) Reply {
	return Errorf("ERR wrong number of arguments for '%s' command", strings.ToLower(verb))
}

func (db *DB) ping(args []string) Reply {
	switch len(args) {
	case 0:
		return Simple("PONG")
	case 1:
		return Bulk(args[0])
	default:
		return arityError("ping")
	}
}

func (db *DB) echo(args []string) Reply {
	if len(args) != 1 {
		return arityError("echo")
	}
	return Bulk(args[0])
}

func (db *DB) set(args []string, now int64) Reply {
	if len(args) != 2 && len(args) != 4 {
		return arityError("set")
	}
	key, value := args[0], args[1]

	var expireAt int64
	if len(args) == 4 {
		if !strings.EqualFold(args[2], "PX") {
			return Error("ERR syntax error")
		}
		millis, err := strconv.ParseInt(args[3], 10, 64)
		if err != nil {
			return Error("ERR value is not an integer or out of range")
		}
		if millis <= 0 {
			return Error("ERR invalid expire time in 'set' command")
		}
		expireAt = now + millis
	}

	db.keyspace.Set(key, StringValue(value), expireAt)
	if expireAt != 0 {
		// Append-only schedule: any earlier ticket for this key stays put
		// and will be discarded as stale by the reconciler.
		if !db.schedule.Push(Ticket{DueAt: expireAt, Key: key}) {
			slog.Debug("expiry schedule full, key degrades to passive eviction",
				slog.String("key", key),
			)
		}
	}
	return Simple("OK")
}

func (db *DB) get(args []string, now int64) Reply {
	if len(args) != 1 {
		return arityError("get")
	}
	v, ok := db.keyspace.Get(args[0], now)
	if !ok {
		return NilBulk()
	}
	s, ok := v.(StringValue)
	if !ok {
		return Error(wrongTypeMsg)
	}
	return Bulk(string(s))
}

func (db *DB) del(args []string, now int64) Reply {
	if len(args) < 1 {
		return arityError("del")
	}
	var removed int64
	for _, key := range args {
		if _, ok := db.keyspace.lookup(key, now); ok {
			db.keyspace.Delete(key)
			removed++
		}
	}
	return Integer(removed)
}

func (db *DB) typeOf(args []string, now int64) Reply {
	if len(args) != 1 {
		return arityError("type")
	}
	return Simple(db.keyspace.TypeOf(args[0], now).String())
}

func (db *DB) rpush(args []string, now int64) Reply {
	if len(args) < 2 {
		return arityError("rpush")
	}
	key, items := args[0], args[1:]

	var list *List
	if e, ok := db.keyspace.lookup(key, now); ok {
		l, isList := e.Value.(*List)
		if !isList {
			return Error(wrongTypeMsg)
		}
		list = l
	} else {
		list = NewList()
		db.keyspace.Set(key, list, 0)
	}
	return Integer(int64(list.Append(items...)))
}

func (db *DB) lrange(args []string, now int64) Reply {
	if len(args) != 3 {
		return arityError("lrange")
	}
	start, stop, ok := parseBounds(args[1], args[2])
	if !ok {
		return Error("ERR value is not an integer or out of range")
	}
	v, found := db.keyspace.Get(args[0], now)
	if !found {
		return BulkArray(nil)
	}
	list, isList := v.(*List)
	if !isList {
		return Error(wrongTypeMsg)
	}
	return BulkArray(list.Range(start, stop))
}

func (db *DB) zadd(args []string, now int64) Reply {
	if len(args) < 3 || (len(args)-1)%2 != 0 {
		return arityError("zadd")
	}
	key := args[0]

	// Parse every score before touching the keyspace.
	pairs := args[1:]
	scores := make([]float64, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		score, err := strconv.ParseFloat(pairs[i], 64)
		if err != nil {
			return Error("ERR value is not a valid float")
		}
		scores = append(scores, score)
	}

	var sorted *Sorted
	if e, ok := db.keyspace.lookup(key, now); ok {
		s, isSorted := e.Value.(*Sorted)
		if !isSorted {
			return Error(wrongTypeMsg)
		}
		sorted = s
	} else {
		sorted = NewSorted()
		db.keyspace.Set(key, sorted, 0)
	}

	var added int64
	for i, score := range scores {
		if sorted.Add(score, pairs[i*2+1]) {
			added++
		}
	}
	return Integer(added)
}

func (db *DB) zrange(args []string, now int64) Reply {
	if len(args) != 3 {
		return arityError("zrange")
	}
	start, stop, ok := parseBounds(args[1], args[2])
	if !ok {
		return Error("ERR value is not an integer or out of range")
	}
	v, found := db.keyspace.Get(args[0], now)
	if !found {
		return BulkArray(nil)
	}
	sorted, isSorted := v.(*Sorted)
	if !isSorted {
		return Error(wrongTypeMsg)
	}
	return BulkArray(sorted.RangeByRank(start, stop))
}

func (db *DB) zrem(args []string, now int64) Reply {
	if len(args) < 2 {
		return arityError("zrem")
	}
	v, found := db.keyspace.Get(args[0], now)
	if !found {
		return Integer(0)
	}
	sorted, isSorted := v.(*Sorted)
	if !isSorted {
		return Error(wrongTypeMsg)
	}
	var removed int64
	for _, member := range args[1:] {
		if sorted.Remove(member) {
			removed++
		}
	}
	return Integer(removed)
}

func parseBounds(start, stop string) (int, int, bool) {
	a, err := strconv.Atoi(start)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(stop)
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
