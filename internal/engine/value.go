// Package engine implements the in-memory data engine: the keyspace and its
// typed values, the expiry schedule, the reconciler that drives active
// eviction, and the command dispatch consumed by the wire front end.
package engine

// Kind identifies which variant a value holds.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindSorted
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindSorted:
		return "zset"
	default:
		return "none"
	}
}

// Value is the tagged union stored under a key. A key holds exactly one
// variant at a time; overwriting a key discards the previous variant
// wholesale.
type Value interface {
	Kind() Kind
}

// StringValue is an opaque byte string.
type StringValue string

func (StringValue) Kind() Kind { return KindString }

func (l *List) Kind() Kind { return KindList }

func (s *Sorted) Kind() Kind { return KindSorted }

// Entry is a keyspace slot: one value plus an optional absolute expiry.
// ExpireAt is unix milliseconds; zero means the key never expires.
type Entry struct {
	Value    Value
	ExpireAt int64
}

func (e *Entry) expired(now int64) bool {
	return e.ExpireAt != 0 && e.ExpireAt <= now
}
