package engine

import (
	"fmt"
)

// ReplyKind discriminates the reply union.
type ReplyKind int

const (
	SimpleReply ReplyKind = iota
	ErrorReply
	IntegerReply
	BulkReply
	NilBulkReply
	ArrayReply
)

// Reply is the abstract result of a command. The engine never produces wire
// bytes; serialization into RESP belongs to the resp package.
type Reply struct {
	Kind  ReplyKind
	Str   string
	N     int64
	Elems []Reply
}

func Simple(s string) Reply {
	return Reply{Kind: SimpleReply, Str: s}
}

func Integer(n int64) Reply {
	return Reply{Kind: IntegerReply, N: n}
}

func Bulk(s string) Reply {
	return Reply{Kind: BulkReply, Str: s}
}

func NilBulk() Reply {
	return Reply{Kind: NilBulkReply}
}

// BulkArray wraps plain strings as an array of bulk replies.
func BulkArray(items []string) Reply {
	elems := make([]Reply, len(items))
	for i, item := range items {
		elems[i] = Bulk(item)
	}
	return Reply{Kind: ArrayReply, Elems: elems}
}

func Error(msg string) Reply {
	return Reply{Kind: ErrorReply, Str: msg}
}

func Errorf(format string, args ...any) Reply {
	return Error(fmt.Sprintf(format, args...))
}

// IsError reports whether the reply is an error status.
func (r Reply) IsError() bool {
	return r.Kind == ErrorReply
}
