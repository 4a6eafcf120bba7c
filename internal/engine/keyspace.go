package engine

import (
	"log/slog"
)

// Keyspace is the authoritative key → entry mapping. It owns every value
// reachable from it; eviction releases the entry wholesale.
type Keyspace struct {
	entries map[string]*Entry
}

func NewKeyspace() *Keyspace {
	return &Keyspace{entries: make(map[string]*Entry)}
}

func (ks *Keyspace) Len() int {
	return len(ks.entries)
}

// lookup returns the live entry for key, running the passive expiry check
// first: an entry already past its expiry is evicted on the spot and
// reported as absent. Every key-touching operation goes through here before
// type checks, so an expired key never reports a wrong-type error.
func (ks *Keyspace) lookup(key string, now int64) (*Entry, bool) {
	e, ok := ks.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		delete(ks.entries, key)
		slog.Debug("passive evict", slog.String("key", key))
		return nil, false
	}
	return e, true
}

// Get returns the key's value after the passive expiry check.
func (ks *Keyspace) Get(key string, now int64) (Value, bool) {
	e, ok := ks.lookup(key, now)
	if !ok {
		return nil, false
	}
	return e.Value, true
}

// Set unconditionally replaces the key's value and expiry, whatever variant
// it held before. expireAt of zero means no expiry.
func (ks *Keyspace) Set(key string, v Value, expireAt int64) {
	e, ok := ks.entries[key]
	if !ok {
		e = &Entry{}
		ks.entries[key] = e
	}
	e.Value = v
	e.ExpireAt = expireAt
}

// Delete removes the key. Reports false when it was not present.
func (ks *Keyspace) Delete(key string) bool {
	if _, ok := ks.entries[key]; !ok {
		return false
	}
	delete(ks.entries, key)
	return true
}

// TypeOf reports the variant held under key, KindNone when absent or
// expired.
func (ks *Keyspace) TypeOf(key string, now int64) Kind {
	e, ok := ks.lookup(key, now)
	if !ok {
		return KindNone
	}
	return e.Value.Kind()
}

// entry exposes the raw slot without the passive check. The reconciler uses
// it to compare a ticket's due time against the authoritative expiry.
func (ks *Keyspace) entry(key string) (*Entry, bool) {
	e, ok := ks.entries[key]
	return e, ok
}
