package engine

import (
	"log/slog"
)

// ReapExpired drains every due ticket from the schedule, evicting the keys
// whose authoritative expiry still matches the ticket and discarding the
// rest as stale. Stale tickets are normal: an overwrite or delete since the
// ticket was pushed leaves it pointing at state that no longer exists, and
// it must be dropped without touching the keyspace.
//
// The loop is bounded only by "no more due tickets", so a burst of
// simultaneous expirations is fully drained in one call. Returns the number
// of keys evicted.
func (db *DB) ReapExpired(now int64) int {
	evicted := 0
	for {
		ticket, ok := db.schedule.Peek()
		if !ok || ticket.DueAt > now {
			return evicted
		}
		ticket, _ = db.schedule.Pop()

		e, ok := db.keyspace.entry(ticket.Key)
		if !ok || e.ExpireAt != ticket.DueAt {
			// stale: the key was deleted or rewritten since this ticket was
			// scheduled
			continue
		}
		db.keyspace.Delete(ticket.Key)
		evicted++
		slog.Debug("active evict", slog.String("key", ticket.Key))
	}
}
