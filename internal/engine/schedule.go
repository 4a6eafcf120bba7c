package engine

import (
	"container/heap"
)

// Ticket is a candidate eviction: a due timestamp and an independent copy of
// the key. Tickets never own or alias the keyspace entry they refer to; the
// reconciler re-derives their validity by lookup when they come due.
type Ticket struct {
	DueAt int64
	Key   string
}

// Schedule is a min-heap of tickets ordered by due time. It is append-only
// from the write path: overwrites and deletes leave earlier tickets in
// place, to be discovered as stale when they surface. The schedule holds no
// authority over key liveness.
type Schedule struct {
	tickets ticketHeap
	limit   int
}

// NewSchedule creates a schedule holding at most limit pending tickets.
// Zero means unbounded.
func NewSchedule(limit int) *Schedule {
	return &Schedule{limit: limit}
}

func (s *Schedule) Len() int {
	return len(s.tickets)
}

// Push adds a ticket. Reports false when the schedule is at capacity, in
// which case the ticket is dropped and the key falls back to passive-only
// eviction.
func (s *Schedule) Push(t Ticket) bool {
	if s.limit > 0 && len(s.tickets) >= s.limit {
		return false
	}
	heap.Push(&s.tickets, t)
	return true
}

// Peek returns the soonest-due ticket without removing it.
func (s *Schedule) Peek() (Ticket, bool) {
	if len(s.tickets) == 0 {
		return Ticket{}, false
	}
	return s.tickets[0], true
}

// Pop removes and returns the soonest-due ticket.
func (s *Schedule) Pop() (Ticket, bool) {
	if len(s.tickets) == 0 {
		return Ticket{}, false
	}
	return heap.Pop(&s.tickets).(Ticket), true
}

type ticketHeap []Ticket

func (h ticketHeap) Len() int           { return len(h) }
func (h ticketHeap) Less(i, j int) bool { return h[i].DueAt < h[j].DueAt }
func (h ticketHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *ticketHeap) Push(x any) {
	*h = append(*h, x.(Ticket))
}

func (h *ticketHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
