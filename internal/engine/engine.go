package engine

// DB bundles the keyspace with its expiry schedule. A single goroutine owns
// each DB for the process lifetime; none of its operations lock or yield.
type DB struct {
	keyspace *Keyspace
	schedule *Schedule
}

type Options struct {
	// MaxPendingExpiries caps the expiry schedule; see Schedule. Zero means
	// unbounded.
	MaxPendingExpiries int
}

func New(opts Options) *DB {
	return &DB{
		keyspace: NewKeyspace(),
		schedule: NewSchedule(opts.MaxPendingExpiries),
	}
}

func (db *DB) Keyspace() *Keyspace {
	return db.keyspace
}

func (db *DB) Schedule() *Schedule {
	return db.schedule
}
