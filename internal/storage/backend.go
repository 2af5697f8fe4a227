package storage

import "context"

// Record names. Each holds one JSON value: an array for the collections and an
// object for settings.
const (
	RecordTasks        = "tasks"
	RecordHabits       = "habits"
	RecordGoals        = "goals"
	RecordJournal      = "journal"
	RecordAffirmations = "affirmations"
	RecordSettings     = "settings"
)

// Records lists every record the store reads and writes, in load order.
var Records = []string{
	RecordTasks,
	RecordHabits,
	RecordGoals,
	RecordJournal,
	RecordAffirmations,
	RecordSettings,
}

// Backend is a durable key/value store of named JSON records.
type Backend interface {
	// Get returns the stored bytes for name, or ok=false when nothing is stored.
	Get(ctx context.Context, name string) (data []byte, ok bool, err error)
	// Put replaces the stored bytes for name.
	Put(ctx context.Context, name string, data []byte) error
	// Close releases any handles. The backend is unusable afterwards.
	Close() error
}
