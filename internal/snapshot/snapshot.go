// Package snapshot provides the persistence adapters behind the core store.
// Every adapter stores the full business snapshot and satisfies
// core.SnapshotStore, so the store never knows which backend is active.
package snapshot

// Driver identifies a persistence backend.
type Driver string

const (
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

// buckets are the collection names shared by the bucketed backends.
var buckets = []string{"clients", "technicians", "quotes", "visits", "reports", "maintenance"}
