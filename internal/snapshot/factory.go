package snapshot

import (
	"context"
	"fmt"
	"os"

	"fieldservice-agent/internal/core"
)

// Open selects a snapshot store implementation using environment variables.
//
//	FIELDSERVICE_STORE_DRIVER: file|sqlite|postgres|memory (default file)
//	FIELDSERVICE_DATA_FILE:    path for driver=file or driver=sqlite
//	DATABASE_URL:              connection string when driver=postgres
//
// driver=memory returns a nil store: the session is not persisted.
func Open(ctx context.Context) (core.SnapshotStore, error) {
	driver := os.Getenv("FIELDSERVICE_STORE_DRIVER")
	if driver == "" {
		driver = string(DriverFile)
	}
	switch Driver(driver) {
	case DriverFile:
		return NewFileStore(os.Getenv("FIELDSERVICE_DATA_FILE"))
	case DriverSQLite:
		return NewSQLiteStore(os.Getenv("FIELDSERVICE_DATA_FILE"))
	case DriverPostgres:
		return NewPostgresStore(ctx)
	case DriverMemory:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown store driver %s", driver)
	}
}
