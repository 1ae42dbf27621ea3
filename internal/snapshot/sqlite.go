package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fieldservice-agent/internal/core"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore persists the snapshot into a single SQLite table as one JSON
// blob per collection. The whole save runs in a transaction.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database file and the state table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "fieldservice.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*core.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snap core.Snapshot
	found := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("scan state: %w", err)
		}
		found = true
		if err := decodeBucket(&snap, bucket, payload); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate state: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap core.Snapshot) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range buckets {
		data, err := encodeBucket(snap, bucket)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO state (bucket, payload) VALUES (?, ?)
			 ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`,
			bucket, data); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func encodeBucket(snap core.Snapshot, bucket string) ([]byte, error) {
	var v any
	switch bucket {
	case "clients":
		v = snap.Clients
	case "technicians":
		v = snap.Technicians
	case "quotes":
		v = snap.Quotes
	case "visits":
		v = snap.Visits
	case "reports":
		v = snap.Reports
	case "maintenance":
		v = snap.Maintenance
	default:
		return nil, fmt.Errorf("unknown bucket %s", bucket)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", bucket, err)
	}
	return data, nil
}

func decodeBucket(snap *core.Snapshot, bucket string, payload []byte) error {
	var v any
	switch bucket {
	case "clients":
		v = &snap.Clients
	case "technicians":
		v = &snap.Technicians
	case "quotes":
		v = &snap.Quotes
	case "visits":
		v = &snap.Visits
	case "reports":
		v = &snap.Reports
	case "maintenance":
		v = &snap.Maintenance
	default:
		// Unknown buckets from a newer schema are skipped, not fatal.
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	return nil
}
