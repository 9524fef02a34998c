package sqlite

import (
	"context"

	"github.com/speclib/isfdb"
)

// Compile-time interface verification.
var _ isfdb.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements isfdb.SnapshotStore using SQLite.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// LoadSnapshot retrieves the stored cross-reference entries grouped by
// cache name. Returns an empty snapshot when nothing was saved yet.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (map[string]map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT cache, key, value FROM xref")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshot := make(map[string]map[string]string)
	for rows.Next() {
		var cache, key, value string
		if err := rows.Scan(&cache, &key, &value); err != nil {
			return nil, err
		}
		if snapshot[cache] == nil {
			snapshot[cache] = make(map[string]string)
		}
		snapshot[cache][key] = value
	}

	return snapshot, rows.Err()
}

// SaveSnapshot replaces the stored snapshot atomically.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snapshot map[string]map[string]string) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM xref"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO xref (cache, key, value) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for cache, entries := range snapshot {
		for key, value := range entries {
			if _, err := stmt.ExecContext(ctx, cache, key, value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
