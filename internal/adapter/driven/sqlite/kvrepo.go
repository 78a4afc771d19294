package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jay-reddin/api-keys/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.KV = (*KVRepo)(nil)

// KVRepo is the SQLite implementation of the KV port interface. Values are
// stored as opaque text blobs keyed by namespace key, mirroring the remote
// service's contract.
type KVRepo struct {
	db *DB
}

// NewKVRepo creates a new KVRepo backed by the given DB.
func NewKVRepo(db *DB) *KVRepo {
	return &KVRepo{db: db}
}

// Get returns the blob stored under key. Returns ok=false when the key has
// never been set.
func (r *KVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `SELECT value FROM kv_entries WHERE key = ?`

	var value string
	err := r.db.Reader.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get kv entry %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores or replaces the blob under key.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	const query = `INSERT OR REPLACE INTO kv_entries (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`

	_, err := r.db.Writer.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("set kv entry %q: %w", key, err)
	}

	return nil
}
