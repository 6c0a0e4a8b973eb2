package repository

import (
	"context"
	"database/sql"
	"fmt"

	"rewardsprint/internal/database"
)

// KVRepository stores string payloads by key in the kv_store table
type KVRepository struct {
	db database.DBTX
}

func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{db: db}
}

// Get retrieves the payload stored under key. The bool is false when no row
// exists.
func (r *KVRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var payload string
	query := `SELECT payload FROM kv_store WHERE storage_key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return payload, true, nil
}

// Set updates or inserts the payload for key
func (r *KVRepository) Set(ctx context.Context, key, payload string) error {
	if _, err := r.db.ExecContext(ctx, r.db.GetDialect().UpsertKVQuery(), key, payload); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *KVRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv_store WHERE storage_key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}
