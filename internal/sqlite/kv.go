package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mvmnexus/innova/internal/kv"
)

// KV implements kv.Store on a SQLite table: whole values keyed by name,
// one row per key.
type KV struct {
	db *DB
}

// NewKV creates a new SQLite-backed key-value store
func NewKV(db *DB) *KV {
	return &KV{db: db}
}

// Get retrieves the value stored under key
func (s *KV) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value
		FROM kv_store
		WHERE key = ?
	`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", kv.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get key %q: %w", key, err)
	}

	return value, nil
}

// Set stores value under key, replacing any previous value
func (s *KV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}

	return nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error, matching the collaborator contract.
func (s *KV) Remove(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv_store
		WHERE key = ?
	`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}

	return nil
}
