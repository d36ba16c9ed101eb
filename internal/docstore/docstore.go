// Package docstore persists the account and project collections as whole
// JSON documents under fixed well-known keys in a key-value store.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mvmnexus/innova/internal/kv"
)

const (
	// AccountsKey holds the JSON array of registered accounts.
	AccountsKey = "innovaAccounts"
	// ProjectsKey holds the JSON array of projects.
	ProjectsKey = "innovaProjects"
	// SessionKey holds the id of the currently authenticated account.
	SessionKey = "innovaSession"
)

// loadSlice reads the JSON array stored under key. A missing key is an
// empty collection, not an error.
func loadSlice[T any](ctx context.Context, store kv.Store, key string) ([]T, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("loading %q: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding %q: %w", key, err)
	}
	return items, nil
}

// saveSlice replaces the JSON array stored under key.
func saveSlice[T any](ctx context.Context, store kv.Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := store.Set(ctx, key, string(raw)); err != nil {
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}
