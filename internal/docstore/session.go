package docstore

import (
	"context"
	"errors"

	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/repository"
)

// SessionStore implements repository.SessionStore over a key-value store.
// It is normally backed by the in-memory store so that the session does not
// survive a restart.
type SessionStore struct {
	store kv.Store
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(store kv.Store) *SessionStore {
	return &SessionStore{store: store}
}

// CurrentAccountID returns the id of the authenticated account
func (s *SessionStore) CurrentAccountID(ctx context.Context) (string, error) {
	id, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

// SetCurrentAccount records the authenticated account
func (s *SessionStore) SetCurrentAccount(ctx context.Context, accountID string) error {
	return s.store.Set(ctx, SessionKey, accountID)
}

// Clear forgets the authenticated account
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, SessionKey)
}
