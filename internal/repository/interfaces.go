package repository

import "context"

// Account and project persistence contracts live with their domain packages
// (identity.Repository, project.Repository); this package holds only the
// shared storage errors and the domain-independent session contract.

// SessionStore holds the currently authenticated account for the active
// session. Cleared on logout; does not survive a restart.
type SessionStore interface {
	CurrentAccountID(ctx context.Context) (string, error)
	SetCurrentAccount(ctx context.Context, accountID string) error
	Clear(ctx context.Context) error
}
