package identity

import "context"

// Repository provides persistence for accounts.
type Repository interface {
	Create(ctx context.Context, acct *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Account, error)
}
