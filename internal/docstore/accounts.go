package docstore

import (
	"context"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/repository"
)

// AccountRepository implements identity.Repository over a key-value store.
type AccountRepository struct {
	store kv.Store
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(store kv.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create appends a new account. Usernames are unique across the collection.
func (r *AccountRepository) Create(ctx context.Context, acct *identity.Account) error {
	accounts, err := loadSlice[identity.Account](ctx, r.store, AccountsKey)
	if err != nil {
		return err
	}

	for _, existing := range accounts {
		if existing.Username == acct.Username {
			return repository.ErrDuplicate
		}
	}

	accounts = append(accounts, *acct)
	return saveSlice(ctx, r.store, AccountsKey, accounts)
}

// GetByID retrieves an account by id
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*identity.Account, error) {
	accounts, err := loadSlice[identity.Account](ctx, r.store, AccountsKey)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].ID == id {
			return &accounts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByUsername retrieves an account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*identity.Account, error) {
	accounts, err := loadSlice[identity.Account](ctx, r.store, AccountsKey)
	if err != nil {
		return nil, err
	}

	for i := range accounts {
		if accounts[i].Username == username {
			return &accounts[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Delete removes an account by id
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	accounts, err := loadSlice[identity.Account](ctx, r.store, AccountsKey)
	if err != nil {
		return err
	}

	kept := accounts[:0]
	found := false
	for _, acct := range accounts {
		if acct.ID == id {
			found = true
			continue
		}
		kept = append(kept, acct)
	}
	if !found {
		return repository.ErrNotFound
	}

	return saveSlice(ctx, r.store, AccountsKey, kept)
}

// List returns all accounts in registration order
func (r *AccountRepository) List(ctx context.Context) ([]identity.Account, error) {
	return loadSlice[identity.Account](ctx, r.store, AccountsKey)
}
