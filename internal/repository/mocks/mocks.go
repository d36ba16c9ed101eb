package mocks

import (
	"context"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// AccountRepository is a mock for identity.Repository.
type AccountRepository struct {
	mock.Mock
}

func (m *AccountRepository) Create(ctx context.Context, acct *identity.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}

func (m *AccountRepository) GetByID(ctx context.Context, id string) (*identity.Account, error) {
	args := m.Called(ctx, id)
	if acct, ok := args.Get(0).(*identity.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetByUsername(ctx context.Context, username string) (*identity.Account, error) {
	args := m.Called(ctx, username)
	if acct, ok := args.Get(0).(*identity.Account); ok {
		return acct, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *AccountRepository) List(ctx context.Context) ([]identity.Account, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]identity.Account); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SessionStore is a mock for repository.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) CurrentAccountID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) SetCurrentAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *SessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
