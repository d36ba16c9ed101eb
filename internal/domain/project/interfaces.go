package project

import (
	"context"

	"github.com/mvmnexus/innova/internal/domain/identity"
)

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, proj *Project) error
	List(ctx context.Context) ([]Project, error)
}

// AccountDirectory resolves actors so transitions can be role-gated.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (*identity.Account, error)
}
