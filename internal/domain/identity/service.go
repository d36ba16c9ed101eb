package identity

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mvmnexus/innova/internal/repository"
)

// Service handles account operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new identity service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// RegisterRequest defines account registration inputs.
type RegisterRequest struct {
	DisplayName string
	Username    string
	Password    string
	Role        Role
}

// Register creates a new account with a unique username.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*Account, error) {
	if strings.TrimSpace(req.DisplayName) == "" ||
		strings.TrimSpace(req.Username) == "" ||
		req.Password == "" {
		return nil, ErrInvalidInput
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidInput
	}

	acct := &Account{
		ID:             uuid.NewString(),
		DisplayName:    req.DisplayName,
		Username:       req.Username,
		PasswordSecret: req.Password,
		Role:           req.Role,
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("creating account: %w", err)
	}

	return acct, nil
}

// Authenticate checks a username/password pair and returns the account.
// Secrets are stored and compared in plaintext; hardening is out of scope.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	acct, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up account: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(acct.PasswordSecret), []byte(password)) != 1 {
		return nil, ErrInvalidCredentials
	}

	return acct, nil
}

// Delete removes an account. Requires a manager actor, which may never be
// the account being deleted.
func (s *Service) Delete(ctx context.Context, id, requestingActorID string) error {
	if id == requestingActorID {
		return ErrSelfDeletion
	}

	actor, err := s.Get(ctx, requestingActorID)
	if err != nil {
		return err
	}
	if actor.Role != RoleManager {
		return ErrManagerRequired
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("deleting account: %w", err)
	}

	return nil
}

// Get fetches an account by ID.
func (s *Service) Get(ctx context.Context, id string) (*Account, error) {
	acct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return acct, nil
}

// List returns all registered accounts.
func (s *Service) List(ctx context.Context) ([]Account, error) {
	return s.repo.List(ctx)
}
