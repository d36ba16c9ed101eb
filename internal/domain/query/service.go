package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/repository"
)

// ProjectLister provides the current project collection.
type ProjectLister interface {
	List(ctx context.Context) ([]project.Project, error)
}

// AccountDirectory resolves actors and leader display names.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (*identity.Account, error)
	List(ctx context.Context) ([]identity.Account, error)
}

// Service answers derived read-only queries.
type Service struct {
	projects ProjectLister
	accounts AccountDirectory
	logger   *slog.Logger
}

// NewService creates a new query service.
func NewService(projects ProjectLister, accounts AccountDirectory, logger *slog.Logger) *Service {
	return &Service{projects: projects, accounts: accounts, logger: logger}
}

// PendingForReview returns all projects in pendiente.
func (s *Service) PendingForReview(ctx context.Context) ([]project.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return PendingForReview(projects), nil
}

// VisibleProjects returns the projects the actor may see.
func (s *Service) VisibleProjects(ctx context.Context, actorID string) ([]project.Project, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return VisibleTo(actor, projects), nil
}

// History returns the filtered project history visible to the actor.
func (s *Service) History(ctx context.Context, actorID string, filter HistoryFilter) ([]project.Project, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	leaderNames := make(map[string]string, len(accounts))
	for _, acct := range accounts {
		leaderNames[acct.ID] = acct.DisplayName
	}

	return History(actor, projects, leaderNames, filter), nil
}

// SummaryCounts aggregates counts over all projects.
func (s *Service) SummaryCounts(ctx context.Context) (Counts, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return Counts{}, fmt.Errorf("listing projects: %w", err)
	}
	return SummaryCounts(projects), nil
}

func (s *Service) actor(ctx context.Context, actorID string) (*identity.Account, error) {
	actor, err := s.accounts.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("resolving actor: %w", err)
	}
	return actor, nil
}
