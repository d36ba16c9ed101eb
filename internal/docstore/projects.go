package docstore

import (
	"context"

	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/repository"
)

// ProjectRepository implements project.Repository over a key-value store.
type ProjectRepository struct {
	store kv.Store
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(store kv.Store) *ProjectRepository {
	return &ProjectRepository{store: store}
}

// Create appends a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	projects, err := loadSlice[project.Project](ctx, r.store, ProjectsKey)
	if err != nil {
		return err
	}

	for _, existing := range projects {
		if existing.ID == proj.ID {
			return repository.ErrDuplicate
		}
	}

	projects = append(projects, *proj)
	return saveSlice(ctx, r.store, ProjectsKey, projects)
}

// Get retrieves a project by id
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	projects, err := loadSlice[project.Project](ctx, r.store, ProjectsKey)
	if err != nil {
		return nil, err
	}

	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, repository.ErrNotFound
}

// Update replaces a stored project by id
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project) error {
	projects, err := loadSlice[project.Project](ctx, r.store, ProjectsKey)
	if err != nil {
		return err
	}

	for i := range projects {
		if projects[i].ID == proj.ID {
			projects[i] = *proj
			return saveSlice(ctx, r.store, ProjectsKey, projects)
		}
	}
	return repository.ErrNotFound
}

// List returns all projects in submission order
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	return loadSlice[project.Project](ctx, r.store, ProjectsKey)
}
