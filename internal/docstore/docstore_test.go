package docstore_test

import (
	"context"
	"testing"

	"github.com/mvmnexus/innova/internal/docstore"
	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/repository"
	"github.com/mvmnexus/innova/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := docstore.NewAccountRepository(kv.NewMemory())

	ana := &identity.Account{ID: "a1", DisplayName: "Ana García", Username: "ana", Role: identity.RoleLeader}
	require.NoError(t, repo.Create(ctx, ana))
	require.NoError(t, repo.Create(ctx, &identity.Account{ID: "a2", DisplayName: "Marta Ruiz", Username: "marta", Role: identity.RoleManager}))

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "ana", got.Username)

	got, err = repo.GetByUsername(ctx, "marta")
	require.NoError(t, err)
	require.Equal(t, "a2", got.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "a1"))
	_, err = repo.GetByID(ctx, "a1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAccountRepositoryDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := docstore.NewAccountRepository(kv.NewMemory())

	require.NoError(t, repo.Create(ctx, &identity.Account{ID: "a1", Username: "ana"}))
	err := repo.Create(ctx, &identity.Account{ID: "a2", Username: "ana"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	// The failed create did not grow the collection.
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestAccountRepositoryMissing(t *testing.T) {
	ctx := context.Background()
	repo := docstore.NewAccountRepository(kv.NewMemory())

	_, err := repo.GetByID(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "ghost"), repository.ErrNotFound)
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := docstore.NewProjectRepository(kv.NewMemory())

	proj := &project.Project{
		ID:       "p1",
		Name:     "Onboarding",
		Company:  "Nexus Retail",
		LeaderID: "a1",
		Status:   project.StatusPending,
		UserStories: []project.UserStory{
			{ID: "s1", Text: "Formulario de alta"},
		},
	}
	require.NoError(t, repo.Create(ctx, proj))
	require.ErrorIs(t, repo.Create(ctx, proj), repository.ErrDuplicate)

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "Onboarding", got.Name)
	require.Len(t, got.UserStories, 1)

	got.Status = project.StatusApproved
	got.UserStories[0].Approved = true
	require.NoError(t, repo.Update(ctx, got))

	stored, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, project.StatusApproved, stored.Status)
	require.True(t, stored.UserStories[0].Approved)

	_, err = repo.Get(ctx, "ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, &project.Project{ID: "ghost"}), repository.ErrNotFound)
}

// The repositories run identically over the sqlite-backed store; one
// round-trip through a real table keeps the two stores honest with each
// other.
func TestProjectRepositoryOverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations())

	repo := docstore.NewProjectRepository(sqlite.NewKV(db))

	proj := &project.Project{ID: "p1", Name: "OCR facturas", Company: "Logística Sur", Status: project.StatusPending}
	require.NoError(t, repo.Create(ctx, proj))

	got, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "OCR facturas", got.Name)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	sessions := docstore.NewSessionStore(kv.NewMemory())

	_, err := sessions.CurrentAccountID(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, sessions.SetCurrentAccount(ctx, "a1"))
	id, err := sessions.CurrentAccountID(ctx)
	require.NoError(t, err)
	require.Equal(t, "a1", id)

	// Logging in as someone else replaces the session.
	require.NoError(t, sessions.SetCurrentAccount(ctx, "a2"))
	id, err = sessions.CurrentAccountID(ctx)
	require.NoError(t, err)
	require.Equal(t, "a2", id)

	require.NoError(t, sessions.Clear(ctx))
	_, err = sessions.CurrentAccountID(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)
}
