package mcp_test

import (
	"context"
	"errors"
	"testing"

	"github.com/mvmnexus/innova/internal/clock"
	"github.com/mvmnexus/innova/internal/docstore"
	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/domain/query"
	"github.com/mvmnexus/innova/internal/kv"
	"github.com/mvmnexus/innova/internal/mcp"
	"github.com/mvmnexus/innova/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

// newHandler wires a handler over in-memory storage with real services, the
// same shape main assembles in production. The session store is returned so
// tests can manipulate the session directly.
func newHandler(t *testing.T) (*mcp.Handler, *docstore.SessionStore) {
	t.Helper()
	store := kv.NewMemory()

	accounts := docstore.NewAccountRepository(store)
	projects := docstore.NewProjectRepository(store)
	sessions := docstore.NewSessionStore(kv.NewMemory())

	identitySvc := identity.NewService(accounts, nil)
	projectSvc := project.NewService(projects, accounts, clock.System{}, nil)
	querySvc := query.NewService(projects, accounts, nil)

	return mcp.NewHandler(identitySvc, projectSvc, querySvc, sessions), sessions
}

func registerAndLogin(t *testing.T, h *mcp.Handler, username, role string) mcp.AccountResponse {
	t.Helper()
	ctx := context.Background()

	acct, err := h.RegisterAccount(ctx, mcp.RegisterAccountParams{
		DisplayName: "Cuenta " + username,
		Username:    username,
		Password:    "secret",
		Role:        role,
	})
	require.NoError(t, err)

	_, err = h.Login(ctx, mcp.LoginParams{Username: username, Password: "secret"})
	require.NoError(t, err)
	return acct
}

// loginAs switches the session to an already-registered account.
func loginAs(t *testing.T, h *mcp.Handler, username string) {
	t.Helper()
	_, err := h.Login(context.Background(), mcp.LoginParams{Username: username, Password: "secret"})
	require.NoError(t, err)
}

func submitProject(t *testing.T, h *mcp.Handler) mcp.ProjectResponse {
	t.Helper()
	proj, err := h.SubmitProject(context.Background(), mcp.SubmitProjectParams{
		Name:      "Asistente de onboarding",
		Company:   "Nexus Retail",
		AILevel:   "medio",
		StartDate: "2025-04-01",
		EndDate:   "2025-09-01",
		Stories:   []string{"Formulario de alta", "Resumen automático"},
	})
	require.NoError(t, err)
	return proj
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *mcp.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}

func TestToolsRequireLogin(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	_, err := h.SubmitProject(ctx, mcp.SubmitProjectParams{Name: "x"})
	requireCode(t, err, "AUTH_REQUIRED")

	_, err = h.ListProjects(ctx)
	requireCode(t, err, "AUTH_REQUIRED")

	_, err = h.SummaryCounts(ctx)
	requireCode(t, err, "AUTH_REQUIRED")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	_, err := h.RegisterAccount(ctx, mcp.RegisterAccountParams{
		DisplayName: "Ana García", Username: "ana", Password: "secret", Role: "leader",
	})
	require.NoError(t, err)

	_, err = h.Login(ctx, mcp.LoginParams{Username: "ana", Password: "wrong"})
	requireCode(t, err, "INVALID_CREDENTIALS")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	params := mcp.RegisterAccountParams{DisplayName: "Ana", Username: "ana", Password: "x", Role: "leader"}
	_, err := h.RegisterAccount(ctx, params)
	require.NoError(t, err)

	_, err = h.RegisterAccount(ctx, params)
	requireCode(t, err, "DUPLICATE_USERNAME")
}

func TestLogoutEndsSession(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()
	registerAndLogin(t, h, "ana", "leader")

	status, err := h.Logout(ctx)
	require.NoError(t, err)
	require.Equal(t, "logged_out", status.Status)

	_, err = h.ListProjects(ctx)
	requireCode(t, err, "AUTH_REQUIRED")
}

func TestSessionOfDeletedAccountIsLoggedOut(t *testing.T) {
	h, sessions := newHandler(t)
	ctx := context.Background()

	victim := registerAndLogin(t, h, "ana", "leader")
	registerAndLogin(t, h, "marta", "manager")

	_, err := h.DeleteAccount(ctx, mcp.DeleteAccountParams{AccountID: victim.ID})
	require.NoError(t, err)

	// A session left pointing at the deleted account is treated as logged
	// out, not as an internal error.
	require.NoError(t, sessions.SetCurrentAccount(ctx, victim.ID))
	_, err = h.ListProjects(ctx)
	requireCode(t, err, "AUTH_REQUIRED")
}

func TestDeleteAccountGuards(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	manager := registerAndLogin(t, h, "marta", "manager")

	_, err := h.DeleteAccount(ctx, mcp.DeleteAccountParams{AccountID: manager.ID})
	requireCode(t, err, "SELF_DELETION")

	registerAndLogin(t, h, "ana", "leader")
	_, err = h.DeleteAccount(ctx, mcp.DeleteAccountParams{AccountID: manager.ID})
	requireCode(t, err, "FORBIDDEN")
}

func TestSubmitAndApproveFlow(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	proj := submitProject(t, h)
	require.Equal(t, "pendiente", proj.Status)
	require.Equal(t, 5, proj.EstimatedDuration)
	require.Equal(t, 0, proj.Progress)

	registerAndLogin(t, h, "marta", "manager")

	pending, err := h.PendingApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, pending.Projects, 1)

	approved, err := h.ApproveProject(ctx, mcp.ApproveProjectParams{ProjectID: proj.ID, Incentive: "formacion"})
	require.NoError(t, err)
	require.Equal(t, "aprobado", approved.Status)
	require.Equal(t, "formacion", approved.Incentive)

	pending, err = h.PendingApprovals(ctx)
	require.NoError(t, err)
	require.Empty(t, pending.Projects)
}

func TestPendingApprovalsRequiresManager(t *testing.T) {
	h, _ := newHandler(t)
	registerAndLogin(t, h, "ana", "leader")

	_, err := h.PendingApprovals(context.Background())
	requireCode(t, err, "FORBIDDEN")
}

func TestLeaderSeesOnlyOwnProjects(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	submitProject(t, h)

	registerAndLogin(t, h, "luis", "leader")
	list, err := h.ListProjects(ctx)
	require.NoError(t, err)
	require.Empty(t, list.Projects)

	registerAndLogin(t, h, "marta", "manager")
	list, err = h.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list.Projects, 1)
}

func TestGetProjectScopedToOwner(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	proj := submitProject(t, h)

	registerAndLogin(t, h, "luis", "leader")
	_, err := h.GetProject(ctx, mcp.ProjectIDParams{ProjectID: proj.ID})
	requireCode(t, err, "NOT_OWNER")

	registerAndLogin(t, h, "marta", "manager")
	fetched, err := h.GetProject(ctx, mcp.ProjectIDParams{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Equal(t, proj.ID, fetched.ID)

	loginAs(t, h, "ana")
	fetched, err = h.GetProject(ctx, mcp.ProjectIDParams{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Equal(t, proj.ID, fetched.ID)
}

func TestStoryTracking(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	proj := submitProject(t, h)

	registerAndLogin(t, h, "marta", "manager")
	_, err := h.ApproveProject(ctx, mcp.ApproveProjectParams{ProjectID: proj.ID, Incentive: "economico"})
	require.NoError(t, err)

	// Manager cannot approve a story that was never submitted.
	_, err = h.ApproveStories(ctx, mcp.ApproveStoriesParams{ProjectID: proj.ID, StoryIDs: []string{proj.Stories[0].ID}})
	requireCode(t, err, "INVALID_TRANSITION")

	loginAs(t, h, "ana")
	updated, err := h.MarkStoriesCompleted(ctx, mcp.MarkStoriesCompletedParams{
		ProjectID:   proj.ID,
		StoryIDs:    []string{proj.Stories[0].ID},
		EvidenceRef: "https://repo.example/evidencia/42",
	})
	require.NoError(t, err)
	require.Equal(t, "pending_approval", updated.Stories[0].State)
	require.Equal(t, 0, updated.Progress)

	loginAs(t, h, "marta")
	updated, err = h.ApproveStories(ctx, mcp.ApproveStoriesParams{ProjectID: proj.ID, StoryIDs: []string{proj.Stories[0].ID}})
	require.NoError(t, err)
	require.Equal(t, "approved", updated.Stories[0].State)
	require.Equal(t, 50, updated.Progress)
}

func TestCancelTwoStepOverTools(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	proj := submitProject(t, h)

	resp, err := h.CancelProject(ctx, mcp.CancelProjectParams{ProjectID: proj.ID})
	require.NoError(t, err)
	require.Nil(t, resp.Project)
	require.NotNil(t, resp.Proposal)

	resp, err = h.CancelProject(ctx, mcp.CancelProjectParams{ProjectID: proj.ID, Confirm: true})
	require.NoError(t, err)
	require.Nil(t, resp.Proposal)
	require.Equal(t, "cancelado", resp.Project.Status)
}

func TestProjectHistoryFilter(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	proj := submitProject(t, h)

	registerAndLogin(t, h, "marta", "manager")
	_, err := h.RejectProject(ctx, mcp.ProjectIDParams{ProjectID: proj.ID})
	require.NoError(t, err)

	hist, err := h.ProjectHistory(ctx, mcp.ProjectHistoryParams{Status: "no-aprobado"})
	require.NoError(t, err)
	require.Len(t, hist.Projects, 1)

	hist, err = h.ProjectHistory(ctx, mcp.ProjectHistoryParams{Leader: "cuenta ana", Company: "nexus"})
	require.NoError(t, err)
	require.Len(t, hist.Projects, 1)

	hist, err = h.ProjectHistory(ctx, mcp.ProjectHistoryParams{Company: "acme"})
	require.NoError(t, err)
	require.Empty(t, hist.Projects)
}

func TestSummaryCounts(t *testing.T) {
	h, _ := newHandler(t)
	ctx := context.Background()

	registerAndLogin(t, h, "ana", "leader")
	submitProject(t, h)
	submitProject(t, h)

	summary, err := h.SummaryCounts(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, summary.Counts.Total)
	require.Equal(t, 2, summary.Counts.Pending)
}

func TestSessionReadFailurePassesThrough(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	accounts := docstore.NewAccountRepository(store)
	projects := docstore.NewProjectRepository(store)

	// A broken session backend is an internal failure, not an auth failure.
	errBroken := errors.New("backend unavailable")
	sessions := &mocks.SessionStore{}
	sessions.On("CurrentAccountID", ctx).Return("", errBroken)

	h := mcp.NewHandler(
		identity.NewService(accounts, nil),
		project.NewService(projects, accounts, clock.System{}, nil),
		query.NewService(projects, accounts, nil),
		sessions,
	)

	_, err := h.ListProjects(ctx)
	require.ErrorIs(t, err, errBroken)

	var apiErr *mcp.APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestGetProjectNotFound(t *testing.T) {
	h, _ := newHandler(t)
	registerAndLogin(t, h, "ana", "leader")

	_, err := h.GetProject(context.Background(), mcp.ProjectIDParams{ProjectID: "ghost"})
	requireCode(t, err, "NOT_FOUND")
}
