package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/domain/query"
	"github.com/mvmnexus/innova/internal/repository"
)

// IdentityService defines account operations needed by the tool surface.
type IdentityService interface {
	Register(ctx context.Context, req identity.RegisterRequest) (*identity.Account, error)
	Authenticate(ctx context.Context, username, password string) (*identity.Account, error)
	Delete(ctx context.Context, id, requestingActorID string) error
	Get(ctx context.Context, id string) (*identity.Account, error)
}

// ProjectService defines lifecycle operations needed by the tool surface.
type ProjectService interface {
	Submit(ctx context.Context, req project.SubmitRequest) (*project.Project, error)
	Resubmit(ctx context.Context, req project.ResubmitRequest) (*project.Project, error)
	Approve(ctx context.Context, managerID, projectID string, incentive project.Incentive) (*project.Project, error)
	ReturnForRevision(ctx context.Context, managerID, projectID string) (*project.Project, error)
	Reject(ctx context.Context, managerID, projectID string) (*project.Project, error)
	Cancel(ctx context.Context, leaderID, projectID string, confirm bool) (*project.Project, *project.CancelProposal, error)
	MarkStoriesCompleted(ctx context.Context, req project.MarkCompletedRequest) (*project.Project, error)
	ApproveStories(ctx context.Context, req project.ApproveStoriesRequest) (*project.Project, error)
	RecordTracking(ctx context.Context, req project.TrackingRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
}

// QueryService defines derived views needed by the tool surface.
type QueryService interface {
	PendingForReview(ctx context.Context) ([]project.Project, error)
	VisibleProjects(ctx context.Context, actorID string) ([]project.Project, error)
	History(ctx context.Context, actorID string, filter query.HistoryFilter) ([]project.Project, error)
	SummaryCounts(ctx context.Context) (query.Counts, error)
}

// Handler bridges tool calls to the domain services, resolving the acting
// account from the session store.
type Handler struct {
	identity IdentityService
	projects ProjectService
	queries  QueryService
	session  repository.SessionStore
}

// NewHandler creates a new tool handler.
func NewHandler(identitySvc IdentityService, projectSvc ProjectService, querySvc QueryService, session repository.SessionStore) *Handler {
	return &Handler{
		identity: identitySvc,
		projects: projectSvc,
		queries:  querySvc,
		session:  session,
	}
}

// currentActor resolves which account is driving this session.
func (h *Handler) currentActor(ctx context.Context) (*identity.Account, error) {
	id, err := h.session.CurrentAccountID(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	actor, err := h.identity.Get(ctx, id)
	if err != nil {
		// The session points at a deleted account; treat it as logged out.
		if errors.Is(err, identity.ErrAccountNotFound) {
			return nil, ErrAuthRequired
		}
		return nil, err
	}
	return actor, nil
}

func (h *Handler) RegisterAccount(ctx context.Context, params RegisterAccountParams) (AccountResponse, error) {
	acct, err := h.identity.Register(ctx, identity.RegisterRequest{
		DisplayName: params.DisplayName,
		Username:    params.Username,
		Password:    params.Password,
		Role:        identity.Role(params.Role),
	})
	if err != nil {
		return AccountResponse{}, MapError(err)
	}
	return toAccountResponse(acct), nil
}

func (h *Handler) Login(ctx context.Context, params LoginParams) (AccountResponse, error) {
	acct, err := h.identity.Authenticate(ctx, params.Username, params.Password)
	if err != nil {
		return AccountResponse{}, MapError(err)
	}
	if err := h.session.SetCurrentAccount(ctx, acct.ID); err != nil {
		return AccountResponse{}, fmt.Errorf("storing session: %w", err)
	}
	return toAccountResponse(acct), nil
}

func (h *Handler) Logout(ctx context.Context) (StatusResponse, error) {
	if err := h.session.Clear(ctx); err != nil {
		return StatusResponse{}, fmt.Errorf("clearing session: %w", err)
	}
	return StatusResponse{Status: "logged_out"}, nil
}

func (h *Handler) DeleteAccount(ctx context.Context, params DeleteAccountParams) (StatusResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return StatusResponse{}, MapError(err)
	}
	if err := h.identity.Delete(ctx, params.AccountID, actor.ID); err != nil {
		return StatusResponse{}, MapError(err)
	}
	return StatusResponse{Status: "deleted"}, nil
}

func (h *Handler) SubmitProject(ctx context.Context, params SubmitProjectParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.Submit(ctx, project.SubmitRequest{
		LeaderID:    actor.ID,
		Name:        params.Name,
		Description: params.Description,
		Company:     params.Company,
		AILevel:     project.AILevel(params.AILevel),
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Stories:     params.Stories,
	})
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) ResubmitProject(ctx context.Context, params ResubmitProjectParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.Resubmit(ctx, project.ResubmitRequest{
		ProjectID: params.ProjectID,
		SubmitRequest: project.SubmitRequest{
			LeaderID:    actor.ID,
			Name:        params.Name,
			Description: params.Description,
			Company:     params.Company,
			AILevel:     project.AILevel(params.AILevel),
			StartDate:   params.StartDate,
			EndDate:     params.EndDate,
			Stories:     params.Stories,
		},
	})
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) ApproveProject(ctx context.Context, params ApproveProjectParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.Approve(ctx, actor.ID, params.ProjectID, project.Incentive(params.Incentive))
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) ReturnProject(ctx context.Context, params ProjectIDParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.ReturnForRevision(ctx, actor.ID, params.ProjectID)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) RejectProject(ctx context.Context, params ProjectIDParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.Reject(ctx, actor.ID, params.ProjectID)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) CancelProject(ctx context.Context, params CancelProjectParams) (CancelResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return CancelResponse{}, MapError(err)
	}
	proj, proposal, err := h.projects.Cancel(ctx, actor.ID, params.ProjectID, params.Confirm)
	if err != nil {
		return CancelResponse{}, MapError(err)
	}
	resp := CancelResponse{Proposal: proposal}
	if proj != nil {
		projResp := toProjectResponse(proj)
		resp.Project = &projResp
	}
	return resp, nil
}

func (h *Handler) MarkStoriesCompleted(ctx context.Context, params MarkStoriesCompletedParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.MarkStoriesCompleted(ctx, project.MarkCompletedRequest{
		LeaderID:    actor.ID,
		ProjectID:   params.ProjectID,
		StoryIDs:    params.StoryIDs,
		EvidenceRef: params.EvidenceRef,
	})
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) ApproveStories(ctx context.Context, params ApproveStoriesParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.ApproveStories(ctx, project.ApproveStoriesRequest{
		ManagerID: actor.ID,
		ProjectID: params.ProjectID,
		StoryIDs:  params.StoryIDs,
	})
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) RecordTracking(ctx context.Context, params RecordTrackingParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.RecordTracking(ctx, project.TrackingRequest{
		LeaderID:      actor.ID,
		ProjectID:     params.ProjectID,
		AIUsage:       project.AIUsage(params.AIUsage),
		ProgressNotes: params.ProgressNotes,
	})
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) GetProject(ctx context.Context, params ProjectIDParams) (ProjectResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	proj, err := h.projects.Get(ctx, params.ProjectID)
	if err != nil {
		return ProjectResponse{}, MapError(err)
	}
	if actor.Role != identity.RoleManager && proj.LeaderID != actor.ID {
		return ProjectResponse{}, MapError(project.ErrNotOwner)
	}
	return toProjectResponse(proj), nil
}

func (h *Handler) ListProjects(ctx context.Context) (ProjectListResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	projects, err := h.queries.VisibleProjects(ctx, actor.ID)
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	return toProjectListResponse(projects), nil
}

func (h *Handler) PendingApprovals(ctx context.Context) (ProjectListResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	if actor.Role != identity.RoleManager {
		return ProjectListResponse{}, MapError(identity.ErrManagerRequired)
	}
	projects, err := h.queries.PendingForReview(ctx)
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	return toProjectListResponse(projects), nil
}

func (h *Handler) ProjectHistory(ctx context.Context, params ProjectHistoryParams) (ProjectListResponse, error) {
	actor, err := h.currentActor(ctx)
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	projects, err := h.queries.History(ctx, actor.ID, query.HistoryFilter{
		LeaderSubstring:  params.Leader,
		CompanySubstring: params.Company,
		Status:           project.Status(params.Status),
	})
	if err != nil {
		return ProjectListResponse{}, MapError(err)
	}
	return toProjectListResponse(projects), nil
}

func (h *Handler) SummaryCounts(ctx context.Context) (SummaryResponse, error) {
	if _, err := h.currentActor(ctx); err != nil {
		return SummaryResponse{}, MapError(err)
	}
	counts, err := h.queries.SummaryCounts(ctx)
	if err != nil {
		return SummaryResponse{}, MapError(err)
	}
	return SummaryResponse{Counts: counts}, nil
}
