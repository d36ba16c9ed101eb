package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mvmnexus/innova/internal/clock"
	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/repository"
)

// Service owns the project lifecycle and the nested user-story
// sub-lifecycle. Every transition is role-gated against the account
// directory and validated before anything is written, so a guard failure
// never leaves a partial update behind.
type Service struct {
	projects Repository
	accounts AccountDirectory
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new project lifecycle service.
func NewService(projects Repository, accounts AccountDirectory, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		projects: projects,
		accounts: accounts,
		clock:    clk,
		logger:   logger,
	}
}

// SubmitRequest defines the leader-authored project fields.
type SubmitRequest struct {
	LeaderID    string
	Name        string
	Description string
	Company     string
	AILevel     AILevel
	StartDate   string
	EndDate     string
	Stories     []string
}

// ResubmitRequest carries revised fields for a returned project.
type ResubmitRequest struct {
	SubmitRequest
	ProjectID string
}

// MarkCompletedRequest submits finished stories with supporting evidence.
type MarkCompletedRequest struct {
	LeaderID    string
	ProjectID   string
	StoryIDs    []string
	EvidenceRef string
}

// ApproveStoriesRequest approves stories previously submitted with evidence.
type ApproveStoriesRequest struct {
	ManagerID string
	ProjectID string
	StoryIDs  []string
}

// TrackingRequest updates AI-usage verification and progress notes on a
// tracked project.
type TrackingRequest struct {
	LeaderID      string
	ProjectID     string
	AIUsage       AIUsage
	ProgressNotes string
}

// CancelProposal describes the pending effect of a cancellation so callers
// can confirm explicitly before anything mutates.
type CancelProposal struct {
	ProjectID string `json:"project_id"`
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Message   string `json:"message"`
}

// Submit creates a new project in pendiente on behalf of a leader.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Project, error) {
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, req.LeaderID, identity.RoleLeader); err != nil {
		return nil, err
	}

	proj := &Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Company:     req.Company,
		AILevel:     req.AILevel,
		LeaderID:    req.LeaderID,
		Status:      StatusPending,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UserStories: newStories(req.Stories),
		CreatedAt:   s.clock.Now(),
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return proj, nil
}

// Resubmit replaces the mutable fields of a returned project and sends it
// back to review. Only the owning leader may resubmit, and only from
// devuelto.
func (s *Service) Resubmit(ctx context.Context, req ResubmitRequest) (*Project, error) {
	if err := ValidateSubmission(req.SubmitRequest); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if current.LeaderID != req.LeaderID {
		return nil, ErrNotOwner
	}
	// Only devuelto -> pendiente is an edge, so this rejects everything else.
	if err := ValidateTransition(current.Status, StatusPending); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.Name = req.Name
	updated.Description = req.Description
	updated.Company = req.Company
	updated.AILevel = req.AILevel
	updated.StartDate = req.StartDate
	updated.EndDate = req.EndDate
	updated.UserStories = newStories(req.Stories)
	updated.Status = StatusPending
	updated.UpdatedAt = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("resubmitting project: %w", err)
	}

	return updated, nil
}

// Approve moves a pending project to aprobado, recording the incentive and
// the approving manager.
func (s *Service) Approve(ctx context.Context, managerID, projectID string, incentive Incentive) (*Project, error) {
	manager, err := s.requireRole(ctx, managerID, identity.RoleManager)
	if err != nil {
		return nil, err
	}
	if !incentive.Valid() {
		return nil, ErrMissingIncentive
	}

	current, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(current.Status, StatusApproved); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.Status = StatusApproved
	updated.Incentive = incentive
	updated.ApprovedAt = &now
	updated.ApprovedBy = manager.ID

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("approving project: %w", err)
	}

	return updated, nil
}

// ReturnForRevision sends a pending project back to its leader.
func (s *Service) ReturnForRevision(ctx context.Context, managerID, projectID string) (*Project, error) {
	if _, err := s.requireRole(ctx, managerID, identity.RoleManager); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(current.Status, StatusReturned); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.Status = StatusReturned
	updated.ReturnedAt = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("returning project: %w", err)
	}

	return updated, nil
}

// Reject moves a pending project to the terminal no-aprobado state. The
// project is retained for history, never deleted.
func (s *Service) Reject(ctx context.Context, managerID, projectID string) (*Project, error) {
	if _, err := s.requireRole(ctx, managerID, identity.RoleManager); err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(current.Status, StatusRejected); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.Status = StatusRejected
	updated.RejectedAt = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("rejecting project: %w", err)
	}

	return updated, nil
}

// Cancel withdraws a project. It is a two-step protocol: without confirm the
// guards run and a proposal is returned with no mutation; with confirm the
// transition is performed.
func (s *Service) Cancel(ctx context.Context, leaderID, projectID string, confirm bool) (*Project, *CancelProposal, error) {
	current, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if current.LeaderID != leaderID {
		return nil, nil, ErrNotOwner
	}
	if err := ValidateTransition(current.Status, StatusCanceled); err != nil {
		return nil, nil, err
	}

	if !confirm {
		return nil, &CancelProposal{
			ProjectID: current.ID,
			Name:      current.Name,
			Status:    current.Status,
			Message:   "cancellation requires confirmation; repeat the call with confirm set",
		}, nil
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.Status = StatusCanceled
	updated.CanceledAt = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, nil, fmt.Errorf("canceling project: %w", err)
	}

	return updated, nil, nil
}

// MarkStoriesCompleted submits open stories for approval with an evidence
// reference. Stories already pending or approved are skipped, never
// re-submitted.
func (s *Service) MarkStoriesCompleted(ctx context.Context, req MarkCompletedRequest) (*Project, error) {
	if len(req.StoryIDs) == 0 {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(req.EvidenceRef) == "" {
		return nil, ErrMissingEvidence
	}

	current, err := s.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if current.LeaderID != req.LeaderID {
		return nil, ErrNotOwner
	}
	if current.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	updated := current.Clone()
	for _, id := range req.StoryIDs {
		if updated.Story(id) == nil {
			return nil, ErrStoryNotFound
		}
	}

	now := s.clock.Now()
	transitioned := 0
	for _, id := range req.StoryIDs {
		story := updated.Story(id)
		if !story.Open() {
			continue
		}
		story.Completed = true
		story.PendingApproval = true
		story.EvidenceRef = req.EvidenceRef
		completedAt := now
		story.CompletedAt = &completedAt
		transitioned++
	}

	if transitioned == 0 {
		// Nothing moved; keep the stored project untouched.
		return current, nil
	}

	updated.LastUpdated = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("marking stories completed: %w", err)
	}

	return updated, nil
}

// ApproveStories approves stories that are pending approval. Approval is
// monotonic: a story cannot leave the approved state afterwards.
func (s *Service) ApproveStories(ctx context.Context, req ApproveStoriesRequest) (*Project, error) {
	if len(req.StoryIDs) == 0 {
		return nil, ErrInvalidInput
	}
	manager, err := s.requireRole(ctx, req.ManagerID, identity.RoleManager)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	updated := current.Clone()
	for _, id := range req.StoryIDs {
		story := updated.Story(id)
		if story == nil {
			return nil, ErrStoryNotFound
		}
		if !story.PendingApproval {
			return nil, ErrStoryNotPending
		}
	}

	now := s.clock.Now()
	for _, id := range req.StoryIDs {
		story := updated.Story(id)
		story.PendingApproval = false
		story.Approved = true
		approvedAt := now
		story.ApprovedAt = &approvedAt
		story.ApprovedBy = manager.ID
	}
	updated.LastApproved = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("approving stories: %w", err)
	}

	return updated, nil
}

// RecordTracking updates AI-usage verification and progress notes on an
// approved project.
func (s *Service) RecordTracking(ctx context.Context, req TrackingRequest) (*Project, error) {
	if !req.AIUsage.Valid() {
		return nil, ErrInvalidInput
	}

	current, err := s.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if current.LeaderID != req.LeaderID {
		return nil, ErrNotOwner
	}
	if current.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}

	now := s.clock.Now()
	updated := current.Clone()
	updated.AIUsage = req.AIUsage
	updated.ProgressNotes = req.ProgressNotes
	updated.LastUpdated = &now

	if err := s.projects.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("recording tracking update: %w", err)
	}

	return updated, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns all projects.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.projects.List(ctx)
}

func (s *Service) requireRole(ctx context.Context, actorID string, role identity.Role) (*identity.Account, error) {
	actor, err := s.accounts.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, identity.ErrAccountNotFound
		}
		return nil, fmt.Errorf("resolving actor: %w", err)
	}
	if actor.Role != role {
		if role == identity.RoleManager {
			return nil, identity.ErrManagerRequired
		}
		return nil, identity.ErrLeaderRequired
	}
	return actor, nil
}

func newStories(texts []string) []UserStory {
	stories := make([]UserStory, 0, len(texts))
	for _, text := range texts {
		stories = append(stories, UserStory{
			ID:   uuid.NewString(),
			Text: text,
		})
	}
	return stories
}
