package mcp

import (
	"time"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/domain/query"
)

type RegisterAccountParams struct {
	DisplayName string `json:"display_name" jsonschema:"Full name shown in project views"`
	Username    string `json:"username" jsonschema:"Unique login name"`
	Password    string `json:"password" jsonschema:"Account password"`
	Role        string `json:"role" jsonschema:"Account role: leader or manager"`
}

type LoginParams struct {
	Username string `json:"username" jsonschema:"Login name"`
	Password string `json:"password" jsonschema:"Account password"`
}

type LogoutParams struct{}

type DeleteAccountParams struct {
	AccountID string `json:"account_id" jsonschema:"Account to delete"`
}

type SubmitProjectParams struct {
	Name        string   `json:"name" jsonschema:"Project name"`
	Description string   `json:"description,omitempty" jsonschema:"What the project does"`
	Company     string   `json:"company" jsonschema:"Company the project belongs to"`
	AILevel     string   `json:"ai_level" jsonschema:"AI application depth: bajo, medio, alto or profundo"`
	StartDate   string   `json:"start_date,omitempty" jsonschema:"Planned start date (YYYY-MM-DD)"`
	EndDate     string   `json:"end_date,omitempty" jsonschema:"Planned end date (YYYY-MM-DD)"`
	Stories     []string `json:"stories" jsonschema:"User story texts; at least one is required"`
}

type ResubmitProjectParams struct {
	ProjectID string `json:"project_id" jsonschema:"Returned project to revise"`
	SubmitProjectParams
}

type ApproveProjectParams struct {
	ProjectID string `json:"project_id" jsonschema:"Pending project to approve"`
	Incentive string `json:"incentive" jsonschema:"Incentive: economico, laboral, temporal, formacion or recursos"`
}

type ProjectIDParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project id"`
}

type CancelProjectParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project to cancel"`
	Confirm   bool   `json:"confirm,omitempty" jsonschema:"Set after reviewing the cancellation proposal"`
}

type MarkStoriesCompletedParams struct {
	ProjectID   string   `json:"project_id" jsonschema:"Tracked project"`
	StoryIDs    []string `json:"story_ids" jsonschema:"Stories finished by the leader"`
	EvidenceRef string   `json:"evidence_ref" jsonschema:"Reference to the uploaded evidence artifact"`
}

type ApproveStoriesParams struct {
	ProjectID string   `json:"project_id" jsonschema:"Tracked project"`
	StoryIDs  []string `json:"story_ids" jsonschema:"Stories pending approval"`
}

type RecordTrackingParams struct {
	ProjectID     string `json:"project_id" jsonschema:"Tracked project"`
	AIUsage       string `json:"ai_usage" jsonschema:"AI usage verification: verificado, parcial or no-verificado"`
	ProgressNotes string `json:"progress_notes,omitempty" jsonschema:"Free-form tracking notes"`
}

type ProjectHistoryParams struct {
	Leader  string `json:"leader,omitempty" jsonschema:"Case-insensitive substring of the leader name"`
	Company string `json:"company,omitempty" jsonschema:"Case-insensitive substring of the company name"`
	Status  string `json:"status,omitempty" jsonschema:"Exact status filter"`
}

type EmptyParams struct{}

// AccountResponse is the surface view of an account. The password secret
// never leaves the engine.
type AccountResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
	Role        string `json:"role"`
}

type StoryResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	State       string     `json:"state"`
	EvidenceRef string     `json:"evidence_ref,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
}

type ProjectResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	Company           string          `json:"company"`
	AILevel           string          `json:"ai_level"`
	LeaderID          string          `json:"leader_id"`
	Status            string          `json:"status"`
	StartDate         string          `json:"start_date,omitempty"`
	EndDate           string          `json:"end_date,omitempty"`
	EstimatedDuration int             `json:"estimated_duration_months"`
	Incentive         string          `json:"incentive,omitempty"`
	Progress          int             `json:"progress"`
	AIUsage           string          `json:"ai_usage,omitempty"`
	ProgressNotes     string          `json:"progress_notes,omitempty"`
	Stories           []StoryResponse `json:"stories"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         *time.Time      `json:"updated_at,omitempty"`
	ApprovedAt        *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy        string          `json:"approved_by,omitempty"`
	ReturnedAt        *time.Time      `json:"returned_at,omitempty"`
	RejectedAt        *time.Time      `json:"rejected_at,omitempty"`
	CanceledAt        *time.Time      `json:"canceled_at,omitempty"`
	LastUpdated       *time.Time      `json:"last_updated,omitempty"`
	LastApproved      *time.Time      `json:"last_approved,omitempty"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type CancelResponse struct {
	Project  *ProjectResponse        `json:"project,omitempty"`
	Proposal *project.CancelProposal `json:"proposal,omitempty"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type SummaryResponse struct {
	Counts query.Counts `json:"counts"`
}

func toAccountResponse(acct *identity.Account) AccountResponse {
	return AccountResponse{
		ID:          acct.ID,
		DisplayName: acct.DisplayName,
		Username:    acct.Username,
		Role:        string(acct.Role),
	}
}

func storyState(story project.UserStory) string {
	switch {
	case story.Approved:
		return "approved"
	case story.PendingApproval:
		return "pending_approval"
	default:
		return "open"
	}
}

func toProjectResponse(proj *project.Project) ProjectResponse {
	stories := make([]StoryResponse, 0, len(proj.UserStories))
	for _, story := range proj.UserStories {
		stories = append(stories, StoryResponse{
			ID:          story.ID,
			Text:        story.Text,
			State:       storyState(story),
			EvidenceRef: story.EvidenceRef,
			CompletedAt: story.CompletedAt,
			ApprovedAt:  story.ApprovedAt,
			ApprovedBy:  story.ApprovedBy,
		})
	}

	return ProjectResponse{
		ID:                proj.ID,
		Name:              proj.Name,
		Description:       proj.Description,
		Company:           proj.Company,
		AILevel:           string(proj.AILevel),
		LeaderID:          proj.LeaderID,
		Status:            string(proj.Status),
		StartDate:         proj.StartDate,
		EndDate:           proj.EndDate,
		EstimatedDuration: proj.EstimatedDuration(),
		Incentive:         string(proj.Incentive),
		Progress:          proj.Progress(),
		AIUsage:           string(proj.AIUsage),
		ProgressNotes:     proj.ProgressNotes,
		Stories:           stories,
		CreatedAt:         proj.CreatedAt,
		UpdatedAt:         proj.UpdatedAt,
		ApprovedAt:        proj.ApprovedAt,
		ApprovedBy:        proj.ApprovedBy,
		ReturnedAt:        proj.ReturnedAt,
		RejectedAt:        proj.RejectedAt,
		CanceledAt:        proj.CanceledAt,
		LastUpdated:       proj.LastUpdated,
		LastApproved:      proj.LastApproved,
	}
}

func toProjectListResponse(projects []project.Project) ProjectListResponse {
	resp := ProjectListResponse{Projects: make([]ProjectResponse, 0, len(projects))}
	for i := range projects {
		resp.Projects = append(resp.Projects, toProjectResponse(&projects[i]))
	}
	return resp
}
