package project_test

import (
	"testing"

	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatedDuration(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		end    string
		months int
	}{
		{"five months", "2025-04-01", "2025-09-01", 5},
		{"partial month rounds down", "2025-04-15", "2025-09-01", 4},
		{"same day", "2025-04-01", "2025-04-01", 0},
		{"year boundary", "2025-11-01", "2026-02-01", 3},
		{"inverted range clamps to zero", "2025-09-01", "2025-04-01", 0},
		{"unparseable start", "abril", "2025-09-01", 0},
		{"missing end", "2025-04-01", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &project.Project{StartDate: tt.start, EndDate: tt.end}
			assert.Equal(t, tt.months, p.EstimatedDuration())
		})
	}
}

func TestProgress(t *testing.T) {
	p := &project.Project{}
	assert.Equal(t, 0, p.Progress(), "no stories means zero, not a division error")

	p.UserStories = []project.UserStory{
		{ID: "a", Approved: true},
		{ID: "b", PendingApproval: true},
		{ID: "c"},
	}
	assert.Equal(t, 33, p.Progress(), "pending stories do not count as done")

	p.UserStories[1] = project.UserStory{ID: "b", Approved: true}
	assert.Equal(t, 67, p.Progress())
}

func TestCloneIsolatesStories(t *testing.T) {
	p := &project.Project{UserStories: []project.UserStory{{ID: "a"}}}

	clone := p.Clone()
	clone.UserStories[0].Approved = true

	require.False(t, p.UserStories[0].Approved)
}

func TestValidateTransition(t *testing.T) {
	allowed := []struct{ from, to project.Status }{
		{project.StatusPending, project.StatusApproved},
		{project.StatusPending, project.StatusReturned},
		{project.StatusPending, project.StatusRejected},
		{project.StatusPending, project.StatusCanceled},
		{project.StatusReturned, project.StatusPending},
		{project.StatusReturned, project.StatusCanceled},
	}
	for _, tt := range allowed {
		assert.NoError(t, project.ValidateTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to project.Status }{
		{project.StatusApproved, project.StatusPending},
		{project.StatusApproved, project.StatusReturned},
		{project.StatusApproved, project.StatusCanceled},
		{project.StatusRejected, project.StatusPending},
		{project.StatusCanceled, project.StatusPending},
		{project.StatusReturned, project.StatusApproved},
		{project.StatusPending, project.StatusPending},
	}
	for _, tt := range denied {
		assert.ErrorIs(t, project.ValidateTransition(tt.from, tt.to), project.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
	}
}
