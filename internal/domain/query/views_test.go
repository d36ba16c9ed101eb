package query_test

import (
	"testing"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
	"github.com/mvmnexus/innova/internal/domain/query"
	"github.com/stretchr/testify/assert"
)

var (
	leaderAna  = &identity.Account{ID: "ana", DisplayName: "Ana García", Role: identity.RoleLeader}
	leaderLuis = &identity.Account{ID: "luis", DisplayName: "Luis Ortega", Role: identity.RoleLeader}
	manager    = &identity.Account{ID: "marta", DisplayName: "Marta Ruiz", Role: identity.RoleManager}

	leaderNames = map[string]string{
		"ana":  "Ana García",
		"luis": "Luis Ortega",
	}

	sample = []project.Project{
		{ID: "p1", Name: "Onboarding", Company: "Nexus Retail", LeaderID: "ana", Status: project.StatusPending},
		{ID: "p2", Name: "Chatbot soporte", Company: "Nexus Retail", LeaderID: "ana", Status: project.StatusApproved},
		{ID: "p3", Name: "Previsión demanda", Company: "Logística Sur", LeaderID: "luis", Status: project.StatusRejected},
		{ID: "p4", Name: "OCR facturas", Company: "Logística Sur", LeaderID: "luis", Status: project.StatusReturned},
		{ID: "p5", Name: "Clasificador correos", Company: "Nexus Retail", LeaderID: "luis", Status: project.StatusCanceled},
	}
)

func ids(projects []project.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

func TestPendingForReview(t *testing.T) {
	assert.Equal(t, []string{"p1"}, ids(query.PendingForReview(sample)))
	assert.Empty(t, query.PendingForReview(nil))
}

func TestVisibleTo(t *testing.T) {
	assert.Len(t, query.VisibleTo(manager, sample), 5)
	assert.Equal(t, []string{"p1", "p2"}, ids(query.VisibleTo(leaderAna, sample)))
	assert.Equal(t, []string{"p3", "p4", "p5"}, ids(query.VisibleTo(leaderLuis, sample)))
}

func TestHistoryFilters(t *testing.T) {
	// Unfiltered history is just the visible set.
	assert.Len(t, query.History(manager, sample, leaderNames, query.HistoryFilter{}), 5)

	got := query.History(manager, sample, leaderNames, query.HistoryFilter{LeaderSubstring: "ortega"})
	assert.Equal(t, []string{"p3", "p4", "p5"}, ids(got))

	got = query.History(manager, sample, leaderNames, query.HistoryFilter{CompanySubstring: "NEXUS"})
	assert.Equal(t, []string{"p1", "p2", "p5"}, ids(got))

	got = query.History(manager, sample, leaderNames, query.HistoryFilter{Status: project.StatusRejected})
	assert.Equal(t, []string{"p3"}, ids(got))

	got = query.History(manager, sample, leaderNames, query.HistoryFilter{
		CompanySubstring: "logística",
		Status:           project.StatusReturned,
	})
	assert.Equal(t, []string{"p4"}, ids(got))
}

func TestHistoryScopedToLeader(t *testing.T) {
	// A leader filtering on another leader's name sees nothing: visibility
	// applies before the filters.
	got := query.History(leaderAna, sample, leaderNames, query.HistoryFilter{LeaderSubstring: "ortega"})
	assert.Empty(t, got)
}

func TestSummaryCounts(t *testing.T) {
	counts := query.SummaryCounts(sample)
	assert.Equal(t, query.Counts{Total: 5, Approved: 1, Pending: 1, Rejected: 1}, counts)

	assert.Equal(t, query.Counts{}, query.SummaryCounts(nil))
}
