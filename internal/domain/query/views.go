// Package query derives read-only views over the account and project
// collections. It holds no state of its own; everything is recomputed from
// the current collections on demand.
package query

import (
	"strings"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
)

// HistoryFilter narrows the history view. Substring matches are
// case-insensitive; status is matched exactly.
type HistoryFilter struct {
	LeaderSubstring  string
	CompanySubstring string
	Status           project.Status
}

// Counts summarizes the project collection.
type Counts struct {
	Total    int `json:"total"`
	Approved int `json:"approved"`
	Pending  int `json:"pending"`
	Rejected int `json:"rejected"`
}

// PendingForReview returns projects awaiting a manager decision.
func PendingForReview(projects []project.Project) []project.Project {
	pending := make([]project.Project, 0)
	for _, proj := range projects {
		if proj.Status == project.StatusPending {
			pending = append(pending, proj)
		}
	}
	return pending
}

// VisibleTo restricts the collection by actor: leaders see only their own
// projects, managers see all.
func VisibleTo(actor *identity.Account, projects []project.Project) []project.Project {
	if actor.Role == identity.RoleManager {
		return projects
	}

	visible := make([]project.Project, 0)
	for _, proj := range projects {
		if proj.LeaderID == actor.ID {
			visible = append(visible, proj)
		}
	}
	return visible
}

// History filters the collection visible to the actor. leaderNames maps
// account ids to display names for the leader substring match.
func History(actor *identity.Account, projects []project.Project, leaderNames map[string]string, filter HistoryFilter) []project.Project {
	filtered := VisibleTo(actor, projects)

	if filter.LeaderSubstring != "" {
		needle := strings.ToLower(filter.LeaderSubstring)
		filtered = keep(filtered, func(p project.Project) bool {
			return strings.Contains(strings.ToLower(leaderNames[p.LeaderID]), needle)
		})
	}
	if filter.CompanySubstring != "" {
		needle := strings.ToLower(filter.CompanySubstring)
		filtered = keep(filtered, func(p project.Project) bool {
			return strings.Contains(strings.ToLower(p.Company), needle)
		})
	}
	if filter.Status != "" {
		filtered = keep(filtered, func(p project.Project) bool {
			return p.Status == filter.Status
		})
	}

	return filtered
}

// SummaryCounts computes aggregate counts over all projects.
func SummaryCounts(projects []project.Project) Counts {
	counts := Counts{Total: len(projects)}
	for _, proj := range projects {
		switch proj.Status {
		case project.StatusApproved:
			counts.Approved++
		case project.StatusPending:
			counts.Pending++
		case project.StatusRejected:
			counts.Rejected++
		}
	}
	return counts
}

func keep(projects []project.Project, match func(project.Project) bool) []project.Project {
	kept := make([]project.Project, 0, len(projects))
	for _, proj := range projects {
		if match(proj) {
			kept = append(kept, proj)
		}
	}
	return kept
}
