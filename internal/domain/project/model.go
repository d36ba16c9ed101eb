package project

import "time"

// Status represents the lifecycle state of a project
type Status string

const (
	// StatusPending: submitted, awaiting review.
	StatusPending Status = "pendiente"
	// StatusApproved: accepted, tracked story by story. Never reverts.
	StatusApproved Status = "aprobado"
	// StatusReturned: sent back to the leader for revision.
	StatusReturned Status = "devuelto"
	// StatusRejected: terminal rejection, retained for history.
	StatusRejected Status = "no-aprobado"
	// StatusCanceled: terminal leader-initiated withdrawal.
	StatusCanceled Status = "cancelado"
)

// Valid reports whether the status is one of the defined lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusReturned, StatusRejected, StatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further project transition is possible.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCanceled
}

// AILevel classifies how deeply a project applies AI
type AILevel string

const (
	AILevelLow      AILevel = "bajo"
	AILevelMedium   AILevel = "medio"
	AILevelHigh     AILevel = "alto"
	AILevelProfound AILevel = "profundo"
)

func (l AILevel) Valid() bool {
	switch l {
	case AILevelLow, AILevelMedium, AILevelHigh, AILevelProfound:
		return true
	}
	return false
}

// Incentive is the categorical reward attached on approval
type Incentive string

const (
	IncentiveEconomic  Incentive = "economico"
	IncentiveCareer    Incentive = "laboral"
	IncentiveTime      Incentive = "temporal"
	IncentiveTraining  Incentive = "formacion"
	IncentiveResources Incentive = "recursos"
)

func (i Incentive) Valid() bool {
	switch i {
	case IncentiveEconomic, IncentiveCareer, IncentiveTime, IncentiveTraining, IncentiveResources:
		return true
	}
	return false
}

// AIUsage is a verification level for reported AI usage on a tracked project
type AIUsage string

const (
	AIUsageVerified   AIUsage = "verificado"
	AIUsagePartial    AIUsage = "parcial"
	AIUsageUnverified AIUsage = "no-verificado"
)

func (u AIUsage) Valid() bool {
	switch u {
	case AIUsageVerified, AIUsagePartial, AIUsageUnverified:
		return true
	}
	return false
}

// UserStory is a unit of project work completed and approved independently.
// Owned exclusively by its parent project. At most one of Approved and
// PendingApproval is true; Approved is monotonic.
type UserStory struct {
	ID              string     `json:"id"`
	Text            string     `json:"text"`
	Completed       bool       `json:"completed"`
	Approved        bool       `json:"approved"`
	PendingApproval bool       `json:"pending_approval"`
	EvidenceRef     string     `json:"evidence_ref,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	ApprovedBy      string     `json:"approved_by,omitempty"`
}

// Open reports whether the story has not yet been submitted for approval.
func (s UserStory) Open() bool {
	return !s.Approved && !s.PendingApproval
}

// Project represents a submitted project and its review lifecycle
type Project struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description,omitempty"`
	Company       string      `json:"company"`
	AILevel       AILevel     `json:"ai_level"`
	LeaderID      string      `json:"leader_id"`
	Status        Status      `json:"status"`
	StartDate     string      `json:"start_date"`
	EndDate       string      `json:"end_date"`
	Incentive     Incentive   `json:"incentive,omitempty"`
	UserStories   []UserStory `json:"user_stories"`
	AIUsage       AIUsage     `json:"ai_usage,omitempty"`
	ProgressNotes string      `json:"progress_notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     *time.Time  `json:"updated_at,omitempty"`
	ApprovedAt    *time.Time  `json:"approved_at,omitempty"`
	ApprovedBy    string      `json:"approved_by,omitempty"`
	ReturnedAt    *time.Time  `json:"returned_at,omitempty"`
	RejectedAt    *time.Time  `json:"rejected_at,omitempty"`
	CanceledAt    *time.Time  `json:"canceled_at,omitempty"`
	LastUpdated   *time.Time  `json:"last_updated,omitempty"`
	LastApproved  *time.Time  `json:"last_approved,omitempty"`
}

// Clone returns a deep copy. Guarded transitions mutate the copy and only
// persist it once every guard has passed, keeping failures non-mutating.
func (p *Project) Clone() *Project {
	clone := *p
	clone.UserStories = append([]UserStory(nil), p.UserStories...)
	return &clone
}

// Story returns a pointer to the story with the given id, or nil.
func (p *Project) Story(id string) *UserStory {
	for i := range p.UserStories {
		if p.UserStories[i].ID == id {
			return &p.UserStories[i]
		}
	}
	return nil
}

const dateLayout = "2006-01-02"

// EstimatedDuration derives the project span in whole months for display.
// Invalid or inverted date ranges yield 0 rather than an error.
func (p *Project) EstimatedDuration() int {
	start, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse(dateLayout, p.EndDate)
	if err != nil {
		return 0
	}
	if end.Before(start) {
		return 0
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
