package project

import "strings"

// ValidateTransition validates a requested project status transition.
// The edges are fixed: pendiente fans out to review outcomes, devuelto may
// only be resubmitted or canceled, and terminal states admit nothing.
func ValidateTransition(fromStatus, toStatus Status) error {
	valid := false
	switch fromStatus {
	case StatusPending:
		switch toStatus {
		case StatusApproved, StatusReturned, StatusRejected, StatusCanceled:
			valid = true
		}
	case StatusReturned:
		if toStatus == StatusPending || toStatus == StatusCanceled {
			valid = true
		}
	case StatusApproved, StatusRejected, StatusCanceled:
		// aprobado never reverts; terminal states are dead ends.
	}

	if !valid {
		return ErrInvalidTransition
	}
	return nil
}

// ValidateSubmission validates the leader-authored fields shared by submit
// and resubmit.
func ValidateSubmission(req SubmitRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if strings.TrimSpace(req.Company) == "" {
		return ErrInvalidInput
	}
	if !req.AILevel.Valid() {
		return ErrInvalidInput
	}
	if len(req.Stories) == 0 {
		return ErrNoUserStories
	}
	for _, text := range req.Stories {
		if strings.TrimSpace(text) == "" {
			return ErrInvalidInput
		}
	}
	return nil
}
