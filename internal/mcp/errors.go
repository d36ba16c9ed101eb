package mcp

import (
	"errors"
	"fmt"

	"github.com/mvmnexus/innova/internal/domain/identity"
	"github.com/mvmnexus/innova/internal/domain/project"
)

// ErrAuthRequired indicates no account is logged in for the session.
var ErrAuthRequired = errors.New("no authenticated account")

// APIError represents a tool error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to coded tool errors. Every failure in the
// engine is recoverable by the user, so each code carries a recovery hint.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrAuthRequired):
		return &APIError{Code: "AUTH_REQUIRED", Message: "no account is logged in", RecoveryHint: "Call login first"}
	case errors.Is(err, identity.ErrDuplicateUsername):
		return &APIError{Code: "DUPLICATE_USERNAME", Message: "username already registered", RecoveryHint: "Pick a different username"}
	case errors.Is(err, identity.ErrInvalidCredentials):
		return &APIError{Code: "INVALID_CREDENTIALS", Message: "invalid username or password", RecoveryHint: "Check the credentials"}
	case errors.Is(err, identity.ErrSelfDeletion):
		return &APIError{Code: "SELF_DELETION", Message: "an account cannot delete itself", RecoveryHint: "Log in as another manager"}
	case errors.Is(err, identity.ErrManagerRequired), errors.Is(err, identity.ErrLeaderRequired):
		return &APIError{Code: "FORBIDDEN", Message: err.Error(), RecoveryHint: "Log in with an account holding the required role"}
	case errors.Is(err, project.ErrNotOwner):
		return &APIError{Code: "NOT_OWNER", Message: "project is owned by another leader", RecoveryHint: "Only the owning leader may do this"}
	case errors.Is(err, project.ErrInvalidTransition), errors.Is(err, project.ErrStoryNotPending):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Check the current status"}
	case errors.Is(err, project.ErrNoUserStories),
		errors.Is(err, project.ErrMissingIncentive),
		errors.Is(err, project.ErrMissingEvidence),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, identity.ErrInvalidInput):
		return &APIError{Code: "VALIDATION_FAILED", Message: err.Error(), RecoveryHint: "Fill in the missing field"}
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, project.ErrStoryNotFound),
		errors.Is(err, identity.ErrAccountNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id"}
	default:
		return err
	}
}
