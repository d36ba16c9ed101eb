package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrStoryNotFound indicates a referenced user story doesn't exist.
	ErrStoryNotFound = errors.New("user story not found")
	// ErrNotOwner indicates the actor does not own the project.
	ErrNotOwner = errors.New("project is owned by another leader")
	// ErrInvalidTransition indicates the current status does not permit the
	// requested transition.
	ErrInvalidTransition = errors.New("invalid project state transition")
	// ErrNoUserStories indicates a submission without any user story.
	ErrNoUserStories = errors.New("at least one user story is required")
	// ErrMissingIncentive indicates approval without an incentive selection.
	ErrMissingIncentive = errors.New("incentive selection is required")
	// ErrMissingEvidence indicates completion without an evidence reference.
	ErrMissingEvidence = errors.New("evidence reference is required")
	// ErrStoryNotPending indicates a story approval for a story that was
	// never submitted for approval.
	ErrStoryNotPending = errors.New("user story is not pending approval")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
