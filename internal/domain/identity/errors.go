package identity

import "errors"

var (
	// ErrAccountNotFound indicates the account doesn't exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already registered")
	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfDeletion indicates an actor tried to delete its own account.
	ErrSelfDeletion = errors.New("cannot delete the currently authenticated account")
	// ErrManagerRequired indicates the operation is gated on the manager role.
	ErrManagerRequired = errors.New("manager role required")
	// ErrLeaderRequired indicates the operation is gated on the leader role.
	ErrLeaderRequired = errors.New("leader role required")
	// ErrInvalidInput indicates invalid account input.
	ErrInvalidInput = errors.New("invalid account input")
)
