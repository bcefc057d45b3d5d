package services

import (
	"errors"
	"fmt"
)

// Caller-visible failure taxonomy. All are synchronous; no internal retry.
var (
	// ErrDuplicateEmail rejects registration with an email already in use.
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrInvalidCredentials rejects a login with no matching email/password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAdminEmail rejects admin registration without the
	// institutional email marker.
	ErrInvalidAdminEmail = errors.New("admin email must contain the institutional marker")

	// ErrAlreadyLocked means the student has already joined a group.
	// Callers should re-fetch the student's membership rather than treat
	// this as terminal: it usually indicates a stale local view.
	ErrAlreadyLocked = errors.New("student has already joined a group")

	// ErrAllBatchesFull means the topic is at its 24-seat ceiling.
	ErrAllBatchesFull = errors.New("all batches for this topic are full")

	// ErrGroupNotFound means the group id resolves to nothing.
	ErrGroupNotFound = errors.New("group not found")

	// ErrGroupLocked rejects a rename after the group reached capacity.
	ErrGroupLocked = errors.New("cannot rename a locked group")

	// ErrUserNotFound means the user id resolves to nothing.
	ErrUserNotFound = errors.New("user not found")

	// ErrOptionNotFound means the topic id is outside the seeded catalog.
	ErrOptionNotFound = errors.New("topic not found")

	// ErrEmptyMessage rejects a blank chat message.
	ErrEmptyMessage = errors.New("message must not be empty")
)

// PermissionError is returned when a caller's role does not allow an
// operation.
type PermissionError struct {
	UserID    string
	Resource  string
	Operation string
	Reason    string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s: %s",
		e.UserID, e.Operation, e.Resource, e.Reason)
}

func NewPermissionError(userID, resource, operation, reason string) *PermissionError {
	return &PermissionError{
		UserID:    userID,
		Resource:  resource,
		Operation: operation,
		Reason:    reason,
	}
}

// IsPermissionError reports whether err is a PermissionError.
func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
