package services

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrWorkshopNotFound         = errors.New("workshop not found")
	ErrActivityNotFound         = errors.New("activity not found")
	ErrLessonNotFound           = errors.New("lesson not found")
	ErrScheduledLessonNotFound  = errors.New("scheduled lesson not found")
	ErrProposedTimeSlotNotFound = errors.New("proposed time slot not found")
	ErrVoteNotFound             = errors.New("vote not found")
	ErrLessonUserNotFound       = errors.New("lesson user not found")

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateVote      = errors.New("user has already voted for this time slot")
	ErrDuplicateInterest  = errors.New("user is already interested in this lesson")
)

var notFoundErrors = []error{
	ErrUserNotFound,
	ErrWorkshopNotFound,
	ErrActivityNotFound,
	ErrLessonNotFound,
	ErrScheduledLessonNotFound,
	ErrProposedTimeSlotNotFound,
	ErrVoteNotFound,
	ErrLessonUserNotFound,
}

// IsNotFoundError reports whether err is any of the service-level not-found
// sentinels. Handlers map these to 404.
func IsNotFoundError(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflictError reports whether err represents a uniqueness conflict.
// Handlers map these to 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrDuplicateVote) ||
		errors.Is(err, ErrDuplicateInterest)
}

// PermissionError carries enough context to audit a denied action.
type PermissionError struct {
	UserID   uint
	Resource string
	Action   string
	Reason   string
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func IsPermissionError(err error) bool {
	var pe *PermissionError
	return errors.As(err, &pe)
}
