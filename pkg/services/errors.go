// Package services provides standardized error types for service layer operations.
package services

import (
	"errors"
	"fmt"

	"github.com/dukex/rocklms/pkg/persistence"
)

var (
	// ErrCourseNotFound is returned when a course is not found.
	ErrCourseNotFound = persistence.ErrCourseNotFound

	// ErrInvalidState matches every rejected edit or transition (400 Bad Request).
	ErrInvalidState = errors.New("invalid course state")

	// Transition and edit guard failures. Each wraps ErrInvalidState; their
	// messages are returned to API clients as is.
	ErrArchivedCourseEdit    error = &stateReason{"cannot edit archived course"}
	ErrArchivedCoursePublish error = &stateReason{"cannot publish archived course"}
	ErrTitleRequired         error = &stateReason{"title is required"}
	ErrInvalidDuration       error = &stateReason{"duration must be greater than 0"}
)

// stateReason is a guard failure whose message is the bare reason.
type stateReason struct {
	message string
}

func (r *stateReason) Error() string {
	return r.message
}

func (r *stateReason) Unwrap() error {
	return ErrInvalidState
}

// Error codes for API responses.
const (
	CodeArchivedCourse  = "ARCHIVED_COURSE"
	CodeTitleRequired   = "TITLE_REQUIRED"
	CodeInvalidDuration = "INVALID_DURATION"
)

var stateErrorCodes = map[error]string{
	ErrArchivedCourseEdit:    CodeArchivedCourse,
	ErrArchivedCoursePublish: CodeArchivedCourse,
	ErrTitleRequired:         CodeTitleRequired,
	ErrInvalidDuration:       CodeInvalidDuration,
}

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStateError creates an invalid state error for one of the guard failures.
func NewStateError(op string, reason error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    stateErrorCodes[reason],
		Message: reason.Error(),
		Err:     reason,
	}
}

// IsInvalidState checks if an error is a rejected edit or transition that should return HTTP 400.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsNotFound checks if an error indicates the course does not exist and should return HTTP 404.
func IsNotFound(err error) bool {
	return persistence.IsCourseNotFound(err)
}

// InvalidStateReason returns the human-readable reason of an invalid state error.
func InvalidStateReason(err error) (string, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && errors.Is(serviceErr.Err, ErrInvalidState) && serviceErr.Message != "" {
		return serviceErr.Message, true
	}

	for reason := range stateErrorCodes {
		if errors.Is(err, reason) {
			return reason.Error(), true
		}
	}

	return "", false
}
