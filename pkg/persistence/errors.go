// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// ErrCourseNotFound indicates a course was not found by the given identifier.
var ErrCourseNotFound = errors.New("course not found")

// CourseError wraps course-related errors with additional context.
type CourseError struct {
	Op       string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	CourseID string
	Err      error
}

func (e *CourseError) Error() string {
	return fmt.Sprintf("%s operation failed for course %s: %v", e.Op, e.CourseID, e.Err)
}

func (e *CourseError) Unwrap() error {
	return e.Err
}

// NewCourseError creates a new course error with context.
func NewCourseError(op, courseID string, err error) *CourseError {
	return &CourseError{
		Op:       op,
		CourseID: courseID,
		Err:      err,
	}
}

// IsCourseNotFound checks if an error indicates a course was not found.
func IsCourseNotFound(err error) bool {
	return errors.Is(err, ErrCourseNotFound)
}
