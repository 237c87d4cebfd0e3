// Package models defines the core domain models for the course catalog.
package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidCourseStatus is returned when a status text is not one of DRAFT, PUBLISHED or ARCHIVED.
var ErrInvalidCourseStatus = errors.New("invalid course status")

// CourseStatus represents the lifecycle state of a course.
// The zero value is CourseStatusDraft.
type CourseStatus uint8

const (
	CourseStatusDraft     CourseStatus = iota // Editable, not visible to learners
	CourseStatusPublished                     // Passed publish validation, still editable
	CourseStatusArchived                      // Terminal, read-only
)

var courseStatusNames = map[CourseStatus]string{
	CourseStatusDraft:     "DRAFT",
	CourseStatusPublished: "PUBLISHED",
	CourseStatusArchived:  "ARCHIVED",
}

// CourseStatuses lists every status in lifecycle order.
func CourseStatuses() []CourseStatus {
	return []CourseStatus{CourseStatusDraft, CourseStatusPublished, CourseStatusArchived}
}

// ParseCourseStatus converts the text form of a status into a CourseStatus.
func ParseCourseStatus(s string) (CourseStatus, error) {
	for status, name := range courseStatusNames {
		if name == s {
			return status, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidCourseStatus, s)
}

func (s CourseStatus) String() string {
	if name, ok := courseStatusNames[s]; ok {
		return name
	}

	return fmt.Sprintf("CourseStatus(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s CourseStatus) MarshalText() ([]byte, error) {
	name, ok := courseStatusNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCourseStatus, uint8(s))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *CourseStatus) UnmarshalText(text []byte) error {
	status, err := ParseCourseStatus(string(text))
	if err != nil {
		return err
	}

	*s = status

	return nil
}

// Value implements driver.Valuer so the status is stored by name.
func (s CourseStatus) Value() (driver.Value, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}

	return string(text), nil
}

// Scan implements sql.Scanner.
func (s *CourseStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidCourseStatus, src)
	}
}

// Course is a single course in the catalog.
type Course struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    *int         `json:"duration,omitempty"` // minutes
	Status      CourseStatus `json:"status"`
	PublishedAt *time.Time   `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CourseChanges carries a partial update. Nil fields are left untouched.
type CourseChanges struct {
	Title       *string
	Description *string
	Duration    *int
}

// NewCourse builds a draft course that has never been published.
func NewCourse(title, description string, duration *int, createdAt time.Time) *Course {
	course := &Course{
		Title:       title,
		Description: description,
		Status:      CourseStatusDraft,
		CreatedAt:   createdAt,
	}

	if duration != nil {
		d := *duration
		course.Duration = &d
	}

	return course
}

// CanBeEdited reports whether field edits and publication are still allowed.
func (c *Course) CanBeEdited() bool {
	return c.Status != CourseStatusArchived
}

// Apply copies the non-nil fields of changes onto the course.
// Status and PublishedAt are never modified.
func (c *Course) Apply(changes CourseChanges) {
	if changes.Title != nil {
		c.Title = *changes.Title
	}

	if changes.Description != nil {
		c.Description = *changes.Description
	}

	if changes.Duration != nil {
		d := *changes.Duration
		c.Duration = &d
	}
}

// Publish moves the course to PUBLISHED and stamps the publication time.
// Re-publishing refreshes the timestamp.
func (c *Course) Publish(now time.Time) {
	c.Status = CourseStatusPublished
	c.PublishedAt = &now
}

// Archive moves the course to ARCHIVED. PublishedAt is kept as is.
func (c *Course) Archive() {
	c.Status = CourseStatusArchived
}

// Clone returns a deep copy of the course.
func (c *Course) Clone() *Course {
	clone := *c

	if c.Duration != nil {
		d := *c.Duration
		clone.Duration = &d
	}

	if c.PublishedAt != nil {
		t := *c.PublishedAt
		clone.PublishedAt = &t
	}

	return &clone
}
