// Package testutil provides test data builders and utilities for testing.
package testutil

import (
	"time"

	"github.com/dukex/rocklms/pkg/models"
)

// CreateTestCourse creates a draft Course with default values that can be overridden.
// The ID is left empty so that storage assigns one on save.
func CreateTestCourse(overrides ...func(*models.Course)) *models.Course {
	duration := 45
	course := &models.Course{
		Title:       "Rock History 101",
		Description: "Introduction to rock music history",
		Duration:    &duration,
		Status:      models.CourseStatusDraft,
		CreatedAt:   time.Now().UTC(),
	}

	for _, override := range overrides {
		override(course)
	}

	return course
}

// WithID sets the course ID.
func WithID(id string) func(*models.Course) {
	return func(c *models.Course) {
		c.ID = id
	}
}

// WithTitle sets the course title.
func WithTitle(title string) func(*models.Course) {
	return func(c *models.Course) {
		c.Title = title
	}
}

// WithDuration sets the course duration. A nil value leaves it unset.
func WithDuration(duration *int) func(*models.Course) {
	return func(c *models.Course) {
		c.Duration = duration
	}
}

// WithStatus sets the course status.
func WithStatus(status models.CourseStatus) func(*models.Course) {
	return func(c *models.Course) {
		c.Status = status
	}
}

// WithPublishedAt marks the course as published at the given time.
func WithPublishedAt(publishedAt time.Time) func(*models.Course) {
	return func(c *models.Course) {
		c.PublishedAt = &publishedAt
	}
}

// WithCreatedAt sets the creation time.
func WithCreatedAt(createdAt time.Time) func(*models.Course) {
	return func(c *models.Course) {
		c.CreatedAt = createdAt
	}
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
