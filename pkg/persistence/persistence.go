// Package persistence provides the data storage abstraction layer for courses.
package persistence

import (
	"context"

	"github.com/dukex/rocklms/pkg/models"
)

// Persistence is a storage backend.
type Persistence interface {
	CourseRepository() CourseRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}

// CourseRepository stores courses. Lists are returned in creation order.
type CourseRepository interface {
	GetAll(ctx context.Context) ([]*models.Course, error)
	GetAllByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error)

	// GetByID returns nil and no error when the course does not exist.
	GetByID(ctx context.Context, id string) (*models.Course, error)

	// Save inserts or updates the course, assigning an ID on insert.
	Save(ctx context.Context, course *models.Course) error

	// Delete removes the course. Deleting a missing course is not an error.
	Delete(ctx context.Context, id string) error
}
