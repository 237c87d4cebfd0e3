// Package web provides HTTP request and response types for the course API.
package web

// CreateCourseRequest represents the request body for creating a new course.
// Title and duration are not required here; they are checked on publish.
type CreateCourseRequest struct {
	Title       string `json:"title"       validate:"max=255"`
	Description string `json:"description"`
	Duration    *int   `json:"duration"`
}

// UpdateCourseRequest represents the request body for updating an existing course.
// All fields are optional to support partial updates.
type UpdateCourseRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=255"`
	Description *string `json:"description,omitempty"`
	Duration    *int    `json:"duration,omitempty"`
}
