package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dukex/rocklms/pkg/events"
	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/otelhelper"
	"go.opentelemetry.io/otel/attribute"
)

// checkEditable rejects edits of archived courses.
func checkEditable(course *models.Course) error {
	if !course.CanBeEdited() {
		return ErrArchivedCourseEdit
	}

	return nil
}

// checkPublishable returns the first failing publication requirement, in order:
// the course is not archived, the title is not blank, the duration is positive.
func checkPublishable(course *models.Course) error {
	if !course.CanBeEdited() {
		return ErrArchivedCoursePublish
	}

	if strings.TrimSpace(course.Title) == "" {
		return ErrTitleRequired
	}

	if course.Duration == nil || *course.Duration <= 0 {
		return ErrInvalidDuration
	}

	return nil
}

// Publish validates the course and moves it to PUBLISHED. Publishing an
// already published course succeeds and refreshes the publication time.
func (c *Course) Publish(ctx context.Context, id string) (*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.publish", attribute.String(otelhelper.CourseIDKey, id))
	defer span.End()

	course, err := c.load(ctx, "Publish", id)
	if err != nil {
		return nil, c.fail(span, err)
	}

	if reason := checkPublishable(course); reason != nil {
		return nil, c.fail(span, NewStateError("Publish", reason))
	}

	republished := course.Status == models.CourseStatusPublished

	course.Publish(c.now())

	err = c.persistence.CourseRepository().Save(ctx, course)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("failed to publish course: %w", err))
	}

	c.logger.InfoContext(ctx, "Course published", "course_id", course.ID, "republished", republished)

	c.publishEvent(ctx, course.ID, events.CoursePublished{
		BaseEvent:   events.NewBaseEvent(events.CoursePublishedEvent, course.ID),
		Course:      course.Clone(),
		Republished: republished,
	})

	return course, nil
}

// Archive moves the course to ARCHIVED from any status. Archiving is
// unconditional and keeps the publication time.
func (c *Course) Archive(ctx context.Context, id string) (*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.archive", attribute.String(otelhelper.CourseIDKey, id))
	defer span.End()

	course, err := c.load(ctx, "Archive", id)
	if err != nil {
		return nil, c.fail(span, err)
	}

	previous := course.Status

	course.Archive()

	err = c.persistence.CourseRepository().Save(ctx, course)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("failed to archive course: %w", err))
	}

	c.logger.InfoContext(ctx, "Course archived", "course_id", course.ID, "previous_status", previous.String())

	c.publishEvent(ctx, course.ID, events.CourseArchived{
		BaseEvent:      events.NewBaseEvent(events.CourseArchivedEvent, course.ID),
		Course:         course.Clone(),
		PreviousStatus: previous,
	})

	return course, nil
}
