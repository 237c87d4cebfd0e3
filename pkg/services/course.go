package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukex/rocklms/pkg/eventbus"
	"github.com/dukex/rocklms/pkg/events"
	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/otelhelper"
	"github.com/dukex/rocklms/pkg/persistence"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Course owns the course lifecycle: creation, partial edits, publication,
// archival and deletion. It keeps no state between calls; every mutating
// operation is a single load, guard, save sequence against persistence.
type Course struct {
	persistence persistence.Persistence
	publisher   eventbus.EventPublisher
	tracer      trace.Tracer
	logger      *slog.Logger
	now         func() time.Time
}

// CourseOption configures a Course service.
type CourseOption func(*Course)

// WithClock sets the time source used for creation and publication timestamps.
func WithClock(now func() time.Time) CourseOption {
	return func(c *Course) {
		c.now = now
	}
}

// WithEventPublisher publishes lifecycle events after each successful mutation.
func WithEventPublisher(publisher eventbus.EventPublisher) CourseOption {
	return func(c *Course) {
		c.publisher = publisher
	}
}

// WithTracer sets the tracer used for operation spans.
func WithTracer(tracer trace.Tracer) CourseOption {
	return func(c *Course) {
		c.tracer = tracer
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) CourseOption {
	return func(c *Course) {
		c.logger = logger
	}
}

// NewCourse creates a new course service.
func NewCourse(persistence persistence.Persistence, opts ...CourseOption) *Course {
	c := &Course{
		persistence: persistence,
		tracer:      otelhelper.DefaultTracer(),
		logger:      slog.Default(),
		now:         func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HealthCheck checks the health of the persistence layer.
func (c *Course) HealthCheck(ctx context.Context) (string, bool) {
	if c.persistence == nil {
		return "Persistence layer not initialized", false
	}

	err := c.persistence.HealthCheck(ctx)
	if err != nil {
		return "Persistence layer is unhealthy: " + err.Error(), false
	}

	return "Persistence layer is healthy", true
}

// List returns every course, or only those in status when it is not nil.
func (c *Course) List(ctx context.Context, status *models.CourseStatus) ([]*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.list")
	defer span.End()

	var (
		courses []*models.Course
		err     error
	)

	if status == nil {
		courses, err = c.persistence.CourseRepository().GetAll(ctx)
	} else {
		span.SetAttributes(attribute.String(otelhelper.CourseStatusKey, status.String()))
		courses, err = c.persistence.CourseRepository().GetAllByStatus(ctx, *status)
	}

	if err != nil {
		return nil, c.fail(span, fmt.Errorf("failed to list courses: %w", err))
	}

	if courses == nil {
		courses = make([]*models.Course, 0)
	}

	return courses, nil
}

// Create stores a new draft course. Field values are not validated here;
// title and duration are only checked when the course is published.
func (c *Course) Create(ctx context.Context, title, description string, duration *int) (*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.create")
	defer span.End()

	course := models.NewCourse(title, description, duration, c.now())

	err := c.persistence.CourseRepository().Save(ctx, course)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("failed to create course: %w", err))
	}

	span.SetAttributes(attribute.String(otelhelper.CourseIDKey, course.ID))
	c.logger.InfoContext(ctx, "Course created", "course_id", course.ID)

	c.publishEvent(ctx, course.ID, events.CourseCreated{
		BaseEvent: events.NewBaseEvent(events.CourseCreatedEvent, course.ID),
		Course:    course.Clone(),
	})

	return course, nil
}

// FetchByID retrieves a course by its ID.
func (c *Course) FetchByID(ctx context.Context, id string) (*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.fetch", attribute.String(otelhelper.CourseIDKey, id))
	defer span.End()

	course, err := c.load(ctx, "FetchByID", id)
	if err != nil {
		return nil, c.fail(span, err)
	}

	return course, nil
}

// Update applies a partial update. Only non-nil fields of changes are written;
// status and publication time are never modified. Archived courses are rejected.
func (c *Course) Update(ctx context.Context, id string, changes models.CourseChanges) (*models.Course, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.update", attribute.String(otelhelper.CourseIDKey, id))
	defer span.End()

	course, err := c.load(ctx, "Update", id)
	if err != nil {
		return nil, c.fail(span, err)
	}

	if reason := checkEditable(course); reason != nil {
		return nil, c.fail(span, NewStateError("Update", reason))
	}

	course.Apply(changes)

	err = c.persistence.CourseRepository().Save(ctx, course)
	if err != nil {
		return nil, c.fail(span, fmt.Errorf("failed to update course: %w", err))
	}

	c.publishEvent(ctx, course.ID, events.CourseUpdated{
		BaseEvent: events.NewBaseEvent(events.CourseUpdatedEvent, course.ID),
		Course:    course.Clone(),
	})

	return course, nil
}

// Delete removes a course. Deleting a course that does not exist succeeds.
func (c *Course) Delete(ctx context.Context, id string) error {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "course.delete", attribute.String(otelhelper.CourseIDKey, id))
	defer span.End()

	err := c.persistence.CourseRepository().Delete(ctx, id)
	if err != nil {
		return c.fail(span, fmt.Errorf("failed to delete course: %w", err))
	}

	c.logger.InfoContext(ctx, "Course deleted", "course_id", id)

	c.publishEvent(ctx, id, events.CourseDeleted{
		BaseEvent: events.NewBaseEvent(events.CourseDeletedEvent, id),
	})

	return nil
}

func (c *Course) load(ctx context.Context, op, id string) (*models.Course, error) {
	course, err := c.persistence.CourseRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if course == nil {
		return nil, persistence.NewCourseError(op, id, ErrCourseNotFound)
	}

	return course, nil
}

func (c *Course) fail(span trace.Span, err error) error {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Code != "" {
		otelhelper.SetError(span, err, attribute.String(otelhelper.ErrorCodeKey, serviceErr.Code))

		return err
	}

	otelhelper.SetError(span, err)

	return err
}

// publishEvent is best effort: the stored course is authoritative, so a
// failed notification is logged and never turned into an operation error.
func (c *Course) publishEvent(ctx context.Context, courseID string, event eventbus.Event) {
	if c.publisher == nil {
		return
	}

	err := c.publisher.Publish(ctx, courseID, event)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to publish course event",
			"course_id", courseID,
			"event_type", event.GetType(),
			"error", err,
		)
	}
}
