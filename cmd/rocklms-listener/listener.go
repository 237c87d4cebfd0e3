package main

import (
	"context"
	"log/slog"

	"github.com/dukex/rocklms/pkg/eventbus"
	"github.com/dukex/rocklms/pkg/events"
)

// Listener logs every course lifecycle event it receives from the event bus.
type Listener struct {
	logger   *slog.Logger
	eventBus eventbus.EventSubscriber
}

func NewListener(eventBus eventbus.EventSubscriber, logger *slog.Logger) *Listener {
	return &Listener{
		logger:   logger.With("module", "rocklms-listener"),
		eventBus: eventBus,
	}
}

// Start registers the handlers and subscribes. It blocks until ctx is done.
func (l *Listener) Start(ctx context.Context) error {
	l.logger.InfoContext(ctx, "Starting course event listener")

	handlers := map[events.EventType]eventbus.EventHandler{
		events.CourseCreatedEvent:   l.handleCourseCreated,
		events.CourseUpdatedEvent:   l.handleCourseUpdated,
		events.CoursePublishedEvent: l.handleCoursePublished,
		events.CourseArchivedEvent:  l.handleCourseArchived,
		events.CourseDeletedEvent:   l.handleCourseDeleted,
	}

	for eventType, handler := range handlers {
		err := l.eventBus.Handle(eventType, handler)
		if err != nil {
			return err
		}
	}

	err := l.eventBus.Subscribe(ctx)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to subscribe to event bus", "error", err)

		return err
	}

	l.logger.InfoContext(ctx, "Listener started successfully")

	<-ctx.Done()
	l.logger.InfoContext(ctx, "Shutting down listener...")

	return nil
}

func (l *Listener) handleCourseCreated(ctx context.Context, event any) error {
	created, ok := event.(*events.CourseCreated)
	if !ok {
		l.logger.ErrorContext(ctx, "Invalid event type for CourseCreated")

		return nil
	}

	attrs := []any{
		"event_id", created.ID,
		"course_id", created.CourseID,
	}
	if created.Course != nil {
		attrs = append(attrs, "title", created.Course.Title)
	}

	l.logger.InfoContext(ctx, "Course created", attrs...)

	return nil
}

func (l *Listener) handleCourseUpdated(ctx context.Context, event any) error {
	updated, ok := event.(*events.CourseUpdated)
	if !ok {
		l.logger.ErrorContext(ctx, "Invalid event type for CourseUpdated")

		return nil
	}

	attrs := []any{
		"event_id", updated.ID,
		"course_id", updated.CourseID,
	}
	if updated.Course != nil {
		attrs = append(attrs, "status", updated.Course.Status.String())
	}

	l.logger.InfoContext(ctx, "Course updated", attrs...)

	return nil
}

func (l *Listener) handleCoursePublished(ctx context.Context, event any) error {
	published, ok := event.(*events.CoursePublished)
	if !ok {
		l.logger.ErrorContext(ctx, "Invalid event type for CoursePublished")

		return nil
	}

	attrs := []any{
		"event_id", published.ID,
		"course_id", published.CourseID,
		"republished", published.Republished,
	}
	if published.Course != nil && published.Course.PublishedAt != nil {
		attrs = append(attrs, "published_at", *published.Course.PublishedAt)
	}

	l.logger.InfoContext(ctx, "Course published", attrs...)

	return nil
}

func (l *Listener) handleCourseArchived(ctx context.Context, event any) error {
	archived, ok := event.(*events.CourseArchived)
	if !ok {
		l.logger.ErrorContext(ctx, "Invalid event type for CourseArchived")

		return nil
	}

	l.logger.InfoContext(ctx, "Course archived",
		"event_id", archived.ID,
		"course_id", archived.CourseID,
		"previous_status", archived.PreviousStatus.String(),
	)

	return nil
}

func (l *Listener) handleCourseDeleted(ctx context.Context, event any) error {
	deleted, ok := event.(*events.CourseDeleted)
	if !ok {
		l.logger.ErrorContext(ctx, "Invalid event type for CourseDeleted")

		return nil
	}

	l.logger.InfoContext(ctx, "Course deleted",
		"event_id", deleted.ID,
		"course_id", deleted.CourseID,
	)

	return nil
}
