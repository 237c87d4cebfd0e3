// Package events defines event types and structures for course lifecycle notifications.
package events

import (
	"time"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/google/uuid"
)

type EventType string

// Topic carries every course lifecycle event.
const Topic = "rocklms.courses"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	CourseCreatedEvent   EventType = "course.created"
	CourseUpdatedEvent   EventType = "course.updated"
	CoursePublishedEvent EventType = "course.published"
	CourseArchivedEvent  EventType = "course.archived"
	CourseDeletedEvent   EventType = "course.deleted"
)

type BaseEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	CourseID  string    `json:"course_id"`
}

func NewBaseEvent(eventType EventType, courseID string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		CourseID:  courseID,
	}
}

// CourseCreated is emitted after a draft course is stored.
type CourseCreated struct {
	BaseEvent

	Course *models.Course `json:"course"`
}

func (c CourseCreated) GetType() EventType {
	return CourseCreatedEvent
}

// CourseUpdated is emitted after a partial update is stored.
type CourseUpdated struct {
	BaseEvent

	Course *models.Course `json:"course"`
}

func (c CourseUpdated) GetType() EventType {
	return CourseUpdatedEvent
}

// CoursePublished is emitted on every successful publish, including re-publishes.
type CoursePublished struct {
	BaseEvent

	Course      *models.Course `json:"course"`
	Republished bool           `json:"republished"`
}

func (c CoursePublished) GetType() EventType {
	return CoursePublishedEvent
}

// CourseArchived is emitted on every successful archive.
type CourseArchived struct {
	BaseEvent

	Course         *models.Course      `json:"course"`
	PreviousStatus models.CourseStatus `json:"previous_status"`
}

func (c CourseArchived) GetType() EventType {
	return CourseArchivedEvent
}

// CourseDeleted is emitted after a delete request, whether or not the course existed.
type CourseDeleted struct {
	BaseEvent
}

func (c CourseDeleted) GetType() EventType {
	return CourseDeletedEvent
}
