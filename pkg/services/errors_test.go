package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dukex/rocklms/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateReasons_WrapInvalidState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reason  error
		message string
		code    string
	}{
		{reason: ErrArchivedCourseEdit, message: "cannot edit archived course", code: CodeArchivedCourse},
		{reason: ErrArchivedCoursePublish, message: "cannot publish archived course", code: CodeArchivedCourse},
		{reason: ErrTitleRequired, message: "title is required", code: CodeTitleRequired},
		{reason: ErrInvalidDuration, message: "duration must be greater than 0", code: CodeInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.message, tt.reason.Error())
			assert.ErrorIs(t, tt.reason, ErrInvalidState)
			assert.True(t, IsInvalidState(tt.reason))

			wrapped := fmt.Errorf("handler: %w", tt.reason)
			assert.True(t, IsInvalidState(wrapped))

			reason, ok := InvalidStateReason(wrapped)
			require.True(t, ok)
			assert.Equal(t, tt.message, reason)

			serviceErr := NewStateError("Publish", tt.reason)
			assert.Equal(t, tt.code, serviceErr.Code)
			assert.Equal(t, "Publish: "+tt.message, serviceErr.Error())
			assert.ErrorIs(t, serviceErr, ErrInvalidState)
			assert.ErrorIs(t, serviceErr, tt.reason)
		})
	}
}

func TestStateReasons_AreDistinct(t *testing.T) {
	assert.NotErrorIs(t, ErrTitleRequired, ErrInvalidDuration)
	assert.NotErrorIs(t, ErrArchivedCourseEdit, ErrArchivedCoursePublish)
}

func TestErrorClassification(t *testing.T) {
	notFound := persistence.NewCourseError("Publish", "c1", ErrCourseNotFound)

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsInvalidState(notFound))

	_, ok := InvalidStateReason(notFound)
	assert.False(t, ok)

	storageErr := errors.New("disk full")
	assert.False(t, IsInvalidState(storageErr))
	assert.False(t, IsNotFound(storageErr))
}
