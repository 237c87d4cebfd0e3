package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestCourseStatus_ZeroValueIsDraft(t *testing.T) {
	var status CourseStatus

	assert.Equal(t, CourseStatusDraft, status)
	assert.Equal(t, "DRAFT", status.String())
}

func TestParseCourseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected CourseStatus
		wantErr  bool
	}{
		{input: "DRAFT", expected: CourseStatusDraft},
		{input: "PUBLISHED", expected: CourseStatusPublished},
		{input: "ARCHIVED", expected: CourseStatusArchived},
		{input: "draft", wantErr: true},
		{input: "", wantErr: true},
		{input: "DELETED", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			status, err := ParseCourseStatus(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidCourseStatus)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestCourseStatus_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Status CourseStatus `json:"status"`
	}{Status: CourseStatusArchived})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ARCHIVED"}`, string(data))

	var decoded struct {
		Status CourseStatus `json:"status"`
	}

	err = json.Unmarshal([]byte(`{"status":"PUBLISHED"}`), &decoded)
	require.NoError(t, err)
	assert.Equal(t, CourseStatusPublished, decoded.Status)

	err = json.Unmarshal([]byte(`{"status":"LIVE"}`), &decoded)
	require.ErrorIs(t, err, ErrInvalidCourseStatus)
}

func TestCourseStatus_MarshalOutOfRange(t *testing.T) {
	_, err := CourseStatus(42).MarshalText()
	require.ErrorIs(t, err, ErrInvalidCourseStatus)
	assert.Equal(t, "CourseStatus(42)", CourseStatus(42).String())
}

func TestCourseStatus_ValueAndScan(t *testing.T) {
	value, err := CourseStatusPublished.Value()
	require.NoError(t, err)
	assert.Equal(t, "PUBLISHED", value)

	var status CourseStatus

	require.NoError(t, status.Scan("ARCHIVED"))
	assert.Equal(t, CourseStatusArchived, status)

	require.NoError(t, status.Scan([]byte("DRAFT")))
	assert.Equal(t, CourseStatusDraft, status)

	require.ErrorIs(t, status.Scan(int64(1)), ErrInvalidCourseStatus)
}

func TestNewCourse(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	duration := 45

	course := NewCourse("Rock History 101", "desc", &duration, now)

	assert.Empty(t, course.ID)
	assert.Equal(t, CourseStatusDraft, course.Status)
	assert.Nil(t, course.PublishedAt)
	assert.Equal(t, now, course.CreatedAt)
	require.NotNil(t, course.Duration)
	assert.Equal(t, 45, *course.Duration)

	// the caller's value is copied
	duration = 90
	assert.Equal(t, 45, *course.Duration)
}

func TestCourse_Apply(t *testing.T) {
	publishedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	course := &Course{
		ID:          "c1",
		Title:       "Original",
		Description: "Original description",
		Duration:    intPtr(30),
		Status:      CourseStatusPublished,
		PublishedAt: &publishedAt,
	}

	course.Apply(CourseChanges{Title: stringPtr("Updated")})

	assert.Equal(t, "Updated", course.Title)
	assert.Equal(t, "Original description", course.Description)
	assert.Equal(t, 30, *course.Duration)
	assert.Equal(t, CourseStatusPublished, course.Status)
	assert.Equal(t, publishedAt, *course.PublishedAt)

	course.Apply(CourseChanges{Description: stringPtr(""), Duration: intPtr(0)})

	assert.Equal(t, "Updated", course.Title)
	assert.Empty(t, course.Description)
	assert.Equal(t, 0, *course.Duration)
}

func TestCourse_PublishAndArchive(t *testing.T) {
	course := NewCourse("Title", "", intPtr(10), time.Now())
	assert.True(t, course.CanBeEdited())

	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	course.Publish(first)
	assert.Equal(t, CourseStatusPublished, course.Status)
	assert.Equal(t, first, *course.PublishedAt)
	assert.True(t, course.CanBeEdited())

	second := first.Add(time.Hour)
	course.Publish(second)
	assert.Equal(t, second, *course.PublishedAt)

	course.Archive()
	assert.Equal(t, CourseStatusArchived, course.Status)
	assert.Equal(t, second, *course.PublishedAt)
	assert.False(t, course.CanBeEdited())
}

func TestCourse_Clone(t *testing.T) {
	publishedAt := time.Now().UTC()
	course := &Course{ID: "c1", Title: "T", Duration: intPtr(5), PublishedAt: &publishedAt}

	clone := course.Clone()
	*clone.Duration = 99
	clone.Title = "changed"
	*clone.PublishedAt = publishedAt.Add(time.Hour)

	assert.Equal(t, "T", course.Title)
	assert.Equal(t, 5, *course.Duration)
	assert.Equal(t, publishedAt, *course.PublishedAt)
}

func TestCourse_JSONOmitsUnsetFields(t *testing.T) {
	course := &Course{ID: "c1", Title: "T", Status: CourseStatusDraft}

	data, err := json.Marshal(course)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.NotContains(t, raw, "published_at")
	assert.NotContains(t, raw, "duration")
	assert.Equal(t, "DRAFT", raw["status"])
}
