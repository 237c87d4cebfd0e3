package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCourseRepositoryTests checks the behavior every persistence.CourseRepository must share.
// newRepo must return an empty repository on each call.
func RunCourseRepositoryTests(t *testing.T, newRepo func(t *testing.T) persistence.CourseRepository) {
	t.Helper()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("save assigns an id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		course := CreateTestCourse()
		require.NoError(t, repo.Save(ctx, course))
		assert.NotEmpty(t, course.ID)

		loaded, err := repo.GetByID(ctx, course.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, course.ID, loaded.ID)
		assert.Equal(t, course.Title, loaded.Title)
		assert.Equal(t, course.Description, loaded.Description)
		assert.Equal(t, *course.Duration, *loaded.Duration)
		assert.Equal(t, models.CourseStatusDraft, loaded.Status)
		assert.Nil(t, loaded.PublishedAt)
	})

	t.Run("get missing course returns nil", func(t *testing.T) {
		repo := newRepo(t)

		loaded, err := repo.GetByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("save updates in place", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		course := CreateTestCourse(WithDuration(nil), WithTitle(""))
		require.NoError(t, repo.Save(ctx, course))

		id := course.ID
		publishedAt := base.Add(time.Minute)
		course.Title = "Now titled"
		course.Duration = IntPtr(60)
		course.Status = models.CourseStatusPublished
		course.PublishedAt = &publishedAt
		require.NoError(t, repo.Save(ctx, course))
		assert.Equal(t, id, course.ID)

		loaded, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "Now titled", loaded.Title)
		assert.Equal(t, 60, *loaded.Duration)
		assert.Equal(t, models.CourseStatusPublished, loaded.Status)
		require.NotNil(t, loaded.PublishedAt)
		assert.True(t, publishedAt.Equal(*loaded.PublishedAt))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("unset duration round trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		course := CreateTestCourse(WithDuration(nil))
		require.NoError(t, repo.Save(ctx, course))

		loaded, err := repo.GetByID(ctx, course.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Nil(t, loaded.Duration)
	})

	t.Run("duration beyond 32 bits round trips", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		course := CreateTestCourse(WithDuration(IntPtr(1 << 40)))
		require.NoError(t, repo.Save(ctx, course))

		loaded, err := repo.GetByID(ctx, course.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		require.NotNil(t, loaded.Duration)
		assert.Equal(t, 1<<40, *loaded.Duration)
	})

	t.Run("list in creation order with status filter", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		statuses := []models.CourseStatus{
			models.CourseStatusPublished,
			models.CourseStatusDraft,
			models.CourseStatusArchived,
			models.CourseStatusDraft,
		}

		ids := make([]string, 0, len(statuses))

		for i, status := range statuses {
			course := CreateTestCourse(WithStatus(status), WithCreatedAt(base.Add(time.Duration(i)*time.Second)))
			if status != models.CourseStatusDraft {
				course.PublishedAt = &base
			}

			require.NoError(t, repo.Save(ctx, course))

			ids = append(ids, course.ID)
		}

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)

		for i, course := range all {
			assert.Equal(t, ids[i], course.ID)
		}

		drafts, err := repo.GetAllByStatus(ctx, models.CourseStatusDraft)
		require.NoError(t, err)
		require.Len(t, drafts, 2)
		assert.Equal(t, ids[1], drafts[0].ID)
		assert.Equal(t, ids[3], drafts[1].ID)

		archived, err := repo.GetAllByStatus(ctx, models.CourseStatusArchived)
		require.NoError(t, err)
		require.Len(t, archived, 1)
		assert.Equal(t, ids[2], archived[0].ID)
	})

	t.Run("empty repository lists nothing", func(t *testing.T) {
		repo := newRepo(t)

		all, err := repo.GetAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		published, err := repo.GetAllByStatus(context.Background(), models.CourseStatusPublished)
		require.NoError(t, err)
		assert.Empty(t, published)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		course := CreateTestCourse()
		require.NoError(t, repo.Save(ctx, course))

		require.NoError(t, repo.Delete(ctx, course.ID))

		loaded, err := repo.GetByID(ctx, course.ID)
		require.NoError(t, err)
		assert.Nil(t, loaded)

		require.NoError(t, repo.Delete(ctx, course.ID))

		all, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
