package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/persistence/file"
	"github.com/dukex/rocklms/pkg/services"
	"github.com/dukex/rocklms/pkg/testutil"
	"github.com/dukex/rocklms/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *services.Course) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	courseService := services.NewCourse(file.NewPersistence(t.TempDir()), services.WithLogger(logger))
	handlers := web.NewAPIHandlers(courseService, validator.New(validator.WithRequiredStructEnabled()), logger)

	app := fiber.New()
	handlers.Register(app)
	app.Get("/health", handlers.HealthCheck)

	return app, courseService
}

func doRequest(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	return resp, respBody
}

func decodeProblem(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var problem map[string]any
	require.NoError(t, json.Unmarshal(body, &problem))

	return problem
}

func TestAPIHandlers_CreateCourse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		requestBody    any
		expectedStatus int
		validateResult func(t *testing.T, body []byte)
	}{
		{
			name: "successful creation",
			requestBody: web.CreateCourseRequest{
				Title:       "Rock History 101",
				Description: "Intro",
				Duration:    testutil.IntPtr(45),
			},
			expectedStatus: http.StatusCreated,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				var raw map[string]any
				require.NoError(t, json.Unmarshal(body, &raw))
				assert.NotEmpty(t, raw["id"])
				assert.Equal(t, "Rock History 101", raw["title"])
				assert.Equal(t, "DRAFT", raw["status"])
				assert.InDelta(t, 45, raw["duration"], 0)
				assert.NotContains(t, raw, "published_at")
				assert.Contains(t, raw, "created_at")
			},
		},
		{
			name:           "empty course is accepted",
			requestBody:    `{}`,
			expectedStatus: http.StatusCreated,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				var course models.Course
				require.NoError(t, json.Unmarshal(body, &course))
				assert.Empty(t, course.Title)
				assert.Nil(t, course.Duration)
			},
		},
		{
			name:           "wrong field type",
			requestBody:    `{"title": "T", "duration": "long"}`,
			expectedStatus: http.StatusBadRequest,
			validateResult: func(t *testing.T, body []byte) {
				t.Helper()

				problem := decodeProblem(t, body)
				assert.Equal(t, "validation_error", problem["type"])
				assert.Contains(t, problem["detail"], "duration")
			},
		},
		{
			name:           "malformed JSON",
			requestBody:    `{"title":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "title too long",
			requestBody:    web.CreateCourseRequest{Title: string(bytes.Repeat([]byte("a"), 256))},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			app, _ := setupTestApp(t)

			resp, body := doRequest(t, app, http.MethodPost, "/courses", tt.requestBody)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.validateResult != nil {
				tt.validateResult(t, body)
			}
		})
	}
}

func TestAPIHandlers_GetCourses(t *testing.T) {
	app, courseService := setupTestApp(t)
	ctx := context.Background()

	draft, err := courseService.Create(ctx, "Draft", "", testutil.IntPtr(10))
	require.NoError(t, err)
	published, err := courseService.Create(ctx, "Published", "", testutil.IntPtr(20))
	require.NoError(t, err)
	_, err = courseService.Publish(ctx, published.ID)
	require.NoError(t, err)

	resp, body := doRequest(t, app, http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []models.Course
	require.NoError(t, json.Unmarshal(body, &all))
	require.Len(t, all, 2)
	assert.Equal(t, draft.ID, all[0].ID)
	assert.Equal(t, published.ID, all[1].ID)

	resp, body = doRequest(t, app, http.MethodGet, "/courses?status=PUBLISHED", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var filtered []models.Course
	require.NoError(t, json.Unmarshal(body, &filtered))
	require.Len(t, filtered, 1)
	assert.Equal(t, published.ID, filtered[0].ID)

	resp, body = doRequest(t, app, http.MethodGet, "/courses?status=ARCHIVED", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))

	resp, body = doRequest(t, app, http.MethodGet, "/courses?status=LIVE", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "validation_error", decodeProblem(t, body)["type"])
}

func TestAPIHandlers_GetCourse(t *testing.T) {
	app, courseService := setupTestApp(t)

	course, err := courseService.Create(context.Background(), "Title", "", testutil.IntPtr(10))
	require.NoError(t, err)

	resp, body := doRequest(t, app, http.MethodGet, "/courses/"+course.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched models.Course
	require.NoError(t, json.Unmarshal(body, &fetched))
	assert.Equal(t, course.ID, fetched.ID)

	resp, body = doRequest(t, app, http.MethodGet, "/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "course_not_found", decodeProblem(t, body)["type"])
}

func TestAPIHandlers_UpdateCourse(t *testing.T) {
	app, courseService := setupTestApp(t)
	ctx := context.Background()

	course, err := courseService.Create(ctx, "Original", "Description", testutil.IntPtr(10))
	require.NoError(t, err)

	for _, method := range []string{http.MethodPatch, http.MethodPut} {
		t.Run(method, func(t *testing.T) {
			resp, body := doRequest(t, app, method, "/courses/"+course.ID, `{"title":"Updated by `+method+`"}`)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var updated models.Course
			require.NoError(t, json.Unmarshal(body, &updated))
			assert.Equal(t, "Updated by "+method, updated.Title)
			assert.Equal(t, "Description", updated.Description)
			assert.Equal(t, 10, *updated.Duration)
		})
	}

	resp, _ := doRequest(t, app, http.MethodPatch, "/courses/missing", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, err = courseService.Archive(ctx, course.ID)
	require.NoError(t, err)

	resp, body := doRequest(t, app, http.MethodPatch, "/courses/"+course.ID, `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	problem := decodeProblem(t, body)
	assert.Equal(t, "invalid_state", problem["type"])
	assert.Equal(t, "cannot edit archived course", problem["detail"])
}

func TestAPIHandlers_PublishCourse(t *testing.T) {
	app, courseService := setupTestApp(t)
	ctx := context.Background()

	ready, err := courseService.Create(ctx, "Rock History 101", "", testutil.IntPtr(45))
	require.NoError(t, err)

	resp, body := doRequest(t, app, http.MethodPost, "/courses/"+ready.ID+"/publish", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Equal(t, "PUBLISHED", raw["status"])
	assert.NotEmpty(t, raw["published_at"])

	untitled, err := courseService.Create(ctx, "", "", testutil.IntPtr(45))
	require.NoError(t, err)

	resp, body = doRequest(t, app, http.MethodPost, "/courses/"+untitled.ID+"/publish", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "title is required", decodeProblem(t, body)["detail"])

	noDuration, err := courseService.Create(ctx, "Title", "", nil)
	require.NoError(t, err)

	resp, body = doRequest(t, app, http.MethodPost, "/courses/"+noDuration.ID+"/publish", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "duration must be greater than 0", decodeProblem(t, body)["detail"])

	resp, _ = doRequest(t, app, http.MethodPost, "/courses/missing/publish", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_ArchiveCourse(t *testing.T) {
	app, courseService := setupTestApp(t)
	ctx := context.Background()

	course, err := courseService.Create(ctx, "Title", "", testutil.IntPtr(45))
	require.NoError(t, err)

	resp, body := doRequest(t, app, http.MethodPost, "/courses/"+course.ID+"/archive", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var archived models.Course
	require.NoError(t, json.Unmarshal(body, &archived))
	assert.Equal(t, models.CourseStatusArchived, archived.Status)

	resp, body = doRequest(t, app, http.MethodPost, "/courses/"+course.ID+"/publish", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "cannot publish archived course", decodeProblem(t, body)["detail"])

	resp, _ = doRequest(t, app, http.MethodPost, "/courses/missing/archive", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_DeleteCourse(t *testing.T) {
	app, courseService := setupTestApp(t)

	course, err := courseService.Create(context.Background(), "Title", "", nil)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, http.MethodDelete, "/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, "/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodGet, "/courses/"+course.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPIHandlers_HealthCheck(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, body := doRequest(t, app, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health map[string]any
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "healthy", health["status"])
}
