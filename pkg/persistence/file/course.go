package file

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/google/uuid"
)

// CourseRepository stores each course as a JSON document under <root>/courses.
type CourseRepository struct {
	root string
	mu   sync.RWMutex
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(root string) *CourseRepository {
	return &CourseRepository{root: root}
}

func (cr *CourseRepository) dir() string {
	return path.Join(cr.root, "courses")
}

// GetAll returns every stored course ordered by creation time.
func (cr *CourseRepository) GetAll(_ context.Context) ([]*models.Course, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.loadAll(func(*models.Course) bool { return true })
}

// GetAllByStatus returns the courses in the given status ordered by creation time.
func (cr *CourseRepository) GetAllByStatus(_ context.Context, status models.CourseStatus) ([]*models.Course, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.loadAll(func(c *models.Course) bool { return c.Status == status })
}

func (cr *CourseRepository) loadAll(keep func(*models.Course) bool) ([]*models.Course, error) {
	courses := make([]*models.Course, 0)

	jsonFiles, err := fs.Glob(os.DirFS(cr.dir()), "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list course files: %w", err)
	}

	for _, file := range jsonFiles {
		courseID := file[:len(file)-5] // Remove .json extension

		course, err := cr.read(courseID)
		if err != nil {
			return nil, err
		}

		if course != nil && keep(course) {
			courses = append(courses, course)
		}
	}

	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].CreatedAt.Equal(courses[j].CreatedAt) {
			return courses[i].ID < courses[j].ID
		}

		return courses[i].CreatedAt.Before(courses[j].CreatedAt)
	})

	return courses, nil
}

// GetByID retrieves a course by its ID from the file system.
func (cr *CourseRepository) GetByID(_ context.Context, courseID string) (*models.Course, error) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	return cr.read(courseID)
}

func (cr *CourseRepository) read(courseID string) (*models.Course, error) {
	filePath := filepath.Clean(path.Join(cr.dir(), filepath.Base(courseID)+".json"))

	body, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch course %s: %w", courseID, err)
	}

	var course models.Course

	err = json.Unmarshal(body, &course)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal course %s: %w", courseID, err)
	}

	return &course, nil
}

// Save writes a course to the file system, assigning an ID on first save.
func (cr *CourseRepository) Save(_ context.Context, course *models.Course) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	err := os.MkdirAll(cr.dir(), 0750)
	if err != nil {
		return fmt.Errorf("failed to create courses directory: %w", err)
	}

	if course.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate course ID: %w", err)
		}

		course.ID = id.String()
	}

	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal course %s: %w", course.ID, err)
	}

	filePath := path.Join(cr.dir(), course.ID+".json")

	// write-then-rename so readers never observe a partial document
	tmp, err := os.CreateTemp(cr.dir(), course.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for course %s: %w", course.ID, err)
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write course %s: %w", course.ID, err)
	}

	err = os.Rename(tmp.Name(), filePath)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("failed to write course %s: %w", course.ID, err)
	}

	return nil
}

// Delete removes a course by its ID.
func (cr *CourseRepository) Delete(_ context.Context, id string) error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	filePath := path.Join(cr.dir(), filepath.Base(id)+".json")

	err := os.Remove(filePath)

	if err != nil && os.IsNotExist(err) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	return nil
}
