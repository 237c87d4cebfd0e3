package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// CourseRepository keeps each course as a JSON string and indexes ids in a
// sorted set scored by creation time. Members sharing a score sort by id.
type CourseRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewCourseRepository creates a new course repository using keys under prefix.
func NewCourseRepository(client redis.UniversalClient, prefix string) *CourseRepository {
	return &CourseRepository{client: client, prefix: prefix}
}

func (r *CourseRepository) courseKey(id string) string {
	return r.prefix + "course:" + id
}

func (r *CourseRepository) indexKey() string {
	return r.prefix + "courses"
}

// GetAll returns all courses ordered by creation time.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.load(ctx, func(*models.Course) bool { return true })
}

// GetAllByStatus returns the courses in the given status ordered by creation time.
func (r *CourseRepository) GetAllByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	return r.load(ctx, func(c *models.Course) bool { return c.Status == status })
}

func (r *CourseRepository) load(ctx context.Context, keep func(*models.Course) bool) ([]*models.Course, error) {
	courses := make([]*models.Course, 0)

	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list course ids: %w", err)
	}

	if len(ids) == 0 {
		return courses, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.courseKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	for i, value := range values {
		// index entries can briefly outlive their document
		raw, ok := value.(string)
		if !ok {
			continue
		}

		course, err := decodeCourse(ids[i], raw)
		if err != nil {
			return nil, err
		}

		if keep(course) {
			courses = append(courses, course)
		}
	}

	return courses, nil
}

// GetByID returns a course by its ID, or nil when it does not exist.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	raw, err := r.client.Get(ctx, r.courseKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch course %s: %w", id, err)
	}

	return decodeCourse(id, raw)
}

// Save stores the course and its index entry in one MULTI/EXEC transaction.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate course ID: %w", err)
		}

		course.ID = id.String()
	}

	data, err := json.Marshal(course)
	if err != nil {
		return fmt.Errorf("failed to marshal course %s: %w", course.ID, err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.courseKey(course.ID), data, 0)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{
			Score:  float64(course.CreatedAt.UnixMilli()),
			Member: course.ID,
		})

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.ID, err)
	}

	return nil
}

// Delete removes a course and its index entry. Missing courses are ignored.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.courseKey(id))
		pipe.ZRem(ctx, r.indexKey(), id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	return nil
}

func decodeCourse(id, raw string) (*models.Course, error) {
	var course models.Course

	err := json.Unmarshal([]byte(raw), &course)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal course %s: %w", id, err)
	}

	return &course, nil
}
