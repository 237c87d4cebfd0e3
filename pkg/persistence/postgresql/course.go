package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/google/uuid"
)

const selectCourse = `
		SELECT
			id
		  , title
		  , description
		  , duration
		  , status
		  , published_at
		  , created_at
		FROM courses
`

// CourseRepository handles course-related database operations.
type CourseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewCourseRepository creates a new course repository.
func NewCourseRepository(db *sql.DB, logger *slog.Logger) *CourseRepository {
	return &CourseRepository{db: db, logger: logger}
}

// GetAll returns all courses from the database.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	return r.query(ctx, selectCourse+" ORDER BY created_at, id")
}

// GetAllByStatus returns the courses in the given status.
func (r *CourseRepository) GetAllByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	return r.query(ctx, selectCourse+" WHERE status = $1 ORDER BY created_at, id", status)
}

func (r *CourseRepository) query(ctx context.Context, query string, args ...any) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}

	defer func() {
		err := rows.Close()
		if err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	courses := make([]*models.Course, 0)

	for rows.Next() {
		course, err := r.scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}

		courses = append(courses, course)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// GetByID returns a course by its ID, or nil when it does not exist.
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	// ids that are not UUIDs cannot exist in the table
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	row := r.db.QueryRowContext(ctx, selectCourse+" WHERE id = $1", id)

	course, err := r.scanCourse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to scan course: %w", err)
	}

	return course, nil
}

// Save inserts or updates a course.
func (r *CourseRepository) Save(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate course ID: %w", err)
		}

		course.ID = id.String()
	}

	query := `
		INSERT INTO courses (id, title, description, duration, status, published_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			duration = EXCLUDED.duration,
			status = EXCLUDED.status,
			published_at = EXCLUDED.published_at
	`

	var duration sql.NullInt64
	if course.Duration != nil {
		duration = sql.NullInt64{Int64: int64(*course.Duration), Valid: true}
	}

	var publishedAt sql.NullTime
	if course.PublishedAt != nil {
		publishedAt = sql.NullTime{Time: *course.PublishedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		course.ID,
		course.Title,
		course.Description,
		duration,
		course.Status,
		publishedAt,
		course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save course %s: %w", course.ID, err)
	}

	return nil
}

// Delete removes a course. Missing courses are ignored.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}

	_, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete course %s: %w", id, err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *CourseRepository) scanCourse(row scanner) (*models.Course, error) {
	var (
		course      models.Course
		duration    sql.NullInt64
		publishedAt sql.NullTime
	)

	err := row.Scan(
		&course.ID,
		&course.Title,
		&course.Description,
		&duration,
		&course.Status,
		&publishedAt,
		&course.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if duration.Valid {
		d := int(duration.Int64)
		course.Duration = &d
	}

	if publishedAt.Valid {
		t := publishedAt.Time.UTC()
		course.PublishedAt = &t
	}

	course.CreatedAt = course.CreatedAt.UTC()

	return &course, nil
}
