// Package redis provides Redis persistence implementation for courses.
package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dukex/rocklms/pkg/persistence"
	redis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "rocklms:"

// Persistence implements the persistence layer on top of a Redis server.
type Persistence struct {
	client     redis.UniversalClient
	logger     *slog.Logger
	courseRepo *CourseRepository
}

// NewPersistence connects to the Redis server described by databaseURL (redis:// or rediss://).
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	options, err := redis.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(options)

	err = client.Ping(ctx).Err()
	if err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewPersistenceWithClient(client, logger), nil
}

// NewPersistenceWithClient wraps an existing client.
func NewPersistenceWithClient(client redis.UniversalClient, logger *slog.Logger) *Persistence {
	return &Persistence{
		client:     client,
		logger:     logger,
		courseRepo: NewCourseRepository(client, defaultKeyPrefix),
	}
}

// Close closes the Redis client.
func (p *Persistence) Close(_ context.Context) error {
	err := p.client.Close()
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// HealthCheck pings the Redis server.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.client.Ping(ctx).Err()
	if err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// CourseRepository returns the course repository.
func (p *Persistence) CourseRepository() persistence.CourseRepository {
	return p.courseRepo
}
