package mocks

import (
	"context"

	"github.com/dukex/rocklms/pkg/models"
	"github.com/dukex/rocklms/pkg/persistence"
	"github.com/stretchr/testify/mock"
)

// MockCourseRepository is a mock implementation of persistence.CourseRepository interface.
type MockCourseRepository struct {
	mock.Mock
}

func (m *MockCourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetAllByStatus(ctx context.Context, status models.CourseStatus) ([]*models.Course, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *MockCourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *MockCourseRepository) Save(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)

	return args.Error(0)
}

func (m *MockCourseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

// MockPersistence is a mock implementation of persistence.Persistence interface.
type MockPersistence struct {
	mock.Mock

	courseRepo *MockCourseRepository
}

// NewMockPersistence creates a new MockPersistence with a mock course repository.
func NewMockPersistence() *MockPersistence {
	return &MockPersistence{
		courseRepo: &MockCourseRepository{},
	}
}

// GetMockCourseRepository returns the underlying mock course repository for setting up expectations.
func (m *MockPersistence) GetMockCourseRepository() *MockCourseRepository {
	return m.courseRepo
}

func (m *MockPersistence) CourseRepository() persistence.CourseRepository {
	return m.courseRepo
}

func (m *MockPersistence) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockPersistence) Close(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}
