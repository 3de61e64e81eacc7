package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jobee/jobee-api/internal/apifilters"
	"github.com/jobee/jobee-api/internal/job/domain"
)

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Create(ctx context.Context, job *domain.Job) (string, error) {
	args := m.Called(ctx, job)
	return args.String(0), args.Error(1)
}
func (m *MockJobRepository) Update(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockJobRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByIDWithApplicants(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByIDAndSlug(ctx context.Context, id, slug string) (*domain.Job, error) {
	args := m.Called(ctx, id, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepository) Search(ctx context.Context, query apifilters.Query) ([]*domain.Job, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}
func (m *MockJobRepository) FindWithinRadius(ctx context.Context, lon, lat, radius float64) ([]*domain.Job, error) {
	args := m.Called(ctx, lon, lat, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByApplicant(ctx context.Context, userID string) ([]*domain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Job), args.Error(1)
}
func (m *MockJobRepository) PushApplicant(ctx context.Context, jobID string, applicant domain.Applicant) error {
	args := m.Called(ctx, jobID, applicant)
	return args.Error(0)
}
func (m *MockJobRepository) PullApplicant(ctx context.Context, jobID, userID string) error {
	args := m.Called(ctx, jobID, userID)
	return args.Error(0)
}
func (m *MockJobRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockJobRepository) Stats(ctx context.Context, topic string) ([]domain.TopicStats, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopicStats), args.Error(1)
}

type MockResumeStorage struct{ mock.Mock }

func (m *MockResumeStorage) Upload(ctx context.Context, objectName string, data []byte, contentType string) error {
	args := m.Called(ctx, objectName, data, contentType)
	return args.Error(0)
}
func (m *MockResumeStorage) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) ([]domain.GeoResult, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeoResult), args.Error(1)
}

type MockJobCache struct{ mock.Mock }

func (m *MockJobCache) Get(ctx context.Context, id string) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobCache) Set(ctx context.Context, job *domain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockJobCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}
