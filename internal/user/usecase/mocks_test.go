package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jobee/jobee-api/internal/apifilters"
	jobdomain "github.com/jobee/jobee-api/internal/job/domain"
	"github.com/jobee/jobee-api/internal/user/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByIDWithPassword(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, hashedToken, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) UpdateProfile(ctx context.Context, id, name, email string) error {
	args := m.Called(ctx, id, name, email)
	return args.Error(0)
}
func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepository) SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error {
	args := m.Called(ctx, id, hashedToken, expire)
	return args.Error(0)
}
func (m *MockUserRepository) ClearResetToken(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}
func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepository) Search(ctx context.Context, query apifilters.Query) ([]*domain.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Create(ctx context.Context, job *jobdomain.Job) (string, error) {
	args := m.Called(ctx, job)
	return args.String(0), args.Error(1)
}
func (m *MockJobRepository) Update(ctx context.Context, job *jobdomain.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}
func (m *MockJobRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockJobRepository) FindByID(ctx context.Context, id string) (*jobdomain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByIDWithApplicants(ctx context.Context, id string) (*jobdomain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByIDAndSlug(ctx context.Context, id, slug string) (*jobdomain.Job, error) {
	args := m.Called(ctx, id, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) Search(ctx context.Context, query apifilters.Query) ([]*jobdomain.Job, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) FindWithinRadius(ctx context.Context, lon, lat, radius float64) ([]*jobdomain.Job, error) {
	args := m.Called(ctx, lon, lat, radius)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByOwner(ctx context.Context, userID string) ([]*jobdomain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) FindByApplicant(ctx context.Context, userID string) ([]*jobdomain.Job, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*jobdomain.Job), args.Error(1)
}
func (m *MockJobRepository) PushApplicant(ctx context.Context, jobID string, applicant jobdomain.Applicant) error {
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
func (m *MockJobRepository) Stats(ctx context.Context, topic string) ([]jobdomain.TopicStats, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jobdomain.TopicStats), args.Error(1)
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

type MockMailer struct{ mock.Mock }

func (m *MockMailer) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, subject string, data interface{}) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}
