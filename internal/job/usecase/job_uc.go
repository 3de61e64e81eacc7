package usecase

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/apifilters"
	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/auth"
	"github.com/jobee/jobee-api/internal/job/domain"
	userdomain "github.com/jobee/jobee-api/internal/user/domain"
)

// earthRadiusMiles converts a distance in miles to radians for $centerSphere.
const earthRadiusMiles = 3963.0

// Event subjects published by the job service.
const (
	SubjectJobCreated = "jobs.created"
	SubjectJobDeleted = "jobs.deleted"
	SubjectJobApplied = "jobs.applied"
)

// Publisher emits best-effort domain events; failures are logged, never
// surfaced to the caller.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// JobCache is the read-through cache for single-job lookups. A nil job with a
// nil error is a cache miss.
type JobCache interface {
	Get(ctx context.Context, id string) (*domain.Job, error)
	Set(ctx context.Context, job *domain.Job) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase struct {
	repo      domain.JobRepository
	storage   domain.ResumeStorage
	geocoder  domain.Geocoder
	cache     JobCache
	publisher Publisher
	logger    *zap.Logger

	maxResumeSize int64
}

func NewJobUsecase(
	repo domain.JobRepository,
	storage domain.ResumeStorage,
	geocoder domain.Geocoder,
	cache JobCache,
	publisher Publisher,
	maxResumeSize int64,
	logger *zap.Logger,
) *JobUsecase {
	return &JobUsecase{
		repo:          repo,
		storage:       storage,
		geocoder:      geocoder,
		cache:         cache,
		publisher:     publisher,
		maxResumeSize: maxResumeSize,
		logger:        logger.Named("JobUsecase"),
	}
}

// List runs the filter builder over the raw query parameters and executes the
// resulting query.
func (u *JobUsecase) List(ctx context.Context, params url.Values) ([]*domain.Job, error) {
	query := apifilters.Build(params, "postingDate")
	jobs, err := u.repo.Search(ctx, query)
	if err != nil {
		u.logger.Error("failed to search jobs", zap.Error(err))
		return nil, err
	}
	return jobs, nil
}

// Get fetches a job by id and slug; both must match.
func (u *JobUsecase) Get(ctx context.Context, id, slug string) (*domain.Job, error) {
	if cached, err := u.cache.Get(ctx, id); err != nil {
		u.logger.Warn("job cache lookup failed", zap.String("jobID", id), zap.Error(err))
	} else if cached != nil && cached.Slug == slug {
		return cached, nil
	}

	job, err := u.repo.FindByIDAndSlug(ctx, id, slug)
	if err != nil {
		return nil, mapJobError(err)
	}
	if err := u.cache.Set(ctx, job); err != nil {
		u.logger.Warn("job cache store failed", zap.String("jobID", job.ID), zap.Error(err))
	}
	return job, nil
}

// InRadius returns jobs whose location lies within distance miles of the
// given zipcode.
func (u *JobUsecase) InRadius(ctx context.Context, zipcode, distance string) ([]*domain.Job, error) {
	miles, err := strconv.ParseFloat(distance, 64)
	if err != nil || miles <= 0 {
		return nil, apperror.Validation("Please provide a valid distance in miles")
	}

	results, err := u.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		u.logger.Error("geocoding failed", zap.String("zipcode", zipcode), zap.Error(err))
		return nil, apperror.Internal("Unable to geocode the given zipcode")
	}
	if len(results) == 0 {
		return nil, apperror.Validation("No location found for the given zipcode")
	}

	radius := miles / earthRadiusMiles
	jobs, err := u.repo.FindWithinRadius(ctx, results[0].Longitude, results[0].Latitude, radius)
	if err != nil {
		u.logger.Error("radius search failed", zap.Error(err))
		return nil, err
	}
	return jobs, nil
}

// Create persists a new job owned by the caller. Only employers and admins
// may post jobs. Slug and location are derived before persistence.
func (u *JobUsecase) Create(ctx context.Context, callerID, callerRole string, job *domain.Job) (*domain.Job, error) {
	if err := auth.RequireRole(callerRole, userdomain.RoleEmployer, userdomain.RoleAdmin); err != nil {
		return nil, err
	}

	job.UserID = callerID
	if err := job.Validate(); err != nil {
		return nil, mapJobError(err)
	}
	job.ApplyDefaults(time.Now())

	if err := u.resolveLocation(ctx, job); err != nil {
		return nil, err
	}

	id, err := u.repo.Create(ctx, job)
	if err != nil {
		u.logger.Error("failed to create job", zap.String("title", job.Title), zap.Error(err))
		return nil, err
	}
	job.ID = id

	if err := u.publisher.Publish(ctx, SubjectJobCreated, job); err != nil {
		u.logger.Warn("failed to publish job created event", zap.String("jobID", id), zap.Error(err))
	}
	u.logger.Info("job created", zap.String("jobID", id), zap.String("owner", callerID))
	return job, nil
}

// Update replaces the mutable fields of a job. Only the owner or an admin may
// update, and ownership itself can not be reassigned.
func (u *JobUsecase) Update(ctx context.Context, callerID, callerRole, jobID string, updated *domain.Job) (*domain.Job, error) {
	existing, err := u.repo.FindByID(ctx, jobID)
	if err != nil {
		return nil, mapJobError(err)
	}
	if err := auth.CanModify(callerID, callerRole, existing.UserID); err != nil {
		return nil, err
	}

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.PostingDate = existing.PostingDate
	if err := updated.Validate(); err != nil {
		return nil, mapJobError(err)
	}
	updated.ApplyDefaults(time.Now())

	if updated.Address != existing.Address {
		if err := u.resolveLocation(ctx, updated); err != nil {
			return nil, err
		}
	} else {
		updated.Location = existing.Location
	}

	if err := u.repo.Update(ctx, updated); err != nil {
		u.logger.Error("failed to update job", zap.String("jobID", jobID), zap.Error(err))
		return nil, mapJobError(err)
	}
	if err := u.cache.Delete(ctx, jobID); err != nil {
		u.logger.Warn("job cache invalidation failed", zap.String("jobID", jobID), zap.Error(err))
	}
	return updated, nil
}

// Delete removes a job and, best effort, every resume uploaded against it.
// File-removal failures are logged and swallowed; the record delete is what
// counts.
func (u *JobUsecase) Delete(ctx context.Context, callerID, callerRole, jobID string) error {
	job, err := u.repo.FindByIDWithApplicants(ctx, jobID)
	if err != nil {
		return mapJobError(err)
	}
	if err := auth.CanModify(callerID, callerRole, job.UserID); err != nil {
		return err
	}

	for _, applicant := range job.ApplicantApplied {
		if err := u.storage.Remove(ctx, applicant.Resume); err != nil {
			u.logger.Warn("failed to remove resume file",
				zap.String("jobID", jobID),
				zap.String("resume", applicant.Resume),
				zap.Error(err))
		}
	}

	if err := u.repo.Delete(ctx, jobID); err != nil {
		return mapJobError(err)
	}
	if err := u.cache.Delete(ctx, jobID); err != nil {
		u.logger.Warn("job cache invalidation failed", zap.String("jobID", jobID), zap.Error(err))
	}
	if err := u.publisher.Publish(ctx, SubjectJobDeleted, map[string]string{"jobId": jobID}); err != nil {
		u.logger.Warn("failed to publish job deleted event", zap.String("jobID", jobID), zap.Error(err))
	}
	u.logger.Info("job deleted", zap.String("jobID", jobID), zap.String("deletedBy", callerID))
	return nil
}

// Stats aggregates jobs matching the free-text topic, grouped by experience
// level.
func (u *JobUsecase) Stats(ctx context.Context, topic string) ([]domain.TopicStats, error) {
	stats, err := u.repo.Stats(ctx, topic)
	if err != nil {
		u.logger.Error("stats aggregation failed", zap.String("topic", topic), zap.Error(err))
		return nil, err
	}
	if len(stats) == 0 {
		return nil, apperror.NotFound("No stats found for topic " + topic)
	}
	return stats, nil
}

// Published returns every job owned by the caller (the jobsPublished relation
// as an explicit query). Only employers and admins own jobs.
func (u *JobUsecase) Published(ctx context.Context, callerID, callerRole string) ([]*domain.Job, error) {
	if err := auth.RequireRole(callerRole, userdomain.RoleEmployer, userdomain.RoleAdmin); err != nil {
		return nil, err
	}
	return u.repo.FindByOwner(ctx, callerID)
}

func (u *JobUsecase) resolveLocation(ctx context.Context, job *domain.Job) error {
	results, err := u.geocoder.Geocode(ctx, job.Address)
	if err != nil {
		u.logger.Error("geocoding failed", zap.String("address", job.Address), zap.Error(err))
		return apperror.Internal("Unable to geocode the job address")
	}
	if len(results) == 0 {
		return apperror.Validation("No location found for the given address")
	}

	loc := results[0]
	job.Location = domain.Location{
		Type:             "Point",
		Coordinates:      []float64{loc.Longitude, loc.Latitude},
		FormattedAddress: loc.FormattedAddress,
		City:             loc.City,
		State:            loc.StateCode,
		Zipcode:          loc.Zipcode,
		Country:          loc.CountryCode,
	}
	return nil
}

// mapJobError translates domain sentinels into boundary errors.
func mapJobError(err error) error {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return apperror.NotFound("Job not found")
	case errors.Is(err, domain.ErrInvalidJobData):
		return apperror.Validation(validationMessage(err))
	default:
		return err
	}
}

// validationMessage strips the sentinel prefix from a wrapped validation
// error, leaving the client-facing message.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrInvalidJobData.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
