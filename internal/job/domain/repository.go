package domain

import (
	"context"

	"github.com/jobee/jobee-api/internal/apifilters"
)

// TopicStats is one aggregation bucket of the stats operation, grouped by
// upper-cased experience level.
type TopicStats struct {
	Experience   string  `json:"experience" bson:"_id"`
	TotalJobs    int64   `json:"totalJobs" bson:"totalJobs"`
	AvgPositions float64 `json:"avgPositions" bson:"avgPositions"`
	AvgSalary    float64 `json:"avgSalary" bson:"avgSalary"`
	MinSalary    float64 `json:"minSalary" bson:"minSalary"`
	MaxSalary    float64 `json:"maxSalary" bson:"maxSalary"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) (string, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*Job, error)
	// FindByIDWithApplicants includes the applicantApplied list, which the
	// default projection hides.
	FindByIDWithApplicants(ctx context.Context, id string) (*Job, error)
	FindByIDAndSlug(ctx context.Context, id, slug string) (*Job, error)
	Search(ctx context.Context, query apifilters.Query) ([]*Job, error)
	// FindWithinRadius matches jobs whose location lies inside the sphere cap
	// centered on lon/lat with the given radius in radians.
	FindWithinRadius(ctx context.Context, lon, lat, radius float64) ([]*Job, error)
	FindByOwner(ctx context.Context, userID string) ([]*Job, error)
	FindByApplicant(ctx context.Context, userID string) ([]*Job, error)
	PushApplicant(ctx context.Context, jobID string, applicant Applicant) error
	PullApplicant(ctx context.Context, jobID, userID string) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
	Stats(ctx context.Context, topic string) ([]TopicStats, error)
}

// ResumeStorage is the blob store applicant resumes live in.
type ResumeStorage interface {
	Upload(ctx context.Context, objectName string, data []byte, contentType string) error
	Remove(ctx context.Context, objectName string) error
}

// GeoResult is one candidate location returned by the geocoding provider.
type GeoResult struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	City             string
	StateCode        string
	Zipcode          string
	CountryCode      string
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]GeoResult, error)
}
