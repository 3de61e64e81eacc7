package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/jobee/jobee-api/internal/apifilters"
	"github.com/jobee/jobee-api/internal/job/domain"
)

const jobsCollectionName = "jobs"

// jobDefaultProjection hides the applicant list unless a caller asks for it.
var jobDefaultProjection = bson.M{"applicantApplied": 0}

type JobRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewJobRepository(db *mongo.Database, logger *zap.Logger) *JobRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection(jobsCollectionName)
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: "text"}}},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "user", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Warn("failed to create indexes for jobs collection (may already exist)", zap.Error(err))
	}

	return &JobRepository{
		collection: collection,
		logger:     logger.Named("JobRepository"),
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) (string, error) {
	job.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection.InsertOne(ctx, job); err != nil {
		return "", err
	}
	return job.ID, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	update := bson.M{"$set": bson.M{
		"title":        job.Title,
		"slug":         job.Slug,
		"description":  job.Description,
		"email":        job.Email,
		"address":      job.Address,
		"location":     job.Location,
		"company":      job.Company,
		"industry":     job.Industry,
		"jobType":      job.JobType,
		"minEducation": job.MinEducation,
		"positions":    job.Positions,
		"experience":   job.Experience,
		"salary":       job.Salary,
		"lastDate":     job.LastDate,
	}}
	res, err := r.collection.UpdateByID(ctx, job.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	return r.findOne(ctx, bson.M{"_id": id}, jobDefaultProjection)
}

func (r *JobRepository) FindByIDWithApplicants(ctx context.Context, id string) (*domain.Job, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

func (r *JobRepository) FindByIDAndSlug(ctx context.Context, id, slug string) (*domain.Job, error) {
	return r.findOne(ctx, bson.M{"_id": id, "slug": slug}, jobDefaultProjection)
}

// Search executes a query built by the filter package: filter, multi-key
// sort, projection and skip/limit all come from the request.
func (r *JobRepository) Search(ctx context.Context, query apifilters.Query) ([]*domain.Job, error) {
	findOptions := options.Find().
		SetSort(query.Sort).
		SetSkip(query.Skip).
		SetLimit(query.Limit)
	if query.Projection != nil {
		findOptions.SetProjection(query.Projection)
	} else {
		findOptions.SetProjection(jobDefaultProjection)
	}

	cursor, err := r.collection.Find(ctx, query.Filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *JobRepository) FindWithinRadius(ctx context.Context, lon, lat, radius float64) ([]*domain.Job, error) {
	filter := bson.M{
		"location": bson.M{
			"$geoWithin": bson.M{
				"$centerSphere": bson.A{bson.A{lon, lat}, radius},
			},
		},
	}
	return r.findAll(ctx, filter, jobDefaultProjection)
}

func (r *JobRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Job, error) {
	return r.findAll(ctx, bson.M{"user": userID}, jobDefaultProjection)
}

// FindByApplicant returns jobs the user applied to, applicant list included
// so callers can see their own entry.
func (r *JobRepository) FindByApplicant(ctx context.Context, userID string) ([]*domain.Job, error) {
	return r.findAll(ctx, bson.M{"applicantApplied.id": userID}, nil)
}

func (r *JobRepository) PushApplicant(ctx context.Context, jobID string, applicant domain.Applicant) error {
	res, err := r.collection.UpdateByID(ctx, jobID, bson.M{
		"$push": bson.M{"applicantApplied": applicant},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) PullApplicant(ctx context.Context, jobID, userID string) error {
	_, err := r.collection.UpdateByID(ctx, jobID, bson.M{
		"$pull": bson.M{"applicantApplied": bson.M{"id": userID}},
	})
	return err
}

func (r *JobRepository) DeleteByOwner(ctx context.Context, userID string) (int64, error) {
	res, err := r.collection.DeleteMany(ctx, bson.M{"user": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Stats groups jobs matching the quoted free-text topic by upper-cased
// experience level. Relies on the text index on title.
func (r *JobRepository) Stats(ctx context.Context, topic string) ([]domain.TopicStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$text": bson.M{"$search": "\"" + topic + "\""},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          bson.M{"$toUpper": "$experience"},
			"totalJobs":    bson.M{"$sum": 1},
			"avgPositions": bson.M{"$avg": "$positions"},
			"avgSalary":    bson.M{"$avg": "$salary"},
			"minSalary":    bson.M{"$min": "$salary"},
			"maxSalary":    bson.M{"$max": "$salary"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stats []domain.TopicStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *JobRepository) findOne(ctx context.Context, filter bson.M, projection bson.M) (*domain.Job, error) {
	findOptions := options.FindOne()
	if projection != nil {
		findOptions.SetProjection(projection)
	}

	var job domain.Job
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		r.logger.Error("failed to fetch job", zap.Any("filter", filter), zap.Error(err))
		return nil, err
	}
	return &job, nil
}

func (r *JobRepository) findAll(ctx context.Context, filter bson.M, projection bson.M) ([]*domain.Job, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "postingDate", Value: -1}})
	if projection != nil {
		findOptions.SetProjection(projection)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var jobs []*domain.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
