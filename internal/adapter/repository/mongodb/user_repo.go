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
	"github.com/jobee/jobee-api/internal/user/domain"
)

const usersCollectionName = "users"

// userDefaultProjection keeps credentials and reset state out of reads that
// don't explicitly need them.
var userDefaultProjection = bson.M{
	"password":            0,
	"resetPasswordToken":  0,
	"resetPasswordExpire": 0,
}

type UserRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func NewUserRepository(db *mongo.Database, logger *zap.Logger) *UserRepository {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection(usersCollectionName)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		logger.Warn("failed to create unique email index (may already exist)", zap.Error(err))
	}

	return &UserRepository{
		collection: collection,
		logger:     logger.Named("UserRepository"),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	user.ID = primitive.NewObjectID().Hex()
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateEmail
		}
		r.logger.Error("failed to insert user", zap.Error(err))
		return "", err
	}
	return user.ID, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, userDefaultProjection)
}

func (r *UserRepository) FindByIDWithPassword(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, nil)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, hashedToken string, now time.Time) (*domain.User, error) {
	filter := bson.M{
		"resetPasswordToken":  hashedToken,
		"resetPasswordExpire": bson.M{"$gt": now},
	}
	return r.findOne(ctx, filter, nil)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, email string) error {
	update := bson.M{"$set": bson.M{"name": name, "email": email}}
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password": passwordHash},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) SetResetToken(ctx context.Context, id, hashedToken string, expire time.Time) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{
			"resetPasswordToken":  hashedToken,
			"resetPasswordExpire": expire,
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ClearResetToken(ctx context.Context, id string) error {
	_, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$unset": bson.M{
			"resetPasswordToken":  "",
			"resetPasswordExpire": "",
		},
	})
	return err
}

// ResetPassword sets the new hash and consumes the reset token in one update.
func (r *UserRepository) ResetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{
		"$set": bson.M{"password": passwordHash},
		"$unset": bson.M{
			"resetPasswordToken":  "",
			"resetPasswordExpire": "",
		},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Search(ctx context.Context, query apifilters.Query) ([]*domain.User, error) {
	findOptions := options.Find().
		SetSort(query.Sort).
		SetSkip(query.Skip).
		SetLimit(query.Limit)
	if query.Projection != nil {
		findOptions.SetProjection(query.Projection)
	} else {
		findOptions.SetProjection(userDefaultProjection)
	}

	cursor, err := r.collection.Find(ctx, query.Filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, projection bson.M) (*domain.User, error) {
	findOptions := options.FindOne()
	if projection != nil {
		findOptions.SetProjection(projection)
	}

	var user domain.User
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("failed to fetch user", zap.Error(err))
		return nil, err
	}
	return &user, nil
}
