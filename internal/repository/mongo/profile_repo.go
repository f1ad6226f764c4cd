package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "profiles"

// Profiles are keyed by the owning user's id, so no extra index is needed.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

func (r *mongoProfileRepository) Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Upsert replaces the whole profile document, creating it if needed.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	if profile.UserID == primitive.NilObjectID {
		return repository.ErrInvalid
	}
	profile.UpdatedAt = time.Now().UTC()
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": profile.UserID}, profile, opts)
	return err
}

// SetCurrentWeight updates only the current weight, creating a bare profile
// when the user has none yet.
func (r *mongoProfileRepository) SetCurrentWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64) error {
	return r.setFields(ctx, userID, bson.M{"currentWeightKg": weightKg})
}

func (r *mongoProfileRepository) SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error {
	return r.setFields(ctx, userID, bson.M{"avatarKey": key})
}

func (r *mongoProfileRepository) setFields(ctx context.Context, userID primitive.ObjectID, fields bson.M) error {
	if userID == primitive.NilObjectID {
		return repository.ErrInvalid
	}
	fields["updatedAt"] = time.Now().UTC()
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": fields}, opts)
	return err
}
