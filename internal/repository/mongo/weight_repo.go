package mongo

import (
	"context"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const weightCollectionName = "weight_history"

type mongoWeightRepository struct {
	collection *mongo.Collection
}

func NewMongoWeightRepository(db *mongo.Database) repository.WeightRepository {
	return &mongoWeightRepository{
		collection: db.Collection(weightCollectionName),
	}
}

// UpsertForDay writes the weight for (userId, date), creating the entry when
// the day has none yet. The stored document is returned.
func (r *mongoWeightRepository) UpsertForDay(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error) {
	if entry.UserID == primitive.NilObjectID || entry.Date == "" {
		return nil, repository.ErrInvalid
	}

	now := time.Now().UTC()
	filter := bson.M{"userId": entry.UserID, "date": entry.Date}
	update := bson.M{
		"$set": bson.M{
			"weight":    entry.Weight,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"userId":    entry.UserID,
			"date":      entry.Date,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var stored domain.WeightEntry
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// ListByUser returns the user's weight history, oldest day first.
func (r *mongoWeightRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []domain.WeightEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureWeightIndexes creates the one-entry-per-day index. Call during startup.
func EnsureWeightIndexes(ctx context.Context, db *mongo.Database) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := db.Collection(weightCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", weightCollectionName, err)
	}
}
