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

const exerciseCollectionName = "exercises"

type mongoExerciseRepository struct {
	collection *mongo.Collection
}

func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

func (r *mongoExerciseRepository) InsertMany(ctx context.Context, exercises []domain.Exercise) error {
	if len(exercises) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(exercises))
	for i := range exercises {
		exercises[i].ID = primitive.NewObjectID()
		if exercises[i].CreatedAt.IsZero() {
			exercises[i].CreatedAt = now
		}
		docs = append(docs, exercises[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func (r *mongoExerciseRepository) List(ctx context.Context, category string) ([]domain.Exercise, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func EnsureExerciseIndexes(ctx context.Context, db *mongo.Database) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index(),
	}
	if _, err := db.Collection(exerciseCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", exerciseCollectionName, err)
	}
}
