package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workout_logs"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutLog) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID || workout.Type == "" {
		return primitive.NilObjectID, repository.ErrInvalid
	}
	workout.ID = primitive.NewObjectID()
	workout.CreatedAt = time.Now().UTC()
	if workout.Date.IsZero() {
		workout.Date = workout.CreatedAt
	}

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errNoInsertedID
	}
	return insertedID, nil
}

// GetByID retrieves a single session owned by userID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutLog, error) {
	var workout domain.WorkoutLog
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// ListByUser retrieves all sessions of a user, newest first.
func (r *mongoWorkoutRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.WorkoutLog{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, db *mongo.Database) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index(),
	}
	if _, err := db.Collection(workoutCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", workoutCollectionName, err)
	}
}
