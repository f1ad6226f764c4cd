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

const routineCollectionName = "routines"

type mongoRoutineRepository struct {
	collection *mongo.Collection
}

func NewMongoRoutineRepository(db *mongo.Database) repository.RoutineRepository {
	return &mongoRoutineRepository{
		collection: db.Collection(routineCollectionName),
	}
}

func prepareRoutine(routine *domain.Routine, now time.Time) error {
	if routine.UserID == primitive.NilObjectID || routine.Name == "" {
		return repository.ErrInvalid
	}
	routine.ID = primitive.NewObjectID()
	routine.CreatedAt = now
	routine.UpdatedAt = now
	if routine.Exercises == nil {
		routine.Exercises = []string{}
	}
	if routine.ScheduleDays == nil {
		routine.ScheduleDays = []string{}
	}
	return nil
}

func (r *mongoRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error) {
	if err := prepareRoutine(routine, time.Now().UTC()); err != nil {
		return primitive.NilObjectID, err
	}
	result, err := r.collection.InsertOne(ctx, routine)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errNoInsertedID
	}
	return insertedID, nil
}

// CreateMany inserts all routines in one batch. The slice elements get their
// generated ids.
func (r *mongoRoutineRepository) CreateMany(ctx context.Context, routines []domain.Routine) ([]primitive.ObjectID, error) {
	if len(routines) == 0 {
		return []primitive.ObjectID{}, nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(routines))
	for i := range routines {
		if err := prepareRoutine(&routines[i], now); err != nil {
			return nil, err
		}
		docs = append(docs, routines[i])
	}

	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(routines))
	for _, routine := range routines {
		ids = append(ids, routine.ID)
	}
	return ids, nil
}

func (r *mongoRoutineRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Routine, error) {
	var routine domain.Routine
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "userId": userID}).Decode(&routine)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &routine, nil
}

// ListByUser returns the user's routines in creation order.
func (r *mongoRoutineRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	routines := []domain.Routine{}
	if err = cursor.All(ctx, &routines); err != nil {
		return nil, err
	}
	return routines, nil
}

// Update overwrites name, schedule and exercises of a routine the user owns.
func (r *mongoRoutineRepository) Update(ctx context.Context, routine *domain.Routine) error {
	if routine.ID == primitive.NilObjectID {
		return errors.New("routine ID is required for update")
	}
	exercises := routine.Exercises
	if exercises == nil {
		exercises = []string{}
	}
	scheduleDays := routine.ScheduleDays
	if scheduleDays == nil {
		scheduleDays = []string{}
	}

	filter := bson.M{"_id": routine.ID, "userId": routine.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":         routine.Name,
			"scheduleDays": scheduleDays,
			"exercises":    exercises,
			"updatedAt":    time.Now().UTC(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func EnsureRoutineIndexes(ctx context.Context, db *mongo.Database) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}},
		Options: options.Index(),
	}
	if _, err := db.Collection(routineCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", routineCollectionName, err)
	}
}
