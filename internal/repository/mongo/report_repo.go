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

const reportCollectionName = "ai_reports"

type mongoReportRepository struct {
	collection *mongo.Collection
}

func NewMongoReportRepository(db *mongo.Database) repository.ReportRepository {
	return &mongoReportRepository{
		collection: db.Collection(reportCollectionName),
	}
}

func (r *mongoReportRepository) Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error) {
	if report.UserID == primitive.NilObjectID || !report.ReportType.Valid() {
		return primitive.NilObjectID, repository.ErrInvalid
	}
	report.ID = primitive.NewObjectID()
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, report)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errNoInsertedID
	}
	return insertedID, nil
}

func reportFilter(userID primitive.ObjectID, reportType domain.ReportType) bson.M {
	filter := bson.M{"userId": userID}
	if reportType != "" {
		filter["reportType"] = reportType
	}
	return filter
}

func (r *mongoReportRepository) ListByUser(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, limit int64) ([]domain.Report, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, reportFilter(userID, reportType), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reports := []domain.Report{}
	if err = cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Latest returns the newest report, repository.ErrNotFound when there is none.
func (r *mongoReportRepository) Latest(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType) (*domain.Report, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var report domain.Report
	err := r.collection.FindOne(ctx, reportFilter(userID, reportType), opts).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func EnsureReportIndexes(ctx context.Context, db *mongo.Database) {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "reportType", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index(),
	}
	if _, err := db.Collection(reportCollectionName).Indexes().CreateOne(ctx, index); err != nil {
		log.Warnf("failed to create indexes for collection %s: %v", reportCollectionName, err)
	}
}
