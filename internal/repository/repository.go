package repository

import (
	"context"

	"alcyxob/smartfit/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrInvalid      = RepositoryError("invalid record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// WeightRepository stores body-weight history, one entry per user and day.
type WeightRepository interface {
	// UpsertForDay inserts the entry or overwrites the weight of the entry
	// already stored for the same user and date.
	UpsertForDay(ctx context.Context, entry *domain.WeightEntry) (*domain.WeightEntry, error)
	// ListByUser returns the history ordered by date, oldest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error)
}

// WorkoutRepository stores logged training sessions.
type WorkoutRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.WorkoutLog, error)
	// ListByUser returns sessions newest first.
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
}

// RoutineRepository stores a user's routines.
type RoutineRepository interface {
	Create(ctx context.Context, routine *domain.Routine) (primitive.ObjectID, error)
	CreateMany(ctx context.Context, routines []domain.Routine) ([]primitive.ObjectID, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Routine, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
	Update(ctx context.Context, routine *domain.Routine) error
}

// ProfileRepository stores one profile per user.
type ProfileRepository interface {
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
	SetCurrentWeight(ctx context.Context, userID primitive.ObjectID, weightKg float64) error
	SetAvatarKey(ctx context.Context, userID primitive.ObjectID, key string) error
}

// ReportRepository stores generated coaching reports. Reports are never updated.
type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) (primitive.ObjectID, error)
	// ListByUser returns reports newest first. An empty reportType matches all types.
	ListByUser(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, limit int64) ([]domain.Report, error)
	Latest(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType) (*domain.Report, error)
}

// ExerciseRepository stores the shared exercise catalog.
type ExerciseRepository interface {
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, exercises []domain.Exercise) error
	// List returns the catalog sorted by category and name. An empty category
	// matches all.
	List(ctx context.Context, category string) ([]domain.Exercise, error)
}
