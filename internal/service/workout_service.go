package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/fitness"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VolumeChartSessions is how many recent sessions the volume chart shows.
const VolumeChartSessions = 10

var (
	ErrEmptySession    = errors.New("log at least one set")
	ErrInvalidWorkout  = errors.New("workout type is required")
	ErrWorkoutNotFound = errors.New("workout not found")
)

type WorkoutInput struct {
	Type      string
	Exercises domain.Exercises
	Date      time.Time
	RoutineID *primitive.ObjectID
}

type WorkoutService interface {
	Log(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.WorkoutLog, error)
	// List returns the user's sessions newest first.
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error)
	Volume(ctx context.Context, userID primitive.ObjectID) ([]fitness.VolumePoint, error)
	// LastOfType returns the newest session of the type, or nil.
	LastOfType(ctx context.Context, userID primitive.ObjectID, typeLabel string) (*domain.WorkoutLog, error)
	Summary(ctx context.Context, userID, workoutID primitive.ObjectID) (string, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
	metrics     *telemetry.Manager
}

func NewWorkoutService(workoutRepo repository.WorkoutRepository, metrics *telemetry.Manager) WorkoutService {
	return &workoutService{
		workoutRepo: workoutRepo,
		metrics:     metrics,
	}
}

func (s *workoutService) Log(ctx context.Context, userID primitive.ObjectID, in WorkoutInput) (*domain.WorkoutLog, error) {
	typeLabel := strings.TrimSpace(in.Type)
	if typeLabel == "" {
		return nil, ErrInvalidWorkout
	}

	// exercises without sets are not part of the session
	logged := domain.Exercises{}
	for _, entry := range in.Exercises {
		if len(entry.Sets) > 0 {
			logged = append(logged, entry)
		}
	}
	if len(logged) == 0 {
		return nil, ErrEmptySession
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	workout := &domain.WorkoutLog{
		UserID:    userID,
		Date:      date.UTC(),
		Type:      typeLabel,
		Exercises: logged,
		RoutineID: in.RoutineID,
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, fmt.Errorf("save workout: %w", err)
	}
	workout.ID = id
	s.metrics.CounterWorkouts.Inc()
	return workout, nil
}

func (s *workoutService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutLog, error) {
	logs, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return logs, nil
}

func (s *workoutService) Volume(ctx context.Context, userID primitive.ObjectID) ([]fitness.VolumePoint, error) {
	logs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fitness.VolumeSeries(logs, VolumeChartSessions), nil
}

func (s *workoutService) LastOfType(ctx context.Context, userID primitive.ObjectID, typeLabel string) (*domain.WorkoutLog, error) {
	logs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return fitness.LastSessionOfType(logs, typeLabel), nil
}

func (s *workoutService) Summary(ctx context.Context, userID, workoutID primitive.ObjectID) (string, error) {
	workout, err := s.workoutRepo.GetByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrWorkoutNotFound
		}
		return "", fmt.Errorf("get workout: %w", err)
	}
	return fitness.SessionSummary(*workout), nil
}
