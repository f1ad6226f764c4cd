package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/routine"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRoutineNotFound     = errors.New("routine not found")
	ErrInvalidRoutine      = errors.New("routine name is required")
	ErrInvalidRoutineType  = errors.New("routine type must be 'default' or 'custom'")
	ErrNoTrainingDays      = errors.New("select at least one training day")
	ErrInvalidScheduleDays = errors.New("schedule days must be weekday names")
)

// Onboarding routine setups.
const (
	RoutineTypeDefault = "default"
	RoutineTypeCustom  = "custom"
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

type RoutineService interface {
	List(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error)
	Create(ctx context.Context, userID primitive.ObjectID, name string, scheduleDays, exercises []string) (*domain.Routine, error)
	Update(ctx context.Context, userID, routineID primitive.ObjectID, name string, scheduleDays, exercises []string) (*domain.Routine, error)
	// SessionExercises resolves the starting exercise list for a session of
	// the routine, falling back to the named split template.
	SessionExercises(ctx context.Context, userID, routineID primitive.ObjectID, template string) ([]string, error)
	Splits() map[string][]string
	// SeedOnboarding creates the starter routines picked during onboarding.
	SeedOnboarding(ctx context.Context, userID primitive.ObjectID, routineType string, days []string) ([]domain.Routine, error)
}

type routineService struct {
	routineRepo repository.RoutineRepository
	library     routine.Library
}

func NewRoutineService(routineRepo repository.RoutineRepository, library routine.Library) RoutineService {
	if library == nil {
		library = routine.DefaultLibrary()
	}
	return &routineService{
		routineRepo: routineRepo,
		library:     library,
	}
}

func validateDays(days []string) error {
	for _, d := range days {
		if !weekdays[d] {
			return fmt.Errorf("%w: %q", ErrInvalidScheduleDays, d)
		}
	}
	return nil
}

func (s *routineService) List(ctx context.Context, userID primitive.ObjectID) ([]domain.Routine, error) {
	routines, err := s.routineRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	return routines, nil
}

func (s *routineService) Create(ctx context.Context, userID primitive.ObjectID, name string, scheduleDays, exercises []string) (*domain.Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRoutine
	}
	if err := validateDays(scheduleDays); err != nil {
		return nil, err
	}

	r := &domain.Routine{
		UserID:       userID,
		Name:         name,
		ScheduleDays: scheduleDays,
		Exercises:    exercises,
	}
	id, err := s.routineRepo.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	r.ID = id
	return r, nil
}

func (s *routineService) Update(ctx context.Context, userID, routineID primitive.ObjectID, name string, scheduleDays, exercises []string) (*domain.Routine, error) {
	existing, err := s.routineRepo.GetByID(ctx, routineID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("get routine: %w", err)
	}

	if name = strings.TrimSpace(name); name != "" {
		existing.Name = name
	}
	if scheduleDays != nil {
		if err := validateDays(scheduleDays); err != nil {
			return nil, err
		}
		existing.ScheduleDays = scheduleDays
	}
	if exercises != nil {
		existing.Exercises = exercises
	}

	if err := s.routineRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoutineNotFound
		}
		return nil, fmt.Errorf("update routine: %w", err)
	}
	return existing, nil
}

func (s *routineService) SessionExercises(ctx context.Context, userID, routineID primitive.ObjectID, template string) ([]string, error) {
	var r *domain.Routine
	if routineID != primitive.NilObjectID {
		found, err := s.routineRepo.GetByID(ctx, routineID, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrRoutineNotFound
			}
			return nil, fmt.Errorf("get routine: %w", err)
		}
		r = found
	}
	return routine.ResolveExercises(r, s.library, template), nil
}

func (s *routineService) Splits() map[string][]string {
	return s.library
}

func (s *routineService) SeedOnboarding(ctx context.Context, userID primitive.ObjectID, routineType string, days []string) ([]domain.Routine, error) {
	var routines []domain.Routine
	switch routineType {
	case RoutineTypeDefault, "":
		routines = routine.DefaultRoutines(userID)
	case RoutineTypeCustom:
		if len(days) == 0 {
			return nil, ErrNoTrainingDays
		}
		if err := validateDays(days); err != nil {
			return nil, err
		}
		routines = routine.CustomRoutines(userID, days)
	default:
		return nil, ErrInvalidRoutineType
	}

	if _, err := s.routineRepo.CreateMany(ctx, routines); err != nil {
		return nil, fmt.Errorf("seed routines: %w", err)
	}
	return routines, nil
}
