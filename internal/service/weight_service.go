package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/freshness"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/telemetry"
	"alcyxob/smartfit/internal/units"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxWeightKg = 500

var (
	ErrInvalidWeight = errors.New("weight must be a positive number up to 500 kg")
	// ErrWeightSuperseded is returned to a submission that lost to a newer
	// one for the same user before it was written.
	ErrWeightSuperseded = errors.New("a newer weight submission replaced this one")
)

// WeightPoint is one history entry in the user's display unit.
type WeightPoint struct {
	ID       primitive.ObjectID `json:"id"`
	Date     string             `json:"date"`
	Weight   float64            `json:"weight"`
	Unit     string             `json:"unit"`
	WeightKg float64            `json:"weightKg"`
}

type WeightService interface {
	// AddWeight records a display-unit weight for today, replacing today's
	// entry if there is one, and makes it the profile's current weight.
	AddWeight(ctx context.Context, userID primitive.ObjectID, display string, unit units.WeightUnit) (*WeightPoint, error)
	History(ctx context.Context, userID primitive.ObjectID, unit units.WeightUnit) ([]WeightPoint, error)
	// Entries returns the stored history in kilograms, oldest first.
	Entries(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error)
}

type weightService struct {
	weightRepo  repository.WeightRepository
	profileRepo repository.ProfileRepository
	tracker     *freshness.Tracker
	metrics     *telemetry.Manager
	now         func() time.Time
}

func NewWeightService(
	weightRepo repository.WeightRepository,
	profileRepo repository.ProfileRepository,
	tracker *freshness.Tracker,
	metrics *telemetry.Manager,
) WeightService {
	return &weightService{
		weightRepo:  weightRepo,
		profileRepo: profileRepo,
		tracker:     tracker,
		metrics:     metrics,
		now:         time.Now,
	}
}

func toWeightPoint(e domain.WeightEntry, unit units.WeightUnit) WeightPoint {
	return WeightPoint{
		ID:       e.ID,
		Date:     e.Date,
		Weight:   units.ToDisplayWeight(e.Weight, unit),
		Unit:     units.WeightLabel(unit),
		WeightKg: e.Weight,
	}
}

func (s *weightService) AddWeight(ctx context.Context, userID primitive.ObjectID, display string, unit units.WeightUnit) (*WeightPoint, error) {
	kg := units.ToStorageWeight(display, unit)
	if kg <= 0 || kg > maxWeightKg {
		return nil, ErrInvalidWeight
	}

	// the day entry and the current weight are written together, and only by
	// the newest submission, so history and profile always agree
	key := "weight:" + userID.Hex()
	seq := s.tracker.Next(key)

	var stored *domain.WeightEntry
	applied, err := s.tracker.ApplyIfLatest(key, seq, func() error {
		var err error
		stored, err = s.weightRepo.UpsertForDay(ctx, &domain.WeightEntry{
			UserID: userID,
			Date:   domain.DayOf(s.now()),
			Weight: kg,
		})
		if err != nil {
			return fmt.Errorf("save weight: %w", err)
		}
		s.metrics.CounterWeightEntries.Inc()

		if err := s.profileRepo.SetCurrentWeight(ctx, userID, kg); err != nil {
			return fmt.Errorf("update current weight: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Debugf("skipping stale weight submission for user %s", userID.Hex())
		return nil, ErrWeightSuperseded
	}

	point := toWeightPoint(*stored, unit)
	return &point, nil
}

func (s *weightService) Entries(ctx context.Context, userID primitive.ObjectID) ([]domain.WeightEntry, error) {
	entries, err := s.weightRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	return entries, nil
}

func (s *weightService) History(ctx context.Context, userID primitive.ObjectID, unit units.WeightUnit) ([]WeightPoint, error) {
	entries, err := s.Entries(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := make([]WeightPoint, 0, len(entries))
	for _, e := range entries {
		points = append(points, toWeightPoint(e, unit))
	}
	return points, nil
}
