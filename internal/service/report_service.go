package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/smartfit/internal/coach"
	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/telemetry"
	"alcyxob/smartfit/internal/units"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultReportListLimit = 20

var ErrInvalidReportType = errors.New("report type must be daily, weekly or monthly")

// ReportService generates coaching reports from the user's recent history and
// keeps them as an append-only log.
type ReportService interface {
	// Generate builds a prompt from the trailing window of the report type,
	// sends it to the completer and stores the text. Nothing is stored when
	// generation fails.
	Generate(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, unit units.WeightUnit) (*domain.Report, error)
	List(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, limit int64) ([]domain.Report, error)
	// Latest returns the newest report of the type, or nil.
	Latest(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType) (*domain.Report, error)
}

type reportService struct {
	reportRepo  repository.ReportRepository
	profileRepo repository.ProfileRepository
	weightRepo  repository.WeightRepository
	workoutRepo repository.WorkoutRepository
	completer   coach.Completer
	metrics     *telemetry.Manager
	now         func() time.Time
}

func NewReportService(
	reportRepo repository.ReportRepository,
	profileRepo repository.ProfileRepository,
	weightRepo repository.WeightRepository,
	workoutRepo repository.WorkoutRepository,
	completer coach.Completer,
	metrics *telemetry.Manager,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
		weightRepo:  weightRepo,
		workoutRepo: workoutRepo,
		completer:   completer,
		metrics:     metrics,
		now:         time.Now,
	}
}

func (s *reportService) Generate(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, unit units.WeightUnit) (*domain.Report, error) {
	if !reportType.Valid() {
		return nil, ErrInvalidReportType
	}
	if !unit.Valid() {
		unit = units.Kilograms
	}

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	weights, err := s.weightRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}
	workouts, err := s.workoutRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	previous, err := s.Latest(ctx, userID, reportType)
	if err != nil {
		return nil, err
	}

	now := s.now()
	prompt := coach.BuildPrompt(coach.PromptInput{
		ReportType: reportType,
		Profile:    profile,
		Weights:    weights,
		Workouts:   workouts,
		Previous:   previous,
		WeightUnit: unit,
		Now:        now,
	})

	start := time.Now()
	text, err := s.completer.Complete(ctx, prompt)
	s.metrics.HistReportGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.CounterReportFailures.WithLabelValues(string(reportType)).Inc()
		log.Errorf("generate %s report for %s: %s", reportType, userID.Hex(), err)
		return nil, err
	}

	report := &domain.Report{
		UserID:     userID,
		ReportType: reportType,
		Text:       text,
		CreatedAt:  now.UTC(),
	}
	id, err := s.reportRepo.Create(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}
	report.ID = id

	s.metrics.CounterReports.WithLabelValues(string(reportType)).Inc()
	return report, nil
}

func (s *reportService) List(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType, limit int64) ([]domain.Report, error) {
	if reportType != "" && !reportType.Valid() {
		return nil, ErrInvalidReportType
	}
	if limit <= 0 {
		limit = defaultReportListLimit
	}
	reports, err := s.reportRepo.ListByUser(ctx, userID, reportType, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *reportService) Latest(ctx context.Context, userID primitive.ObjectID, reportType domain.ReportType) (*domain.Report, error) {
	if !reportType.Valid() {
		return nil, ErrInvalidReportType
	}
	report, err := s.reportRepo.Latest(ctx, userID, reportType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest report: %w", err)
	}
	return report, nil
}
