package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/routine"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	catalogCacheSize   = 4 * 1024 * 1024
	catalogCacheExpire = 10 * 60 // seconds
)

// ExerciseService serves the shared exercise catalog grouped by muscle group.
type ExerciseService interface {
	// SeedDefaults inserts the built-in catalog when the store is empty.
	// Returns whether anything was inserted.
	SeedDefaults(ctx context.Context) (bool, error)
	List(ctx context.Context, category string) ([]domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	cache        *freecache.Cache
}

func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		cache:        freecache.NewCache(catalogCacheSize),
	}
}

func (s *exerciseService) SeedDefaults(ctx context.Context) (bool, error) {
	count, err := s.exerciseRepo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		log.Debugf("exercise catalog already populated (%d entries)", count)
		return false, nil
	}

	exercises := routine.CatalogExercises(routine.DefaultCatalog(), time.Now().UTC())
	if err := s.exerciseRepo.InsertMany(ctx, exercises); err != nil {
		return false, fmt.Errorf("seed exercises: %w", err)
	}
	s.cache.Clear()
	log.Infof("seeded exercise catalog with %d exercises", len(exercises))
	return true, nil
}

func (s *exerciseService) List(ctx context.Context, category string) ([]domain.Exercise, error) {
	cacheKey := []byte("exercises::" + category)
	if cached, err := s.cache.Get(cacheKey); err == nil {
		var exercises []domain.Exercise
		uerr := json.Unmarshal(cached, &exercises)
		if uerr == nil {
			return exercises, nil
		}
		log.Errorf("failed to unmarshal cached exercises for category %q: %s", category, uerr)
	}

	exercises, err := s.exerciseRepo.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}

	if raw, err := json.Marshal(exercises); err == nil {
		if err := s.cache.Set(cacheKey, raw, catalogCacheExpire); err != nil {
			log.Errorf("failed to cache exercises for category %q: %s", category, err)
		}
	}
	return exercises, nil
}
