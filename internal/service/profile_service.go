package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/fitness"
	"alcyxob/smartfit/internal/preferences"
	"alcyxob/smartfit/internal/repository"
	"alcyxob/smartfit/internal/storage"
	"alcyxob/smartfit/internal/units"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxHeightCm = 300

var (
	ErrInvalidProfile      = errors.New("invalid profile")
	ErrStorageUnavailable  = errors.New("avatar storage is not configured")
	allowedGenders         = map[string]bool{"male": true, "female": true, "other": true}
	avatarUploadExpiration = storage.DefaultPresignedURLExpiry
)

// ProfileInput is a profile form in the user's display units. For feet/inches
// Height holds feet and HeightInches inches.
type ProfileInput struct {
	DisplayName   string   `json:"displayName"`
	Gender        string   `json:"gender"`
	BirthDate     string   `json:"birthDate"`
	Height        string   `json:"height"`
	HeightInches  string   `json:"heightInches"`
	CurrentWeight string   `json:"currentWeight"`
	GoalWeight    string   `json:"goalWeight"`
	ActivityLevel string   `json:"activityLevel"`
	PrimaryGoal   string   `json:"primaryGoal"`
	WorkoutDays   []string `json:"workoutDays"`
}

type OnboardingInput struct {
	Profile     ProfileInput
	RoutineType string
	CustomDays  []string
}

type OnboardingResult struct {
	Profile  *domain.Profile  `json:"profile"`
	Routines []domain.Routine `json:"routines"`
	Warnings []string         `json:"warnings,omitempty"`
}

// StatsView is the dashboard stats block in display units.
type StatsView struct {
	Weight      float64 `json:"weight"`
	WeightLabel string  `json:"weightLabel"`
	Height      string  `json:"height"`
	HeightLabel string  `json:"heightLabel"`
	GoalWeight  float64 `json:"goalWeight"`
	BMI         string  `json:"bmi"`
	fitness.Stats
}

type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProfileService interface {
	// Get returns the profile, or nil when the user has not onboarded yet.
	Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	Update(ctx context.Context, userID primitive.ObjectID, in ProfileInput, prefs preferences.Preferences) (*domain.Profile, error)
	Stats(ctx context.Context, userID primitive.ObjectID, prefs preferences.Preferences) (*StatsView, error)
	Onboard(ctx context.Context, userID primitive.ObjectID, in OnboardingInput, prefs preferences.Preferences) (*OnboardingResult, error)
	CreateAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error)
	// AvatarURL returns a temporary download URL, or "" without an avatar.
	AvatarURL(ctx context.Context, profile *domain.Profile) (string, error)
}

type profileService struct {
	profileRepo    repository.ProfileRepository
	weightRepo     repository.WeightRepository
	routineService RoutineService
	files          storage.FileStorage
	now            func() time.Time
}

// NewProfileService wires the profile service. files may be nil when object
// storage is not configured; avatar operations then fail with
// ErrStorageUnavailable.
func NewProfileService(
	profileRepo repository.ProfileRepository,
	weightRepo repository.WeightRepository,
	routineService RoutineService,
	files storage.FileStorage,
) ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		weightRepo:     weightRepo,
		routineService: routineService,
		files:          files,
		now:            time.Now,
	}
}

func invalidProfile(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidProfile, fmt.Sprintf(format, args...))
}

// buildProfile validates the form and converts it to storage units.
func buildProfile(userID primitive.ObjectID, in ProfileInput, prefs preferences.Preferences) (*domain.Profile, error) {
	name := strings.TrimSpace(in.DisplayName)
	if len([]rune(name)) < 2 {
		return nil, invalidProfile("name must be at least 2 characters")
	}
	gender := strings.ToLower(strings.TrimSpace(in.Gender))
	if !allowedGenders[gender] {
		return nil, invalidProfile("please select a gender")
	}
	if strings.TrimSpace(in.BirthDate) == "" {
		return nil, invalidProfile("date of birth is required")
	}

	heightCm := units.ToStorageHeight(in.Height, in.HeightInches, prefs.HeightUnit)
	if heightCm <= 0 || heightCm > maxHeightCm {
		return nil, invalidProfile("height must be positive and at most %d cm", maxHeightCm)
	}
	currentKg := units.ToStorageWeight(in.CurrentWeight, prefs.WeightUnit)
	if currentKg <= 0 || currentKg > maxWeightKg {
		return nil, invalidProfile("current weight must be positive and at most %d kg", maxWeightKg)
	}
	goalKg := units.ToStorageWeight(in.GoalWeight, prefs.WeightUnit)
	if goalKg <= 0 || goalKg > maxWeightKg {
		return nil, invalidProfile("goal weight must be positive and at most %d kg", maxWeightKg)
	}

	if len(in.WorkoutDays) == 0 {
		return nil, invalidProfile("select at least one workout day")
	}
	if err := validateDays(in.WorkoutDays); err != nil {
		return nil, invalidProfile("%s", err)
	}

	return &domain.Profile{
		UserID:          userID,
		DisplayName:     name,
		Gender:          gender,
		BirthDate:       strings.TrimSpace(in.BirthDate),
		HeightCm:        heightCm,
		CurrentWeightKg: currentKg,
		GoalWeightKg:    goalKg,
		ActivityLevel:   in.ActivityLevel,
		PrimaryGoal:     in.PrimaryGoal,
		WorkoutDays:     in.WorkoutDays,
	}, nil
}

func (s *profileService) Get(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, userID primitive.ObjectID, in ProfileInput, prefs preferences.Preferences) (*domain.Profile, error) {
	profile, err := buildProfile(userID, in, prefs)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		profile.AvatarKey = existing.AvatarKey
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) Stats(ctx context.Context, userID primitive.ObjectID, prefs preferences.Preferences) (*StatsView, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	history, err := s.weightRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list weights: %w", err)
	}

	stats := fitness.CurrentStats(profile, history)
	return &StatsView{
		Weight:      units.ToDisplayWeight(stats.WeightKg, prefs.WeightUnit),
		WeightLabel: units.WeightLabel(prefs.WeightUnit),
		Height:      units.ToDisplayHeight(stats.HeightCm, prefs.HeightUnit),
		HeightLabel: units.HeightLabel(prefs.HeightUnit),
		GoalWeight:  units.ToDisplayWeight(stats.GoalWeightKg, prefs.WeightUnit),
		BMI:         fitness.CalculateBMI(stats.WeightKg, stats.HeightCm),
		Stats:       stats,
	}, nil
}

// Onboard saves the profile, records the starting weight for today and
// creates the starter routines. Only the profile write is fatal; history and
// routine failures come back as warnings.
func (s *profileService) Onboard(ctx context.Context, userID primitive.ObjectID, in OnboardingInput, prefs preferences.Preferences) (*OnboardingResult, error) {
	switch in.RoutineType {
	case RoutineTypeDefault, "":
	case RoutineTypeCustom:
		if len(in.CustomDays) == 0 {
			return nil, ErrNoTrainingDays
		}
	default:
		return nil, ErrInvalidRoutineType
	}

	profile, err := s.Update(ctx, userID, in.Profile, prefs)
	if err != nil {
		return nil, err
	}

	result := &OnboardingResult{Profile: profile, Routines: []domain.Routine{}}

	_, err = s.weightRepo.UpsertForDay(ctx, &domain.WeightEntry{
		UserID: userID,
		Date:   domain.DayOf(s.now()),
		Weight: profile.CurrentWeightKg,
	})
	if err != nil {
		log.Errorf("onboarding %s: save weight history: %s", userID.Hex(), err)
		result.Warnings = append(result.Warnings, "Profile saved, but weight history failed: "+err.Error())
	}

	routines, err := s.routineService.SeedOnboarding(ctx, userID, in.RoutineType, in.CustomDays)
	if err != nil {
		log.Errorf("onboarding %s: seed routines: %s", userID.Hex(), err)
		result.Warnings = append(result.Warnings, "Profile saved, but routines failed: "+err.Error())
	} else {
		result.Routines = routines
	}

	return result, nil
}

func (s *profileService) CreateAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if s.files == nil {
		return nil, ErrStorageUnavailable
	}
	key, err := storage.AvatarKey(userID, contentType)
	if err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	uploadURL, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, avatarUploadExpiration)
	if err != nil {
		return nil, fmt.Errorf("presign avatar upload: %w", err)
	}
	if err := s.profileRepo.SetAvatarKey(ctx, userID, key); err != nil {
		return nil, fmt.Errorf("save avatar key: %w", err)
	}

	if existing != nil && existing.AvatarKey != "" {
		if err := s.files.DeleteObject(ctx, existing.AvatarKey); err != nil {
			log.Warnf("failed to delete replaced avatar %s: %s", existing.AvatarKey, err)
		}
	}

	return &AvatarUpload{
		UploadURL: uploadURL,
		Key:       key,
		ExpiresAt: s.now().Add(avatarUploadExpiration).UTC(),
	}, nil
}

func (s *profileService) AvatarURL(ctx context.Context, profile *domain.Profile) (string, error) {
	if profile == nil || profile.AvatarKey == "" || s.files == nil {
		return "", nil
	}
	return s.files.GeneratePresignedDownloadURL(ctx, profile.AvatarKey, storage.DefaultPresignedURLExpiry)
}
