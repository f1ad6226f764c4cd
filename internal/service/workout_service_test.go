package service_test

import (
	"context"
	"testing"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/service"
	"alcyxob/smartfit/internal/telemetry"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sets(pairs ...float64) []domain.Set {
	out := make([]domain.Set, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.Set{Weight: domain.QuantityOf(pairs[i]), Reps: domain.QuantityOf(pairs[i+1])})
	}
	return out
}

func TestWorkoutService_LogDropsEmptyExercises(t *testing.T) {
	metrics := telemetry.NewTestManager()
	workoutService := service.NewWorkoutService(&memWorkouts{}, metrics)
	userID := primitive.NewObjectID()

	logged, err := workoutService.Log(context.Background(), userID, service.WorkoutInput{
		Type: " Push A ",
		Exercises: domain.Exercises{
			{Name: "Bench Press", Sets: sets(100, 5, 105, 3)},
			{Name: "Dips", Sets: nil},
		},
	})
	require.NoError(t, err)
	assert.False(t, logged.ID.IsZero())
	assert.Equal(t, "Push A", logged.Type)
	assert.Equal(t, []string{"Bench Press"}, logged.Exercises.Names())
	assert.False(t, logged.Date.IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CounterWorkouts))
}

func TestWorkoutService_LogRejectsEmptySession(t *testing.T) {
	workoutService := service.NewWorkoutService(&memWorkouts{}, telemetry.NewTestManager())
	userID := primitive.NewObjectID()

	_, err := workoutService.Log(context.Background(), userID, service.WorkoutInput{
		Type:      "Legs",
		Exercises: domain.Exercises{{Name: "Squat"}},
	})
	assert.ErrorIs(t, err, service.ErrEmptySession)

	_, err = workoutService.Log(context.Background(), userID, service.WorkoutInput{
		Exercises: domain.Exercises{{Name: "Squat", Sets: sets(100, 5)}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidWorkout)
}

func TestWorkoutService_VolumeAndLastOfType(t *testing.T) {
	ctx := context.Background()
	workoutService := service.NewWorkoutService(&memWorkouts{}, telemetry.NewTestManager())
	userID := primitive.NewObjectID()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, typ := range []string{"Push A", "Pull A", "Push A"} {
		_, err := workoutService.Log(ctx, userID, service.WorkoutInput{
			Type:      typ,
			Date:      base.AddDate(0, 0, i),
			Exercises: domain.Exercises{{Name: "Row", Sets: sets(float64(50+i*10), 10)}},
		})
		require.NoError(t, err)
	}

	volume, err := workoutService.Volume(ctx, userID)
	require.NoError(t, err)
	require.Len(t, volume, 3)
	assert.Equal(t, 500.0, volume[0].Volume)
	assert.Equal(t, 700.0, volume[2].Volume)

	last, err := workoutService.LastOfType(ctx, userID, "Push A")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, base.AddDate(0, 0, 2), last.Date)

	none, err := workoutService.LastOfType(ctx, userID, "Legs")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestWorkoutService_Summary(t *testing.T) {
	ctx := context.Background()
	workoutService := service.NewWorkoutService(&memWorkouts{}, telemetry.NewTestManager())
	userID := primitive.NewObjectID()

	logged, err := workoutService.Log(ctx, userID, service.WorkoutInput{
		Type:      "Push A",
		Exercises: domain.Exercises{{Name: "Bench Press", Sets: sets(100, 5, 110, 2)}},
	})
	require.NoError(t, err)

	summary, err := workoutService.Summary(ctx, userID, logged.ID)
	require.NoError(t, err)
	assert.Equal(t, "Push A Workout on SmartFit!\n\nBench Press: 2 sets (Best: 110)\n", summary)

	_, err = workoutService.Summary(ctx, primitive.NewObjectID(), logged.ID)
	assert.ErrorIs(t, err, service.ErrWorkoutNotFound)
}
