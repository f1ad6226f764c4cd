package service_test

import (
	"context"
	"testing"

	"alcyxob/smartfit/internal/routine"
	"alcyxob/smartfit/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRoutineService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	routineService := service.NewRoutineService(&memRoutines{}, nil)
	userID := primitive.NewObjectID()

	created, err := routineService.Create(ctx, userID, " Upper ", []string{"Monday"}, []string{"Bench Press"})
	require.NoError(t, err)
	assert.Equal(t, "Upper", created.Name)

	updated, err := routineService.Update(ctx, userID, created.ID, "", nil, []string{"Overhead Press"})
	require.NoError(t, err)
	assert.Equal(t, "Upper", updated.Name)
	assert.Equal(t, []string{"Monday"}, updated.ScheduleDays)
	assert.Equal(t, []string{"Overhead Press"}, updated.Exercises)

	_, err = routineService.Update(ctx, primitive.NewObjectID(), created.ID, "Stolen", nil, nil)
	assert.ErrorIs(t, err, service.ErrRoutineNotFound)

	_, err = routineService.Update(ctx, userID, created.ID, "", []string{"Someday"}, nil)
	assert.ErrorIs(t, err, service.ErrInvalidScheduleDays)
}

func TestRoutineService_CreateValidation(t *testing.T) {
	routineService := service.NewRoutineService(&memRoutines{}, nil)

	_, err := routineService.Create(context.Background(), primitive.NewObjectID(), "  ", nil, nil)
	assert.ErrorIs(t, err, service.ErrInvalidRoutine)
}

func TestRoutineService_SessionExercises(t *testing.T) {
	ctx := context.Background()
	routineService := service.NewRoutineService(&memRoutines{}, nil)
	userID := primitive.NewObjectID()
	library := routine.DefaultLibrary()

	empty, err := routineService.Create(ctx, userID, "Free", nil, []string{})
	require.NoError(t, err)
	exercises, err := routineService.SessionExercises(ctx, userID, empty.ID, "Push A")
	require.NoError(t, err)
	assert.Equal(t, library["Push A"], exercises)

	custom, err := routineService.Create(ctx, userID, "Arms", nil, []string{"Curl"})
	require.NoError(t, err)
	exercises, err = routineService.SessionExercises(ctx, userID, custom.ID, "Push A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Curl"}, exercises)

	exercises, err = routineService.SessionExercises(ctx, userID, primitive.NilObjectID, "Legs B")
	require.NoError(t, err)
	assert.Equal(t, library["Legs B"], exercises)

	_, err = routineService.SessionExercises(ctx, userID, primitive.NewObjectID(), "Push A")
	assert.ErrorIs(t, err, service.ErrRoutineNotFound)
}

func TestRoutineService_SeedOnboarding(t *testing.T) {
	ctx := context.Background()
	routines := &memRoutines{}
	routineService := service.NewRoutineService(routines, nil)
	userID := primitive.NewObjectID()

	seeded, err := routineService.SeedOnboarding(ctx, userID, service.RoutineTypeDefault, nil)
	require.NoError(t, err)
	require.Len(t, seeded, 3)
	assert.Equal(t, "Push Day", seeded[0].Name)

	seeded, err = routineService.SeedOnboarding(ctx, userID, service.RoutineTypeCustom, []string{"Tuesday", "Friday"})
	require.NoError(t, err)
	require.Len(t, seeded, 2)
	assert.Equal(t, "Workout (Friday)", seeded[1].Name)

	stored, err := routineService.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored, 5)

	_, err = routineService.SeedOnboarding(ctx, userID, service.RoutineTypeCustom, nil)
	assert.ErrorIs(t, err, service.ErrNoTrainingDays)
	_, err = routineService.SeedOnboarding(ctx, userID, "bro-split", nil)
	assert.ErrorIs(t, err, service.ErrInvalidRoutineType)
}
