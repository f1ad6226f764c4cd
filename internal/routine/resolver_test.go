package routine

import (
	"testing"
	"time"

	"alcyxob/smartfit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestResolveExercises(t *testing.T) {
	lib := DefaultLibrary()

	withExercises := &domain.Routine{Exercises: []string{"Squat", "Squat", "Lunges"}}
	assert.Equal(t, []string{"Squat", "Squat", "Lunges"}, ResolveExercises(withExercises, lib, "Push A"))

	empty := &domain.Routine{Name: "Push Day"}
	got := ResolveExercises(empty, lib, "Push A")
	assert.Equal(t, lib["Push A"], got)

	assert.Equal(t, []string{}, ResolveExercises(nil, lib, "Arms Z"))
	assert.Equal(t, []string{}, ResolveExercises(nil, lib, ""))
	assert.Equal(t, []string{"Deadlift", "Pull-Ups", "Barbell Rows", "Face Pulls", "Bicep Curls"},
		ResolveExercises(nil, lib, "Pull A"))
}

func TestResolveExercises_DoesNotAliasLibrary(t *testing.T) {
	lib := DefaultLibrary()
	got := ResolveExercises(nil, lib, "Legs A")
	got[0] = "changed"
	assert.Equal(t, "Barbell Squat", lib["Legs A"][0])
	assert.Equal(t, "Barbell Squat", DefaultLibrary()["Legs A"][0])
}

func TestSplitOptions(t *testing.T) {
	assert.Equal(t, []string{"Legs A", "Legs B", "Pull A", "Pull B", "Push A", "Push B"}, SplitOptions())
}

func TestDefaultRoutines(t *testing.T) {
	userID := primitive.NewObjectID()
	routines := DefaultRoutines(userID)
	require.Len(t, routines, 3)
	assert.Equal(t, "Push Day", routines[0].Name)
	assert.Equal(t, []string{"Monday"}, routines[0].ScheduleDays)
	assert.Equal(t, "Legs Day", routines[2].Name)
	assert.Equal(t, []string{"Wednesday"}, routines[2].ScheduleDays)
	for _, r := range routines {
		assert.Equal(t, userID, r.UserID)
		assert.Empty(t, r.Exercises)
	}
}

func TestCustomRoutines(t *testing.T) {
	userID := primitive.NewObjectID()
	routines := CustomRoutines(userID, []string{"Monday", "Friday"})
	require.Len(t, routines, 2)
	assert.Equal(t, "Workout (Monday)", routines[0].Name)
	assert.Equal(t, "Workout (Friday)", routines[1].Name)
	assert.Equal(t, []string{"Friday"}, routines[1].ScheduleDays)

	assert.Empty(t, CustomRoutines(userID, nil))
}

func TestCatalogExercises(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	exercises := CatalogExercises(DefaultCatalog(), now)
	require.Len(t, exercises, 92)
	assert.Equal(t, "Barbell Bench Press", exercises[0].Name)
	assert.Equal(t, "Chest", exercises[0].Category)
	assert.Equal(t, "Cardio", exercises[len(exercises)-1].Category)
	assert.Equal(t, now, exercises[len(exercises)-1].CreatedAt)
}
