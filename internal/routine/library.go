package routine

import (
	"sort"
	"time"

	"alcyxob/smartfit/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Library maps a split template name to its exercise list.
type Library map[string][]string

// Names returns the template names in stable order.
func (l Library) Names() []string {
	names := make([]string, 0, len(l))
	for name := range l {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultLibrary = Library{
	"Push A": {"Barbell Bench Press", "Overhead Press", "Incline Dumbbell Press", "Lateral Raises", "Tricep Pushdowns"},
	"Push B": {"Overhead Press", "Weighted Dips", "Dumbbell Shoulder Press", "Cable Flyes", "Skullcrushers"},
	"Pull A": {"Deadlift", "Pull-Ups", "Barbell Rows", "Face Pulls", "Bicep Curls"},
	"Pull B": {"Barbell Rows", "Chin-Ups", "Lat Pulldowns", "Rear Delt Flyes", "Hammer Curls"},
	"Legs A": {"Barbell Squat", "Romanian Deadlift", "Leg Press", "Leg Extensions", "Calf Raises"},
	"Legs B": {"Front Squat", "Lunges", "Leg Curls", "Hack Squat", "Seated Calf Raises"},
}

// DefaultLibrary returns a copy of the built-in split templates.
func DefaultLibrary() Library {
	out := make(Library, len(defaultLibrary))
	for name, exercises := range defaultLibrary {
		out[name] = append([]string(nil), exercises...)
	}
	return out
}

// SplitOptions lists the built-in split template names.
func SplitOptions() []string {
	return defaultLibrary.Names()
}

// Category is one muscle group of the exercise catalog.
type Category struct {
	Name      string
	Exercises []string
}

// DefaultCatalog is the exercise catalog seeded into an empty store, in
// display order.
func DefaultCatalog() []Category {
	return []Category{
		{Name: "Chest", Exercises: []string{
			"Barbell Bench Press", "Incline Dumbbell Press", "Dumbbell Flyes", "Dumbbell Pullover", "Cable Crossovers",
			"Push-Ups", "Machine Chest Press", "Incline Chest Press machine", "Incline Barbell Press", "Decline Bench Press",
			"Pec Deck Fly", "Dips (Chest Focus)", "Smith Machine Bench Press", "Landmine Press",
			"Svend Press", "Plate Press", "Floor Press",
		}},
		{Name: "Back", Exercises: []string{
			"Deadlift", "Pull-Ups", "Barbell Rows", "Lat Pulldowns", "Seated Cable Rows",
			"Face Pulls", "T-Bar Rows", "Single Arm Dumbbell Row", "Chin-Ups", "Straight Arm Pulldowns",
			"Rack Pulls", "Meadows Row", "Renegade Row", "Back Extensions", "Good Mornings",
		}},
		{Name: "Shoulders", Exercises: []string{
			"Overhead Press (OHP)", "Seated Dumbbell Press", "Lateral Raises", "Front Raises", "Reverse Flyes",
			"Arnold Press", "Upright Rows", "Face Pulls", "Cable Lateral Raises", "Shrugs",
			"Push Press", "Behind The Neck Press", "Egyptian Lateral Raises", "Lu Raises", "Military Press",
		}},
		{Name: "Arms", Exercises: []string{
			"Barbell Curl", "Dumbbell Curl", "Hammer Curl", "Preacher Curl", "Concentration Curl",
			"Tricep Pushdowns", "Skullcrushers", "Overhead Tricep Extension", "Close Grip Bench Press", "Dips",
			"Cable Curls", "Spider Curls", "Kickbacks", "Waiters Curl", "Reverse Grip Pushdown",
		}},
		{Name: "Legs", Exercises: []string{
			"Barbell Squat", "Leg Press", "Romanian Deadlift", "Leg Extensions", "Lying Leg Curls",
			"Bulgarian Split Squat", "Lunges", "Hack Squat", "Calf Raises", "Front Squat",
			"Seated Leg Curls", "Hip Thrusts", "Goblet Squat", "Sumo Deadlift", "Step Ups",
		}},
		{Name: "Cardio", Exercises: []string{
			"Treadmill Run", "Cycling", "Elliptical", "Rowing Machine", "Stair Climber",
			"Jump Rope", "HIIT", "Swimming", "Walking", "Sprinting",
			"Battle Ropes", "Burpees", "Box Jumps", "Mountain Climbers", "Kettlebell Swings",
		}},
	}
}

// CatalogExercises flattens the catalog into records ready for insertion.
func CatalogExercises(catalog []Category, now time.Time) []domain.Exercise {
	var out []domain.Exercise
	for _, c := range catalog {
		for _, name := range c.Exercises {
			out = append(out, domain.Exercise{Name: name, Category: c.Name, CreatedAt: now})
		}
	}
	return out
}

// DefaultRoutines is the push/pull/legs week offered during onboarding.
func DefaultRoutines(userID primitive.ObjectID) []domain.Routine {
	return []domain.Routine{
		{UserID: userID, Name: "Push Day", ScheduleDays: []string{"Monday"}, Exercises: []string{}},
		{UserID: userID, Name: "Pull Day", ScheduleDays: []string{"Tuesday"}, Exercises: []string{}},
		{UserID: userID, Name: "Legs Day", ScheduleDays: []string{"Wednesday"}, Exercises: []string{}},
	}
}

// CustomRoutines creates one empty routine per chosen training day.
func CustomRoutines(userID primitive.ObjectID, days []string) []domain.Routine {
	out := make([]domain.Routine, 0, len(days))
	for _, day := range days {
		out = append(out, domain.Routine{
			UserID:       userID,
			Name:         "Workout (" + day + ")",
			ScheduleDays: []string{day},
			Exercises:    []string{},
		})
	}
	return out
}
