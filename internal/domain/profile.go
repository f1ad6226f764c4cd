package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile holds one user's biometrics and schedule. Heights are centimeters and
// weights kilograms. The document _id is the owning user's id.
type Profile struct {
	UserID          primitive.ObjectID `bson:"_id" json:"userId"`
	DisplayName     string             `bson:"displayName,omitempty" json:"displayName,omitempty"`
	HeightCm        float64            `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	CurrentWeightKg float64            `bson:"currentWeightKg,omitempty" json:"currentWeightKg,omitempty"`
	GoalWeightKg    float64            `bson:"goalWeightKg,omitempty" json:"goalWeightKg,omitempty"`
	WorkoutDays     []string           `bson:"workoutDays,omitempty" json:"workoutDays,omitempty"`
	AvatarKey       string             `bson:"avatarKey,omitempty" json:"avatarKey,omitempty"`
	Gender          string             `bson:"gender,omitempty" json:"gender,omitempty"`
	BirthDate       string             `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	ActivityLevel   string             `bson:"activityLevel,omitempty" json:"activityLevel,omitempty"`
	PrimaryGoal     string             `bson:"primaryGoal,omitempty" json:"primaryGoal,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
