package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Routine is a user-defined schedule entry. An empty Exercises list means the
// session falls back to a split template.
type Routine struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Name         string             `bson:"name" json:"name"`
	ScheduleDays []string           `bson:"scheduleDays" json:"scheduleDays"`
	Exercises    []string           `bson:"exercises" json:"exercises"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
