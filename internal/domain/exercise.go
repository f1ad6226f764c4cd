// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is an entry of the shared exercise catalog, grouped by muscle category
// (e.g. "Chest", "Legs", "Cardio").
type Exercise struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
