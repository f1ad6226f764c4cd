package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the calendar-day format used for weight entry dates.
const DateLayout = "2006-01-02"

// WeightEntry is a single body-weight measurement. Weight is always kilograms.
// At most one entry exists per user and day.
type WeightEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Weight    float64            `bson:"weight" json:"weight"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordedAt returns the entry's day as UTC midnight, or the zero time
// when the stored date cannot be parsed.
func (w WeightEntry) RecordedAt() time.Time {
	if t, err := time.Parse(DateLayout, w.Date); err == nil {
		return t
	}
	// older clients stored full timestamps
	if t, err := time.Parse(time.RFC3339, w.Date); err == nil {
		return t
	}
	return time.Time{}
}

// DayOnly reports whether the entry is dated by calendar day rather than by
// a full timestamp.
func (w WeightEntry) DayOnly() bool {
	_, err := time.Parse(DateLayout, w.Date)
	return err == nil
}

// DayOf formats t as a weight entry date.
func DayOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
