package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"alcyxob/smartfit/internal/units"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quantity is a set weight or rep count exactly as the client sent it.
// Clients may send numbers, numeric strings or junk; the raw text is kept so
// the set reads back unchanged, and Float gives the value used for computation.
type Quantity string

// QuantityOf builds a Quantity from a number.
func QuantityOf(v float64) Quantity {
	return Quantity(strconv.FormatFloat(v, 'f', -1, 64))
}

// Float returns the numeric value, 0 when the quantity is missing or not numeric.
func (q Quantity) Float() float64 {
	v, ok := units.ParseNumber(string(q))
	if !ok {
		return 0
	}
	return v
}

func (q *Quantity) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*q = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = Quantity(s)
	default:
		*q = Quantity(raw)
	}
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if v, err := strconv.ParseFloat(string(q), 64); err == nil && !math.IsInf(v, 0) && !math.IsNaN(v) {
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	}
	return json.Marshal(string(q))
}

// Set is one logged set of an exercise.
type Set struct {
	Weight Quantity `bson:"weight" json:"weight"`
	Reps   Quantity `bson:"reps" json:"reps"`
}

// ExerciseEntry holds the ordered sets logged for one exercise.
type ExerciseEntry struct {
	Name string `bson:"name" json:"name"`
	Sets []Set  `bson:"sets" json:"sets"`
}

// Exercises is the ordered exercise list of a session. In JSON it is an object
// keyed by exercise name ({"Bench": [{"weight":100,"reps":5}]}); key order is
// kept both ways. The array form [{"name":..,"sets":..}] is accepted as well.
type Exercises []ExerciseEntry

// Names returns the exercise names in logging order.
func (e Exercises) Names() []string {
	names := make([]string, 0, len(e))
	for _, entry := range e {
		names = append(names, entry.Name)
	}
	return names
}

// SetsFor returns the sets logged for name, or nil.
func (e Exercises) SetsFor(name string) []Set {
	for _, entry := range e {
		if entry.Name == name {
			return entry.Sets
		}
	}
	return nil
}

func (e *Exercises) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*e = nil
		return nil
	}

	if trimmed[0] == '[' {
		var entries []ExerciseEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		*e = entries
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return err
	}
	out := Exercises{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return errors.New("exercise name must be a string")
		}
		var sets []Set
		if err := dec.Decode(&sets); err != nil {
			return err
		}
		out = append(out, ExerciseEntry{Name: name, Sets: sets})
	}
	*e = out
	return nil
}

func (e Exercises) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, entry := range e {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(entry.Name)
		if err != nil {
			return nil, err
		}
		sets := entry.Sets
		if sets == nil {
			sets = []Set{}
		}
		setsJSON, err := json.Marshal(sets)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(setsJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WorkoutLog is a completed training session. Type is the routine name or the
// muscle-group category the session was logged under.
type WorkoutLog struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID  `bson:"userId" json:"userId"`
	Date      time.Time           `bson:"date" json:"date"`
	Type      string              `bson:"type" json:"type"`
	Exercises Exercises           `bson:"exercises" json:"exercises"`
	RoutineID *primitive.ObjectID `bson:"routineId,omitempty" json:"routineId,omitempty"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// RecordedAt returns the session timestamp.
func (w WorkoutLog) RecordedAt() time.Time {
	return w.Date
}
