package fitness

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"alcyxob/smartfit/internal/domain"
)

// Dated is a record with a point in time. A zero time means the date could
// not be read.
type Dated interface {
	RecordedAt() time.Time
}

// DayDated is implemented by records that may carry only a calendar day.
type DayDated interface {
	DayOnly() bool
}

// WindowByDays keeps the records dated at or after now minus days. Records
// that only carry a calendar day are kept from the start of that UTC day, so
// the boundary day counts. Input order is preserved. Records without a
// readable date are dropped.
func WindowByDays[T Dated](records []T, days int, now time.Time) []T {
	cutoff := now.UTC().AddDate(0, 0, -days)
	dayCutoff := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)

	out := make([]T, 0, len(records))
	for _, r := range records {
		at := r.RecordedAt()
		if at.IsZero() {
			continue
		}
		limit := cutoff
		if d, ok := any(r).(DayDated); ok && d.DayOnly() {
			limit = dayCutoff
		}
		if !at.Before(limit) {
			out = append(out, r)
		}
	}
	return out
}

// BestSet returns the set with the heaviest weight, the first one on ties.
// Non-numeric weights compare as 0.
func BestSet(sets []domain.Set) *domain.Set {
	if len(sets) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(sets); i++ {
		if sets[i].Weight.Float() > sets[best].Weight.Float() {
			best = i
		}
	}
	s := sets[best]
	return &s
}

// LastSessionOfType returns the first session of the given type in a
// newest-first history.
func LastSessionOfType(history []domain.WorkoutLog, typeLabel string) *domain.WorkoutLog {
	for i := range history {
		if history[i].Type == typeLabel {
			w := history[i]
			return &w
		}
	}
	return nil
}

// SessionSummary renders the shareable text for a session.
func SessionSummary(log domain.WorkoutLog) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Workout on SmartFit!\n\n", log.Type)
	for _, entry := range log.Exercises {
		if len(entry.Sets) == 0 {
			continue
		}
		best := BestSet(entry.Sets)
		fmt.Fprintf(&b, "%s: %d sets (Best: %s)\n", entry.Name, len(entry.Sets),
			strconv.FormatFloat(best.Weight.Float(), 'f', -1, 64))
	}
	return b.String()
}
