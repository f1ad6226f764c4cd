// Package fitness derives metrics from weight and workout records and slices
// record history into trailing windows. Everything here is pure.
package fitness

import (
	"math"
	"sort"
	"strconv"
	"time"

	"alcyxob/smartfit/internal/domain"
)

// CalculateBMI returns weight / (height in meters)^2 with one decimal, or "0"
// when either input is missing.
func CalculateBMI(weightKg, heightCm float64) string {
	if weightKg <= 0 || heightCm <= 0 || math.IsNaN(weightKg) || math.IsNaN(heightCm) {
		return "0"
	}
	meters := heightCm / 100
	bmi := weightKg / (meters * meters)
	if math.IsInf(bmi, 0) {
		return "0"
	}
	return strconv.FormatFloat(bmi, 'f', 1, 64)
}

// SessionVolume sums weight*reps over every set of the session. Non-numeric
// weights or reps count as 0.
func SessionVolume(log domain.WorkoutLog) float64 {
	var total float64
	for _, entry := range log.Exercises {
		for _, set := range entry.Sets {
			total += set.Weight.Float() * set.Reps.Float()
		}
	}
	return total
}

// Stats are the body metrics shown on the profile, in storage units.
type Stats struct {
	WeightKg     float64 `json:"weightKg"`
	HeightCm     float64 `json:"heightCm"`
	GoalWeightKg float64 `json:"goalWeightKg"`
}

// CurrentStats picks the current weight from the profile first, then the
// newest history entry. history is ordered oldest first.
func CurrentStats(profile *domain.Profile, history []domain.WeightEntry) Stats {
	var stats Stats
	if profile != nil {
		stats.WeightKg = profile.CurrentWeightKg
		stats.HeightCm = profile.HeightCm
		stats.GoalWeightKg = profile.GoalWeightKg
	}
	if stats.WeightKg == 0 && len(history) > 0 {
		stats.WeightKg = history[len(history)-1].Weight
	}
	return stats
}

// VolumePoint is one session on the volume chart.
type VolumePoint struct {
	Date   time.Time `json:"date"`
	Volume float64   `json:"volume"`
	Type   string    `json:"type"`
}

// VolumeSeries returns the most recent limit sessions as chart points, oldest
// first. A limit <= 0 keeps every session.
func VolumeSeries(logs []domain.WorkoutLog, limit int) []VolumePoint {
	sorted := make([]domain.WorkoutLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	points := make([]VolumePoint, 0, len(sorted))
	for _, log := range sorted {
		points = append(points, VolumePoint{
			Date:   log.Date,
			Volume: SessionVolume(log),
			Type:   log.Type,
		})
	}
	return points
}
