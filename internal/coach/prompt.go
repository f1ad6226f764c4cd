// Package coach turns a user's recent history into a coaching prompt and
// sends it to a text-generation backend.
package coach

import (
	"fmt"
	"strings"
	"time"

	"alcyxob/smartfit/internal/domain"
	"alcyxob/smartfit/internal/fitness"
	"alcyxob/smartfit/internal/units"
)

// PromptInput is everything a report prompt is built from. Weights are ordered
// oldest first and Workouts newest first, the order the stores return them.
type PromptInput struct {
	ReportType domain.ReportType
	Profile    *domain.Profile
	Weights    []domain.WeightEntry
	Workouts   []domain.WorkoutLog
	Previous   *domain.Report
	WeightUnit units.WeightUnit
	Now        time.Time
}

// BuildSummary renders the data block of the prompt. The records passed in
// are expected to be windowed to the last days already.
func BuildSummary(weights []domain.WeightEntry, workouts []domain.WorkoutLog, profile *domain.Profile, days int, unit units.WeightUnit) string {
	name := "Athlete"
	schedule := "Flexible"
	if profile != nil {
		if profile.DisplayName != "" {
			name = profile.DisplayName
		}
		if len(profile.WorkoutDays) > 0 {
			schedule = strings.Join(profile.WorkoutDays, ", ")
		}
	}

	latestWeight := "No recent data"
	if len(weights) > 0 {
		kg := weights[len(weights)-1].Weight
		latestWeight = units.FormatWeight(units.ToDisplayWeight(kg, unit)) + units.WeightLabel(unit)
	}

	latestWorkout := "None"
	if len(workouts) > 0 {
		latestWorkout = workouts[0].Type
	}

	lines := []string{
		"User Name: " + name,
		"Scheduled Workout Days: " + schedule,
		fmt.Sprintf("Duration: Last %d Days", days),
		fmt.Sprintf("Weight Entries: %d", len(weights)),
		fmt.Sprintf("Workouts Logged: %d", len(workouts)),
		"Latest Weight: " + latestWeight,
		"Latest Workout: " + latestWorkout,
	}
	return strings.Join(lines, "\n")
}

// BuildInstruction returns the goal text for a report type. Unknown types get
// the monthly instruction.
func BuildInstruction(reportType domain.ReportType) string {
	switch reportType {
	case domain.ReportDaily:
		return "Critique today's session (if any) and the most recent weight fluctuation. Be quick and punchy."
	case domain.ReportWeekly:
		return "Analyze volume trends and consistency over the last week. Give 3 actionable tips for next week."
	default:
		return "Analyze hypertrophy progress and weight trend over the month. Look for long-term consistency issues or wins."
	}
}

// BuildPrompt windows the history to the report period and renders the full
// system prompt.
func BuildPrompt(in PromptInput) string {
	days := in.ReportType.Days()
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	weights := fitness.WindowByDays(in.Weights, days, now)
	workouts := fitness.WindowByDays(in.Workouts, days, now)

	addressee := "the athlete"
	if in.Profile != nil && in.Profile.DisplayName != "" {
		addressee = in.Profile.DisplayName
	}

	previous := "None"
	if in.Previous != nil && in.Previous.Text != "" {
		previous = in.Previous.Text
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an elite fitness coach addressing %s. Analyze their data for a %s check-in.\n\n", addressee, in.ReportType)
	b.WriteString("Data Summary:\n")
	b.WriteString(BuildSummary(weights, workouts, in.Profile, days, in.WeightUnit))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Previous Report Context: %s\n\n", previous)
	b.WriteString("Goal:\n")
	b.WriteString(BuildInstruction(in.ReportType))
	b.WriteString("\nBe harsh but encouraging. Call them by name if provided. Keep it concise (under 200 words).\n\n")
	b.WriteString("format: Markdown.")
	return b.String()
}
