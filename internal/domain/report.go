package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportType selects the trailing window and instruction of a coaching report.
type ReportType string

const (
	ReportDaily   ReportType = "daily"
	ReportWeekly  ReportType = "weekly"
	ReportMonthly ReportType = "monthly"
)

// Valid reports whether t is one of the known report types.
func (t ReportType) Valid() bool {
	switch t {
	case ReportDaily, ReportWeekly, ReportMonthly:
		return true
	}
	return false
}

// Days is the trailing window length in days.
func (t ReportType) Days() int {
	switch t {
	case ReportDaily:
		return 1
	case ReportMonthly:
		return 30
	default:
		return 7
	}
}

// Report is a generated coaching report. Reports are append-only.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	ReportType ReportType         `bson:"reportType" json:"reportType"`
	Text       string             `bson:"text" json:"text"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
