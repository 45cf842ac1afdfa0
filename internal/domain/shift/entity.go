package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftTemplate is a reusable shift kind such as early, late or paid leave.
type ShiftTemplate struct {
	ID           string
	StoreID      string
	Code         string
	Name         string
	ShortLabel   string
	Color        string
	StartTime    *string // HH:MM:SS
	EndTime      *string
	BreakMinutes int
	WorkingHours decimal.Decimal
	IsPaidLeave  bool
	IsAbsent     bool
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StartLabel is the HH:MM start time printed in grid cells, or "" when unset.
func (t *ShiftTemplate) StartLabel() string {
	if t == nil || t.StartTime == nil || len(*t.StartTime) < 5 {
		return ""
	}
	return (*t.StartTime)[:5]
}

// Shift assigns a template to one staff member on one work date.
type Shift struct {
	ID                 string
	StaffID            string
	StoreID            string
	WorkDate           time.Time
	ShiftTemplateID    *string
	CustomStartTime    *string
	CustomEndTime      *string
	CustomBreakMinutes *int
	Note               *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	Template *ShiftTemplate
}

// StaffSummary totals one staff member's assigned shifts over a period.
type StaffSummary struct {
	TotalScheduledHours decimal.Decimal
	TotalWorkedDays     int
	TotalPaidLeaveDays  int
}
