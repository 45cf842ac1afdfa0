package shift

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Weekday labels indexed by time.Weekday.
var weekdayLabels = [...]string{"日", "月", "火", "水", "木", "金", "土"}

func WeekdayLabel(d time.Time) string {
	return weekdayLabels[d.Weekday()]
}

// DateKey formats a work date as YYYY-MM-DD.
func DateKey(d time.Time) string {
	return d.Format(dateLayout)
}

// BuildPeriod returns every date from (year, month, startDay) up to the day
// before (year, month+1, startDay), as UTC midnights. A startDay past the end
// of the month rolls over into the next month the way time.Date normalises it.
func BuildPeriod(year int, month time.Month, startDay int) []time.Time {
	start := time.Date(year, month, startDay, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, month+1, startDay-1, 0, 0, 0, 0, time.UTC)

	dates := make([]time.Time, 0, 31)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// Summarize folds the shifts assigned on dates into a StaffSummary.
// shiftsByDate is keyed by DateKey. A shift's joined Template wins over the templates lookup.
func Summarize(dates []time.Time, shiftsByDate map[string]Shift, templates map[string]ShiftTemplate) StaffSummary {
	summary := StaffSummary{TotalScheduledHours: decimal.Zero}

	for _, d := range dates {
		s, ok := shiftsByDate[DateKey(d)]
		if !ok {
			continue
		}
		tmpl := resolveTemplate(s, templates)
		if tmpl == nil {
			continue
		}

		switch {
		case tmpl.IsPaidLeave:
			summary.TotalPaidLeaveDays++
		case !tmpl.IsAbsent:
			summary.TotalWorkedDays++
			summary.TotalScheduledHours = summary.TotalScheduledHours.Add(tmpl.WorkingHours)
		}
	}

	return summary
}

func resolveTemplate(s Shift, templates map[string]ShiftTemplate) *ShiftTemplate {
	if s.Template != nil {
		return s.Template
	}
	if s.ShiftTemplateID == nil {
		return nil
	}
	if t, ok := templates[*s.ShiftTemplateID]; ok {
		return &t
	}
	return nil
}

// StaffGroup is one employment type bucket of the shift grid.
type StaffGroup struct {
	EmploymentType staff.EmploymentType
	Members        []staff.Staff
}

// GroupByEmploymentType splits members into the full time, part time and
// contractor buckets, always returning all three in that order. Input order
// is kept inside each bucket.
func GroupByEmploymentType(members []staff.Staff) []StaffGroup {
	groups := make([]StaffGroup, len(staff.EmploymentTypes))
	index := make(map[staff.EmploymentType]int, len(staff.EmploymentTypes))
	for i, et := range staff.EmploymentTypes {
		groups[i] = StaffGroup{EmploymentType: et, Members: []staff.Staff{}}
		index[et] = i
	}

	for _, m := range members {
		i, ok := index[m.EmploymentType]
		if !ok {
			continue
		}
		groups[i].Members = append(groups[i].Members, m)
	}
	return groups
}
