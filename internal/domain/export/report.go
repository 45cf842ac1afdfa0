package export

import (
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
)

// Build turns records, ordered by work date then staff name, into the three
// row sets of the monthly report. units maps a store ID to the rounding unit
// of its policy; stores without an entry are not rounded. Staff appear in
// Summary and Details in order of their first record.
func Build(records []Record, loc *time.Location, units map[string]policy.RoundingUnit) Report {
	if loc == nil {
		loc = time.UTC
	}

	report := Report{
		Rows:    make([]FlatRow, 0, len(records)),
		Summary: []SummaryRow{},
		Details: []StaffDetail{},
	}
	summaryIdx := make(map[string]int)

	for i := range records {
		r := &records[i]
		unit := units[r.StoreID]

		report.Rows = append(report.Rows, flatRow(r, loc, unit))

		idx, seen := summaryIdx[r.StaffID]
		if !seen {
			idx = len(report.Summary)
			summaryIdx[r.StaffID] = idx
			report.Summary = append(report.Summary, SummaryRow{
				StaffID:        r.StaffID,
				StaffName:      r.staffName(),
				StoreName:      r.storeName(),
				EmploymentType: r.EmploymentType.Label(),
				HourlyRate:     r.HourlyRate,
			})
			report.Details = append(report.Details, StaffDetail{
				StaffID:   r.StaffID,
				StaffName: r.staffName(),
				Rows:      []DetailRow{},
			})
		}

		sum := &report.Summary[idx]
		if r.Status == attendance.StatusPresent {
			sum.WorkedDays++
		}
		sum.TotalWorkingMinutes += r.WorkingMinutes
		sum.TotalBreakMinutes += r.BreakMinutes
		sum.TotalOvertimeMinutes += r.OvertimeMinutes

		detail := &report.Details[idx]
		detail.Rows = append(detail.Rows, detailRow(r, loc))
	}

	for i := range report.Summary {
		sum := &report.Summary[i]
		sum.TotalWorkingHours = ToDecimalHours(sum.TotalWorkingMinutes)
		sum.EstimatedPay = EstimatedPay(sum.TotalWorkingMinutes, sum.HourlyRate)

		report.Details[i].Total = DetailRow{
			Date:            "合計",
			BreakMinutes:    sum.TotalBreakMinutes,
			WorkingMinutes:  sum.TotalWorkingMinutes,
			WorkingHours:    sum.TotalWorkingHours,
			OvertimeMinutes: sum.TotalOvertimeMinutes,
			Status:          fmt.Sprintf("出勤%d日", sum.WorkedDays),
		}
	}

	return report
}

func flatRow(r *Record, loc *time.Location, unit policy.RoundingUnit) FlatRow {
	kana := ""
	if r.StaffNameKana != nil {
		kana = *r.StaffNameKana
	}

	return FlatRow{
		Date:                   r.WorkDate.Format("2006-01-02"),
		StaffName:              r.staffName(),
		StaffNameKana:          kana,
		StoreName:              r.storeName(),
		EmploymentType:         r.EmploymentType.Label(),
		ClockIn:                FormatClock(r.ClockIn, loc),
		ClockOut:               FormatClock(r.ClockOut, loc),
		BreakMinutes:           r.BreakMinutes,
		WorkingMinutes:         r.WorkingMinutes,
		RoundedWorkingMinutes:  round(unit, r.WorkingMinutes),
		WorkingHours:           ToDecimalHours(r.WorkingMinutes),
		OvertimeMinutes:        r.OvertimeMinutes,
		RoundedOvertimeMinutes: round(unit, r.OvertimeMinutes),
		Status:                 r.Status.Label(),
		HourlyRate:             r.HourlyRate,
		Note:                   noteText(r.Note),
	}
}

func detailRow(r *Record, loc *time.Location) DetailRow {
	weekday := shift.WeekdayLabel(r.WorkDate)
	return DetailRow{
		Date:            fmt.Sprintf("%s (%s)", r.WorkDate.Format("01/02"), weekday),
		Weekday:         weekday,
		ClockIn:         FormatClock(r.ClockIn, loc),
		ClockOut:        FormatClock(r.ClockOut, loc),
		BreakMinutes:    r.BreakMinutes,
		WorkingMinutes:  r.WorkingMinutes,
		WorkingHours:    ToDecimalHours(r.WorkingMinutes),
		OvertimeMinutes: r.OvertimeMinutes,
		Status:          r.Status.Label(),
		Note:            noteText(r.Note),
	}
}

// round applies unit, leaving minutes untouched when the store has no valid unit.
func round(unit policy.RoundingUnit, minutes int) int {
	if unit == 0 {
		return minutes
	}
	rounded, err := unit.Round(minutes)
	if err != nil {
		return minutes
	}
	return rounded
}

func noteText(note *string) string {
	if note == nil {
		return ""
	}
	return *note
}
