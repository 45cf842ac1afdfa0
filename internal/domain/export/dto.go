package export

import (
	"fmt"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ExportRequest struct {
	Year    int
	Month   int
	StoreID *string
}

func (r *ExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if r.StoreID != nil && !validator.IsValidUUID(*r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Period returns the first and last work date of the requested calendar month.
func (r *ExportRequest) Period() (time.Time, time.Time) {
	from := time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

// ========================================
// REPORT ROWS
// ========================================

// FlatHeaders are the columns of the attendance list sheet and the CSV file.
var FlatHeaders = []string{
	"日付", "スタッフ名", "フリガナ", "店舗", "雇用形態", "出勤時刻", "退勤時刻",
	"休憩（分）", "実働（分）", "実働（丸め・分）", "実働（時間）", "残業（分）", "残業（丸め・分）",
	"状態", "時給", "備考",
}

type FlatRow struct {
	Date                   string           `json:"date"`
	StaffName              string           `json:"staff_name"`
	StaffNameKana          string           `json:"staff_name_kana"`
	StoreName              string           `json:"store_name"`
	EmploymentType         string           `json:"employment_type"`
	ClockIn                string           `json:"clock_in"`
	ClockOut               string           `json:"clock_out"`
	BreakMinutes           int              `json:"break_minutes"`
	WorkingMinutes         int              `json:"working_minutes"`
	RoundedWorkingMinutes  int              `json:"rounded_working_minutes"`
	WorkingHours           string           `json:"working_hours"`
	OvertimeMinutes        int              `json:"overtime_minutes"`
	RoundedOvertimeMinutes int              `json:"rounded_overtime_minutes"`
	Status                 string           `json:"status"`
	HourlyRate             *decimal.Decimal `json:"hourly_rate"`
	Note                   string           `json:"note"`
}

func (r FlatRow) Values() []interface{} {
	return []interface{}{
		r.Date, r.StaffName, r.StaffNameKana, r.StoreName, r.EmploymentType, r.ClockIn, r.ClockOut,
		r.BreakMinutes, r.WorkingMinutes, r.RoundedWorkingMinutes, r.WorkingHours, r.OvertimeMinutes,
		r.RoundedOvertimeMinutes, r.Status, rateValue(r.HourlyRate), r.Note,
	}
}

func (r FlatRow) Strings() []string {
	values := r.Values()
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}

var SummaryHeaders = []string{
	"スタッフ名", "店舗", "雇用形態", "出勤日数", "総勤務時間（分）", "総勤務時間（時間）",
	"総休憩時間（分）", "総残業時間（分）", "時給", "概算給与",
}

type SummaryRow struct {
	StaffID              string           `json:"staff_id"`
	StaffName            string           `json:"staff_name"`
	StoreName            string           `json:"store_name"`
	EmploymentType       string           `json:"employment_type"`
	WorkedDays           int              `json:"worked_days"`
	TotalWorkingMinutes  int              `json:"total_working_minutes"`
	TotalWorkingHours    string           `json:"total_working_hours"`
	TotalBreakMinutes    int              `json:"total_break_minutes"`
	TotalOvertimeMinutes int              `json:"total_overtime_minutes"`
	HourlyRate           *decimal.Decimal `json:"hourly_rate"`
	EstimatedPay         *int64           `json:"estimated_pay"`
}

func (r SummaryRow) Values() []interface{} {
	var pay interface{} = ""
	if r.EstimatedPay != nil {
		pay = *r.EstimatedPay
	}
	return []interface{}{
		r.StaffName, r.StoreName, r.EmploymentType, r.WorkedDays, r.TotalWorkingMinutes,
		r.TotalWorkingHours, r.TotalBreakMinutes, r.TotalOvertimeMinutes, rateValue(r.HourlyRate), pay,
	}
}

var DetailHeaders = []string{
	"日付", "曜日", "出勤時刻", "退勤時刻", "休憩（分）", "実働（分）", "実働（時間）", "残業（分）", "状態", "備考",
}

type DetailRow struct {
	Date            string `json:"date"`
	Weekday         string `json:"weekday"`
	ClockIn         string `json:"clock_in"`
	ClockOut        string `json:"clock_out"`
	BreakMinutes    int    `json:"break_minutes"`
	WorkingMinutes  int    `json:"working_minutes"`
	WorkingHours    string `json:"working_hours"`
	OvertimeMinutes int    `json:"overtime_minutes"`
	Status          string `json:"status"`
	Note            string `json:"note"`
}

func (r DetailRow) Values() []interface{} {
	return []interface{}{
		r.Date, r.Weekday, r.ClockIn, r.ClockOut, r.BreakMinutes, r.WorkingMinutes,
		r.WorkingHours, r.OvertimeMinutes, r.Status, r.Note,
	}
}

// StaffDetail is one staff member's daily rows followed by a total line.
type StaffDetail struct {
	StaffID   string      `json:"staff_id"`
	StaffName string      `json:"staff_name"`
	Rows      []DetailRow `json:"rows"`
	Total     DetailRow   `json:"total"`
}

type Report struct {
	Year      int           `json:"year"`
	Month     int           `json:"month"`
	StoreName string        `json:"store_name"`
	Rows      []FlatRow     `json:"rows"`
	Summary   []SummaryRow  `json:"summary"`
	Details   []StaffDetail `json:"details"`
}

// FileName is the download name shared by the workbook and CSV renditions.
func (r *Report) FileName(ext string) string {
	return fmt.Sprintf("勤怠データ_%s_%d年%d月.%s", r.StoreName, r.Year, r.Month, ext)
}

func rateValue(rate *decimal.Decimal) interface{} {
	if rate == nil {
		return ""
	}
	return rate.InexactFloat64()
}
