package shift

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// TEMPLATE DTOs
// ========================================

type ShiftTemplateResponse struct {
	ID           string          `json:"id"`
	StoreID      string          `json:"store_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	ShortLabel   string          `json:"short_label"`
	Color        string          `json:"color"`
	StartTime    *string         `json:"start_time,omitempty"`
	EndTime      *string         `json:"end_time,omitempty"`
	BreakMinutes int             `json:"break_minutes"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	IsPaidLeave  bool            `json:"is_paid_leave"`
	IsAbsent     bool            `json:"is_absent"`
	DisplayOrder int             `json:"display_order"`
	IsActive     bool            `json:"is_active"`
}

func NewShiftTemplateResponse(t ShiftTemplate) ShiftTemplateResponse {
	return ShiftTemplateResponse{
		ID:           t.ID,
		StoreID:      t.StoreID,
		Code:         t.Code,
		Name:         t.Name,
		ShortLabel:   t.ShortLabel,
		Color:        t.Color,
		StartTime:    t.StartTime,
		EndTime:      t.EndTime,
		BreakMinutes: t.BreakMinutes,
		WorkingHours: t.WorkingHours,
		IsPaidLeave:  t.IsPaidLeave,
		IsAbsent:     t.IsAbsent,
		DisplayOrder: t.DisplayOrder,
		IsActive:     t.IsActive,
	}
}

// TemplateFields is the editable part of a shift template.
type TemplateFields struct {
	Code         string          `json:"code" validate:"required,max=20"`
	Name         string          `json:"name" validate:"required,max=50"`
	ShortLabel   string          `json:"short_label" validate:"required,max=4"`
	Color        string          `json:"color" validate:"omitempty,hexcolor"`
	StartTime    *string         `json:"start_time,omitempty"`
	EndTime      *string         `json:"end_time,omitempty"`
	BreakMinutes int             `json:"break_minutes" validate:"gte=0"`
	WorkingHours decimal.Decimal `json:"working_hours"`
	IsPaidLeave  bool            `json:"is_paid_leave"`
	IsAbsent     bool            `json:"is_absent"`
	DisplayOrder int             `json:"display_order" validate:"gte=0"`
}

// checks covers the rules struct tags cannot express.
func (f *TemplateFields) checks() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if f.StartTime != nil && *f.StartTime != "" && !validator.IsValidClock(*f.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be in HH:MM format"})
	}
	if f.EndTime != nil && *f.EndTime != "" && !validator.IsValidClock(*f.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be in HH:MM format"})
	}
	if f.WorkingHours.IsNegative() || f.WorkingHours.GreaterThan(decimal.NewFromInt(24)) {
		errs = append(errs, validator.ValidationError{Field: "working_hours", Message: "working_hours must be between 0 and 24"})
	}
	if f.IsPaidLeave && f.IsAbsent {
		errs = append(errs, validator.ValidationError{Field: "is_absent", Message: "a template cannot be both paid leave and absent"})
	}
	return errs
}

// Apply copies the fields onto t. HH:MM inputs are stored as HH:MM:SS.
func (f *TemplateFields) Apply(t *ShiftTemplate) {
	t.Code = f.Code
	t.Name = f.Name
	t.ShortLabel = f.ShortLabel
	t.Color = f.Color
	if t.Color == "" {
		t.Color = "#3B82F6"
	}
	t.StartTime = normalizeClock(f.StartTime)
	t.EndTime = normalizeClock(f.EndTime)
	t.BreakMinutes = f.BreakMinutes
	t.WorkingHours = f.WorkingHours
	t.IsPaidLeave = f.IsPaidLeave
	t.IsAbsent = f.IsAbsent
	t.DisplayOrder = f.DisplayOrder
}

func normalizeClock(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	if len(v) == 5 {
		v += ":00"
	}
	return &v
}

type CreateShiftTemplateRequest struct {
	StoreID string `json:"store_id" validate:"required,uuid"`
	TemplateFields
}

func (r *CreateShiftTemplateRequest) Validate() error {
	return validator.Merge(validator.Struct(r), r.checks())
}

type UpdateShiftTemplateRequest struct {
	ID string `json:"-" validate:"required,uuid"`
	TemplateFields
}

func (r *UpdateShiftTemplateRequest) Validate() error {
	return validator.Merge(validator.Struct(r), r.checks())
}

// ========================================
// ASSIGNMENT DTOs
// ========================================

// AssignCellRequest sets or clears the shift of one grid cell. A nil ShiftTemplateID clears it.
type AssignCellRequest struct {
	StaffID         string  `json:"staff_id"`
	StoreID         string  `json:"store_id"`
	WorkDate        string  `json:"work_date"`
	ShiftTemplateID *string `json:"shift_template_id"`
	Note            *string `json:"note,omitempty"`
}

func (r *AssignCellRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id must be a valid UUID"})
	}
	if !validator.IsValidUUID(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}
	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "work_date", Message: "work_date must be in YYYY-MM-DD format"})
	}
	if r.ShiftTemplateID != nil && !validator.IsValidUUID(*r.ShiftTemplateID) {
		errs = append(errs, validator.ValidationError{Field: "shift_template_id", Message: "shift_template_id must be a valid UUID or null"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StoreID         string  `json:"store_id"`
	WorkDate        string  `json:"work_date"`
	ShiftTemplateID *string `json:"shift_template_id"`
	Note            *string `json:"note,omitempty"`
}

func NewShiftResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:              s.ID,
		StaffID:         s.StaffID,
		StoreID:         s.StoreID,
		WorkDate:        DateKey(s.WorkDate),
		ShiftTemplateID: s.ShiftTemplateID,
		Note:            s.Note,
	}
}

// ========================================
// GRID DTOs
// ========================================

type GridRequest struct {
	StoreID string
	Year    int
	Month   int
}

func (r *GridRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}
	if r.Year < 2000 || r.Year > 2100 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year must be between 2000 and 2100"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GridDate struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
}

type GridCell struct {
	Date       string  `json:"date"`
	ShiftID    *string `json:"shift_id,omitempty"`
	TemplateID *string `json:"shift_template_id,omitempty"`
	ShortLabel string  `json:"short_label"`
	StartTime  string  `json:"start_time"`
	Color      string  `json:"color,omitempty"`
}

type SummaryResponse struct {
	TotalScheduledHours decimal.Decimal `json:"total_scheduled_hours"`
	TotalWorkedDays     int             `json:"total_worked_days"`
	TotalPaidLeaveDays  int             `json:"total_paid_leave_days"`
}

type GridStaffRow struct {
	StaffID string          `json:"staff_id"`
	Name    string          `json:"name"`
	Cells   []GridCell      `json:"cells"`
	Summary SummaryResponse `json:"summary"`
}

type GridGroup struct {
	EmploymentType string         `json:"employment_type"`
	Label          string         `json:"label"`
	Staff          []GridStaffRow `json:"staff"`
}

type GridResponse struct {
	StoreID       string                  `json:"store_id"`
	StoreName     string                  `json:"store_name"`
	Year          int                     `json:"year"`
	Month         int                     `json:"month"`
	ShiftStartDay int                     `json:"shift_start_day"`
	StartDate     string                  `json:"start_date"`
	EndDate       string                  `json:"end_date"`
	Dates         []GridDate              `json:"dates"`
	Templates     []ShiftTemplateResponse `json:"templates"`
	Groups        []GridGroup             `json:"groups"`
}

func NewGridDates(dates []time.Time) []GridDate {
	out := make([]GridDate, 0, len(dates))
	for _, d := range dates {
		out = append(out, GridDate{Date: DateKey(d), Day: d.Day(), Weekday: WeekdayLabel(d)})
	}
	return out
}
