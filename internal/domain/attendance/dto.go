package attendance

import (
	"strings"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	StaffID   string    `json:"staff_id"`
	StoreID   string    `json:"-"` // From kiosk token
	PunchType PunchType `json:"punch_type"`
	PunchedAt time.Time `json:"-"` // Server clock
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a valid UUID",
		})
	}
	if !validator.IsValidUUID(r.StoreID) {
		errs = append(errs, validator.ValidationError{
			Field:   "store_id",
			Message: "store_id must be a valid UUID",
		})
	}
	if !r.PunchType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "punch_type",
			Message: "punch_type must be one of: clock_in, clock_out, break_start, break_end",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PunchEventResponse struct {
	ID        string    `json:"id"`
	StaffID   string    `json:"staff_id"`
	StoreID   string    `json:"store_id"`
	PunchType PunchType `json:"punch_type"`
	Label     string    `json:"label"`
	PunchedAt string    `json:"punched_at"`
}

func NewPunchEventResponse(p PunchEvent) PunchEventResponse {
	return PunchEventResponse{
		ID:        p.ID,
		StaffID:   p.StaffID,
		StoreID:   p.StoreID,
		PunchType: p.PunchType,
		Label:     p.PunchType.Label(),
		PunchedAt: p.PunchedAt.Format(time.RFC3339),
	}
}

type PunchResponse struct {
	Punch      PunchEventResponse  `json:"punch"`
	Outcome    Outcome             `json:"outcome"`
	BreakDelta int                 `json:"break_delta_minutes,omitempty"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID              string  `json:"id"`
	StaffID         string  `json:"staff_id"`
	StaffName       *string `json:"staff_name,omitempty"`
	StoreID         string  `json:"store_id"`
	StoreName       *string `json:"store_name,omitempty"`
	WorkDate        string  `json:"work_date"`
	ClockIn         *string `json:"clock_in,omitempty"`
	ClockOut        *string `json:"clock_out,omitempty"`
	BreakMinutes    int     `json:"break_minutes"`
	WorkingMinutes  int     `json:"working_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	Status          Status  `json:"status"`
	StatusLabel     string  `json:"status_label"`
	Note            *string `json:"note,omitempty"`
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func NewAttendanceResponse(d DailyAttendance) AttendanceResponse {
	return AttendanceResponse{
		ID:              d.ID,
		StaffID:         d.StaffID,
		StaffName:       d.StaffName,
		StoreID:         d.StoreID,
		StoreName:       d.StoreName,
		WorkDate:        d.WorkDate.Format("2006-01-02"),
		ClockIn:         timePtrToString(d.ClockIn),
		ClockOut:        timePtrToString(d.ClockOut),
		BreakMinutes:    d.BreakMinutes,
		WorkingMinutes:  d.WorkingMinutes,
		OvertimeMinutes: d.OvertimeMinutes,
		Status:          d.Status,
		StatusLabel:     d.Status.Label(),
		Note:            d.Note,
	}
}

type AttendanceFilter struct {
	StoreID   *string `json:"store_id,omitempty"`
	StaffID   *string `json:"staff_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // work_date, staff_name, clock_in, clock_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.StoreID != nil && !validator.IsValidUUID(*f.StoreID) {
		errs = append(errs, validator.ValidationError{
			Field:   "store_id",
			Message: "store_id must be a valid UUID",
		})
	}
	if f.StaffID != nil && !validator.IsValidUUID(*f.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a valid UUID",
		})
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, holiday, paid_leave, pending",
		})
	}

	var start, end time.Time
	var startOK, endOK bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, startOK = validator.IsValidDate(*f.StartDate); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, endOK = validator.IsValidDate(*f.EndDate); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if f.SortBy != "" {
		validSortFields := []string{"work_date", "staff_name", "clock_in", "clock_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: work_date, staff_name, clock_in, clock_out, status",
			})
		}
	} else {
		f.SortBy = "work_date"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest is an admin edit. Working minutes are recomputed, never taken from input.
type UpdateAttendanceRequest struct {
	ID              string  `json:"-"`
	ClockIn         *string `json:"clock_in,omitempty"`  // RFC3339
	ClockOut        *string `json:"clock_out,omitempty"` // RFC3339
	ClearClockOut   bool    `json:"clear_clock_out,omitempty"`
	BreakMinutes    *int    `json:"break_minutes,omitempty"`
	OvertimeMinutes *int    `json:"overtime_minutes,omitempty"`
	Status          *Status `json:"status,omitempty"`
	Note            *string `json:"note,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if r.ClockIn != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in",
				Message: "clock_in must be an RFC3339 timestamp",
			})
		}
	}
	if r.ClockOut != nil {
		if _, ok := validator.IsValidDateTime(*r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out",
				Message: "clock_out must be an RFC3339 timestamp",
			})
		}
		if r.ClearClockOut {
			errs = append(errs, validator.ValidationError{
				Field:   "clear_clock_out",
				Message: "clear_clock_out cannot be combined with clock_out",
			})
		}
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_minutes",
			Message: "break_minutes must not be negative",
		})
	}
	if r.OvertimeMinutes != nil && *r.OvertimeMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "overtime_minutes",
			Message: "overtime_minutes must not be negative",
		})
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: present, absent, holiday, paid_leave, pending",
		})
	}
	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
