package policy

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

type PolicyResponse struct {
	ID                        string             `json:"id"`
	StoreID                   string             `json:"store_id"`
	Name                      string             `json:"name"`
	ClosingDayType            ClosingDayType     `json:"closing_day_type"`
	ClosingDayCustom          *int               `json:"closing_day_custom,omitempty"`
	RoundingUnit              RoundingUnit       `json:"rounding_unit"`
	BreakDeductionType        BreakDeductionType `json:"break_deduction_type"`
	AutoBreakThresholdMinutes *int               `json:"auto_break_threshold_minutes,omitempty"`
	AutoBreakDeductionMinutes *int               `json:"auto_break_deduction_minutes,omitempty"`
	EnablePaidLeave           bool               `json:"enable_paid_leave"`
	EnableCorrectionApproval  bool               `json:"enable_correction_approval"`
	StandardWorkStartTime     *string            `json:"standard_work_start_time,omitempty"`
	StandardWorkEndTime       *string            `json:"standard_work_end_time,omitempty"`
	AllowEarlyClockIn         bool               `json:"allow_early_clock_in"`
	CountEarlyMinutes         bool               `json:"count_early_minutes"`
	ShiftStartDay             int                `json:"shift_start_day"`
	EffectiveFrom             string             `json:"effective_from"`
	IsActive                  bool               `json:"is_active"`
}

func NewPolicyResponse(p Policy) PolicyResponse {
	return PolicyResponse{
		ID:                        p.ID,
		StoreID:                   p.StoreID,
		Name:                      p.Name,
		ClosingDayType:            p.ClosingDayType,
		ClosingDayCustom:          p.ClosingDayCustom,
		RoundingUnit:              p.RoundingUnit,
		BreakDeductionType:        p.BreakDeductionType,
		AutoBreakThresholdMinutes: p.AutoBreakThresholdMinutes,
		AutoBreakDeductionMinutes: p.AutoBreakDeductionMinutes,
		EnablePaidLeave:           p.EnablePaidLeave,
		EnableCorrectionApproval:  p.EnableCorrectionApproval,
		StandardWorkStartTime:     p.StandardWorkStartTime,
		StandardWorkEndTime:       p.StandardWorkEndTime,
		AllowEarlyClockIn:         p.AllowEarlyClockIn,
		CountEarlyMinutes:         p.CountEarlyMinutes,
		ShiftStartDay:             p.ShiftStartDay,
		EffectiveFrom:             p.EffectiveFrom.Format("2006-01-02"),
		IsActive:                  p.IsActive,
	}
}

// PolicyFields is the editable part of a policy, shared by create and update.
type PolicyFields struct {
	Name                      string             `json:"name"`
	ClosingDayType            ClosingDayType     `json:"closing_day_type"`
	ClosingDayCustom          *int               `json:"closing_day_custom,omitempty"`
	RoundingUnit              RoundingUnit       `json:"rounding_unit"`
	BreakDeductionType        BreakDeductionType `json:"break_deduction_type"`
	AutoBreakThresholdMinutes *int               `json:"auto_break_threshold_minutes,omitempty"`
	AutoBreakDeductionMinutes *int               `json:"auto_break_deduction_minutes,omitempty"`
	EnablePaidLeave           bool               `json:"enable_paid_leave"`
	EnableCorrectionApproval  bool               `json:"enable_correction_approval"`
	StandardWorkStartTime     *string            `json:"standard_work_start_time,omitempty"`
	StandardWorkEndTime       *string            `json:"standard_work_end_time,omitempty"`
	AllowEarlyClockIn         bool               `json:"allow_early_clock_in"`
	CountEarlyMinutes         bool               `json:"count_early_minutes"`
	ShiftStartDay             int                `json:"shift_start_day"`
	EffectiveFrom             string             `json:"effective_from"`
	IsActive                  *bool              `json:"is_active,omitempty"`
}

func (f *PolicyFields) validate() validator.ValidationErrors {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if err := f.RoundingUnit.Validate(); err != nil {
		errs = append(errs, validator.ValidationError{Field: "rounding_unit", Message: err.Error()})
	}
	if f.ShiftStartDay < 1 || f.ShiftStartDay > 28 {
		errs = append(errs, validator.ValidationError{Field: "shift_start_day", Message: ErrInvalidShiftStart.Error()})
	}
	if !f.ClosingDayType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "closing_day_type",
			Message: "closing_day_type must be one of: end_of_month, custom",
		})
	} else if f.ClosingDayType == ClosingCustom {
		if f.ClosingDayCustom == nil || *f.ClosingDayCustom < 1 || *f.ClosingDayCustom > 28 {
			errs = append(errs, validator.ValidationError{
				Field:   "closing_day_custom",
				Message: "closing_day_custom must be between 1 and 28 when closing_day_type is custom",
			})
		}
	}
	if !f.BreakDeductionType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "break_deduction_type",
			Message: "break_deduction_type must be one of: manual, auto",
		})
	} else if f.BreakDeductionType == BreakDeductionAuto {
		if f.AutoBreakThresholdMinutes == nil || *f.AutoBreakThresholdMinutes <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "auto_break_threshold_minutes",
				Message: "auto_break_threshold_minutes must be positive when break_deduction_type is auto",
			})
		}
		if f.AutoBreakDeductionMinutes == nil || *f.AutoBreakDeductionMinutes <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "auto_break_deduction_minutes",
				Message: "auto_break_deduction_minutes must be positive when break_deduction_type is auto",
			})
		}
	}
	if f.StandardWorkStartTime != nil && !validator.IsValidClock(*f.StandardWorkStartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_start_time",
			Message: "standard_work_start_time must be in HH:MM format",
		})
	}
	if f.StandardWorkEndTime != nil && !validator.IsValidClock(*f.StandardWorkEndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "standard_work_end_time",
			Message: "standard_work_end_time must be in HH:MM format",
		})
	}
	if _, ok := validator.IsValidDate(f.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "effective_from",
			Message: "effective_from must be in YYYY-MM-DD format",
		})
	}

	return errs
}

// Apply copies the fields onto p. Call after a successful Validate.
func (f *PolicyFields) Apply(p *Policy) {
	effectiveFrom, _ := time.Parse("2006-01-02", f.EffectiveFrom)

	p.Name = f.Name
	p.ClosingDayType = f.ClosingDayType
	p.ClosingDayCustom = f.ClosingDayCustom
	p.RoundingUnit = f.RoundingUnit
	p.BreakDeductionType = f.BreakDeductionType
	p.AutoBreakThresholdMinutes = f.AutoBreakThresholdMinutes
	p.AutoBreakDeductionMinutes = f.AutoBreakDeductionMinutes
	p.EnablePaidLeave = f.EnablePaidLeave
	p.EnableCorrectionApproval = f.EnableCorrectionApproval
	p.StandardWorkStartTime = f.StandardWorkStartTime
	p.StandardWorkEndTime = f.StandardWorkEndTime
	p.AllowEarlyClockIn = f.AllowEarlyClockIn
	p.CountEarlyMinutes = f.CountEarlyMinutes
	p.ShiftStartDay = f.ShiftStartDay
	p.EffectiveFrom = effectiveFrom
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
}

type CreatePolicyRequest struct {
	StoreID string `json:"store_id"`
	PolicyFields
}

func (r *CreatePolicyRequest) Validate() error {
	errs := r.PolicyFields.validate()
	if !validator.IsValidUUID(r.StoreID) {
		errs = append(errs, validator.ValidationError{Field: "store_id", Message: "store_id must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePolicyRequest struct {
	ID string `json:"-"`
	PolicyFields
}

func (r *UpdatePolicyRequest) Validate() error {
	errs := r.PolicyFields.validate()
	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id must be a valid UUID"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
