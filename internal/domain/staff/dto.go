package staff

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type StaffResponse struct {
	ID                  string           `json:"id"`
	StoreID             string           `json:"store_id"`
	Name                string           `json:"name"`
	NameKana            *string          `json:"name_kana,omitempty"`
	EmploymentType      EmploymentType   `json:"employment_type"`
	EmploymentTypeLabel string           `json:"employment_type_label"`
	HourlyRate          *decimal.Decimal `json:"hourly_rate,omitempty"`
	Status              Status           `json:"status"`
	StatusLabel         string           `json:"status_label"`
	RetiredAt           *string          `json:"retired_at,omitempty"`
	DisplayOrder        int              `json:"display_order"`
}

func NewStaffResponse(s Staff) StaffResponse {
	var retiredAt *string
	if s.RetiredAt != nil {
		v := s.RetiredAt.Format("2006-01-02")
		retiredAt = &v
	}
	return StaffResponse{
		ID:                  s.ID,
		StoreID:             s.StoreID,
		Name:                s.Name,
		NameKana:            s.NameKana,
		EmploymentType:      s.EmploymentType,
		EmploymentTypeLabel: s.EmploymentType.Label(),
		HourlyRate:          s.HourlyRate,
		Status:              s.Status,
		StatusLabel:         s.Status.Label(),
		RetiredAt:           retiredAt,
		DisplayOrder:        s.DisplayOrder,
	}
}

type CreateStaffRequest struct {
	StoreID        string           `json:"store_id" validate:"required,uuid"`
	Name           string           `json:"name" validate:"required,max=100"`
	NameKana       *string          `json:"name_kana,omitempty" validate:"omitempty,max=100"`
	EmploymentType EmploymentType   `json:"employment_type" validate:"required,oneof=full_time part_time contractor"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	DisplayOrder   int              `json:"display_order" validate:"gte=0"`
}

func (r *CreateStaffRequest) Validate() error {
	return validator.Merge(validator.Struct(r), validateHourlyRate(r.HourlyRate))
}

type UpdateStaffRequest struct {
	ID             string           `json:"-" validate:"required,uuid"`
	StoreID        *string          `json:"store_id,omitempty" validate:"omitempty,uuid"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	NameKana       *string          `json:"name_kana,omitempty" validate:"omitempty,max=100"`
	EmploymentType *EmploymentType  `json:"employment_type,omitempty" validate:"omitempty,oneof=full_time part_time contractor"`
	HourlyRate     *decimal.Decimal `json:"hourly_rate,omitempty"`
	DisplayOrder   *int             `json:"display_order,omitempty" validate:"omitempty,gte=0"`
}

func (r *UpdateStaffRequest) Validate() error {
	return validator.Merge(validator.Struct(r), validateHourlyRate(r.HourlyRate))
}

func validateHourlyRate(rate *decimal.Decimal) validator.ValidationErrors {
	if rate != nil && rate.IsNegative() {
		return validator.ValidationErrors{{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		}}
	}
	return nil
}

type ChangeStatusRequest struct {
	ID        string
	Status    Status
	RetiredAt *time.Time
}

type StaffFilter struct {
	StoreID        *string
	Status         *Status
	EmploymentType *EmploymentType
}

func (f *StaffFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StoreID != nil && !validator.IsValidUUID(*f.StoreID) {
		errs = append(errs, validator.ValidationError{
			Field:   "store_id",
			Message: "store_id must be a valid UUID",
		})
	}
	if f.Status != nil && !f.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, inactive, retired",
		})
	}
	if f.EmploymentType != nil && !f.EmploymentType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be one of: full_time, part_time, contractor",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
