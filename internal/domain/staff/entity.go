package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmploymentType string

const (
	EmploymentTypeFullTime   EmploymentType = "full_time"
	EmploymentTypePartTime   EmploymentType = "part_time"
	EmploymentTypeContractor EmploymentType = "contractor"
)

// EmploymentTypes lists the types in display order.
var EmploymentTypes = []EmploymentType{
	EmploymentTypeFullTime,
	EmploymentTypePartTime,
	EmploymentTypeContractor,
}

func (t EmploymentType) IsValid() bool {
	switch t {
	case EmploymentTypeFullTime, EmploymentTypePartTime, EmploymentTypeContractor:
		return true
	}
	return false
}

// Label is the name printed on reports and shift sheets.
func (t EmploymentType) Label() string {
	switch t {
	case EmploymentTypeFullTime:
		return "正社員"
	case EmploymentTypePartTime:
		return "パート"
	case EmploymentTypeContractor:
		return "業務委託"
	}
	return ""
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusRetired  Status = "retired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusRetired:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusActive:
		return "在籍"
	case StatusInactive:
		return "休職中"
	case StatusRetired:
		return "退職"
	}
	return ""
}

type Staff struct {
	ID             string
	StoreID        string
	Name           string
	NameKana       *string
	EmploymentType EmploymentType
	HourlyRate     *decimal.Decimal
	Status         Status
	RetiredAt      *time.Time
	DisplayOrder   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s *Staff) IsActive() bool {
	return s.Status == StatusActive
}
