package export

import (
	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// Record is one daily attendance row joined with the staff and store columns reports print.
type Record struct {
	attendance.DailyAttendance
	StaffNameKana  *string
	EmploymentType staff.EmploymentType
	HourlyRate     *decimal.Decimal
}

func (r *Record) staffName() string {
	if r.StaffName == nil {
		return ""
	}
	return *r.StaffName
}

func (r *Record) storeName() string {
	if r.StoreName == nil {
		return ""
	}
	return *r.StoreName
}
