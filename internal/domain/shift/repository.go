package shift

import (
	"context"
	"time"
)

type ShiftTemplateRepository interface {
	Create(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	// ListByStore orders by display_order, then code.
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]ShiftTemplate, error)
	Update(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	SetActive(ctx context.Context, id string, active bool) (ShiftTemplate, error)
}

type ShiftRepository interface {
	// ListByStoreBetween returns shifts with from <= work_date <= to, template joined.
	ListByStoreBetween(ctx context.Context, storeID string, from, to time.Time) ([]Shift, error)
	// Upsert writes the single shift of (staff_id, work_date), replacing any existing one.
	Upsert(ctx context.Context, s Shift) (Shift, error)
	// DeleteByStaffAndDate is a no-op when no shift exists.
	DeleteByStaffAndDate(ctx context.Context, staffID string, workDate time.Time) error
}
