package attendance

import (
	"context"
	"time"
)

type DailyAttendanceRepository interface {
	// LockDay serialises writers for one staff and work date until the surrounding transaction ends.
	LockDay(ctx context.Context, staffID string, workDate time.Time) error
	// GetByStaffAndDate returns nil, nil when no row exists.
	GetByStaffAndDate(ctx context.Context, staffID string, workDate time.Time) (*DailyAttendance, error)
	Create(ctx context.Context, d DailyAttendance) (DailyAttendance, error)
	Update(ctx context.Context, d DailyAttendance) (DailyAttendance, error)
	GetByID(ctx context.Context, id string) (DailyAttendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]DailyAttendance, int64, error)
	// MarkUnclosedPending flags present rows before the given date that never got a clock out.
	MarkUnclosedPending(ctx context.Context, before time.Time) (int64, error)
}

type PunchRepository interface {
	Create(ctx context.Context, p PunchEvent) (PunchEvent, error)
	// ListByStaffBetween returns punches with from <= punched_at < to ordered by punched_at.
	ListByStaffBetween(ctx context.Context, staffID string, from, to time.Time) ([]PunchEvent, error)
	// LatestByStoreBetween returns each staff member's latest punch in the window, keyed by staff ID.
	LatestByStoreBetween(ctx context.Context, storeID string, from, to time.Time) (map[string]PunchEvent, error)
}
