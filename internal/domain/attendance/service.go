package attendance

import "context"

type AttendanceService interface {
	// Punch records a punch and applies it to the staff member's daily summary atomically.
	Punch(ctx context.Context, req PunchRequest) (PunchResponse, error)
	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Get(ctx context.Context, id string) (AttendanceResponse, error)
	Update(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
	// MarkPending flags earlier days that have a clock in but no clock out.
	MarkPending(ctx context.Context) (int64, error)
}
