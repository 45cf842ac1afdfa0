package cron

import (
	"context"
	"log/slog"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceService: attendanceService}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, pendingSpec string) error {
	return scheduler.AddJob("mark_pending_attendance", pendingSpec, j.MarkPendingAttendance)
}

// MarkPendingAttendance flags earlier days that were clocked in but never clocked out,
// so an administrator can correct them.
func (j *AttendanceJobs) MarkPendingAttendance(ctx context.Context) error {
	slog.Info("Cron: Starting mark pending attendance job")

	count, err := j.attendanceService.MarkPending(ctx)
	if err != nil {
		return err
	}

	slog.Info("Cron: Mark pending attendance job completed", "marked", count)
	return nil
}
