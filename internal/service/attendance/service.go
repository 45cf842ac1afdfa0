package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/sse"
)

// EventPunchRecorded is published to a store's kiosks after every committed punch.
const EventPunchRecorded = "punch_recorded"

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.DailyAttendanceRepository
	attendance.PunchRepository
	staff.StaffRepository
	reducer   *Reducer
	publisher sse.Publisher
	loc       *time.Location
	now       func() time.Time
}

// Punch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Punch(ctx context.Context, req attendance.PunchRequest) (attendance.PunchResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.PunchResponse{}, err
	}
	if req.PunchedAt.IsZero() {
		req.PunchedAt = a.now()
	}

	member, err := a.StaffRepository.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return attendance.PunchResponse{}, staff.ErrStaffNotFound
		}
		return attendance.PunchResponse{}, fmt.Errorf("failed to get staff: %w", err)
	}
	if member.StoreID != req.StoreID {
		return attendance.PunchResponse{}, staff.ErrStaffStoreMismatch
	}
	if !member.IsActive() {
		return attendance.PunchResponse{}, staff.ErrStaffNotActive
	}

	workDate := a.reducer.WorkDate(req.PunchedAt)
	dayStart, dayEnd := attendance.DayBounds(workDate, a.loc)

	var (
		saved  attendance.PunchEvent
		result attendance.ReduceResult
	)
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := a.DailyAttendanceRepository.LockDay(txCtx, req.StaffID, workDate); err != nil {
			return fmt.Errorf("failed to lock attendance day: %w", err)
		}

		prior, err := a.DailyAttendanceRepository.GetByStaffAndDate(txCtx, req.StaffID, workDate)
		if err != nil {
			return fmt.Errorf("failed to get daily attendance: %w", err)
		}

		priorPunches, err := a.PunchRepository.ListByStaffBetween(txCtx, req.StaffID, dayStart, dayEnd)
		if err != nil {
			return fmt.Errorf("failed to list punches: %w", err)
		}

		event := attendance.PunchEvent{
			StaffID:   req.StaffID,
			StoreID:   req.StoreID,
			PunchType: req.PunchType,
			PunchedAt: req.PunchedAt,
		}

		result, err = a.reducer.Apply(event, prior, priorPunches)
		if err != nil {
			return err
		}

		saved, err = a.PunchRepository.Create(txCtx, event)
		if err != nil {
			return fmt.Errorf("failed to create punch: %w", err)
		}

		if !result.Outcome.Writes() {
			return nil
		}

		var daily attendance.DailyAttendance
		if result.Outcome == attendance.OutcomeCreated {
			daily, err = a.DailyAttendanceRepository.Create(txCtx, *result.Daily)
		} else {
			daily, err = a.DailyAttendanceRepository.Update(txCtx, *result.Daily)
		}
		if err != nil {
			return fmt.Errorf("failed to save daily attendance: %w", err)
		}
		result.Daily = &daily
		return nil
	})
	if err != nil {
		return attendance.PunchResponse{}, err
	}

	if result.Outcome == attendance.OutcomeUnmatchedBreakEnd {
		slog.Warn("break end without matching break start", "staff_id", req.StaffID, "work_date", workDate.Format("2006-01-02"))
	}

	resp := attendance.PunchResponse{
		Punch:      attendance.NewPunchEventResponse(saved),
		Outcome:    result.Outcome,
		BreakDelta: result.BreakDelta,
	}
	if result.Daily != nil {
		daily := attendance.NewAttendanceResponse(*result.Daily)
		resp.Attendance = &daily
	}

	if a.publisher != nil {
		a.publisher.Publish(req.StoreID, sse.Event{Name: EventPunchRecorded, Data: resp.Punch})
	}

	return resp, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	rows, total, err := a.DailyAttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, attendance.NewAttendanceResponse(row))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	row, err := a.DailyAttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(row), nil
}

// Update implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Update(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.DailyAttendance
	err := a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		row, err := a.DailyAttendanceRepository.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, attendance.ErrAttendanceNotFound) {
				return attendance.ErrAttendanceNotFound
			}
			return fmt.Errorf("failed to get attendance: %w", err)
		}

		if err := a.DailyAttendanceRepository.LockDay(txCtx, row.StaffID, row.WorkDate); err != nil {
			return fmt.Errorf("failed to lock attendance day: %w", err)
		}

		if err := applyUpdate(&row, req); err != nil {
			return err
		}

		updated, err = a.DailyAttendanceRepository.Update(txCtx, row)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return attendance.NewAttendanceResponse(updated), nil
}

// applyUpdate copies the edited fields onto row and recomputes working minutes.
func applyUpdate(row *attendance.DailyAttendance, req attendance.UpdateAttendanceRequest) error {
	if req.ClockIn != nil {
		clockIn, _ := time.Parse(time.RFC3339, *req.ClockIn)
		row.ClockIn = &clockIn
	}
	if req.ClockOut != nil {
		clockOut, _ := time.Parse(time.RFC3339, *req.ClockOut)
		row.ClockOut = &clockOut
	}
	if req.ClearClockOut {
		row.ClockOut = nil
		row.WorkingMinutes = 0
	}
	if req.BreakMinutes != nil {
		row.BreakMinutes = *req.BreakMinutes
	}
	if req.OvertimeMinutes != nil {
		row.OvertimeMinutes = *req.OvertimeMinutes
	}
	if req.Status != nil {
		row.Status = *req.Status
	}
	if req.Note != nil {
		row.Note = req.Note
	}

	if row.ClockIn != nil && row.ClockOut != nil && row.ClockOut.Before(*row.ClockIn) {
		return attendance.ErrClockOutBeforeClockIn
	}
	row.Recompute()
	return nil
}

// MarkPending implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkPending(ctx context.Context) (int64, error) {
	today := attendance.WorkDate(a.now(), a.loc)

	count, err := a.DailyAttendanceRepository.MarkUnclosedPending(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to mark pending attendances: %w", err)
	}
	if count > 0 {
		slog.Info("marked unclosed attendances as pending", "count", count, "before", today.Format("2006-01-02"))
	}
	return count, nil
}

func NewAttendanceService(
	tx database.Transactor,
	dailyRepo attendance.DailyAttendanceRepository,
	punchRepo attendance.PunchRepository,
	staffRepo staff.StaffRepository,
	publisher sse.Publisher,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                        tx,
		DailyAttendanceRepository: dailyRepo,
		PunchRepository:           punchRepo,
		StaffRepository:           staffRepo,
		reducer:                   NewReducer(loc),
		publisher:                 publisher,
		loc:                       loc,
		now:                       time.Now,
	}
}
