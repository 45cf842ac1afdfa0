package attendance

import (
	"time"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
)

// Reducer folds one punch into the daily summary of its work date.
// It never touches storage; the caller persists Daily when Outcome.Writes() is true.
type Reducer struct {
	loc *time.Location
}

func NewReducer(loc *time.Location) *Reducer {
	if loc == nil {
		loc = time.UTC
	}
	return &Reducer{loc: loc}
}

// WorkDate is the local calendar date a punch belongs to.
func (r *Reducer) WorkDate(t time.Time) time.Time {
	return attendance.WorkDate(t, r.loc)
}

// Apply computes the effect of punch given the current summary (nil if none yet)
// and the punches already recorded for the same staff member and day.
func (r *Reducer) Apply(punch attendance.PunchEvent, prior *attendance.DailyAttendance, priorPunches []attendance.PunchEvent) (attendance.ReduceResult, error) {
	switch punch.PunchType {
	case attendance.PunchClockIn:
		return r.clockIn(punch, prior), nil
	case attendance.PunchClockOut:
		return r.clockOut(punch, prior)
	case attendance.PunchBreakStart:
		return attendance.ReduceResult{Outcome: attendance.OutcomeBreakStarted, Daily: prior}, nil
	case attendance.PunchBreakEnd:
		return r.breakEnd(punch, prior, priorPunches), nil
	default:
		return attendance.ReduceResult{}, attendance.ErrInvalidPunchType
	}
}

func (r *Reducer) clockIn(punch attendance.PunchEvent, prior *attendance.DailyAttendance) attendance.ReduceResult {
	// first clock in of the day wins
	if prior != nil {
		return attendance.ReduceResult{Outcome: attendance.OutcomeDuplicateClockIn, Daily: prior}
	}

	clockIn := punch.PunchedAt
	return attendance.ReduceResult{
		Outcome: attendance.OutcomeCreated,
		Daily: &attendance.DailyAttendance{
			StaffID:  punch.StaffID,
			StoreID:  punch.StoreID,
			WorkDate: r.WorkDate(punch.PunchedAt),
			ClockIn:  &clockIn,
			Status:   attendance.StatusPresent,
		},
	}
}

func (r *Reducer) clockOut(punch attendance.PunchEvent, prior *attendance.DailyAttendance) (attendance.ReduceResult, error) {
	if prior == nil || prior.ClockIn == nil {
		return attendance.ReduceResult{}, attendance.ErrClockOutWithoutClockIn
	}

	next := *prior
	clockOut := punch.PunchedAt
	next.ClockOut = &clockOut
	next.Recompute()

	return attendance.ReduceResult{Outcome: attendance.OutcomeClockedOut, Daily: &next}, nil
}

func (r *Reducer) breakEnd(punch attendance.PunchEvent, prior *attendance.DailyAttendance, priorPunches []attendance.PunchEvent) attendance.ReduceResult {
	unmatched := attendance.ReduceResult{Outcome: attendance.OutcomeUnmatchedBreakEnd, Daily: prior}
	if prior == nil {
		return unmatched
	}

	start, ok := r.latestBreakStart(punch, priorPunches)
	if !ok {
		return unmatched
	}

	delta := attendance.ElapsedMinutes(start.PunchedAt, punch.PunchedAt)
	next := *prior
	next.BreakMinutes += delta
	next.Recompute()

	return attendance.ReduceResult{
		Outcome:    attendance.OutcomeBreakAccumulated,
		Daily:      &next,
		BreakDelta: delta,
	}
}

func (r *Reducer) latestBreakStart(end attendance.PunchEvent, punches []attendance.PunchEvent) (attendance.PunchEvent, bool) {
	day := r.WorkDate(end.PunchedAt)

	var found attendance.PunchEvent
	ok := false
	for _, p := range punches {
		if p.PunchType != attendance.PunchBreakStart || p.StaffID != end.StaffID {
			continue
		}
		if p.PunchedAt.After(end.PunchedAt) || !r.WorkDate(p.PunchedAt).Equal(day) {
			continue
		}
		if !ok || !p.PunchedAt.Before(found.PunchedAt) {
			found = p
			ok = true
		}
	}
	return found, ok
}
