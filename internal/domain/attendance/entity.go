package attendance

import "time"

type PunchType string

const (
	PunchClockIn    PunchType = "clock_in"
	PunchClockOut   PunchType = "clock_out"
	PunchBreakStart PunchType = "break_start"
	PunchBreakEnd   PunchType = "break_end"
)

func (p PunchType) IsValid() bool {
	switch p {
	case PunchClockIn, PunchClockOut, PunchBreakStart, PunchBreakEnd:
		return true
	}
	return false
}

func (p PunchType) Label() string {
	switch p {
	case PunchClockIn:
		return "出勤"
	case PunchClockOut:
		return "退勤"
	case PunchBreakStart:
		return "休憩開始"
	case PunchBreakEnd:
		return "休憩終了"
	}
	return ""
}

// PunchEvent is one kiosk tap. It is written once and never changed by punch processing.
type PunchEvent struct {
	ID             string
	StaffID        string
	StoreID        string
	PunchType      PunchType
	PunchedAt      time.Time
	IsModified     bool
	ModifiedBy     *string
	ModifiedReason *string
	CreatedAt      time.Time
}

type Status string

const (
	StatusPresent   Status = "present"
	StatusAbsent    Status = "absent"
	StatusHoliday   Status = "holiday"
	StatusPaidLeave Status = "paid_leave"
	StatusPending   Status = "pending"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHoliday, StatusPaidLeave, StatusPending:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusPresent:
		return "出勤"
	case StatusAbsent:
		return "欠勤"
	case StatusHoliday:
		return "休日"
	case StatusPaidLeave:
		return "有給"
	case StatusPending:
		return "未確定"
	}
	return ""
}

// DailyAttendance is the per staff, per work date summary derived from punches.
type DailyAttendance struct {
	ID              string
	StaffID         string
	StoreID         string
	WorkDate        time.Time
	ClockIn         *time.Time
	ClockOut        *time.Time
	BreakMinutes    int
	WorkingMinutes  int
	OvertimeMinutes int
	Status          Status
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	StaffName *string
	StoreName *string
}

// Recompute refreshes WorkingMinutes when both ends of the day are known.
func (d *DailyAttendance) Recompute() {
	if d.ClockIn != nil && d.ClockOut != nil {
		d.WorkingMinutes = WorkingMinutes(*d.ClockIn, *d.ClockOut, d.BreakMinutes)
	}
}

// WorkingMinutes is whole elapsed minutes minus break, clamped at zero.
func WorkingMinutes(clockIn, clockOut time.Time, breakMinutes int) int {
	return max(0, ElapsedMinutes(clockIn, clockOut)-breakMinutes)
}

// ElapsedMinutes floors the span between two instants to whole minutes.
func ElapsedMinutes(from, to time.Time) int {
	ms := to.Sub(from).Milliseconds()
	m := ms / 60000
	if ms%60000 != 0 && ms < 0 {
		m--
	}
	return int(m)
}

// WorkDate returns the calendar date of t in loc as a UTC midnight value,
// which is how DATE columns round-trip through pgx.
func WorkDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DayBounds returns the instants of local midnight that open and close workDate in loc.
func DayBounds(workDate time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(workDate.Year(), workDate.Month(), workDate.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
