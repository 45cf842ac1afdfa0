package kiosk

import "github.com/kintai-works/kintai-backend-go/internal/domain/attendance"

// WorkStatus is where a staff member stands today, as shown on the punch screen.
type WorkStatus string

const (
	StatusNotWorking WorkStatus = "not_working"
	StatusWorking    WorkStatus = "working"
	StatusOnBreak    WorkStatus = "on_break"
)

func (s WorkStatus) Label() string {
	switch s {
	case StatusWorking:
		return "勤務中"
	case StatusOnBreak:
		return "休憩中"
	}
	return "未出勤"
}

// DeriveStatus reads the status off the last punch of the day. A clock out,
// or no punch at all, means not working.
func DeriveStatus(last *attendance.PunchEvent) WorkStatus {
	if last == nil {
		return StatusNotWorking
	}
	switch last.PunchType {
	case attendance.PunchClockIn, attendance.PunchBreakEnd:
		return StatusWorking
	case attendance.PunchBreakStart:
		return StatusOnBreak
	}
	return StatusNotWorking
}

// AllowedNext lists the buttons the punch screen offers. The server does not
// reject other punch types; the reducer decides what they do.
func (s WorkStatus) AllowedNext() []attendance.PunchType {
	switch s {
	case StatusWorking:
		return []attendance.PunchType{attendance.PunchBreakStart, attendance.PunchClockOut}
	case StatusOnBreak:
		return []attendance.PunchType{attendance.PunchBreakEnd}
	}
	return []attendance.PunchType{attendance.PunchClockIn}
}
