package attendance

import "errors"

var (
	ErrAttendanceNotFound     = errors.New("attendance record not found")
	ErrClockOutWithoutClockIn = errors.New("clock out requires a clock in on the same day")
	ErrInvalidPunchType       = errors.New("invalid punch type")
	ErrClockOutBeforeClockIn  = errors.New("clock out must not be before clock in")
)
