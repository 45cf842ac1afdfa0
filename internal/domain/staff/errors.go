package staff

import "errors"

var (
	ErrStaffNotFound       = errors.New("staff not found")
	ErrStaffNotActive      = errors.New("staff is not active")
	ErrStaffAlreadyRetired = errors.New("staff is already retired")
	ErrStaffStoreMismatch  = errors.New("staff does not belong to this store")
	ErrStaffHasAttendance  = errors.New("staff has attendance records")
)
