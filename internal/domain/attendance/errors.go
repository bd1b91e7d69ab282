package attendance

import "errors"

var (
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotCheckedIn       = errors.New("no check-in recorded today")
	ErrAlreadyCheckedOut  = errors.New("already checked out today")
	ErrNotWorkingDay      = errors.New("not a working day")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
