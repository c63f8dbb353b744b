package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound  = errors.New("attendance record not found")
	ErrDuplicateAttendance = errors.New("attendance already recorded for this employee and date")
	ErrInvalidDate         = errors.New("date must be a valid calendar date in YYYY-MM-DD format")
	ErrInvalidDateRange    = errors.New("from must not be after to")
)
