package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ListAttendance retrieves attendance records matching the filter
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetEmployeeAttendance retrieves every record of one existing employee
	GetEmployeeAttendance(ctx context.Context, employeeID string) ([]AttendanceResponse, error)

	// GetAttendanceStats counts present and absent days of one existing employee
	GetAttendanceStats(ctx context.Context, employeeID string) (AttendanceStatsResponse, error)

	// MarkAttendance creates the record for (employee, date) or overwrites its status
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
}
