package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// List returns records matching every non-empty filter field, ordered by
	// date then created_at, both descending.
	List(ctx context.Context, filter AttendanceFilter, limit int) ([]Attendance, error)

	// ListByEmployee returns one employee's records ordered by date descending.
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]Attendance, error)

	// GetByEmployeeAndDate returns ErrAttendanceNotFound when the pair has no record.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (Attendance, error)

	// Create returns ErrDuplicateAttendance when the (employee_id, date) index rejects the insert.
	Create(ctx context.Context, record Attendance) (Attendance, error)

	// UpdateStatus overwrites status and created_at of the existing record for the pair.
	UpdateStatus(ctx context.Context, employeeID string, date string, status Status, markedAt time.Time) (Attendance, error)

	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)

	CountByEmployee(ctx context.Context, employeeID string) (StatusCounts, error)
}
