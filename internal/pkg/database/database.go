package database

import "context"

// Collection (table) names and the names of the unique indexes guarding them.
// Repositories match storage-level duplicate errors against these names.
const (
	EmployeesCollection  = "employees"
	AttendanceCollection = "attendance"

	EmployeeIDUniqueIndex             = "employees_employee_id_unique"
	EmployeeEmailUniqueIndex          = "employees_email_unique"
	AttendanceEmployeeDateUniqueIndex = "attendance_employee_date_unique"
)

// Transactor runs fn as a single logical unit of work. Repositories called
// with the ctx passed to fn participate in the same unit when the backend
// supports it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports whether the persistence gateway is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
