package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// ListEmployees returns the newest employees first, capped at ListLimit
	ListEmployees(ctx context.Context) ([]EmployeeResponse, error)

	// GetEmployee retrieves a single employee by business ID
	GetEmployee(ctx context.Context, employeeID string) (EmployeeResponse, error)

	// CreateEmployee registers a new employee after uniqueness checks
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee changes name, email or department
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee and all of its attendance records
	DeleteEmployee(ctx context.Context, employeeID string) error
}
