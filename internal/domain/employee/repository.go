package employee

import "context"

type EmployeeRepository interface {
	// List returns employees ordered by created_at descending, at most limit records.
	List(ctx context.Context, limit int) ([]Employee, error)

	// GetByEmployeeID returns ErrEmployeeNotFound when no record matches.
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)

	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)

	// ExistsByEmail reports whether an employee other than excludeEmployeeID owns email.
	// Pass an empty excludeEmployeeID to check against every employee.
	ExistsByEmail(ctx context.Context, email string, excludeEmployeeID string) (bool, error)

	// Create assigns ID. A unique index violation is returned as
	// ErrEmployeeIDExists or ErrEmailExists.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	Update(ctx context.Context, employeeID string, fields UpdateFields) (Employee, error)

	// Delete returns ErrEmployeeNotFound when nothing was removed.
	Delete(ctx context.Context, employeeID string) error
}
