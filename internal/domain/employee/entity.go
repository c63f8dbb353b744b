package employee

import "time"

// Employee is an identity record in the directory. EmployeeID is the business
// key chosen by the client; ID is assigned by storage.
type Employee struct {
	ID         string
	EmployeeID string
	FullName   string
	Email      string
	Department string
	CreatedAt  time.Time
}

// UpdateFields carries the mutable attributes of an employee. Nil fields are left unchanged.
type UpdateFields struct {
	FullName   *string
	Email      *string
	Department *string
}

func (f UpdateFields) IsEmpty() bool {
	return f.FullName == nil && f.Email == nil && f.Department == nil
}

// ListLimit caps the number of employees returned by a single listing.
const ListLimit = 1000
