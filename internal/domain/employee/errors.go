package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDExists  = errors.New("employee ID is already registered")
	ErrEmailExists       = errors.New("email is already registered")
	ErrNothingToUpdate   = errors.New("at least one field must be provided")
	ErrCascadeIncomplete = errors.New("attendance cleanup failed during employee delete")
)
