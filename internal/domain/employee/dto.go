package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"notblank,max=64"`
	FullName   string `json:"full_name" validate:"notblank,max=200"`
	Email      string `json:"email" validate:"notblank,emailaddr"`
	Department string `json:"department" validate:"notblank,max=100"`
}

// Validate trims the request and checks required fields and email syntax.
// The email is normalized in place.
func (r *CreateEmployeeRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Department = strings.TrimSpace(r.Department)
	r.Email = validator.NormalizeEmail(r.Email)

	return validator.Struct(r)
}

type UpdateEmployeeRequest struct {
	EmployeeID string  `json:"-"`
	FullName   *string `json:"full_name,omitempty" validate:"omitempty,notblank,max=200"`
	Email      *string `json:"email,omitempty" validate:"omitempty,notblank,emailaddr"`
	Department *string `json:"department,omitempty" validate:"omitempty,notblank,max=100"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Email != nil {
		v := validator.NormalizeEmail(*r.Email)
		r.Email = &v
	}
	if r.Department != nil {
		v := strings.TrimSpace(*r.Department)
		r.Department = &v
	}

	if err := validator.Struct(r); err != nil {
		return err
	}

	if r.Fields().IsEmpty() {
		return validator.ValidationErrors{{
			Field:   "body",
			Message: ErrNothingToUpdate.Error(),
		}}
	}
	return nil
}

func (r UpdateEmployeeRequest) Fields() UpdateFields {
	return UpdateFields{
		FullName:   r.FullName,
		Email:      r.Email,
		Department: r.Department,
	}
}

type EmployeeResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		FullName:   e.FullName,
		Email:      e.Email,
		Department: e.Department,
		CreatedAt:  e.CreatedAt.UTC(),
	}
}

type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}
