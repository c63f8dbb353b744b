package memory

import (
	"context"
	"sort"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, limit int) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.store.employees))
	for _, emp := range r.store.employees {
		employees = append(employees, emp)
	}

	sort.Slice(employees, func(i, j int) bool {
		if employees[i].CreatedAt.Equal(employees[j].CreatedAt) {
			return employees[i].ID > employees[j].ID
		}
		return employees[i].CreatedAt.After(employees[j].CreatedAt)
	})

	if limit > 0 && len(employees) > limit {
		employees = employees[:limit]
	}
	return employees, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	emp, ok := r.store.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// ExistsByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.employees[employeeID]
	return ok, nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeEmployeeID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.store.emailTakenLocked(email, excludeEmployeeID), nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[newEmployee.EmployeeID]; ok {
		return employee.Employee{}, employee.ErrEmployeeIDExists
	}
	if r.store.emailTakenLocked(newEmployee.Email, "") {
		return employee.Employee{}, employee.ErrEmailExists
	}

	newEmployee.ID = newID()
	r.store.employees[newEmployee.EmployeeID] = newEmployee
	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, employeeID string, fields employee.UpdateFields) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	emp, ok := r.store.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}

	if fields.Email != nil {
		if r.store.emailTakenLocked(*fields.Email, employeeID) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		emp.Email = *fields.Email
	}
	if fields.FullName != nil {
		emp.FullName = *fields.FullName
	}
	if fields.Department != nil {
		emp.Department = *fields.Department
	}

	r.store.employees[employeeID] = emp
	return emp, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.employees[employeeID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.store.employees, employeeID)
	return nil
}

func (s *Store) emailTakenLocked(email string, excludeEmployeeID string) bool {
	for id, emp := range s.employees {
		if emp.Email == email && id != excludeEmployeeID {
			return true
		}
	}
	return false
}
