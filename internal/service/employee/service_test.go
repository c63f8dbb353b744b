package employee

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingCleanupRepo makes the cascade step of DeleteEmployee fail.
type failingCleanupRepo struct {
	attendance.AttendanceRepository
}

func (failingCleanupRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	return 0, errors.New("connection reset")
}

type fixture struct {
	svc            *EmployeeServiceImpl
	attendanceRepo attendance.AttendanceRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	attendanceRepo := memory.NewAttendanceRepository(store)
	svc := NewEmployeeService(memory.NewTransactor(), memory.NewEmployeeRepository(store), attendanceRepo).(*EmployeeServiceImpl)
	return fixture{svc: svc, attendanceRepo: attendanceRepo}
}

func createRequest(id, email string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeID: id,
		FullName:   "Ann Lee",
		Email:      email,
		Department: "Engineering",
	}
}

func TestEmployeeService_CreateEmployee_Success(t *testing.T) {
	f := newFixture(t)
	fixed := time.Date(2024, 1, 5, 9, 30, 0, 123456789, time.FixedZone("WIB", 7*3600))
	f.svc.now = func() time.Time { return fixed }

	resp, err := f.svc.CreateEmployee(context.Background(), createRequest(" E1 ", " Ann@X.com "))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "E1", resp.EmployeeID)
	assert.Equal(t, "ann@x.com", resp.Email)
	assert.Equal(t, fixed.UTC().Truncate(time.Millisecond), resp.CreatedAt)
	assert.Equal(t, time.UTC, resp.CreatedAt.Location())
}

func TestEmployeeService_CreateEmployee_Conflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
	require.NoError(t, err)

	t.Run("duplicate employee id is checked before email", func(t *testing.T) {
		_, err := f.svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
		assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := f.svc.CreateEmployee(ctx, createRequest("E2", "A@X.COM"))
		assert.ErrorIs(t, err, employee.ErrEmailExists)
	})

	list, err := f.svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		EmployeeID: "E1",
		FullName:   "  ",
		Email:      "not-an-email",
		Department: "Ops",
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "full_name")
	assert.Contains(t, fields, "email")
}

func TestEmployeeService_ListEmployees_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"E1", "E2", "E3"} {
		at := base.Add(time.Duration(i) * time.Minute)
		f.svc.now = func() time.Time { return at }
		_, err := f.svc.CreateEmployee(ctx, createRequest(id, id+"@x.com"))
		require.NoError(t, err)
	}

	list, err := f.svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "E3", list[0].EmployeeID)
	assert.Equal(t, "E1", list[2].EmployeeID)
}

func TestEmployeeService_GetEmployee_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetEmployee(context.Background(), "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_UpdateEmployee(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
	require.NoError(t, err)
	_, err = f.svc.CreateEmployee(ctx, createRequest("E2", "b@x.com"))
	require.NoError(t, err)

	dept := "Finance"
	email := "A@X.com"
	updated, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		EmployeeID: "E1",
		Department: &dept,
		Email:      &email,
	})
	require.NoError(t, err)
	assert.Equal(t, "Finance", updated.Department)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	taken := "b@x.com"
	_, err = f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "E1", Email: &taken})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	_, err = f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "E1"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{EmployeeID: "nope", Department: &dept})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteEmployee_CascadesAttendance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
	require.NoError(t, err)
	_, err = f.svc.CreateEmployee(ctx, createRequest("E2", "b@x.com"))
	require.NoError(t, err)

	for _, rec := range []attendance.Attendance{
		{EmployeeID: "E1", Date: "2024-01-01", Status: attendance.StatusPresent},
		{EmployeeID: "E1", Date: "2024-01-02", Status: attendance.StatusAbsent},
		{EmployeeID: "E2", Date: "2024-01-01", Status: attendance.StatusPresent},
	} {
		_, err := f.attendanceRepo.Create(ctx, rec)
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.DeleteEmployee(ctx, "E1"))

	_, err = f.svc.GetEmployee(ctx, "E1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	left, err := f.attendanceRepo.List(ctx, attendance.AttendanceFilter{}, attendance.ListLimit)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "E2", left[0].EmployeeID)

	err = f.svc.DeleteEmployee(ctx, "E1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteEmployee_CleanupFailure(t *testing.T) {
	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	attendanceRepo := failingCleanupRepo{memory.NewAttendanceRepository(store)}
	svc := NewEmployeeService(memory.NewTransactor(), employeeRepo, attendanceRepo)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
	require.NoError(t, err)

	err = svc.DeleteEmployee(ctx, "E1")
	require.Error(t, err)
	assert.ErrorIs(t, err, employee.ErrCascadeIncomplete)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestEmployeeService_ListEmployees_CappedNewestFirst(t *testing.T) {
	store := memory.NewStore()
	employeeRepo := memory.NewEmployeeRepository(store)
	svc := NewEmployeeService(memory.NewTransactor(), employeeRepo, memory.NewAttendanceRepository(store))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	total := employee.ListLimit + 5
	for i := 0; i < total; i++ {
		id := fmt.Sprintf("E%d", i)
		_, err := employeeRepo.Create(ctx, employee.Employee{
			EmployeeID: id,
			FullName:   "Test " + id,
			Email:      id + "@x.com",
			Department: "Ops",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, employee.ListLimit)
	assert.Equal(t, fmt.Sprintf("E%d", total-1), list[0].EmployeeID)
	assert.Equal(t, "E5", list[len(list)-1].EmployeeID)
}

func TestEmployeeService_DeleteEmployee_CleanupFailureMessage(t *testing.T) {
	store := memory.NewStore()
	svc := NewEmployeeService(
		memory.NewTransactor(),
		memory.NewEmployeeRepository(store),
		failingCleanupRepo{memory.NewAttendanceRepository(store)},
	)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, createRequest("E1", "a@x.com"))
	require.NoError(t, err)

	err = svc.DeleteEmployee(ctx, "E1")
	require.Error(t, err)
	assert.Equal(t, "attendance cleanup failed during employee delete: connection reset", err.Error())
}
