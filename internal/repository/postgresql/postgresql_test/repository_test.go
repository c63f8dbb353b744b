package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEmployee(id, email string, createdAt time.Time) employee.Employee {
	return employee.Employee{
		EmployeeID: id,
		FullName:   "Test " + id,
		Email:      email,
		Department: "Ops",
		CreatedAt:  createdAt,
	}
}

func TestEmployeeRepository_CreateAndUniqueness(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := repo.Create(ctx, newEmployee("E1", "a@x.com", now))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, now.Equal(created.CreatedAt))

	_, err = repo.Create(ctx, newEmployee("E1", "other@x.com", now))
	assert.ErrorIs(t, err, employee.ErrEmployeeIDExists)

	_, err = repo.Create(ctx, newEmployee("E2", "a@x.com", now))
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	exists, err := repo.ExistsByEmail(ctx, "a@x.com", "E1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "a@x.com", "")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestEmployeeRepository_ListUpdateDelete(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, newEmployee("E1", "a@x.com", base))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newEmployee("E2", "b@x.com", base.Add(time.Hour)))
	require.NoError(t, err)

	list, err := repo.List(ctx, employee.ListLimit)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "E2", list[0].EmployeeID)

	dept := "Finance"
	updated, err := repo.Update(ctx, "E1", employee.UpdateFields{Department: &dept})
	require.NoError(t, err)
	assert.Equal(t, "Finance", updated.Department)

	taken := "b@x.com"
	_, err = repo.Update(ctx, "E1", employee.UpdateFields{Email: &taken})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	require.NoError(t, repo.Delete(ctx, "E1"))
	assert.ErrorIs(t, repo.Delete(ctx, "E1"), employee.ErrEmployeeNotFound)

	_, err = repo.GetByEmployeeID(ctx, "E1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_UpsertPathsAndCounts(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(setup.DB)
	now := time.Now().UTC().Truncate(time.Millisecond)

	_, err := repo.Create(ctx, attendance.Attendance{EmployeeID: "E1", Date: "2024-01-05", Status: attendance.StatusPresent, CreatedAt: now})
	require.NoError(t, err)

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: "E1", Date: "2024-01-05", Status: attendance.StatusAbsent, CreatedAt: now})
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)

	later := now.Add(time.Minute)
	updated, err := repo.UpdateStatus(ctx, "E1", "2024-01-05", attendance.StatusAbsent, later)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, updated.Status)
	assert.Equal(t, "2024-01-05", updated.Date)
	assert.True(t, later.Equal(updated.CreatedAt))

	_, err = repo.Create(ctx, attendance.Attendance{EmployeeID: "E1", Date: "2024-01-06", Status: attendance.StatusPresent, CreatedAt: now})
	require.NoError(t, err)

	counts, err := repo.CountByEmployee(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCounts{Total: 2, Present: 1, Absent: 1}, counts)

	ranged, err := repo.List(ctx, attendance.AttendanceFilter{From: "2024-01-06", To: "2024-01-31"}, attendance.ListLimit)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "2024-01-06", ranged[0].Date)

	removed, err := repo.DeleteByEmployeeID(ctx, "E1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employeeRepo := postgresql.NewEmployeeRepository(setup.DB)
	transactor := postgresql.NewTransactor(setup.DB)

	_, err := employeeRepo.Create(ctx, newEmployee("E1", "a@x.com", time.Now().UTC()))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, employeeRepo.Delete(txCtx, "E1"))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = employeeRepo.GetByEmployeeID(ctx, "E1")
	assert.NoError(t, err)
}
