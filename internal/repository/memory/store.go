// Package memory is an in-process persistence gateway. It enforces the same
// unique keys as the MongoDB and PostgreSQL gateways and backs DB_DRIVER=memory
// and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/google/uuid"
)

type attendanceKey struct {
	employeeID string
	date       string
}

type Store struct {
	mu         sync.RWMutex
	employees  map[string]employee.Employee
	attendance map[attendanceKey]attendance.Attendance
}

func NewStore() *Store {
	return &Store{
		employees:  make(map[string]employee.Employee),
		attendance: make(map[attendanceKey]attendance.Attendance),
	}
}

// Ping implements database.Pinger.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

type transactorImpl struct{}

// NewTransactor returns a Transactor that runs fn directly. Writes are not
// rolled back when fn fails part-way.
func NewTransactor() database.Transactor {
	return transactorImpl{}
}

func (transactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
