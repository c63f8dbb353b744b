package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, limit int) ([]attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var records []attendance.Attendance
	for _, record := range r.store.attendance {
		if matches(record, filter) {
			records = append(records, record)
		}
	}
	return sortAndLimit(records, limit), nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	return r.List(ctx, attendance.AttendanceFilter{EmployeeID: employeeID}, limit)
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.Attendance, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	record, ok := r.store.attendance[attendanceKey{employeeID: employeeID, date: date}]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return record, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := attendanceKey{employeeID: record.EmployeeID, date: record.Date}
	if _, ok := r.store.attendance[key]; ok {
		return attendance.Attendance{}, attendance.ErrDuplicateAttendance
	}

	record.ID = newID()
	r.store.attendance[key] = record
	return record, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, employeeID string, date string, status attendance.Status, markedAt time.Time) (attendance.Attendance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := attendanceKey{employeeID: employeeID, date: date}
	record, ok := r.store.attendance[key]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}

	record.Status = status
	record.CreatedAt = markedAt
	r.store.attendance[key] = record
	return record, nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var deleted int64
	for key := range r.store.attendance {
		if key.employeeID == employeeID {
			delete(r.store.attendance, key)
			deleted++
		}
	}
	return deleted, nil
}

// CountByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByEmployee(ctx context.Context, employeeID string) (attendance.StatusCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var counts attendance.StatusCounts
	for key, record := range r.store.attendance {
		if key.employeeID != employeeID {
			continue
		}
		counts.Total++
		switch record.Status {
		case attendance.StatusPresent:
			counts.Present++
		case attendance.StatusAbsent:
			counts.Absent++
		}
	}
	return counts, nil
}

func matches(record attendance.Attendance, filter attendance.AttendanceFilter) bool {
	if filter.EmployeeID != "" && record.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.Date != "" && record.Date != filter.Date {
		return false
	}
	if filter.From != "" && record.Date < filter.From {
		return false
	}
	if filter.To != "" && record.Date > filter.To {
		return false
	}
	return true
}

func sortAndLimit(records []attendance.Attendance, limit int) []attendance.Attendance {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date > records[j].Date
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return records
}
