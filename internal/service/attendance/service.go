package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// ensureEmployee returns employee.ErrEmployeeNotFound when no employee carries employeeID.
func (s *AttendanceServiceImpl) ensureEmployee(ctx context.Context, employeeID string) error {
	exists, err := s.employeeRepo.ExistsByEmployeeID(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to check employee existence: %w", err)
	}
	if !exists {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter, attendance.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, employeeID string) ([]attendance.AttendanceResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, attendance.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}
	return attendance.NewAttendanceResponses(records), nil
}

// GetAttendanceStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendanceStats(ctx context.Context, employeeID string) (attendance.AttendanceStatsResponse, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return attendance.AttendanceStatsResponse{}, err
	}

	counts, err := s.attendanceRepo.CountByEmployee(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceStatsResponse{}, fmt.Errorf("failed to count attendance: %w", err)
	}
	return attendance.NewAttendanceStatsResponse(employeeID, counts), nil
}

// MarkAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAttendance(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := s.ensureEmployee(ctx, req.EmployeeID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	status := attendance.Status(req.Status)
	markedAt := s.now().UTC().Truncate(time.Millisecond)

	_, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, req.Date)
	switch {
	case err == nil:
		return s.overwrite(ctx, req.EmployeeID, req.Date, status, markedAt)
	case !errors.Is(err, attendance.ErrAttendanceNotFound):
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       req.Date,
		Status:     status,
		CreatedAt:  markedAt,
	})
	if err != nil {
		// A concurrent mark for the same day won the insert; apply ours on top of it
		if errors.Is(err, attendance.ErrDuplicateAttendance) {
			return s.overwrite(ctx, req.EmployeeID, req.Date, status, markedAt)
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(created), nil
}

func (s *AttendanceServiceImpl) overwrite(ctx context.Context, employeeID, date string, status attendance.Status, markedAt time.Time) (attendance.AttendanceResponse, error) {
	updated, err := s.attendanceRepo.UpdateStatus(ctx, employeeID, date, status, markedAt)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return attendance.NewAttendanceResponse(updated), nil
}
