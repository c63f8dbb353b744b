package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `id, employee_id, date, status, created_at`

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		record attendance.Attendance
		id     uuid.UUID
		date   time.Time
		status string
	)
	if err := row.Scan(&id, &record.EmployeeID, &date, &status, &record.CreatedAt); err != nil {
		return attendance.Attendance{}, err
	}
	record.ID = id.String()
	record.Date = date.Format(validator.DateLayout)
	record.Status = attendance.Status(status)
	record.CreatedAt = record.CreatedAt.UTC()
	return record, nil
}

// parseDate converts a YYYY-MM-DD string to the DATE parameter pgx expects.
func parseDate(date string) (time.Time, error) {
	t, err := time.Parse(validator.DateLayout, date)
	if err != nil {
		return time.Time{}, attendance.ErrInvalidDate
	}
	return t, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter, limit int) ([]attendance.Attendance, error) {
	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}

	dateConds := []struct {
		value string
		op    string
	}{
		{filter.Date, "="},
		{filter.From, ">="},
		{filter.To, "<="},
	}
	for _, cond := range dateConds {
		if cond.value == "" {
			continue
		}
		d, err := parseDate(cond.value)
		if err != nil {
			return nil, err
		}
		whereClauses = append(whereClauses, fmt.Sprintf("date %s $%d", cond.op, argIdx))
		args = append(args, d)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendance
		WHERE %s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d
	`, attendanceColumns, strings.Join(whereClauses, " AND "), argIdx)
	args = append(args, limit)

	return r.query(ctx, query, args...)
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance
		WHERE employee_id = $1
		ORDER BY date DESC
		LIMIT $2
	`
	return r.query(ctx, query, employeeID, limit)
}

func (r *attendanceRepositoryImpl) query(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	d, err := parseDate(date)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id = $1 AND date = $2`

	record, err := scanAttendance(q.QueryRow(ctx, query, employeeID, d))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return record, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	d, err := parseDate(record.Date)
	if err != nil {
		return attendance.Attendance{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO attendance (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query, id, record.EmployeeID, d, string(record.Status), record.CreatedAt))
	if err != nil {
		if constraint, ok := uniqueConstraint(err); ok && constraint == database.AttendanceEmployeeDateUniqueIndex {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, err
	}
	return created, nil
}

// UpdateStatus implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) UpdateStatus(ctx context.Context, employeeID string, date string, status attendance.Status, markedAt time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	d, err := parseDate(date)
	if err != nil {
		return attendance.Attendance{}, err
	}

	query := `
		UPDATE attendance
		SET status = $1, created_at = $2
		WHERE employee_id = $3 AND date = $4
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query, string(status), markedAt, employeeID, d))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return updated, nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	cmdTag, err := q.Exec(ctx, `DELETE FROM attendance WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}

// CountByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByEmployee(ctx context.Context, employeeID string) (attendance.StatusCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = $2),
			COUNT(*) FILTER (WHERE status = $3)
		FROM attendance
		WHERE employee_id = $1
	`

	var counts attendance.StatusCounts
	err := q.QueryRow(ctx, query, employeeID, string(attendance.StatusPresent), string(attendance.StatusAbsent)).
		Scan(&counts.Total, &counts.Present, &counts.Absent)
	if err != nil {
		return attendance.StatusCounts{}, err
	}
	return counts, nil
}
