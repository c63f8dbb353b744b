package attendance

import (
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type MarkAttendanceRequest struct {
	EmployeeID string `json:"employee_id" validate:"notblank"`
	Date       string `json:"date" validate:"notblank,date"`
	Status     string `json:"status" validate:"notblank,oneof=Present Absent"`
}

func (r *MarkAttendanceRequest) Validate() error {
	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.Date = strings.TrimSpace(r.Date)
	r.Status = strings.TrimSpace(r.Status)

	return validator.Struct(r)
}

// AttendanceFilter narrows a listing. Empty fields do not constrain.
// From and To bound the date inclusively.
type AttendanceFilter struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date" validate:"omitempty,date"`
	From       string `json:"from" validate:"omitempty,date"`
	To         string `json:"to" validate:"omitempty,date"`
}

func (f *AttendanceFilter) Validate() error {
	f.EmployeeID = strings.TrimSpace(f.EmployeeID)
	f.Date = strings.TrimSpace(f.Date)
	f.From = strings.TrimSpace(f.From)
	f.To = strings.TrimSpace(f.To)

	if err := validator.Struct(f); err != nil {
		return err
	}

	// Dates share a fixed-width layout, so string order is calendar order
	if f.From != "" && f.To != "" && f.From > f.To {
		return validator.ValidationErrors{{
			Field:   "from",
			Message: ErrInvalidDateRange.Error(),
		}}
	}
	return nil
}

type AttendanceResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       a.Date,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt.UTC(),
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	result := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		result = append(result, NewAttendanceResponse(record))
	}
	return result
}

type AttendanceStatsResponse struct {
	EmployeeID     string `json:"employee_id"`
	TotalDays      int64  `json:"total_days"`
	PresentDays    int64  `json:"present_days"`
	AbsentDays     int64  `json:"absent_days"`
	AttendanceRate int    `json:"attendance_rate"`
}

func NewAttendanceStatsResponse(employeeID string, counts StatusCounts) AttendanceStatsResponse {
	rate := 0
	if counts.Total > 0 {
		rate = int(math.Round(float64(counts.Present) * 100 / float64(counts.Total)))
	}
	return AttendanceStatsResponse{
		EmployeeID:     employeeID,
		TotalDays:      counts.Total,
		PresentDays:    counts.Present,
		AbsentDays:     counts.Absent,
		AttendanceRate: rate,
	}
}
