package attendance

import (
	"time"
)

// Attendance is the mark for one employee on one calendar day.
// (EmployeeID, Date) is unique.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       string
	Status     Status
	CreatedAt  time.Time
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// StatusCounts holds per-status totals for one employee.
type StatusCounts struct {
	Total   int64
	Present int64
	Absent  int64
}

// ListLimit caps the number of attendance records returned by a single listing.
const ListLimit = 10000
