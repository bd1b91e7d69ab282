package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, a Attendance) (Attendance, error)
	Update(ctx context.Context, a Attendance) error
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)
	List(ctx context.Context, companyID string, filter ListAttendanceFilter) ([]Attendance, int, error)

	// SummarizeByEmployee aggregates days present and minutes worked per
	// employee over a period, feeding payroll generation.
	SummarizeByEmployee(ctx context.Context, companyID string, from, to time.Time) (map[string]Summary, error)
}

// Summary aggregates one employee's attendance over a pay period.
// DaysTracked counts every record including ABSENT ones, so a zero value
// means attendance was never recorded for the period at all.
type Summary struct {
	EmployeeID    string
	DaysTracked   int
	DaysPresent   int
	MinutesWorked int
}

type RulesRepository interface {
	GetByCompany(ctx context.Context, companyID string) (Rules, error)
	Upsert(ctx context.Context, r Rules) (Rules, error)
}
