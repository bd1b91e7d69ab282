package dashboard

import (
	"context"
	"time"
)

type DashboardRepository interface {
	EmployeeStats(ctx context.Context, companyID string) (EmployeeStats, error)
	AttendanceStats(ctx context.Context, companyID string, date time.Time) (AttendanceStats, error)
	PayrollStats(ctx context.Context, companyID string) (PayrollStats, error)
}
