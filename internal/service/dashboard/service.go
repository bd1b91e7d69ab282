package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/dashboard"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type DashboardServiceImpl struct {
	db *database.DB
	dashboard.DashboardRepository
}

func NewDashboardService(db *database.DB, dashboardRepository dashboard.DashboardRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		db:                  db,
		DashboardRepository: dashboardRepository,
	}
}

// GetSummary implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetSummary(ctx context.Context) (dashboard.Summary, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to get claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return dashboard.Summary{}, company.ErrCompanyNotFound
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	employees, err := s.DashboardRepository.EmployeeStats(ctx, companyID)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to get employee stats: %w", err)
	}

	attendanceStats, err := s.DashboardRepository.AttendanceStats(ctx, companyID, today)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	payrollStats, err := s.DashboardRepository.PayrollStats(ctx, companyID)
	if err != nil {
		return dashboard.Summary{}, fmt.Errorf("failed to get payroll stats: %w", err)
	}

	return dashboard.Summary{
		Employees:  employees,
		Attendance: attendanceStats,
		Payroll:    payrollStats,
	}, nil
}
