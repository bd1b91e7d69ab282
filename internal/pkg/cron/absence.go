package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
)

// AbsenceJobs materializes ABSENT attendance records for active employees who
// never punched on a working day. Records are written for the previous day
// once the company's local clock passes midnight, so late check-outs are not
// cut off.
type AbsenceJobs struct {
	companyRepo    company.CompanyRepository
	employeeRepo   employee.EmployeeRepository
	rulesRepo      attendance.RulesRepository
	attendanceRepo attendance.AttendanceRepository
	now            func() time.Time
}

func NewAbsenceJobs(
	companyRepo company.CompanyRepository,
	employeeRepo employee.EmployeeRepository,
	rulesRepo attendance.RulesRepository,
	attendanceRepo attendance.AttendanceRepository,
) *AbsenceJobs {
	return &AbsenceJobs{
		companyRepo:    companyRepo,
		employeeRepo:   employeeRepo,
		rulesRepo:      rulesRepo,
		attendanceRepo: attendanceRepo,
		now:            time.Now,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.Register("mark_absent_employees", time.Hour, j.MarkAbsentEmployees)
}

// MarkAbsentEmployees runs hourly but only acts on companies whose local time
// is in the first hour of the day, which makes it effectively a per-company
// nightly job. It is idempotent: existing records for the day are left alone.
func (j *AbsenceJobs) MarkAbsentEmployees(ctx context.Context) error {
	companies, err := j.companyRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	total := 0
	for _, c := range companies {
		if !c.IsActive {
			continue
		}

		marked, err := j.markCompanyAbsences(ctx, c.ID)
		if err != nil {
			slog.Error("mark absences failed for company", "company_id", c.ID, "error", err)
			continue
		}
		total += marked
	}

	if total > 0 {
		slog.Info("marked absent employees", "count", total)
	}
	return nil
}

func (j *AbsenceJobs) markCompanyAbsences(ctx context.Context, companyID string) (int, error) {
	rules, err := j.rulesRepo.GetByCompany(ctx, companyID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("failed to get attendance rules: %w", err)
		}
		rules = attendance.DefaultRules(companyID)
	}

	now := j.now().In(rules.Location())
	if now.Hour() != 0 {
		return 0, nil
	}

	yesterday := now.AddDate(0, 0, -1)
	date := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, time.UTC)
	if !rules.WorksOn(date.Weekday()) {
		return 0, nil
	}

	employees, err := j.employeeRepo.ListActive(ctx, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to list active employees: %w", err)
	}

	marked := 0
	for _, emp := range employees {
		_, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, date)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			slog.Error("failed to check attendance", "employee_id", emp.ID, "error", err)
			continue
		}

		_, err = j.attendanceRepo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			Date:       date,
			Status:     attendance.StatusAbsent,
			Source:     attendance.SourceSession,
		})
		if err != nil {
			slog.Error("failed to record absence", "employee_id", emp.ID, "error", err)
			continue
		}
		marked++
	}
	return marked, nil
}
