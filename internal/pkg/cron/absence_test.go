package cron

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
)

type fakeCompanyRepo struct {
	companies []company.Company
}

func (f *fakeCompanyRepo) Create(_ context.Context, c company.Company) (company.Company, error) {
	return c, nil
}

func (f *fakeCompanyRepo) GetByID(context.Context, string) (company.Company, error) {
	return company.Company{}, pgx.ErrNoRows
}

func (f *fakeCompanyRepo) List(context.Context) ([]company.Company, error) {
	return f.companies, nil
}

func (f *fakeCompanyRepo) Update(context.Context, company.Company) error { return nil }

func (f *fakeCompanyRepo) SetActive(context.Context, string, bool) error { return nil }

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string, string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByQRToken(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(context.Context, string, employee.ListEmployeesFilter) ([]employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(context.Context, string) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) RotateQRToken(context.Context, string, string, string) error { return nil }

type fakeRulesRepo struct {
	rules attendance.Rules
}

func (f *fakeRulesRepo) GetByCompany(context.Context, string) (attendance.Rules, error) {
	return f.rules, nil
}

func (f *fakeRulesRepo) Upsert(_ context.Context, r attendance.Rules) (attendance.Rules, error) {
	return r, nil
}

type fakeAttendanceRepo struct {
	existing map[string]attendance.Attendance
	created  []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	a.ID = "att-created"
	f.created = append(f.created, a)
	return a, nil
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, _ time.Time) (attendance.Attendance, error) {
	if a, ok := f.existing[employeeID]; ok {
		return a, nil
	}
	return attendance.Attendance{}, pgx.ErrNoRows
}

func (f *fakeAttendanceRepo) List(context.Context, string, attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) SummarizeByEmployee(context.Context, string, time.Time, time.Time) (map[string]attendance.Summary, error) {
	return nil, nil
}

func allWeekRules(companyID string) attendance.Rules {
	r := attendance.DefaultRules(companyID)
	r.WorkingDays = []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	return r
}

func TestMarkAbsentEmployees(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		existing: map[string]attendance.Attendance{
			"emp-1": {ID: "att-1", EmployeeID: "emp-1", Status: attendance.StatusPresent},
		},
	}
	jobs := NewAbsenceJobs(
		&fakeCompanyRepo{companies: []company.Company{
			{ID: "co-1", Name: "Sahel Distribution", IsActive: true},
			{ID: "co-2", Name: "Closed Shop", IsActive: false},
		}},
		&fakeEmployeeRepo{active: []employee.Employee{
			{ID: "emp-1", CompanyID: "co-1"},
			{ID: "emp-2", CompanyID: "co-1"},
		}},
		&fakeRulesRepo{rules: allWeekRules("co-1")},
		attRepo,
	)
	jobs.now = func() time.Time {
		return time.Date(2026, 3, 3, 0, 30, 0, 0, time.UTC)
	}

	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))

	require.Len(t, attRepo.created, 1)
	created := attRepo.created[0]
	assert.Equal(t, "emp-2", created.EmployeeID)
	assert.Equal(t, "co-1", created.CompanyID)
	assert.Equal(t, attendance.StatusAbsent, created.Status)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), created.Date)
	assert.Nil(t, created.CheckIn)
}

func TestMarkAbsentEmployees_OnlyRunsAtLocalMidnight(t *testing.T) {
	attRepo := &fakeAttendanceRepo{existing: map[string]attendance.Attendance{}}
	jobs := NewAbsenceJobs(
		&fakeCompanyRepo{companies: []company.Company{{ID: "co-1", IsActive: true}}},
		&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", CompanyID: "co-1"}}},
		&fakeRulesRepo{rules: allWeekRules("co-1")},
		attRepo,
	)
	jobs.now = func() time.Time {
		return time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)
	}

	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))
	assert.Empty(t, attRepo.created)
}

func TestMarkAbsentEmployees_SkipsNonWorkingDay(t *testing.T) {
	attRepo := &fakeAttendanceRepo{existing: map[string]attendance.Attendance{}}
	jobs := NewAbsenceJobs(
		&fakeCompanyRepo{companies: []company.Company{{ID: "co-1", IsActive: true}}},
		&fakeEmployeeRepo{active: []employee.Employee{{ID: "emp-1", CompanyID: "co-1"}}},
		&fakeRulesRepo{rules: attendance.DefaultRules("co-1")},
		attRepo,
	)
	// 2026-03-02 is a Monday, so the Sunday before it is not a working day
	// under the default Monday through Friday rules.
	jobs.now = func() time.Time {
		return time.Date(2026, 3, 2, 0, 15, 0, 0, time.UTC)
	}

	require.NoError(t, jobs.MarkAbsentEmployees(context.Background()))
	assert.Empty(t, attRepo.created)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()
	runs := 0
	s.Register("count", time.Hour, func(context.Context) error {
		runs++
		return nil
	})

	s.RunOnce(context.Background())
	assert.Equal(t, 1, runs)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler()
	ran := make(chan struct{}, 1)
	s.Register("ping", time.Hour, func(context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
