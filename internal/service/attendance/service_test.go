package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.nextID++
	a.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[f.key(a.EmployeeID, a.Date)] = a
	return a, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, a attendance.Attendance) error {
	f.records[f.key(a.EmployeeID, a.Date)] = a
	return nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a, ok := f.records[f.key(employeeID, date)]
	if !ok {
		return attendance.Attendance{}, pgx.ErrNoRows
	}
	return a, nil
}

func (f *fakeAttendanceRepo) List(_ context.Context, _ string, _ attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) SummarizeByEmployee(_ context.Context, _ string, _, _ time.Time) (map[string]attendance.Summary, error) {
	return nil, nil
}

type fakeRulesRepo struct {
	rules attendance.Rules
}

func (f *fakeRulesRepo) GetByCompany(_ context.Context, _ string) (attendance.Rules, error) {
	return f.rules, nil
}

func (f *fakeRulesRepo) Upsert(_ context.Context, r attendance.Rules) (attendance.Rules, error) {
	f.rules = r
	return r, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees = append(f.employees, e)
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, companyID, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.CompanyID == companyID && e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByQRToken(_ context.Context, token string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.QRToken == token {
			return e, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ string, _ employee.ListEmployeesFilter) ([]employee.Employee, int, error) {
	return f.employees, len(f.employees), nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context, _ string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) RotateQRToken(_ context.Context, _, _, _ string) error { return nil }

// claimsContext builds a context carrying verified claims, the same shape the
// router's token verifier produces.
func claimsContext(t *testing.T, claims map[string]interface{}) context.Context {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims["type"] = "access"
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func allWeekRules(companyID string) attendance.Rules {
	rules := attendance.DefaultRules(companyID)
	rules.WorkingDays = []time.Weekday{
		time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	return rules
}

func newTestService(employees ...employee.Employee) (attendance.AttendanceService, *fakeAttendanceRepo) {
	attRepo := newFakeAttendanceRepo()
	rulesRepo := &fakeRulesRepo{rules: allWeekRules("company-1")}
	empRepo := &fakeEmployeeRepo{employees: employees}
	m := metrics.NewMetrics(prometheus.NewRegistry())
	return NewAttendanceService(nil, attRepo, rulesRepo, empRepo, m), attRepo
}

func activeTestEmployee() employee.Employee {
	return employee.Employee{
		ID:        "emp-1",
		CompanyID: "company-1",
		FullName:  "Awa Diop",
		Status:    employee.StatusActive,
		QRToken:   "badge-token-1",
	}
}

func TestScanQR_TogglesCheckInThenOut(t *testing.T) {
	svc, _ := newTestService(activeTestEmployee())
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-1", "company_id": "company-1", "role": "VIGILE",
	})

	first, err := svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "badge-token-1"})
	require.NoError(t, err)
	assert.Equal(t, "CHECK_IN", first.Action)
	assert.Equal(t, "Awa Diop", first.EmployeeName)
	assert.Equal(t, attendance.SourceQR, first.Attendance.Source)
	require.NotNil(t, first.Attendance.CheckIn)
	assert.Nil(t, first.Attendance.CheckOut)

	second, err := svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "badge-token-1"})
	require.NoError(t, err)
	assert.Equal(t, "CHECK_OUT", second.Action)
	require.NotNil(t, second.Attendance.CheckOut)
	require.NotNil(t, second.Attendance.WorkedMinutes)

	_, err = svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "badge-token-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestScanQR_UnknownToken(t *testing.T) {
	svc, _ := newTestService(activeTestEmployee())
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-1", "company_id": "company-1", "role": "VIGILE",
	})

	_, err := svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "no-such-badge"})
	assert.ErrorIs(t, err, employee.ErrQRTokenNotFound)
}

func TestScanQR_BadgeFromAnotherCompany(t *testing.T) {
	other := activeTestEmployee()
	other.CompanyID = "company-2"
	svc, _ := newTestService(other)
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-1", "company_id": "company-1", "role": "VIGILE",
	})

	_, err := svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "badge-token-1"})
	assert.ErrorIs(t, err, employee.ErrQRTokenNotFound)
}

func TestScanQR_TerminatedEmployee(t *testing.T) {
	terminated := activeTestEmployee()
	terminated.Status = employee.StatusTerminated
	svc, _ := newTestService(terminated)
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-1", "company_id": "company-1", "role": "VIGILE",
	})

	_, err := svc.ScanQR(ctx, attendance.QRScanRequest{QRToken: "badge-token-1"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotActive)
}

func TestCheckIn_ThenDoubleCheckIn(t *testing.T) {
	svc, _ := newTestService(activeTestEmployee())
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-2", "company_id": "company-1", "employee_id": "emp-1", "role": "EMPLOYEE",
	})

	record, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, attendance.SourceSession, record.Source)
	require.NotNil(t, record.CheckIn)

	_, err = svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _ := newTestService(activeTestEmployee())
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-2", "company_id": "company-1", "employee_id": "emp-1", "role": "EMPLOYEE",
	})

	_, err := svc.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckIn_MissingEmployeeClaim(t *testing.T) {
	svc, _ := newTestService(activeTestEmployee())
	ctx := claimsContext(t, map[string]interface{}{
		"user_id": "user-1", "company_id": "company-1", "role": "ADMIN",
	})

	_, err := svc.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
