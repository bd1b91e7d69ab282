package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
	"github.com/paietrack/paietrack-backend-go/internal/repository/postgresql"
)

type fakePayRunRepo struct {
	run     payroll.PayRun
	updated *payroll.PayRun
}

func (f *fakePayRunRepo) Create(_ context.Context, p payroll.PayRun) (payroll.PayRun, error) {
	return p, nil
}

func (f *fakePayRunRepo) GetByID(context.Context, string, string) (payroll.PayRun, error) {
	return f.run, nil
}

func (f *fakePayRunRepo) List(context.Context, string) ([]payroll.PayRun, error) {
	return nil, nil
}

func (f *fakePayRunRepo) Update(_ context.Context, p payroll.PayRun) error {
	f.updated = &p
	return nil
}

func (f *fakePayRunRepo) ExistsOverlapping(context.Context, string, time.Time, time.Time) (bool, error) {
	return false, nil
}

type fakeBulletinRepo struct {
	unpaid  int
	seq     int
	created []payroll.Bulletin
}

func (f *fakeBulletinRepo) Create(_ context.Context, b payroll.Bulletin) (payroll.Bulletin, error) {
	b.ID = fmt.Sprintf("bul-%d", len(f.created)+1)
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBulletinRepo) GetByID(context.Context, string, string) (payroll.Bulletin, error) {
	return payroll.Bulletin{}, nil
}

func (f *fakeBulletinRepo) List(context.Context, string, payroll.ListBulletinsFilter) ([]payroll.Bulletin, int, error) {
	return nil, 0, nil
}

func (f *fakeBulletinRepo) ListByPayRun(context.Context, string) ([]payroll.Bulletin, error) {
	return nil, nil
}

func (f *fakeBulletinRepo) UpdatePaymentState(context.Context, payroll.Bulletin) error {
	return nil
}

func (f *fakeBulletinRepo) CountUnpaidByPayRun(context.Context, string) (int, error) {
	return f.unpaid, nil
}

func (f *fakeBulletinRepo) NextNumero(_ context.Context, _ string, period time.Time) (string, error) {
	f.seq++
	return fmt.Sprintf("BUL-%s-%04d", period.Format("200601"), f.seq), nil
}

type fakeEmployeeRepo struct {
	active []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(context.Context, string, string) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) GetByQRToken(context.Context, string) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) List(context.Context, string, employee.ListEmployeesFilter) ([]employee.Employee, int, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(context.Context, string) ([]employee.Employee, error) {
	return f.active, nil
}

func (f *fakeEmployeeRepo) Update(context.Context, employee.Employee) error { return nil }

func (f *fakeEmployeeRepo) RotateQRToken(context.Context, string, string, string) error { return nil }

type fakeAttendanceRepo struct {
	summaries map[string]attendance.Summary
}

func (f *fakeAttendanceRepo) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) Update(context.Context, attendance.Attendance) error { return nil }

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(context.Context, string, time.Time) (attendance.Attendance, error) {
	return attendance.Attendance{}, nil
}

func (f *fakeAttendanceRepo) List(context.Context, string, attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) SummarizeByEmployee(context.Context, string, time.Time, time.Time) (map[string]attendance.Summary, error) {
	return f.summaries, nil
}

type fakeRulesRepo struct{}

func (f *fakeRulesRepo) GetByCompany(_ context.Context, companyID string) (attendance.Rules, error) {
	return attendance.DefaultRules(companyID), nil
}

func (f *fakeRulesRepo) Upsert(_ context.Context, r attendance.Rules) (attendance.Rules, error) {
	return r, nil
}

// payrollContext builds a context carrying admin claims and a mock querier,
// so transactional service methods run without a live pool.
func payrollContext(t *testing.T) context.Context {
	t.Helper()

	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": "co-1",
		"role":       "ADMIN",
	})
	require.NoError(t, err)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	return postgresql.WithQuerier(ctx, mock)
}

func TestGenerate_FixedSalaries(t *testing.T) {
	runRepo := &fakePayRunRepo{run: payroll.PayRun{
		ID:          "run-1",
		CompanyID:   "co-1",
		Label:       "Janvier 2026",
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      payroll.PayRunDraft,
	}}
	bulletinRepo := &fakeBulletinRepo{}
	svc := &PayrollServiceImpl{
		PayRunRepository:   runRepo,
		BulletinRepository: bulletinRepo,
		EmployeeRepository: &fakeEmployeeRepo{active: []employee.Employee{
			{ID: "emp-1", CompanyID: "co-1", ContractType: employee.ContractFixe, BaseRate: decimal.NewFromInt(75000)},
			{ID: "emp-2", CompanyID: "co-1", ContractType: employee.ContractFixe, BaseRate: decimal.NewFromInt(55000)},
		}},
		AttendanceRepository: &fakeAttendanceRepo{summaries: map[string]attendance.Summary{}},
		RulesRepository:      &fakeRulesRepo{},
		metrics:              metrics.NewMetrics(prometheus.NewRegistry()),
	}

	run, err := svc.Generate(payrollContext(t), "run-1")
	require.NoError(t, err)

	assert.Equal(t, payroll.PayRunInProgress, run.Status)
	assert.Equal(t, 2, run.EmployeeCount)
	assert.True(t, run.TotalBrut.Equal(decimal.NewFromInt(130000)), "brut %s", run.TotalBrut)
	assert.True(t, run.TotalDeductions.Equal(decimal.NewFromInt(6500)), "deductions %s", run.TotalDeductions)
	assert.True(t, run.TotalNet.Equal(decimal.NewFromInt(123500)), "net %s", run.TotalNet)

	require.Len(t, bulletinRepo.created, 2)

	first := bulletinRepo.created[0]
	assert.Equal(t, "emp-1", first.EmployeeID)
	assert.Equal(t, "BUL-202601-0001", first.Numero)
	assert.True(t, first.SalaireBrut.Equal(decimal.NewFromInt(75000)))
	assert.True(t, first.SalaireNet.Equal(decimal.NewFromInt(71250)))
	assert.True(t, first.ResteAPayer.Equal(first.SalaireNet))
	assert.True(t, first.MontantPaye.IsZero())
	assert.Equal(t, payroll.PaiementPending, first.StatutPaiement)

	second := bulletinRepo.created[1]
	assert.Equal(t, "emp-2", second.EmployeeID)
	assert.Equal(t, "BUL-202601-0002", second.Numero)
	assert.True(t, second.SalaireNet.Equal(decimal.NewFromInt(52250)))

	require.NotNil(t, runRepo.updated)
	assert.Equal(t, payroll.PayRunInProgress, runRepo.updated.Status)
}

func TestGenerate_RejectsNonDraftRun(t *testing.T) {
	runRepo := &fakePayRunRepo{run: payroll.PayRun{
		ID:        "run-1",
		CompanyID: "co-1",
		Status:    payroll.PayRunInProgress,
	}}
	bulletinRepo := &fakeBulletinRepo{}
	svc := &PayrollServiceImpl{
		PayRunRepository:     runRepo,
		BulletinRepository:   bulletinRepo,
		EmployeeRepository:   &fakeEmployeeRepo{},
		AttendanceRepository: &fakeAttendanceRepo{},
		RulesRepository:      &fakeRulesRepo{},
		metrics:              metrics.NewMetrics(prometheus.NewRegistry()),
	}

	_, err := svc.Generate(payrollContext(t), "run-1")
	assert.ErrorIs(t, err, payroll.ErrPayRunAlreadyGenerated)
	assert.Empty(t, bulletinRepo.created)
	assert.Nil(t, runRepo.updated)
}

func TestCompleteRunIfSettled_LastBulletinPaid(t *testing.T) {
	runRepo := &fakePayRunRepo{run: payroll.PayRun{ID: "run-1", Status: payroll.PayRunInProgress}}
	svc := &PayrollServiceImpl{
		PayRunRepository:   runRepo,
		BulletinRepository: &fakeBulletinRepo{unpaid: 0},
	}

	b := payroll.Bulletin{ID: "bul-1", PayRunID: "run-1", StatutPaiement: payroll.PaiementPaid}
	require.NoError(t, svc.completeRunIfSettled(context.Background(), "co-1", b))

	require.NotNil(t, runRepo.updated)
	assert.Equal(t, payroll.PayRunComplete, runRepo.updated.Status)
}

func TestCompleteRunIfSettled_UnpaidBulletinsRemain(t *testing.T) {
	runRepo := &fakePayRunRepo{run: payroll.PayRun{ID: "run-1", Status: payroll.PayRunInProgress}}
	svc := &PayrollServiceImpl{
		PayRunRepository:   runRepo,
		BulletinRepository: &fakeBulletinRepo{unpaid: 3},
	}

	b := payroll.Bulletin{ID: "bul-1", PayRunID: "run-1", StatutPaiement: payroll.PaiementPaid}
	require.NoError(t, svc.completeRunIfSettled(context.Background(), "co-1", b))
	assert.Nil(t, runRepo.updated)
}

func TestCompleteRunIfSettled_PartialPaymentDoesNothing(t *testing.T) {
	runRepo := &fakePayRunRepo{run: payroll.PayRun{ID: "run-1", Status: payroll.PayRunInProgress}}
	svc := &PayrollServiceImpl{
		PayRunRepository:   runRepo,
		BulletinRepository: &fakeBulletinRepo{unpaid: 1},
	}

	b := payroll.Bulletin{ID: "bul-1", PayRunID: "run-1", StatutPaiement: payroll.PaiementPartial}
	require.NoError(t, svc.completeRunIfSettled(context.Background(), "co-1", b))
	assert.Nil(t, runRepo.updated)
}
