package postgresql

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
)

func TestPayRunRepository_ExistsOverlapping(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewPayRunRepository(nil)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("company-1", start, end).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsOverlapping(ctx, "company-1", start, end)

	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulletinRepository_NextNumero(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewBulletinRepository(nil)

	period := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("company-1", "BUL-202601-%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	numero, err := repo.NextNumero(ctx, "company-1", period)

	require.NoError(t, err)
	assert.Equal(t, "BUL-202601-0008", numero)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulletinRepository_NextNumero_FirstOfMonth(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewBulletinRepository(nil)

	period := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("company-1", "BUL-202602-%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	numero, err := repo.NextNumero(ctx, "company-1", period)

	require.NoError(t, err)
	assert.Equal(t, "BUL-202602-0001", numero)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulletinRepository_GetByID(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewBulletinRepository(nil)

	rows := pgxmock.NewRows([]string{
		"id", "pay_run_id", "employee_id", "numero", "salaire_brut", "deductions",
		"salaire_net", "montant_paye", "reste_a_payer", "statut_paiement",
		"worked_days", "worked_hours", "created_at", "updated_at",
		"full_name", "contract_type",
	}).AddRow(
		"bulletin-1", "run-1", "emp-1", "BUL-202601-0001",
		decimal.NewFromInt(130000), []byte(`{"retraite":3250,"securite_sociale":3250}`),
		decimal.NewFromInt(123500), decimal.Zero, decimal.NewFromInt(123500),
		payroll.PaiementPending, 22, decimal.NewFromInt(176),
		time.Now(), (*time.Time)(nil),
		"Awa Diop", employee.ContractFixe,
	)

	mock.ExpectQuery("FROM bulletins b").
		WithArgs("company-1", "bulletin-1").
		WillReturnRows(rows)

	b, err := repo.GetByID(ctx, "company-1", "bulletin-1")

	require.NoError(t, err)
	assert.Equal(t, "BUL-202601-0001", b.Numero)
	assert.True(t, b.SalaireNet.Equal(decimal.NewFromInt(123500)))
	assert.True(t, b.Deductions["retraite"].Equal(decimal.NewFromInt(3250)))
	assert.True(t, b.Deductions["securite_sociale"].Equal(decimal.NewFromInt(3250)))
	require.NotNil(t, b.EmployeeName)
	assert.Equal(t, "Awa Diop", *b.EmployeeName)
	require.NotNil(t, b.ContractType)
	assert.Equal(t, employee.ContractFixe, *b.ContractType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulletinRepository_UpdatePaymentState(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewBulletinRepository(nil)

	b := payroll.Bulletin{
		ID:             "bulletin-1",
		MontantPaye:    decimal.NewFromInt(40000),
		ResteAPayer:    decimal.NewFromInt(83500),
		StatutPaiement: payroll.PaiementPartial,
	}

	mock.ExpectExec("UPDATE bulletins").
		WithArgs(b.MontantPaye, b.ResteAPayer, b.StatutPaiement, b.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdatePaymentState(ctx, b)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentRepository_Create(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewPaymentRepository(nil)

	reference := "WV-12345"
	payment := payroll.Payment{
		BulletinID:  "bulletin-1",
		Amount:      decimal.NewFromInt(40000),
		Method:      payroll.MethodWave,
		Reference:   &reference,
		ProcessedBy: "user-1",
	}

	mock.ExpectQuery("INSERT INTO payments").
		WithArgs(payment.BulletinID, payment.Amount, payment.Method, payment.Reference, payment.ProcessedBy).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "bulletin_id", "amount", "method", "reference", "processed_by", "created_at",
		}).AddRow(
			"payment-1", payment.BulletinID, payment.Amount, payment.Method,
			payment.Reference, payment.ProcessedBy, time.Now(),
		))

	created, err := repo.Create(ctx, payment)

	require.NoError(t, err)
	assert.Equal(t, "payment-1", created.ID)
	assert.Equal(t, payroll.MethodWave, created.Method)
	assert.True(t, created.Amount.Equal(payment.Amount))
	assert.NoError(t, mock.ExpectationsWereMet())
}
