package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type payRunRepositoryImpl struct {
	db *database.DB
}

func NewPayRunRepository(db *database.DB) payroll.PayRunRepository {
	return &payRunRepositoryImpl{db: db}
}

const payRunColumns = `id, company_id, label, period_start, period_end, status,
	total_brut, total_deductions, total_net, employee_count, created_by, created_at, updated_at`

func scanPayRun(row pgx.Row) (payroll.PayRun, error) {
	var p payroll.PayRun
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.Label,
		&p.PeriodStart,
		&p.PeriodEnd,
		&p.Status,
		&p.TotalBrut,
		&p.TotalDeductions,
		&p.TotalNet,
		&p.EmployeeCount,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return payroll.PayRun{}, err
	}
	return p, nil
}

// Create implements payroll.PayRunRepository.
func (r *payRunRepositoryImpl) Create(ctx context.Context, p payroll.PayRun) (payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO pay_runs (
			company_id, label, period_start, period_end, status,
			total_brut, total_deductions, total_net, employee_count, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + payRunColumns

	return scanPayRun(q.QueryRow(ctx, query,
		p.CompanyID,
		p.Label,
		p.PeriodStart,
		p.PeriodEnd,
		p.Status,
		p.TotalBrut,
		p.TotalDeductions,
		p.TotalNet,
		p.EmployeeCount,
		p.CreatedBy,
	))
}

// GetByID implements payroll.PayRunRepository.
func (r *payRunRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payRunColumns + `
		FROM pay_runs
		WHERE company_id = $1 AND id = $2
	`

	return scanPayRun(q.QueryRow(ctx, query, companyID, id))
}

// List implements payroll.PayRunRepository.
func (r *payRunRepositoryImpl) List(ctx context.Context, companyID string) ([]payroll.PayRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payRunColumns + `
		FROM pay_runs
		WHERE company_id = $1
		ORDER BY period_start DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []payroll.PayRun
	for rows.Next() {
		p, err := scanPayRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, p)
	}
	return runs, rows.Err()
}

// Update implements payroll.PayRunRepository.
func (r *payRunRepositoryImpl) Update(ctx context.Context, p payroll.PayRun) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE pay_runs
		SET status = $1, total_brut = $2, total_deductions = $3, total_net = $4,
		    employee_count = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := q.Exec(ctx, query,
		p.Status,
		p.TotalBrut,
		p.TotalDeductions,
		p.TotalNet,
		p.EmployeeCount,
		p.ID,
	)
	return err
}

// ExistsOverlapping implements payroll.PayRunRepository.
func (r *payRunRepositoryImpl) ExistsOverlapping(ctx context.Context, companyID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM pay_runs
			WHERE company_id = $1 AND period_start <= $3 AND period_end >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, companyID, start, end).Scan(&exists)
	return exists, err
}

type bulletinRepositoryImpl struct {
	db *database.DB
}

func NewBulletinRepository(db *database.DB) payroll.BulletinRepository {
	return &bulletinRepositoryImpl{db: db}
}

const bulletinColumns = `id, pay_run_id, employee_id, numero, salaire_brut, deductions,
	salaire_net, montant_paye, reste_a_payer, statut_paiement, worked_days, worked_hours,
	created_at, updated_at`

const bulletinColumnsAliased = `b.id, b.pay_run_id, b.employee_id, b.numero, b.salaire_brut, b.deductions,
	b.salaire_net, b.montant_paye, b.reste_a_payer, b.statut_paiement, b.worked_days, b.worked_hours,
	b.created_at, b.updated_at`

func scanBulletin(row pgx.Row, extra ...interface{}) (payroll.Bulletin, error) {
	var b payroll.Bulletin
	var deductionsJSON []byte
	dest := []interface{}{
		&b.ID,
		&b.PayRunID,
		&b.EmployeeID,
		&b.Numero,
		&b.SalaireBrut,
		&deductionsJSON,
		&b.SalaireNet,
		&b.MontantPaye,
		&b.ResteAPayer,
		&b.StatutPaiement,
		&b.WorkedDays,
		&b.WorkedHours,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return payroll.Bulletin{}, err
	}
	if err := json.Unmarshal(deductionsJSON, &b.Deductions); err != nil {
		return payroll.Bulletin{}, fmt.Errorf("decode deductions: %w", err)
	}
	return b, nil
}

// Create implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) Create(ctx context.Context, b payroll.Bulletin) (payroll.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	deductionsJSON, err := json.Marshal(b.Deductions)
	if err != nil {
		return payroll.Bulletin{}, fmt.Errorf("encode deductions: %w", err)
	}

	query := `
		INSERT INTO bulletins (
			pay_run_id, employee_id, numero, salaire_brut, deductions, salaire_net,
			montant_paye, reste_a_payer, statut_paiement, worked_days, worked_hours
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + bulletinColumns

	return scanBulletin(q.QueryRow(ctx, query,
		b.PayRunID,
		b.EmployeeID,
		b.Numero,
		b.SalaireBrut,
		deductionsJSON,
		b.SalaireNet,
		b.MontantPaye,
		b.ResteAPayer,
		b.StatutPaiement,
		b.WorkedDays,
		b.WorkedHours,
	))
}

// GetByID implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (payroll.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bulletinColumnsAliased + `, e.full_name, e.contract_type
		FROM bulletins b
		JOIN pay_runs p ON p.id = b.pay_run_id
		JOIN employees e ON e.id = b.employee_id
		WHERE p.company_id = $1 AND b.id = $2
	`

	var name string
	var ct employee.ContractType
	b, err := scanBulletin(q.QueryRow(ctx, query, companyID, id), &name, &ct)
	if err != nil {
		return payroll.Bulletin{}, err
	}
	b.EmployeeName = &name
	b.ContractType = &ct
	return b, nil
}

// List implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) List(ctx context.Context, companyID string, filter payroll.ListBulletinsFilter) ([]payroll.Bulletin, int, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"p.company_id = $1"}
	args := []interface{}{companyID}
	i := 2

	if filter.PayRunID != nil {
		where = append(where, fmt.Sprintf("b.pay_run_id = $%d", i))
		args = append(args, *filter.PayRunID)
		i++
	}
	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("b.employee_id = $%d", i))
		args = append(args, *filter.EmployeeID)
		i++
	}
	if filter.StatutPaiement != nil {
		where = append(where, fmt.Sprintf("b.statut_paiement = $%d", i))
		args = append(args, *filter.StatutPaiement)
		i++
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `
		SELECT COUNT(*)
		FROM bulletins b
		JOIN pay_runs p ON p.id = b.pay_run_id
		WHERE ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	listQuery := `
		SELECT ` + bulletinColumnsAliased + `, e.full_name, e.contract_type
		FROM bulletins b
		JOIN pay_runs p ON p.id = b.pay_run_id
		JOIN employees e ON e.id = b.employee_id
		WHERE ` + whereClause +
		fmt.Sprintf(" ORDER BY b.numero LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bulletins []payroll.Bulletin
	for rows.Next() {
		var name string
		var ct employee.ContractType
		b, err := scanBulletin(rows, &name, &ct)
		if err != nil {
			return nil, 0, err
		}
		b.EmployeeName = &name
		b.ContractType = &ct
		bulletins = append(bulletins, b)
	}
	return bulletins, total, rows.Err()
}

// ListByPayRun implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) ListByPayRun(ctx context.Context, payRunID string) ([]payroll.Bulletin, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + bulletinColumnsAliased + `, e.full_name, e.contract_type
		FROM bulletins b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.pay_run_id = $1
		ORDER BY b.numero
	`

	rows, err := q.Query(ctx, query, payRunID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bulletins []payroll.Bulletin
	for rows.Next() {
		var name string
		var ct employee.ContractType
		b, err := scanBulletin(rows, &name, &ct)
		if err != nil {
			return nil, err
		}
		b.EmployeeName = &name
		b.ContractType = &ct
		bulletins = append(bulletins, b)
	}
	return bulletins, rows.Err()
}

// UpdatePaymentState implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) UpdatePaymentState(ctx context.Context, b payroll.Bulletin) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE bulletins
		SET montant_paye = $1, reste_a_payer = $2, statut_paiement = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := q.Exec(ctx, query, b.MontantPaye, b.ResteAPayer, b.StatutPaiement, b.ID)
	return err
}

// CountUnpaidByPayRun implements payroll.BulletinRepository.
func (r *bulletinRepositoryImpl) CountUnpaidByPayRun(ctx context.Context, payRunID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM bulletins
		WHERE pay_run_id = $1 AND statut_paiement <> 'PAID'
	`

	var count int
	if err := q.QueryRow(ctx, query, payRunID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// NextNumero implements payroll.BulletinRepository. Numbers follow the
// pattern BUL-YYYYMM-NNNN, sequential per company and month.
func (r *bulletinRepositoryImpl) NextNumero(ctx context.Context, companyID string, period time.Time) (string, error) {
	q := GetQuerier(ctx, r.db)

	prefix := fmt.Sprintf("BUL-%s-", period.Format("200601"))

	query := `
		SELECT COUNT(*)
		FROM bulletins b
		JOIN pay_runs p ON p.id = b.pay_run_id
		WHERE p.company_id = $1 AND b.numero LIKE $2
	`

	var count int
	if err := q.QueryRow(ctx, query, companyID, prefix+"%").Scan(&count); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, count+1), nil
}

type paymentRepositoryImpl struct {
	db *database.DB
}

func NewPaymentRepository(db *database.DB) payroll.PaymentRepository {
	return &paymentRepositoryImpl{db: db}
}

// Create implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) Create(ctx context.Context, p payroll.Payment) (payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payments (bulletin_id, amount, method, reference, processed_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, bulletin_id, amount, method, reference, processed_by, created_at
	`

	var created payroll.Payment
	err := q.QueryRow(ctx, query,
		p.BulletinID,
		p.Amount,
		p.Method,
		p.Reference,
		p.ProcessedBy,
	).Scan(
		&created.ID,
		&created.BulletinID,
		&created.Amount,
		&created.Method,
		&created.Reference,
		&created.ProcessedBy,
		&created.CreatedAt,
	)
	if err != nil {
		return payroll.Payment{}, err
	}
	return created, nil
}

// ListByBulletin implements payroll.PaymentRepository.
func (r *paymentRepositoryImpl) ListByBulletin(ctx context.Context, bulletinID string) ([]payroll.Payment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, bulletin_id, amount, method, reference, processed_by, created_at
		FROM payments
		WHERE bulletin_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, bulletinID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []payroll.Payment
	for rows.Next() {
		var p payroll.Payment
		err := rows.Scan(
			&p.ID,
			&p.BulletinID,
			&p.Amount,
			&p.Method,
			&p.Reference,
			&p.ProcessedBy,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
