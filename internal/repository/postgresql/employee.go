package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, full_name, position, contract_type, base_rate, status,
	qr_token, email, phone, bank_details, hired_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.FullName,
		&e.Position,
		&e.ContractType,
		&e.BaseRate,
		&e.Status,
		&e.QRToken,
		&e.Email,
		&e.Phone,
		&e.BankDetails,
		&e.HiredAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			company_id, full_name, position, contract_type, base_rate, status,
			qr_token, email, phone, bank_details, hired_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		e.CompanyID,
		e.FullName,
		e.Position,
		e.ContractType,
		e.BaseRate,
		e.Status,
		e.QRToken,
		e.Email,
		e.Phone,
		e.BankDetails,
		e.HiredAt,
	))
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND id = $2
	`

	return scanEmployee(q.QueryRow(ctx, query, companyID, id))
}

// GetByQRToken implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByQRToken(ctx context.Context, token string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE qr_token = $1
	`

	return scanEmployee(q.QueryRow(ctx, query, token))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, companyID string, filter employee.ListEmployeesFilter) ([]employee.Employee, int, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"company_id = $1"}
	args := []interface{}{companyID}
	i := 2

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}
	if filter.ContractType != nil {
		where = append(where, fmt.Sprintf("contract_type = $%d", i))
		args = append(args, *filter.ContractType)
		i++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(full_name ILIKE $%d OR position ILIKE $%d)", i, i))
		args = append(args, "%"+filter.Search+"%")
		i++
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM employees WHERE ` + whereClause
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

	listQuery := `SELECT ` + employeeColumns + `
		FROM employees
		WHERE ` + whereClause +
		fmt.Sprintf(" ORDER BY full_name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE company_id = $1 AND status = 'ACTIVE'
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, position = $2, contract_type = $3, base_rate = $4, status = $5,
		    email = $6, phone = $7, bank_details = $8, updated_at = NOW()
		WHERE company_id = $9 AND id = $10
	`

	_, err := q.Exec(ctx, query,
		e.FullName,
		e.Position,
		e.ContractType,
		e.BaseRate,
		e.Status,
		e.Email,
		e.Phone,
		e.BankDetails,
		e.CompanyID,
		e.ID,
	)
	return err
}

// RotateQRToken implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) RotateQRToken(ctx context.Context, companyID, id, token string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET qr_token = $1, updated_at = NOW()
		WHERE company_id = $2 AND id = $3
	`

	_, err := q.Exec(ctx, query, token, companyID, id)
	return err
}
