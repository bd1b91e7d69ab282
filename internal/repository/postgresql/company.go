package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

const companyColumns = `id, name, address, currency, is_active, created_at, updated_at`

func scanCompany(row pgx.Row) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Currency,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	return c, nil
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name, address, currency, is_active)
		VALUES ($1, $2, $3, TRUE)
		RETURNING ` + companyColumns

	return scanCompany(q.QueryRow(ctx, query, newCompany.Name, newCompany.Address, newCompany.Currency))
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`

	return scanCompany(q.QueryRow(ctx, query, id))
}

// List implements company.CompanyRepository.
func (r *companyRepositoryImpl) List(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $1, address = $2, currency = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := q.Exec(ctx, query, c.Name, c.Address, c.Currency, c.ID)
	return err
}

// SetActive implements company.CompanyRepository.
func (r *companyRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := q.Exec(ctx, query, active, id)
	return err
}
