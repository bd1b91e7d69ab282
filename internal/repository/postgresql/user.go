package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, company_id, employee_id, email, password_hash, full_name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.EmployeeID,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (company_id, employee_id, email, password_hash, full_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	return scanUser(q.QueryRow(ctx, query,
		newUser.CompanyID,
		newUser.EmployeeID,
		newUser.Email,
		newUser.PasswordHash,
		newUser.FullName,
		newUser.Role,
		newUser.IsActive,
	))
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	return scanUser(q.QueryRow(ctx, query, id))
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	return scanUser(q.QueryRow(ctx, query, email))
}

// ListByCompany implements user.UserRepository.
func (r *userRepositoryImpl) ListByCompany(ctx context.Context, companyID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET company_id = $1, employee_id = $2, email = $3, password_hash = $4,
		    full_name = $5, role = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := q.Exec(ctx, query,
		u.CompanyID,
		u.EmployeeID,
		u.Email,
		u.PasswordHash,
		u.FullName,
		u.Role,
		u.ID,
	)
	return err
}

// SetActive implements user.UserRepository.
func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET is_active = $1, updated_at = NOW()
		WHERE id = $2
	`

	_, err := q.Exec(ctx, query, active, id)
	return err
}
