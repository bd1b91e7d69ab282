package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
)

// mockQuerierCtx returns a pgxmock pool and a context that routes repository
// calls to it through the same hook transactions use.
func mockQuerierCtx(t *testing.T) (pgxmock.PgxPoolIface, context.Context) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, context.WithValue(context.Background(), txContextKey{}, mock)
}

func userRows(u user.User) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "company_id", "employee_id", "email", "password_hash",
		"full_name", "role", "is_active", "created_at", "updated_at",
	}).AddRow(
		u.ID, u.CompanyID, u.EmployeeID, u.Email, u.PasswordHash,
		u.FullName, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewUserRepository(nil)

	companyID := "company-1"
	hash := "$2a$10$hash"
	want := user.User{
		ID:           "user-1",
		CompanyID:    &companyID,
		Email:        "admin@example.com",
		PasswordHash: &hash,
		FullName:     "Awa Diop",
		Role:         user.RoleAdmin,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery("FROM users").
		WithArgs("admin@example.com").
		WillReturnRows(userRows(want))

	got, err := repo.GetByEmail(ctx, "admin@example.com")

	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Email, got.Email)
	assert.Equal(t, user.RoleAdmin, got.Role)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, companyID, *got.CompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewUserRepository(nil)

	mock.ExpectQuery("FROM users").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(ctx, "ghost@example.com")

	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewUserRepository(nil)

	companyID := "company-1"
	hash := "$2a$10$hash"
	newUser := user.User{
		CompanyID:    &companyID,
		Email:        "caissier@example.com",
		PasswordHash: &hash,
		FullName:     "Moussa Ndiaye",
		Role:         user.RoleCaissier,
		IsActive:     true,
	}
	created := newUser
	created.ID = "user-2"
	created.CreatedAt = time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(newUser.CompanyID, newUser.EmployeeID, newUser.Email,
			newUser.PasswordHash, newUser.FullName, newUser.Role, newUser.IsActive).
		WillReturnRows(userRows(created))

	got, err := repo.Create(ctx, newUser)

	require.NoError(t, err)
	assert.Equal(t, "user-2", got.ID)
	assert.Equal(t, user.RoleCaissier, got.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_SetActive(t *testing.T) {
	mock, ctx := mockQuerierCtx(t)
	repo := NewUserRepository(nil)

	mock.ExpectExec("UPDATE users").
		WithArgs(false, "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.SetActive(ctx, "user-1", false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
