package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository) user.UserService {
	return &UserServiceImpl{
		db:                 db,
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
	}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return user.User{}, err
	}

	if _, err := s.UserRepository.GetByEmail(ctx, req.Email); err == nil {
		return user.User{}, user.ErrEmailAlreadyExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	// An employee login must point at an employee of this company.
	if req.EmployeeID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, companyID, *req.EmployeeID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return user.User{}, employee.ErrEmployeeNotFound
			}
			return user.User{}, fmt.Errorf("failed to get employee: %w", err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	passwordHash := string(hash)

	created, err := s.UserRepository.Create(ctx, user.User{
		CompanyID:    &companyID,
		EmployeeID:   req.EmployeeID,
		Email:        req.Email,
		PasswordHash: &passwordHash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsActive:     true,
	})
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.User, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.UserRepository.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetActive implements user.UserService.
func (s *UserServiceImpl) SetActive(ctx context.Context, id string, active bool) error {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return err
	}

	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target.CompanyID == nil || *target.CompanyID != companyID {
		return user.ErrUserNotFound
	}

	if err := s.UserRepository.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func companyIDFromClaims(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", company.ErrCompanyNotFound
	}
	return companyID, nil
}
