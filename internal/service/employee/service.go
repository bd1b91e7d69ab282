package employee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db *database.DB
	employee.EmployeeRepository
}

func NewEmployeeService(db *database.DB, employeeRepository employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:                 db,
		EmployeeRepository: employeeRepository,
	}
}

// newQRToken issues the badge token embedded in an employee's QR code. A
// UUID is unguessable enough; rotation handles leaked badges.
func newQRToken() string {
	return uuid.NewString()
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	var hiredAt *time.Time
	if req.HiredAt != nil {
		parsed, err := time.Parse("2006-01-02", *req.HiredAt)
		if err != nil {
			return employee.Employee{}, fmt.Errorf("failed to parse hired_at: %w", err)
		}
		hiredAt = &parsed
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		CompanyID:    companyID,
		FullName:     req.FullName,
		Position:     req.Position,
		ContractType: req.ContractType,
		BaseRate:     req.BaseRate,
		Status:       employee.StatusActive,
		QRToken:      newQRToken(),
		Email:        req.Email,
		Phone:        req.Phone,
		BankDetails:  req.BankDetails,
		HiredAt:      hiredAt,
	})
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	found, err := s.EmployeeRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]employee.Employee, int, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, total, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	found, err := s.EmployeeRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if req.FullName != nil {
		found.FullName = *req.FullName
	}
	if req.Position != nil {
		found.Position = *req.Position
	}
	if req.ContractType != nil {
		found.ContractType = *req.ContractType
	}
	if req.BaseRate != nil {
		found.BaseRate = *req.BaseRate
	}
	if req.Status != nil {
		found.Status = *req.Status
	}
	if req.Email != nil {
		found.Email = req.Email
	}
	if req.Phone != nil {
		found.Phone = req.Phone
	}
	if req.BankDetails != nil {
		found.BankDetails = req.BankDetails
	}

	if err := s.EmployeeRepository.Update(ctx, found); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return found, nil
}

// Terminate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Terminate(ctx context.Context, id string) error {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return err
	}

	found, err := s.EmployeeRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to get employee: %w", err)
	}

	found.Status = employee.StatusTerminated
	if err := s.EmployeeRepository.Update(ctx, found); err != nil {
		return fmt.Errorf("failed to terminate employee: %w", err)
	}
	return nil
}

// RotateQRToken implements employee.EmployeeService.
func (s *EmployeeServiceImpl) RotateQRToken(ctx context.Context, id string) (employee.Employee, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return employee.Employee{}, err
	}

	token := newQRToken()
	if err := s.EmployeeRepository.RotateQRToken(ctx, companyID, id, token); err != nil {
		return employee.Employee{}, fmt.Errorf("failed to rotate qr token: %w", err)
	}

	found, err := s.EmployeeRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return found, nil
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
