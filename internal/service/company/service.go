package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
	"github.com/paietrack/paietrack-backend-go/internal/repository/postgresql"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
	user.UserRepository
	attendance.RulesRepository
}

func NewCompanyService(db *database.DB, companyRepository company.CompanyRepository, userRepository user.UserRepository, rulesRepository attendance.RulesRepository) company.CompanyService {
	return &CompanyServiceImpl{
		db:                db,
		CompanyRepository: companyRepository,
		UserRepository:    userRepository,
		RulesRepository:   rulesRepository,
	}
}

// Create implements company.CompanyService. The calling admin becomes the
// owner: their user row is bound to the new company and default attendance
// rules are seeded in the same transaction.
func (s *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to get claims from context: %w", err)
	}
	userID, _ := claims["user_id"].(string)

	if companyID, ok := claims["company_id"].(string); ok && companyID != "" {
		return company.Company{}, company.ErrCompanyAlreadyExists
	}

	currency := req.Currency
	if currency == "" {
		currency = "XOF"
	}

	var created company.Company
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.CompanyRepository.Create(txCtx, company.Company{
			Name:     req.Name,
			Address:  req.Address,
			Currency: currency,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		owner, err := s.UserRepository.GetByID(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to get owner: %w", err)
		}
		owner.CompanyID = &created.ID
		owner.Role = user.RoleAdmin
		if err := s.UserRepository.Update(txCtx, owner); err != nil {
			return fmt.Errorf("failed to bind owner to company: %w", err)
		}

		if _, err := s.RulesRepository.Upsert(txCtx, attendance.DefaultRules(created.ID)); err != nil {
			return fmt.Errorf("failed to seed attendance rules: %w", err)
		}
		return nil
	})
	if err != nil {
		return company.Company{}, err
	}

	return created, nil
}

// GetMine implements company.CompanyService.
func (s *CompanyServiceImpl) GetMine(ctx context.Context) (company.Company, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return company.Company{}, err
	}

	found, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}
	return found, nil
}

// List implements company.CompanyService.
func (s *CompanyServiceImpl) List(ctx context.Context) ([]company.Company, error) {
	companies, err := s.CompanyRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// Update implements company.CompanyService.
func (s *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) (company.Company, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return company.Company{}, err
	}

	found, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	if req.Name != nil {
		found.Name = *req.Name
	}
	if req.Address != nil {
		found.Address = req.Address
	}
	if req.Currency != nil {
		found.Currency = *req.Currency
	}

	if err := s.CompanyRepository.Update(ctx, found); err != nil {
		return company.Company{}, fmt.Errorf("failed to update company: %w", err)
	}
	return found, nil
}

// Deactivate implements company.CompanyService.
func (s *CompanyServiceImpl) Deactivate(ctx context.Context, id string) error {
	if err := s.CompanyRepository.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate company: %w", err)
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
