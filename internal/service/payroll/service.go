package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
	"github.com/paietrack/paietrack-backend-go/internal/repository/postgresql"
)

type PayrollServiceImpl struct {
	db *database.DB
	payroll.PayRunRepository
	payroll.BulletinRepository
	payroll.PaymentRepository
	employee.EmployeeRepository
	attendance.AttendanceRepository
	attendance.RulesRepository
	company.CompanyRepository
	metrics *metrics.Metrics
}

func NewPayrollService(
	db *database.DB,
	payRunRepository payroll.PayRunRepository,
	bulletinRepository payroll.BulletinRepository,
	paymentRepository payroll.PaymentRepository,
	employeeRepository employee.EmployeeRepository,
	attendanceRepository attendance.AttendanceRepository,
	rulesRepository attendance.RulesRepository,
	companyRepository company.CompanyRepository,
	m *metrics.Metrics,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:                   db,
		PayRunRepository:     payRunRepository,
		BulletinRepository:   bulletinRepository,
		PaymentRepository:    paymentRepository,
		EmployeeRepository:   employeeRepository,
		AttendanceRepository: attendanceRepository,
		RulesRepository:      rulesRepository,
		CompanyRepository:    companyRepository,
		metrics:              m,
	}
}

// CreatePayRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayRun(ctx context.Context, req payroll.CreatePayRunRequest) (payroll.PayRun, error) {
	companyID, userID, err := actorFromClaims(ctx)
	if err != nil {
		return payroll.PayRun{}, err
	}

	periodStart, err := time.Parse("2006-01-02", req.PeriodStart)
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to parse period_start: %w", err)
	}
	periodEnd, err := time.Parse("2006-01-02", req.PeriodEnd)
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to parse period_end: %w", err)
	}

	overlapping, err := s.PayRunRepository.ExistsOverlapping(ctx, companyID, periodStart, periodEnd)
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to check overlapping pay runs: %w", err)
	}
	if overlapping {
		return payroll.PayRun{}, payroll.ErrPayRunOverlap
	}

	created, err := s.PayRunRepository.Create(ctx, payroll.PayRun{
		CompanyID:       companyID,
		Label:           req.Label,
		PeriodStart:     periodStart,
		PeriodEnd:       periodEnd,
		Status:          payroll.PayRunDraft,
		TotalBrut:       decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
		CreatedBy:       userID,
	})
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to create pay run: %w", err)
	}
	return created, nil
}

// Generate implements payroll.PayrollService. All bulletins and the run's
// totals are written in one transaction: a failure on any employee leaves
// the run untouched in DRAFT.
func (s *PayrollServiceImpl) Generate(ctx context.Context, payRunID string) (payroll.PayRun, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return payroll.PayRun{}, err
	}

	run, err := s.PayRunRepository.GetByID(ctx, companyID, payRunID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayRun{}, payroll.ErrPayRunNotFound
		}
		return payroll.PayRun{}, fmt.Errorf("failed to get pay run: %w", err)
	}
	if run.Status != payroll.PayRunDraft {
		return payroll.PayRun{}, payroll.ErrPayRunAlreadyGenerated
	}

	employees, err := s.EmployeeRepository.ListActive(ctx, companyID)
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to list active employees: %w", err)
	}
	if len(employees) == 0 {
		return payroll.PayRun{}, payroll.ErrNoActiveEmployees
	}

	rules, err := s.RulesRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			rules = attendance.DefaultRules(companyID)
		} else {
			return payroll.PayRun{}, fmt.Errorf("failed to get attendance rules: %w", err)
		}
	}

	summaries, err := s.AttendanceRepository.SummarizeByEmployee(ctx, companyID, run.PeriodStart, run.PeriodEnd)
	if err != nil {
		return payroll.PayRun{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	start := time.Now()
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		run.Status = payroll.PayRunInProgress
		if err := s.PayRunRepository.Update(txCtx, run); err != nil {
			return fmt.Errorf("failed to mark pay run in progress: %w", err)
		}

		totalBrut := decimal.Zero
		totalDeductions := decimal.Zero
		totalNet := decimal.Zero

		for _, emp := range employees {
			var summary *attendance.Summary
			if sum, ok := summaries[emp.ID]; ok {
				summary = &sum
			}
			worked := ResolveWorkedTotals(summary, rules)

			gross := ComputeGross(emp, worked)
			deductions, deductionTotal := SplitDeductions(gross)
			net := gross.Sub(deductionTotal)

			numero, err := s.BulletinRepository.NextNumero(txCtx, companyID, run.PeriodStart)
			if err != nil {
				return fmt.Errorf("failed to allocate bulletin numero: %w", err)
			}

			_, err = s.BulletinRepository.Create(txCtx, payroll.Bulletin{
				PayRunID:       run.ID,
				EmployeeID:     emp.ID,
				Numero:         numero,
				SalaireBrut:    gross,
				Deductions:     deductions,
				SalaireNet:     net,
				MontantPaye:    decimal.Zero,
				ResteAPayer:    net,
				StatutPaiement: payroll.PaiementPending,
				WorkedDays:     worked.Days,
				WorkedHours:    worked.Hours,
			})
			if err != nil {
				return fmt.Errorf("failed to create bulletin for employee %s: %w", emp.ID, err)
			}

			totalBrut = totalBrut.Add(gross)
			totalDeductions = totalDeductions.Add(deductionTotal)
			totalNet = totalNet.Add(net)
		}

		run.TotalBrut = totalBrut
		run.TotalDeductions = totalDeductions
		run.TotalNet = totalNet
		run.EmployeeCount = len(employees)
		if err := s.PayRunRepository.Update(txCtx, run); err != nil {
			return fmt.Errorf("failed to finalize pay run: %w", err)
		}
		return nil
	})
	if err != nil {
		s.metrics.PayrollGeneration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return payroll.PayRun{}, err
	}

	s.metrics.PayrollGeneration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	s.metrics.BulletinsGenerated.Add(float64(run.EmployeeCount))
	return run, nil
}

// GetPayRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayRun(ctx context.Context, id string) (payroll.PayRun, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return payroll.PayRun{}, err
	}

	run, err := s.PayRunRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayRun{}, payroll.ErrPayRunNotFound
		}
		return payroll.PayRun{}, fmt.Errorf("failed to get pay run: %w", err)
	}
	return run, nil
}

// ListPayRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayRuns(ctx context.Context) ([]payroll.PayRun, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	runs, err := s.PayRunRepository.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay runs: %w", err)
	}
	return runs, nil
}

// GetBulletin implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetBulletin(ctx context.Context, id string) (payroll.Bulletin, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return payroll.Bulletin{}, err
	}

	b, err := s.BulletinRepository.GetByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Bulletin{}, payroll.ErrBulletinNotFound
		}
		return payroll.Bulletin{}, fmt.Errorf("failed to get bulletin: %w", err)
	}
	return b, nil
}

// ListBulletins implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListBulletins(ctx context.Context, filter payroll.ListBulletinsFilter) ([]payroll.Bulletin, int, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	bulletins, total, err := s.BulletinRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bulletins: %w", err)
	}
	return bulletins, total, nil
}

// ListMyBulletins implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListMyBulletins(ctx context.Context, filter payroll.ListBulletinsFilter) ([]payroll.Bulletin, int, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return nil, 0, employee.ErrEmployeeNotFound
	}

	filter.EmployeeID = &employeeID
	bulletins, total, err := s.BulletinRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bulletins: %w", err)
	}
	return bulletins, total, nil
}

// RecordPayment implements payroll.PayrollService.
func (s *PayrollServiceImpl) RecordPayment(ctx context.Context, bulletinID string, req payroll.RecordPaymentRequest) (payroll.Bulletin, error) {
	companyID, userID, err := actorFromClaims(ctx)
	if err != nil {
		return payroll.Bulletin{}, err
	}

	var updated payroll.Bulletin
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		b, err := s.BulletinRepository.GetByID(txCtx, companyID, bulletinID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return payroll.ErrBulletinNotFound
			}
			return fmt.Errorf("failed to get bulletin: %w", err)
		}

		if err := ApplyPayment(&b, req.Amount); err != nil {
			return err
		}

		if _, err := s.PaymentRepository.Create(txCtx, payroll.Payment{
			BulletinID:  b.ID,
			Amount:      req.Amount,
			Method:      req.Method,
			Reference:   req.Reference,
			ProcessedBy: userID,
		}); err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}

		if err := s.BulletinRepository.UpdatePaymentState(txCtx, b); err != nil {
			return fmt.Errorf("failed to update bulletin payment state: %w", err)
		}
		if err := s.completeRunIfSettled(txCtx, companyID, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return payroll.Bulletin{}, err
	}

	s.metrics.PaymentsProcessed.WithLabelValues(string(req.Method)).Inc()
	return updated, nil
}

// RecordBulkPayment implements payroll.PayrollService. Each bulletin settles
// its remaining balance in its own transaction; one failure never blocks the
// others.
func (s *PayrollServiceImpl) RecordBulkPayment(ctx context.Context, req payroll.BulkPaymentRequest) ([]payroll.BulkPaymentResult, error) {
	companyID, userID, err := actorFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]payroll.BulkPaymentResult, 0, len(req.BulletinIDs))
	for _, bulletinID := range req.BulletinIDs {
		err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
			b, err := s.BulletinRepository.GetByID(txCtx, companyID, bulletinID)
			if err != nil {
				if errors.Is(err, pgx.ErrNoRows) {
					return payroll.ErrBulletinNotFound
				}
				return fmt.Errorf("failed to get bulletin: %w", err)
			}

			amount := b.ResteAPayer
			if err := ApplyPayment(&b, amount); err != nil {
				return err
			}

			if _, err := s.PaymentRepository.Create(txCtx, payroll.Payment{
				BulletinID:  b.ID,
				Amount:      amount,
				Method:      req.Method,
				Reference:   req.Reference,
				ProcessedBy: userID,
			}); err != nil {
				return fmt.Errorf("failed to create payment: %w", err)
			}

			if err := s.BulletinRepository.UpdatePaymentState(txCtx, b); err != nil {
				return err
			}
			return s.completeRunIfSettled(txCtx, companyID, b)
		})

		result := payroll.BulkPaymentResult{BulletinID: bulletinID, Success: err == nil}
		if err != nil {
			msg := err.Error()
			result.Error = &msg
		} else {
			s.metrics.PaymentsProcessed.WithLabelValues(string(req.Method)).Inc()
		}
		results = append(results, result)
	}
	return results, nil
}

// ListPayments implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayments(ctx context.Context, bulletinID string) ([]payroll.Payment, error) {
	companyID, _, err := actorFromClaims(ctx)
	if err != nil {
		return nil, err
	}

	// Scope check before exposing the payment trail.
	if _, err := s.BulletinRepository.GetByID(ctx, companyID, bulletinID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, payroll.ErrBulletinNotFound
		}
		return nil, fmt.Errorf("failed to get bulletin: %w", err)
	}

	payments, err := s.PaymentRepository.ListByBulletin(ctx, bulletinID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// completeRunIfSettled moves a pay run to COMPLETE once its last bulletin is
// fully paid. Called inside the payment transaction so the run status never
// disagrees with the bulletins.
func (s *PayrollServiceImpl) completeRunIfSettled(ctx context.Context, companyID string, b payroll.Bulletin) error {
	if b.StatutPaiement != payroll.PaiementPaid {
		return nil
	}

	unpaid, err := s.BulletinRepository.CountUnpaidByPayRun(ctx, b.PayRunID)
	if err != nil {
		return fmt.Errorf("failed to count unpaid bulletins: %w", err)
	}
	if unpaid > 0 {
		return nil
	}

	run, err := s.PayRunRepository.GetByID(ctx, companyID, b.PayRunID)
	if err != nil {
		return fmt.Errorf("failed to get pay run: %w", err)
	}
	if run.Status == payroll.PayRunComplete {
		return nil
	}

	run.Status = payroll.PayRunComplete
	if err := s.PayRunRepository.Update(ctx, run); err != nil {
		return fmt.Errorf("failed to complete pay run: %w", err)
	}
	return nil
}

func actorFromClaims(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", company.ErrCompanyNotFound
	}
	userID, _ = claims["user_id"].(string)
	return companyID, userID, nil
}
