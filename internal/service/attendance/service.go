package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	attendance.RulesRepository
	employee.EmployeeRepository
	metrics *metrics.Metrics
}

func NewAttendanceService(db *database.DB, attendanceRepository attendance.AttendanceRepository, rulesRepository attendance.RulesRepository, employeeRepository employee.EmployeeRepository, m *metrics.Metrics) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepository,
		RulesRepository:      rulesRepository,
		EmployeeRepository:   employeeRepository,
		metrics:              m,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	companyID, employeeID, err := employeeFromClaims(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.activeEmployee(ctx, companyID, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := time.Now().In(rules.Location())
	today := dateOnly(now)

	if !rules.WorksOn(now.Weekday()) {
		return attendance.Attendance{}, attendance.ErrNotWorkingDay
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err == nil && existing.CheckIn != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	status, err := DeriveStatus(rules, today, &now, nil)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		CompanyID:  companyID,
		Date:       today,
		CheckIn:    &now,
		Status:     status,
		Source:     attendance.SourceSession,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		DeviceID:   req.DeviceID,
	}

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	s.metrics.CheckIns.WithLabelValues("check_in", string(attendance.SourceSession)).Inc()
	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	companyID, employeeID, err := employeeFromClaims(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.activeEmployee(ctx, companyID, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	now := time.Now().In(rules.Location())
	today := dateOnly(now)

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrNotCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if record.CheckIn == nil {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	record.CheckOut = &now
	record.Status, err = DeriveStatus(rules, today, record.CheckIn, record.CheckOut)
	if err != nil {
		return attendance.Attendance{}, err
	}
	record.WorkedMinutes = workedMinutes(record.CheckIn, record.CheckOut)

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	s.metrics.CheckIns.WithLabelValues("check_out", string(record.Source)).Inc()
	return record, nil
}

// ScanQR implements attendance.AttendanceService. The first scan of the day
// checks the badge owner in, the second checks them out.
func (s *AttendanceServiceImpl) ScanQR(ctx context.Context, req attendance.QRScanRequest) (attendance.QRScanResponse, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.QRScanResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByQRToken(ctx, req.QRToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.QRScanResponse{}, employee.ErrQRTokenNotFound
		}
		return attendance.QRScanResponse{}, fmt.Errorf("failed to get employee by qr token: %w", err)
	}
	// A badge from another company is indistinguishable from an unknown one.
	if emp.CompanyID != companyID {
		return attendance.QRScanResponse{}, employee.ErrQRTokenNotFound
	}
	if emp.Status != employee.StatusActive {
		return attendance.QRScanResponse{}, employee.ErrEmployeeNotActive
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.QRScanResponse{}, err
	}

	now := time.Now().In(rules.Location())
	today := dateOnly(now)

	if !rules.WorksOn(now.Weekday()) {
		return attendance.QRScanResponse{}, attendance.ErrNotWorkingDay
	}

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, today)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		status, derr := DeriveStatus(rules, today, &now, nil)
		if derr != nil {
			return attendance.QRScanResponse{}, derr
		}
		created, cerr := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID,
			CompanyID:  companyID,
			Date:       today,
			CheckIn:    &now,
			Status:     status,
			Source:     attendance.SourceQR,
			DeviceID:   req.DeviceID,
		})
		if cerr != nil {
			return attendance.QRScanResponse{}, fmt.Errorf("failed to create attendance: %w", cerr)
		}
		s.metrics.CheckIns.WithLabelValues("check_in", string(attendance.SourceQR)).Inc()
		return attendance.QRScanResponse{
			Action:       "CHECK_IN",
			EmployeeName: emp.FullName,
			Attendance:   created,
		}, nil

	case err != nil:
		return attendance.QRScanResponse{}, fmt.Errorf("failed to get attendance: %w", err)

	case record.CheckOut != nil:
		return attendance.QRScanResponse{}, attendance.ErrAlreadyCheckedOut

	default:
		record.CheckOut = &now
		record.Status, err = DeriveStatus(rules, today, record.CheckIn, record.CheckOut)
		if err != nil {
			return attendance.QRScanResponse{}, err
		}
		record.WorkedMinutes = workedMinutes(record.CheckIn, record.CheckOut)
		if err := s.AttendanceRepository.Update(ctx, record); err != nil {
			return attendance.QRScanResponse{}, fmt.Errorf("failed to update attendance: %w", err)
		}
		s.metrics.CheckIns.WithLabelValues("check_out", string(attendance.SourceQR)).Inc()
		return attendance.QRScanResponse{
			Action:       "CHECK_OUT",
			EmployeeName: emp.FullName,
			Attendance:   record,
		}, nil
	}
}

// Override implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Override(ctx context.Context, req attendance.ManualOverrideRequest) (attendance.Attendance, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get claims from context: %w", err)
	}
	validatedBy, _ := claims["user_id"].(string)

	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, employee.ErrEmployeeNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get employee: %w", err)
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to parse date: %w", err)
	}

	var checkIn, checkOut *time.Time
	if req.CheckIn != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckIn)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to parse check_in: %w", err)
		}
		checkIn = &t
	}
	if req.CheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOut)
		if err != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to parse check_out: %w", err)
		}
		checkOut = &t
	}

	status := attendance.StatusAbsent
	if req.Status != nil {
		status = *req.Status
	} else {
		status, err = DeriveStatus(rules, date, checkIn, checkOut)
		if err != nil {
			return attendance.Attendance{}, err
		}
	}

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		created, cerr := s.AttendanceRepository.Create(ctx, attendance.Attendance{
			EmployeeID:    emp.ID,
			CompanyID:     companyID,
			Date:          date,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Status:        status,
			Source:        attendance.SourceManual,
			ValidatedBy:   &validatedBy,
			WorkedMinutes: workedMinutes(checkIn, checkOut),
		})
		if cerr != nil {
			return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", cerr)
		}
		return created, nil
	}

	if checkIn != nil {
		existing.CheckIn = checkIn
	}
	if checkOut != nil {
		existing.CheckOut = checkOut
	}
	existing.Status = status
	existing.Source = attendance.SourceManual
	existing.ValidatedBy = &validatedBy
	existing.WorkedMinutes = workedMinutes(existing.CheckIn, existing.CheckOut)

	if err := s.AttendanceRepository.Update(ctx, existing); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	return existing, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.Attendance, error) {
	companyID, employeeID, err := employeeFromClaims(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	today := dateOnly(time.Now().In(rules.Location()))

	record, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// ListMine implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListMine(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	companyID, employeeID, err := employeeFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter.EmployeeID = &employeeID
	records, total, err := s.AttendanceRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, total, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return nil, 0, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, companyID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, total, nil
}

// GetRules implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetRules(ctx context.Context) (attendance.Rules, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.Rules{}, err
	}
	return s.rulesForCompany(ctx, companyID)
}

// UpdateRules implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateRules(ctx context.Context, req attendance.UpdateRulesRequest) (attendance.Rules, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return attendance.Rules{}, err
	}

	rules, err := s.rulesForCompany(ctx, companyID)
	if err != nil {
		return attendance.Rules{}, err
	}

	if req.StartTime != nil {
		rules.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		rules.EndTime = *req.EndTime
	}
	if req.ToleranceLateMinutes != nil {
		rules.ToleranceLateMinutes = *req.ToleranceLateMinutes
	}
	if req.ToleranceEarlyMinutes != nil {
		rules.ToleranceEarlyMinutes = *req.ToleranceEarlyMinutes
	}
	if req.WorkingDays != nil {
		days := make([]time.Weekday, 0, len(req.WorkingDays))
		for _, d := range req.WorkingDays {
			days = append(days, time.Weekday(d))
		}
		rules.WorkingDays = days
	}
	if req.DefaultWorkedDays != nil {
		rules.DefaultWorkedDays = *req.DefaultWorkedDays
	}
	if req.DefaultWorkedHours != nil {
		rules.DefaultWorkedHours = *req.DefaultWorkedHours
	}
	if req.Timezone != nil {
		rules.Timezone = *req.Timezone
	}

	saved, err := s.RulesRepository.Upsert(ctx, rules)
	if err != nil {
		return attendance.Rules{}, fmt.Errorf("failed to save attendance rules: %w", err)
	}
	return saved, nil
}

func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, companyID, employeeID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp.Status != employee.StatusActive {
		return employee.Employee{}, employee.ErrEmployeeNotActive
	}
	return emp, nil
}

// rulesForCompany loads the company policy, falling back to defaults when
// none has been configured yet.
func (s *AttendanceServiceImpl) rulesForCompany(ctx context.Context, companyID string) (attendance.Rules, error) {
	rules, err := s.RulesRepository.GetByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DefaultRules(companyID), nil
		}
		return attendance.Rules{}, fmt.Errorf("failed to get attendance rules: %w", err)
	}
	return rules, nil
}

// dateOnly collapses an instant to its calendar date, stored at UTC midnight.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
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

func employeeFromClaims(ctx context.Context) (companyID string, employeeID string, err error) {
	companyID, err = companyIDFromClaims(ctx)
	if err != nil {
		return "", "", err
	}
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get claims from context: %w", err)
	}
	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", employee.ErrEmployeeNotFound
	}
	return companyID, employeeID, nil
}
