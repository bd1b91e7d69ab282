package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/xuri/excelize/v2"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/domain/report"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/metrics"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	payroll.PayRunRepository
	payroll.BulletinRepository
	metrics *metrics.Metrics
}

func NewReportService(attendanceRepository attendance.AttendanceRepository, payRunRepository payroll.PayRunRepository, bulletinRepository payroll.BulletinRepository, m *metrics.Metrics) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepository,
		PayRunRepository:     payRunRepository,
		BulletinRepository:   bulletinRepository,
		metrics:              m,
	}
}

// AttendanceReport implements report.ReportService.
func (s *ReportServiceImpl) AttendanceReport(ctx context.Context, req report.AttendanceReportRequest) (report.File, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return report.File{}, err
	}

	from, err := time.Parse("2006-01-02", req.DateFrom)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to parse date_from: %w", err)
	}
	to, err := time.Parse("2006-01-02", req.DateTo)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to parse date_to: %w", err)
	}

	records, _, err := s.AttendanceRepository.List(ctx, companyID, attendance.ListAttendanceFilter{
		DateFrom: &from,
		DateTo:   &to,
		Page:     1,
		PerPage:  100000,
	})
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Pointages"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Date", "Employé", "Arrivée", "Départ", "Statut", "Source", "Minutes travaillées"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, rec := range records {
		values := []interface{}{
			rec.Date.Format("2006-01-02"),
			stringOrEmpty(rec.EmployeeName),
			timeOrEmpty(rec.CheckIn),
			timeOrEmpty(rec.CheckOut),
			string(rec.Status),
			string(rec.Source),
			intOrEmpty(rec.WorkedMinutes),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.metrics.ReportGeneration.WithLabelValues("attendance").Observe(time.Since(start).Seconds())
		return report.File{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.metrics.ReportGeneration.WithLabelValues("attendance").Observe(time.Since(start).Seconds())
	return report.File{
		Name:    fmt.Sprintf("pointages_%s_%s.xlsx", req.DateFrom, req.DateTo),
		Content: buf.Bytes(),
	}, nil
}

// PayrollReport implements report.ReportService.
func (s *ReportServiceImpl) PayrollReport(ctx context.Context, payRunID string) (report.File, error) {
	companyID, err := companyIDFromClaims(ctx)
	if err != nil {
		return report.File{}, err
	}

	run, err := s.PayRunRepository.GetByID(ctx, companyID, payRunID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.File{}, payroll.ErrPayRunNotFound
		}
		return report.File{}, fmt.Errorf("failed to get pay run: %w", err)
	}

	bulletins, err := s.BulletinRepository.ListByPayRun(ctx, run.ID)
	if err != nil {
		return report.File{}, fmt.Errorf("failed to list bulletins: %w", err)
	}

	start := time.Now()
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Paie"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Numéro", "Employé", "Contrat", "Jours", "Heures", "Brut", "Retenues", "Net", "Payé", "Reste", "Statut"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, b := range bulletins {
		totalDeductions := b.SalaireBrut.Sub(b.SalaireNet)
		contractType := ""
		if b.ContractType != nil {
			contractType = string(*b.ContractType)
		}
		values := []interface{}{
			b.Numero,
			stringOrEmpty(b.EmployeeName),
			contractType,
			b.WorkedDays,
			b.WorkedHours.InexactFloat64(),
			b.SalaireBrut.InexactFloat64(),
			totalDeductions.InexactFloat64(),
			b.SalaireNet.InexactFloat64(),
			b.MontantPaye.InexactFloat64(),
			b.ResteAPayer.InexactFloat64(),
			string(b.StatutPaiement),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	// Totals row below the table.
	totalRow := len(bulletins) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "TOTAL")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), run.TotalBrut.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("G%d", totalRow), run.TotalDeductions.InexactFloat64())
	f.SetCellValue(sheet, fmt.Sprintf("H%d", totalRow), run.TotalNet.InexactFloat64())

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.metrics.ReportGeneration.WithLabelValues("payroll").Observe(time.Since(start).Seconds())
		return report.File{}, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.metrics.ReportGeneration.WithLabelValues("payroll").Observe(time.Since(start).Seconds())
	return report.File{
		Name:    fmt.Sprintf("paie_%s.xlsx", run.PeriodStart.Format("200601")),
		Content: buf.Bytes(),
	}, nil
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

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04")
}

func intOrEmpty(i *int) interface{} {
	if i == nil {
		return ""
	}
	return *i
}
