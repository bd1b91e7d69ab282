package report

import "context"

type ReportService interface {
	// AttendanceReport exports the company's attendance over a date range as
	// an Excel workbook.
	AttendanceReport(ctx context.Context, req AttendanceReportRequest) (File, error)

	// PayrollReport exports one pay run's bulletins as an Excel workbook.
	PayrollReport(ctx context.Context, payRunID string) (File, error)
}
