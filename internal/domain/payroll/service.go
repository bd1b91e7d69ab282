package payroll

import "context"

type PayrollService interface {
	// CreatePayRun opens a DRAFT pay run for the period.
	CreatePayRun(ctx context.Context, req CreatePayRunRequest) (PayRun, error)

	// Generate computes every bulletin for the run's active employees in a
	// single transaction and moves the run to IN_PROGRESS. Only DRAFT runs
	// can be generated; the run completes once every bulletin is paid.
	Generate(ctx context.Context, payRunID string) (PayRun, error)

	GetPayRun(ctx context.Context, id string) (PayRun, error)
	ListPayRuns(ctx context.Context) ([]PayRun, error)

	GetBulletin(ctx context.Context, id string) (Bulletin, error)
	ListBulletins(ctx context.Context, filter ListBulletinsFilter) ([]Bulletin, int, error)

	// ListMyBulletins returns the authenticated employee's own payslips.
	ListMyBulletins(ctx context.Context, filter ListBulletinsFilter) ([]Bulletin, int, error)

	// RecordPayment applies a disbursement to a bulletin. Amounts over the
	// remaining balance are rejected.
	RecordPayment(ctx context.Context, bulletinID string, req RecordPaymentRequest) (Bulletin, error)

	// RecordBulkPayment settles the remaining balance of each listed
	// bulletin, continuing past individual failures.
	RecordBulkPayment(ctx context.Context, req BulkPaymentRequest) ([]BulkPaymentResult, error)

	ListPayments(ctx context.Context, bulletinID string) ([]Payment, error)

	// RenderPayslip produces the printable HTML payslip for a bulletin.
	RenderPayslip(ctx context.Context, bulletinID string) ([]byte, error)
}
