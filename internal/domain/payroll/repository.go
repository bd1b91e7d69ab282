package payroll

import (
	"context"
	"time"
)

type PayRunRepository interface {
	Create(ctx context.Context, p PayRun) (PayRun, error)
	GetByID(ctx context.Context, companyID, id string) (PayRun, error)
	List(ctx context.Context, companyID string) ([]PayRun, error)
	Update(ctx context.Context, p PayRun) error
	ExistsOverlapping(ctx context.Context, companyID string, start, end time.Time) (bool, error)
}

type BulletinRepository interface {
	Create(ctx context.Context, b Bulletin) (Bulletin, error)
	GetByID(ctx context.Context, companyID, id string) (Bulletin, error)
	List(ctx context.Context, companyID string, filter ListBulletinsFilter) ([]Bulletin, int, error)
	ListByPayRun(ctx context.Context, payRunID string) ([]Bulletin, error)
	UpdatePaymentState(ctx context.Context, b Bulletin) error
	CountUnpaidByPayRun(ctx context.Context, payRunID string) (int, error)
	NextNumero(ctx context.Context, companyID string, period time.Time) (string, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p Payment) (Payment, error)
	ListByBulletin(ctx context.Context, bulletinID string) ([]Payment, error)
}
