package dashboard

import "context"

type DashboardService interface {
	GetSummary(ctx context.Context) (Summary, error)
}
