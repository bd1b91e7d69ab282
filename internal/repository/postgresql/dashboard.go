package postgresql

import (
	"context"
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/domain/dashboard"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// EmployeeStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) EmployeeStats(ctx context.Context, companyID string) (dashboard.EmployeeStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'ACTIVE'),
		       COUNT(*) FILTER (WHERE status = 'INACTIVE')
		FROM employees
		WHERE company_id = $1
	`

	var stats dashboard.EmployeeStats
	err := q.QueryRow(ctx, query, companyID).Scan(&stats.Total, &stats.Active, &stats.Inactive)
	if err != nil {
		return dashboard.EmployeeStats{}, err
	}
	return stats, nil
}

// AttendanceStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) AttendanceStats(ctx context.Context, companyID string, date time.Time) (dashboard.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FILTER (WHERE a.status = 'PRESENT'),
		       COUNT(*) FILTER (WHERE a.status = 'RETARD'),
		       COUNT(*) FILTER (WHERE a.status = 'DEPART_ANTICIPE'),
		       COUNT(*) FILTER (WHERE a.status = 'ABSENT'),
		       (SELECT COUNT(*) FROM employees e
		        WHERE e.company_id = $1 AND e.status = 'ACTIVE'
		          AND NOT EXISTS (
		              SELECT 1 FROM attendances x
		              WHERE x.employee_id = e.id AND x.date = $2
		          ))
		FROM attendances a
		WHERE a.company_id = $1 AND a.date = $2
	`

	var stats dashboard.AttendanceStats
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&stats.Present,
		&stats.Retard,
		&stats.DepartAnticipe,
		&stats.Absent,
		&stats.NotCheckedIn,
	)
	if err != nil {
		return dashboard.AttendanceStats{}, err
	}
	return stats, nil
}

// PayrollStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) PayrollStats(ctx context.Context, companyID string) (dashboard.PayrollStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FILTER (WHERE b.statut_paiement = 'PENDING'),
		       COUNT(*) FILTER (WHERE b.statut_paiement = 'PARTIAL'),
		       COUNT(*) FILTER (WHERE b.statut_paiement = 'PAID'),
		       COALESCE(SUM(b.reste_a_payer), 0),
		       COALESCE(SUM(b.montant_paye), 0)
		FROM bulletins b
		JOIN pay_runs p ON p.id = b.pay_run_id
		WHERE p.company_id = $1
	`

	var stats dashboard.PayrollStats
	err := q.QueryRow(ctx, query, companyID).Scan(
		&stats.PendingBulletins,
		&stats.PartialBulletins,
		&stats.PaidBulletins,
		&stats.TotalOutstanding,
		&stats.TotalPaid,
	)
	if err != nil {
		return dashboard.PayrollStats{}, err
	}
	return stats, nil
}
