package postgresql

import (
	"context"
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type rulesRepositoryImpl struct {
	db *database.DB
}

func NewRulesRepository(db *database.DB) attendance.RulesRepository {
	return &rulesRepositoryImpl{db: db}
}

// GetByCompany implements attendance.RulesRepository.
func (r *rulesRepositoryImpl) GetByCompany(ctx context.Context, companyID string) (attendance.Rules, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, start_time, end_time, tolerance_late_minutes, tolerance_early_minutes,
		       working_days, default_worked_days, default_worked_hours, timezone, updated_at
		FROM attendance_rules
		WHERE company_id = $1
	`

	var rules attendance.Rules
	var workingDays []int
	err := q.QueryRow(ctx, query, companyID).Scan(
		&rules.ID,
		&rules.CompanyID,
		&rules.StartTime,
		&rules.EndTime,
		&rules.ToleranceLateMinutes,
		&rules.ToleranceEarlyMinutes,
		&workingDays,
		&rules.DefaultWorkedDays,
		&rules.DefaultWorkedHours,
		&rules.Timezone,
		&rules.UpdatedAt,
	)
	if err != nil {
		return attendance.Rules{}, err
	}

	rules.WorkingDays = toWeekdays(workingDays)
	return rules, nil
}

// Upsert implements attendance.RulesRepository.
func (r *rulesRepositoryImpl) Upsert(ctx context.Context, rules attendance.Rules) (attendance.Rules, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_rules (
			company_id, start_time, end_time, tolerance_late_minutes, tolerance_early_minutes,
			working_days, default_worked_days, default_worked_hours, timezone
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (company_id) DO UPDATE SET
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			tolerance_late_minutes = EXCLUDED.tolerance_late_minutes,
			tolerance_early_minutes = EXCLUDED.tolerance_early_minutes,
			working_days = EXCLUDED.working_days,
			default_worked_days = EXCLUDED.default_worked_days,
			default_worked_hours = EXCLUDED.default_worked_hours,
			timezone = EXCLUDED.timezone,
			updated_at = NOW()
		RETURNING id, company_id, start_time, end_time, tolerance_late_minutes, tolerance_early_minutes,
		          working_days, default_worked_days, default_worked_hours, timezone, updated_at
	`

	var saved attendance.Rules
	var workingDays []int
	err := q.QueryRow(ctx, query,
		rules.CompanyID,
		rules.StartTime,
		rules.EndTime,
		rules.ToleranceLateMinutes,
		rules.ToleranceEarlyMinutes,
		fromWeekdays(rules.WorkingDays),
		rules.DefaultWorkedDays,
		rules.DefaultWorkedHours,
		rules.Timezone,
	).Scan(
		&saved.ID,
		&saved.CompanyID,
		&saved.StartTime,
		&saved.EndTime,
		&saved.ToleranceLateMinutes,
		&saved.ToleranceEarlyMinutes,
		&workingDays,
		&saved.DefaultWorkedDays,
		&saved.DefaultWorkedHours,
		&saved.Timezone,
		&saved.UpdatedAt,
	)
	if err != nil {
		return attendance.Rules{}, err
	}

	saved.WorkingDays = toWeekdays(workingDays)
	return saved, nil
}

func toWeekdays(days []int) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, time.Weekday(d))
	}
	return out
}

func fromWeekdays(days []time.Weekday) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		out = append(out, int(d))
	}
	return out
}
