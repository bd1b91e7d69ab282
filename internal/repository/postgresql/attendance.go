package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, company_id, date, check_in, check_out, status,
	source, latitude, longitude, device_id, validated_by, worked_minutes, created_at, updated_at`

const attendanceColumnsAliased = `a.id, a.employee_id, a.company_id, a.date, a.check_in, a.check_out, a.status,
	a.source, a.latitude, a.longitude, a.device_id, a.validated_by, a.worked_minutes, a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.CompanyID,
		&a.Date,
		&a.CheckIn,
		&a.CheckOut,
		&a.Status,
		&a.Source,
		&a.Latitude,
		&a.Longitude,
		&a.DeviceID,
		&a.ValidatedBy,
		&a.WorkedMinutes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	return a, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			employee_id, company_id, date, check_in, check_out, status, source,
			latitude, longitude, device_id, validated_by, worked_minutes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + attendanceColumns

	return scanAttendance(q.QueryRow(ctx, query,
		a.EmployeeID,
		a.CompanyID,
		a.Date,
		a.CheckIn,
		a.CheckOut,
		a.Status,
		a.Source,
		a.Latitude,
		a.Longitude,
		a.DeviceID,
		a.ValidatedBy,
		a.WorkedMinutes,
	))
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, source = $4,
		    validated_by = $5, worked_minutes = $6, updated_at = NOW()
		WHERE id = $7
	`

	_, err := q.Exec(ctx, query,
		a.CheckIn,
		a.CheckOut,
		a.Status,
		a.Source,
		a.ValidatedBy,
		a.WorkedMinutes,
		a.ID,
	)
	return err
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances
		WHERE employee_id = $1 AND date = $2
	`

	return scanAttendance(q.QueryRow(ctx, query, employeeID, date))
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, companyID string, filter attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	q := GetQuerier(ctx, r.db)

	where := []string{"a.company_id = $1"}
	args := []interface{}{companyID}
	i := 2

	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("a.employee_id = $%d", i))
		args = append(args, *filter.EmployeeID)
		i++
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("a.date >= $%d", i))
		args = append(args, *filter.DateFrom)
		i++
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("a.date <= $%d", i))
		args = append(args, *filter.DateTo)
		i++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("a.status = $%d", i))
		args = append(args, *filter.Status)
		i++
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + whereClause
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	listQuery := `
		SELECT ` + attendanceColumnsAliased + `, e.full_name
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + whereClause +
		fmt.Sprintf(" ORDER BY a.date DESC, e.full_name LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		err := rows.Scan(
			&a.ID,
			&a.EmployeeID,
			&a.CompanyID,
			&a.Date,
			&a.CheckIn,
			&a.CheckOut,
			&a.Status,
			&a.Source,
			&a.Latitude,
			&a.Longitude,
			&a.DeviceID,
			&a.ValidatedBy,
			&a.WorkedMinutes,
			&a.CreatedAt,
			&a.UpdatedAt,
			&a.EmployeeName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, a)
	}
	return records, total, rows.Err()
}

// SummarizeByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SummarizeByEmployee(ctx context.Context, companyID string, from, to time.Time) (map[string]attendance.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id,
		       COUNT(*),
		       COUNT(*) FILTER (WHERE status IN ('PRESENT', 'RETARD', 'DEPART_ANTICIPE')),
		       COALESCE(SUM(worked_minutes), 0)
		FROM attendances
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		GROUP BY employee_id
	`

	rows, err := q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[string]attendance.Summary)
	for rows.Next() {
		var s attendance.Summary
		if err := rows.Scan(&s.EmployeeID, &s.DaysTracked, &s.DaysPresent, &s.MinutesWorked); err != nil {
			return nil, err
		}
		summaries[s.EmployeeID] = s
	}
	return summaries, rows.Err()
}
