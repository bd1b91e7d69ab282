package attendance

import (
	"fmt"
	"time"
)

type Status string

const (
	StatusPresent        Status = "PRESENT"
	StatusRetard         Status = "RETARD"
	StatusDepartAnticipe Status = "DEPART_ANTICIPE"
	StatusAbsent         Status = "ABSENT"
)

type Source string

const (
	SourceSession Source = "SESSION"
	SourceQR      Source = "QR"
	SourceManual  Source = "MANUAL"
)

// Attendance is the single record for one employee on one working date.
type Attendance struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employee_id"`
	CompanyID     string     `json:"company_id"`
	Date          time.Time  `json:"date"`
	CheckIn       *time.Time `json:"check_in,omitempty"`
	CheckOut      *time.Time `json:"check_out,omitempty"`
	Status        Status     `json:"status"`
	Source        Source     `json:"source"`
	Latitude      *float64   `json:"latitude,omitempty"`
	Longitude     *float64   `json:"longitude,omitempty"`
	DeviceID      *string    `json:"device_id,omitempty"`
	ValidatedBy   *string    `json:"validated_by,omitempty"`
	WorkedMinutes *int       `json:"worked_minutes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`

	// EmployeeName is joined for listing endpoints, never persisted.
	EmployeeName *string `json:"employee_name,omitempty"`
}

// Rules holds a company's attendance policy. Start and end times are
// wall-clock values in the company timezone, formatted "15:04".
type Rules struct {
	ID                    string         `json:"id"`
	CompanyID             string         `json:"company_id"`
	StartTime             string         `json:"start_time"`
	EndTime               string         `json:"end_time"`
	ToleranceLateMinutes  int            `json:"tolerance_late_minutes"`
	ToleranceEarlyMinutes int            `json:"tolerance_early_minutes"`
	WorkingDays           []time.Weekday `json:"working_days"`
	DefaultWorkedDays     int            `json:"default_worked_days"`
	DefaultWorkedHours    int            `json:"default_worked_hours"`
	Timezone              string         `json:"timezone"`
	UpdatedAt             *time.Time     `json:"updated_at,omitempty"`
}

// DefaultRules is applied when a company has not configured a policy yet.
func DefaultRules(companyID string) Rules {
	return Rules{
		CompanyID:             companyID,
		StartTime:             "08:00",
		EndTime:               "17:00",
		ToleranceLateMinutes:  15,
		ToleranceEarlyMinutes: 15,
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		DefaultWorkedDays:  22,
		DefaultWorkedHours: 176,
		Timezone:           "UTC",
	}
}

// WorksOn reports whether the given weekday is a working day.
func (r Rules) WorksOn(day time.Weekday) bool {
	for _, d := range r.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// Location resolves the company timezone, falling back to UTC when the
// configured name cannot be loaded.
func (r Rules) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ScheduledStart returns the expected check-in instant for the given date.
func (r Rules) ScheduledStart(date time.Time) (time.Time, error) {
	return r.atTimeOfDay(date, r.StartTime)
}

// ScheduledEnd returns the expected check-out instant for the given date.
func (r Rules) ScheduledEnd(date time.Time) (time.Time, error) {
	return r.atTimeOfDay(date, r.EndTime)
}

// atTimeOfDay treats date as a plain calendar date; only its year, month and
// day are read, so callers may pass midnight in any zone.
func (r Rules) atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time of day %q: %w", hhmm, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, r.Location()), nil
}
