package attendance

import (
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DeviceID  *string  `json:"device_id"`
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	DeviceID  *string  `json:"device_id"`
}

// QRScanRequest is submitted by a gate terminal. The token identifies the
// employee; the terminal decides nothing about direction, the server toggles
// between check-in and check-out based on today's record.
type QRScanRequest struct {
	QRToken  string  `json:"qr_token"`
	DeviceID *string `json:"device_id"`
}

func (r QRScanRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.QRToken) {
		errs = append(errs, validator.ValidationError{Field: "qr_token", Message: "qr token is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// QRScanResponse tells the terminal what just happened so it can display
// feedback to the employee.
type QRScanResponse struct {
	Action       string     `json:"action"`
	EmployeeName string     `json:"employee_name"`
	Attendance   Attendance `json:"attendance"`
}

// ManualOverrideRequest lets an admin correct a day's record, for example a
// forgotten check-out or a justified absence.
type ManualOverrideRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	CheckIn    *string `json:"check_in"`
	CheckOut   *string `json:"check_out"`
	Status     *Status `json:"status"`
}

func (r ManualOverrideRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "invalid employee id"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "check_in must be RFC3339"})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "check_out must be RFC3339"})
		}
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusPresent, StatusRetard, StatusDepartAnticipe, StatusAbsent:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRulesRequest struct {
	StartTime             *string `json:"start_time"`
	EndTime               *string `json:"end_time"`
	ToleranceLateMinutes  *int    `json:"tolerance_late_minutes"`
	ToleranceEarlyMinutes *int    `json:"tolerance_early_minutes"`
	WorkingDays           []int   `json:"working_days"`
	DefaultWorkedDays     *int    `json:"default_worked_days"`
	DefaultWorkedHours    *int    `json:"default_worked_hours"`
	Timezone              *string `json:"timezone"`
}

func (r UpdateRulesRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.StartTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.StartTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.IsValidTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
		}
	}
	if r.ToleranceLateMinutes != nil && *r.ToleranceLateMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "tolerance_late_minutes", Message: "tolerance cannot be negative"})
	}
	if r.ToleranceEarlyMinutes != nil && *r.ToleranceEarlyMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "tolerance_early_minutes", Message: "tolerance cannot be negative"})
	}
	for _, d := range r.WorkingDays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{Field: "working_days", Message: "working days must be 0 (Sunday) through 6 (Saturday)"})
			break
		}
	}
	if r.DefaultWorkedDays != nil && (*r.DefaultWorkedDays < 1 || *r.DefaultWorkedDays > 31) {
		errs = append(errs, validator.ValidationError{Field: "default_worked_days", Message: "default worked days must be between 1 and 31"})
	}
	if r.DefaultWorkedHours != nil && *r.DefaultWorkedHours < 1 {
		errs = append(errs, validator.ValidationError{Field: "default_worked_hours", Message: "default worked hours must be positive"})
	}
	if r.Timezone != nil {
		if _, err := time.LoadLocation(*r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "unknown timezone"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListAttendanceFilter struct {
	EmployeeID *string
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *Status
	Page       int
	PerPage    int
}
