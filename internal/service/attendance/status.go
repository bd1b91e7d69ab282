package attendance

import (
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
)

// DeriveStatus computes a day's status from the raw punches and the company
// rules. Lateness wins over early departure when both apply.
func DeriveStatus(rules attendance.Rules, date time.Time, checkIn, checkOut *time.Time) (attendance.Status, error) {
	if checkIn == nil {
		return attendance.StatusAbsent, nil
	}

	scheduledStart, err := rules.ScheduledStart(date)
	if err != nil {
		return "", err
	}

	lateLimit := scheduledStart.Add(time.Duration(rules.ToleranceLateMinutes) * time.Minute)
	if checkIn.After(lateLimit) {
		return attendance.StatusRetard, nil
	}

	if checkOut != nil {
		scheduledEnd, err := rules.ScheduledEnd(date)
		if err != nil {
			return "", err
		}
		earlyLimit := scheduledEnd.Add(-time.Duration(rules.ToleranceEarlyMinutes) * time.Minute)
		if checkOut.Before(earlyLimit) {
			return attendance.StatusDepartAnticipe, nil
		}
	}

	return attendance.StatusPresent, nil
}

// workedMinutes returns the whole minutes between the punches, zero when the
// pair is incomplete or inverted.
func workedMinutes(checkIn, checkOut *time.Time) *int {
	if checkIn == nil || checkOut == nil {
		return nil
	}
	minutes := int(checkOut.Sub(*checkIn).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return &minutes
}
