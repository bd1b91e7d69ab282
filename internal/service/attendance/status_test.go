package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
)

func testRules() attendance.Rules {
	rules := attendance.DefaultRules("company-1")
	rules.StartTime = "08:00"
	rules.EndTime = "17:00"
	rules.ToleranceLateMinutes = 15
	rules.ToleranceEarlyMinutes = 15
	rules.Timezone = "UTC"
	return rules
}

func at(hour, minute int) *time.Time {
	t := time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
	return &t
}

func TestDeriveStatus_NoCheckIn(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	status, err := DeriveStatus(testRules(), date, nil, nil)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, status)
}

func TestDeriveStatus_OnTime(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	status, err := DeriveStatus(testRules(), date, at(7, 55), at(17, 5))

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestDeriveStatus_WithinLateTolerance(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 08:15 is exactly the tolerance limit, still on time.
	status, err := DeriveStatus(testRules(), date, at(8, 15), nil)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestDeriveStatus_Late(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	status, err := DeriveStatus(testRules(), date, at(8, 16), nil)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRetard, status)
}

func TestDeriveStatus_EarlyDeparture(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	status, err := DeriveStatus(testRules(), date, at(8, 0), at(16, 30))

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusDepartAnticipe, status)
}

func TestDeriveStatus_WithinEarlyTolerance(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 16:45 is exactly the tolerance limit, not an early departure.
	status, err := DeriveStatus(testRules(), date, at(8, 0), at(16, 45))

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, status)
}

func TestDeriveStatus_LateWinsOverEarlyDeparture(t *testing.T) {
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	status, err := DeriveStatus(testRules(), date, at(9, 0), at(16, 0))

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRetard, status)
}

func TestDeriveStatus_InvalidStartTime(t *testing.T) {
	rules := testRules()
	rules.StartTime = "not-a-time"
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := DeriveStatus(rules, date, at(8, 0), nil)

	assert.Error(t, err)
}

func TestWorkedMinutes(t *testing.T) {
	assert.Nil(t, workedMinutes(nil, nil))
	assert.Nil(t, workedMinutes(at(8, 0), nil))
	assert.Nil(t, workedMinutes(nil, at(17, 0)))

	minutes := workedMinutes(at(8, 0), at(17, 0))
	require.NotNil(t, minutes)
	assert.Equal(t, 540, *minutes)

	// Inverted punches clamp to zero instead of going negative.
	minutes = workedMinutes(at(17, 0), at(8, 0))
	require.NotNil(t, minutes)
	assert.Equal(t, 0, *minutes)
}
