package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type stubAttendanceService struct {
	checkInFn func(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error)
	scanQRFn  func(ctx context.Context, req attendance.QRScanRequest) (attendance.QRScanResponse, error)
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	return s.checkInFn(ctx, req)
}

func (s *stubAttendanceService) CheckOut(context.Context, attendance.CheckOutRequest) (attendance.Attendance, error) {
	return attendance.Attendance{}, nil
}

func (s *stubAttendanceService) ScanQR(ctx context.Context, req attendance.QRScanRequest) (attendance.QRScanResponse, error) {
	return s.scanQRFn(ctx, req)
}

func (s *stubAttendanceService) Override(context.Context, attendance.ManualOverrideRequest) (attendance.Attendance, error) {
	return attendance.Attendance{}, nil
}

func (s *stubAttendanceService) GetToday(context.Context) (attendance.Attendance, error) {
	return attendance.Attendance{}, nil
}

func (s *stubAttendanceService) ListMine(context.Context, attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (s *stubAttendanceService) List(context.Context, attendance.ListAttendanceFilter) ([]attendance.Attendance, int, error) {
	return nil, 0, nil
}

func (s *stubAttendanceService) GetRules(context.Context) (attendance.Rules, error) {
	return attendance.Rules{}, nil
}

func (s *stubAttendanceService) UpdateRules(context.Context, attendance.UpdateRulesRequest) (attendance.Rules, error) {
	return attendance.Rules{}, nil
}

func TestAttendanceHandler_CheckIn_Success(t *testing.T) {
	now := time.Now()
	svc := &stubAttendanceService{
		checkInFn: func(_ context.Context, _ attendance.CheckInRequest) (attendance.Attendance, error) {
			return attendance.Attendance{
				ID:         "att-1",
				EmployeeID: "emp-1",
				CheckIn:    &now,
				Status:     attendance.StatusPresent,
				Source:     attendance.SourceSession,
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc)

	// Check-in without a body must work, geolocation is optional.
	req := httptest.NewRequest("POST", "/api/v1/attendance/check-in", nil)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "att-1", data["id"])
	assert.Equal(t, "PRESENT", data["status"])
}

func TestAttendanceHandler_CheckIn_AlreadyCheckedIn(t *testing.T) {
	svc := &stubAttendanceService{
		checkInFn: func(_ context.Context, _ attendance.CheckInRequest) (attendance.Attendance, error) {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		},
	}
	handler := NewAttendanceHandler(svc)

	req := httptest.NewRequest("POST", "/api/v1/attendance/check-in", nil)
	rec := httptest.NewRecorder()
	handler.CheckIn(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestAttendanceHandler_ScanQR(t *testing.T) {
	svc := &stubAttendanceService{
		scanQRFn: func(_ context.Context, req attendance.QRScanRequest) (attendance.QRScanResponse, error) {
			assert.Equal(t, "badge-token-1", req.QRToken)
			return attendance.QRScanResponse{
				Action:       "CHECK_IN",
				EmployeeName: "Awa Diop",
			}, nil
		},
	}
	handler := NewAttendanceHandler(svc)

	body := strings.NewReader(`{"qr_token": "badge-token-1"}`)
	req := httptest.NewRequest("POST", "/api/v1/attendance/scan", body)
	rec := httptest.NewRecorder()
	handler.ScanQR(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "CHECK_IN", data["action"])
	assert.Equal(t, "Awa Diop", data["employee_name"])
}

func TestAttendanceHandler_ScanQR_MissingToken(t *testing.T) {
	handler := NewAttendanceHandler(&stubAttendanceService{})

	body := strings.NewReader(`{}`)
	req := httptest.NewRequest("POST", "/api/v1/attendance/scan", body)
	rec := httptest.NewRecorder()
	handler.ScanQR(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
