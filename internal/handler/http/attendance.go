package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ScanQR(w http.ResponseWriter, r *http.Request)
	Override(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetRules(w http.ResponseWriter, r *http.Request)
	UpdateRules(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest
	// Body is optional: geolocation is a progressive enhancement.
	_ = json.NewDecoder(r.Body).Decode(&checkInReq)

	record, err := h.attendanceService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq attendance.CheckOutRequest
	_ = json.NewDecoder(r.Body).Decode(&checkOutReq)

	record, err := h.attendanceService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully", record)
}

// ScanQR implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ScanQR(w http.ResponseWriter, r *http.Request) {
	var scanReq attendance.QRScanRequest

	if err := json.NewDecoder(r.Body).Decode(&scanReq); err != nil {
		slog.Error("ScanQR decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := scanReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.ScanQR(r.Context(), scanReq)
	if err != nil {
		slog.Error("ScanQR service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Override implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Override(w http.ResponseWriter, r *http.Request) {
	var overrideReq attendance.ManualOverrideRequest

	if err := json.NewDecoder(r.Body).Decode(&overrideReq); err != nil {
		slog.Error("Override decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := overrideReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.attendanceService.Override(r.Context(), overrideReq)
	if err != nil {
		slog.Error("Override service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance overridden successfully", record)
}

// GetToday implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetToday(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, record)
}

// ListMine implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)

	records, total, err := h.attendanceService.ListMine(r.Context(), filter)
	if err != nil {
		slog.Error("ListMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.PerPage, total))
}

// List implements AttendanceHandler.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilterFromQuery(r)
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}

	records, total, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, response.NewMeta(filter.Page, filter.PerPage, total))
}

// GetRules implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.attendanceService.GetRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rules)
}

// UpdateRules implements AttendanceHandler.
func (h *AttendanceHandlerImpl) UpdateRules(w http.ResponseWriter, r *http.Request) {
	var updateReq attendance.UpdateRulesRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateRules decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	rules, err := h.attendanceService.UpdateRules(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateRules service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance rules updated successfully", rules)
}

func attendanceFilterFromQuery(r *http.Request) attendance.ListAttendanceFilter {
	filter := attendance.ListAttendanceFilter{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}
	if v := r.URL.Query().Get("date_from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &t
		}
	}
	if v := r.URL.Query().Get("date_to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &t
		}
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := attendance.Status(v)
		filter.Status = &status
	}
	return filter
}
