package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/report"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	PayrollReport(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// AttendanceReport implements ReportHandler.
func (h *ReportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	reportReq := report.AttendanceReportRequest{
		DateFrom: r.URL.Query().Get("date_from"),
		DateTo:   r.URL.Query().Get("date_to"),
	}

	if err := reportReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.reportService.AttendanceReport(r.Context(), reportReq)
	if err != nil {
		slog.Error("AttendanceReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, file)
}

// PayrollReport implements ReportHandler.
func (h *ReportHandlerImpl) PayrollReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	file, err := h.reportService.PayrollReport(r.Context(), id)
	if err != nil {
		slog.Error("PayrollReport service error", "error", err)
		response.HandleError(w, err)
		return
	}

	writeWorkbook(w, file)
}

func writeWorkbook(w http.ResponseWriter, file report.File) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
