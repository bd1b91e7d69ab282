package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CreatePayRun(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	GetPayRun(w http.ResponseWriter, r *http.Request)
	ListPayRuns(w http.ResponseWriter, r *http.Request)
	GetBulletin(w http.ResponseWriter, r *http.Request)
	ListBulletins(w http.ResponseWriter, r *http.Request)
	ListMyBulletins(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	RecordBulkPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	DownloadPayslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// CreatePayRun implements PayrollHandler.
func (h *PayrollHandlerImpl) CreatePayRun(w http.ResponseWriter, r *http.Request) {
	var createReq payroll.CreatePayRunRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreatePayRun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.payrollService.CreatePayRun(r.Context(), createReq)
	if err != nil {
		slog.Error("CreatePayRun service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay run created successfully", created)
}

// Generate implements PayrollHandler.
func (h *PayrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.payrollService.Generate(r.Context(), id)
	if err != nil {
		slog.Error("Generate pay run service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay run generated successfully", run)
}

// GetPayRun implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := h.payrollService.GetPayRun(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, run)
}

// ListPayRuns implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payrollService.ListPayRuns(r.Context())
	if err != nil {
		slog.Error("ListPayRuns service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, runs)
}

// GetBulletin implements PayrollHandler.
func (h *PayrollHandlerImpl) GetBulletin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b, err := h.payrollService.GetBulletin(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, b)
}

// ListBulletins implements PayrollHandler.
func (h *PayrollHandlerImpl) ListBulletins(w http.ResponseWriter, r *http.Request) {
	filter := bulletinFilterFromQuery(r)

	bulletins, total, err := h.payrollService.ListBulletins(r.Context(), filter)
	if err != nil {
		slog.Error("ListBulletins service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, bulletins, response.NewMeta(filter.Page, filter.PerPage, total))
}

// ListMyBulletins implements PayrollHandler.
func (h *PayrollHandlerImpl) ListMyBulletins(w http.ResponseWriter, r *http.Request) {
	filter := bulletinFilterFromQuery(r)

	bulletins, total, err := h.payrollService.ListMyBulletins(r.Context(), filter)
	if err != nil {
		slog.Error("ListMyBulletins service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, bulletins, response.NewMeta(filter.Page, filter.PerPage, total))
}

// RecordPayment implements PayrollHandler.
func (h *PayrollHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var paymentReq payroll.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&paymentReq); err != nil {
		slog.Error("RecordPayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := paymentReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.payrollService.RecordPayment(r.Context(), id, paymentReq)
	if err != nil {
		slog.Error("RecordPayment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment recorded successfully", updated)
}

// RecordBulkPayment implements PayrollHandler.
func (h *PayrollHandlerImpl) RecordBulkPayment(w http.ResponseWriter, r *http.Request) {
	var bulkReq payroll.BulkPaymentRequest

	if err := json.NewDecoder(r.Body).Decode(&bulkReq); err != nil {
		slog.Error("RecordBulkPayment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := bulkReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	results, err := h.payrollService.RecordBulkPayment(r.Context(), bulkReq)
	if err != nil {
		slog.Error("RecordBulkPayment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Bulk payment processed", results)
}

// ListPayments implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payments, err := h.payrollService.ListPayments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, payments)
}

// DownloadPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) DownloadPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	html, err := h.payrollService.RenderPayslip(r.Context(), id)
	if err != nil {
		slog.Error("DownloadPayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func bulletinFilterFromQuery(r *http.Request) payroll.ListBulletinsFilter {
	filter := payroll.ListBulletinsFilter{
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}
	if v := r.URL.Query().Get("pay_run_id"); v != "" {
		filter.PayRunID = &v
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("statut_paiement"); v != "" {
		statut := payroll.StatutPaiement(v)
		filter.StatutPaiement = &statut
	}
	return filter
}
