package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// Create implements CompanyHandler.
func (h *CompanyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq company.CreateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.companyService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Company created successfully", created)
}

// GetMine implements CompanyHandler.
func (h *CompanyHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	found, err := h.companyService.GetMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// List implements CompanyHandler.
func (h *CompanyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companyService.List(r.Context())
	if err != nil {
		slog.Error("List companies service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, companies)
}

// Update implements CompanyHandler.
func (h *CompanyHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update company decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.companyService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated successfully", updated)
}

// Deactivate implements CompanyHandler.
func (h *CompanyHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.companyService.Deactivate(r.Context(), id); err != nil {
		slog.Error("Deactivate company service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company deactivated successfully", nil)
}
