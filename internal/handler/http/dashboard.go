package http

import (
	"log/slog"
	"net/http"

	"github.com/paietrack/paietrack-backend-go/internal/domain/dashboard"
	"github.com/paietrack/paietrack-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &DashboardHandlerImpl{dashboardService: dashboardService}
}

// GetSummary implements DashboardHandler.
func (h *DashboardHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.GetSummary(r.Context())
	if err != nil {
		slog.Error("Dashboard summary service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, summary)
}
