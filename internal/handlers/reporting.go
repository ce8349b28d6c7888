package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/plata-app/plata/internal/services"
)

type ReportingHandler struct {
	service services.ReportingService
}

func NewReportingHandler(service services.ReportingService) *ReportingHandler {
	return &ReportingHandler{service: service}
}

// HandleDashboard returns the month's financial summary.
// @Summary Get the dashboard
// @Description Balance with previous-month comparison, budget states, savings progress, recent transactions and expense distribution by category
// @Tags reports
// @Produce json
// @Param user_id query string true "User ID"
// @Param month query int false "Month (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} models.Dashboard
// @Router /reports/dashboard [get]
func (h *ReportingHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	month, year := periodFromQuery(r)
	dashboard, err := h.service.GetDashboard(r.Context(), r.URL.Query().Get("user_id"), month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(dashboard)
}
