package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/services"
)

type BudgetHandler struct {
	service services.BudgetService
}

func NewBudgetHandler(service services.BudgetService) *BudgetHandler {
	return &BudgetHandler{service: service}
}

// HandleBudgets handles collection-level operations for budgets.
// @Summary List or create budgets
// @Description List a month's budgets or create a new spending ceiling
// @Tags budgets
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param month query int false "Month (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {array} models.Budget
// @Failure 409 {object} errorResponse
// @Router /budgets [get]
// @Router /budgets [post]
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case "GET":
		h.listBudgets(w, r)
	case "POST":
		h.createBudget(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBudget handles item-level operations for a budget.
// @Summary Get, update, or delete a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} models.Budget
// @Failure 404 {object} errorResponse
// @Router /budgets/{id} [get]
// @Router /budgets/{id} [put]
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) HandleBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Budget ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		h.getBudget(w, r, id)
	case "PUT":
		h.updateBudget(w, r, id)
	case "DELETE":
		h.deleteBudget(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBudgetStatus reports the spend state of one budget.
// @Summary Get a budget's status report
// @Description Spent amount, remaining amount and ok/alert/exceeded classification
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Success 200 {object} models.BudgetStatusReport
// @Failure 404 {object} errorResponse
// @Router /budgets/{id}/status [get]
func (h *BudgetHandler) HandleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	report, err := h.service.GetBudgetStatus(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(report)
}

// HandleBudgetSummary aggregates every budget of a month.
// @Summary Get the monthly budget summary
// @Tags budgets
// @Produce json
// @Param user_id query string true "User ID"
// @Param month query int false "Month (defaults to current)"
// @Param year query int false "Year (defaults to current)"
// @Success 200 {object} models.BudgetSummary
// @Router /budgets/summary [get]
func (h *BudgetHandler) HandleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	month, year := periodFromQuery(r)
	summary, err := h.service.GetMonthlySummary(r.Context(), r.URL.Query().Get("user_id"), month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(summary)
}

type copyBudgetRequest struct {
	UserID     string `json:"user_id"`
	CategoryID string `json:"category_id,omitempty"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

// HandleBudgetCopy copies budgets into a target period.
// @Summary Copy budgets from the latest prior period
// @Description With category_id copies one budget; without it copies every previously budgeted category, skipping ones already present
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body copyBudgetRequest true "Copy request"
// @Success 201 {array} models.Budget
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /budgets/copy [post]
func (h *BudgetHandler) HandleBudgetCopy(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req copyBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if req.CategoryID != "" {
		budget, err := h.service.CopyBudget(r.Context(), req.UserID, req.CategoryID, req.Month, req.Year)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, []*models.Budget{budget})
		return
	}

	budgets, err := h.service.CopyAllFromPrevious(r.Context(), req.UserID, req.Month, req.Year)
	if err != nil {
		writeError(w, err)
		return
	}
	if budgets == nil {
		budgets = []*models.Budget{}
	}
	writeJSON(w, http.StatusCreated, budgets)
}

func (h *BudgetHandler) listBudgets(w http.ResponseWriter, r *http.Request) {
	month, year := periodFromQuery(r)
	budgets, err := h.service.ListBudgets(r.Context(), r.URL.Query().Get("user_id"), month, year)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(budgets)
}

func (h *BudgetHandler) createBudget(w http.ResponseWriter, r *http.Request) {
	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateBudget(r.Context(), &budget); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, budget)
}

func (h *BudgetHandler) getBudget(w http.ResponseWriter, r *http.Request, id string) {
	budget, err := h.service.GetBudget(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(budget)
}

func (h *BudgetHandler) updateBudget(w http.ResponseWriter, r *http.Request, id string) {
	var budget models.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	budget.ID = id

	if err := h.service.UpdateBudget(r.Context(), &budget); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.service.GetBudget(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(updated)
}

func (h *BudgetHandler) deleteBudget(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.service.DeleteBudget(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// periodFromQuery reads month/year query params, defaulting to the
// current month.
func periodFromQuery(r *http.Request) (int, int) {
	now := time.Now()
	month, year := int(now.Month()), now.Year()

	if m := r.URL.Query().Get("month"); m != "" {
		if parsed, err := strconv.Atoi(m); err == nil {
			month = parsed
		}
	}
	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}
	return month, year
}
