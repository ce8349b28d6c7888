package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/services"
)

type SavingHandler struct {
	service services.SavingService
}

func NewSavingHandler(service services.SavingService) *SavingHandler {
	return &SavingHandler{service: service}
}

// HandleSavings handles collection-level operations for savings goals.
// @Summary List or create savings goals
// @Tags savings
// @Accept json
// @Produce json
// @Param user_id query string true "User ID"
// @Param status query string false "active, completed or cancelled"
// @Success 200 {array} models.Saving
// @Failure 400 {object} errorResponse
// @Router /savings [get]
// @Router /savings [post]
func (h *SavingHandler) HandleSavings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.Method {
	case "GET":
		h.listSavings(w, r)
	case "POST":
		h.createSaving(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleSaving handles item-level operations for a savings goal.
// @Summary Get or update a savings goal
// @Description Updates touch name, description, target and appearance only; balance and status are driven by movements
// @Tags savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Success 200 {object} models.Saving
// @Failure 404 {object} errorResponse
// @Router /savings/{id} [get]
// @Router /savings/{id} [put]
func (h *SavingHandler) HandleSaving(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "Saving ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		h.getSaving(w, r, id)
	case "PUT":
		h.updateSaving(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleMovements lists the movement history of a goal.
// @Summary List a goal's deposits and withdrawals
// @Tags savings
// @Produce json
// @Param id path string true "Saving ID"
// @Success 200 {array} models.SavingMovement
// @Router /savings/{id}/movements [get]
func (h *SavingHandler) HandleMovements(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	movements, err := h.service.ListMovements(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(movements)
}

type movementRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// HandleDeposit records a deposit into a goal.
// @Summary Deposit into a savings goal
// @Description Reaching the target automatically completes the goal
// @Tags savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Param request body movementRequest true "Deposit"
// @Success 201 {object} models.Saving
// @Failure 422 {object} errorResponse
// @Router /savings/{id}/deposits [post]
func (h *SavingHandler) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.service.AddDeposit)
}

// HandleWithdrawal records a withdrawal from a goal.
// @Summary Withdraw from a savings goal
// @Description Rejected when the amount exceeds the current balance
// @Tags savings
// @Accept json
// @Produce json
// @Param id path string true "Saving ID"
// @Param request body movementRequest true "Withdrawal"
// @Success 201 {object} models.Saving
// @Failure 422 {object} errorResponse
// @Router /savings/{id}/withdrawals [post]
func (h *SavingHandler) HandleWithdrawal(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.service.AddWithdrawal)
}

// HandleCancel cancels an active goal.
// @Summary Cancel a savings goal
// @Description Terminal; the goal rejects further movements but keeps its history
// @Tags savings
// @Produce json
// @Param id path string true "Saving ID"
// @Success 200 {object} models.Saving
// @Failure 422 {object} errorResponse
// @Router /savings/{id}/cancel [post]
func (h *SavingHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	saving, err := h.service.CancelSaving(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(saving)
}

type movementFunc func(ctx context.Context, savingID string, amount decimal.Decimal, date time.Time, description string) (*models.Saving, error)

func (h *SavingHandler) handleMovement(w http.ResponseWriter, r *http.Request, apply movementFunc) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req movementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	saving, err := apply(r.Context(), mux.Vars(r)["id"], req.Amount, req.Date, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saving)
}

func (h *SavingHandler) listSavings(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	status := models.SavingStatus(r.URL.Query().Get("status"))

	savings, err := h.service.ListSavings(r.Context(), userID, status)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(savings)
}

func (h *SavingHandler) createSaving(w http.ResponseWriter, r *http.Request) {
	var saving models.Saving
	if err := json.NewDecoder(r.Body).Decode(&saving); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.service.CreateSaving(r.Context(), &saving); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saving)
}

func (h *SavingHandler) getSaving(w http.ResponseWriter, r *http.Request, id string) {
	saving, err := h.service.GetSaving(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(saving)
}

func (h *SavingHandler) updateSaving(w http.ResponseWriter, r *http.Request, id string) {
	var saving models.Saving
	if err := json.NewDecoder(r.Body).Decode(&saving); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	saving.ID = id

	if err := h.service.UpdateSaving(r.Context(), &saving); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.service.GetSaving(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	json.NewEncoder(w).Encode(updated)
}
