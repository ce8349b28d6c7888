package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/services"
)

// NewRouter wires every handler onto the API route table. The server
// and the integration tests share this setup.
func NewRouter(database *db.DB) *mux.Router {
	transactionHandler := NewTransactionHandler(services.NewTransactionService(database))
	categoryHandler := NewCategoryHandler(services.NewCategoryService(database))
	budgetHandler := NewBudgetHandler(services.NewBudgetService(database))
	savingHandler := NewSavingHandler(services.NewSavingService(database))
	reportingHandler := NewReportingHandler(services.NewReportingService(database))

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		status := "healthy"
		code := http.StatusOK
		if err := database.Health(); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  status,
			"service": "plata-backend",
		})
	})

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/transactions", transactionHandler.HandleTransactions)
	api.HandleFunc("/transactions/{id}", transactionHandler.HandleTransaction)

	api.HandleFunc("/categories", categoryHandler.HandleCategories)
	api.HandleFunc("/categories/{id}", categoryHandler.HandleCategory)

	// Fixed budget paths register before the {id} wildcard
	api.HandleFunc("/budgets/summary", budgetHandler.HandleBudgetSummary)
	api.HandleFunc("/budgets/copy", budgetHandler.HandleBudgetCopy)
	api.HandleFunc("/budgets", budgetHandler.HandleBudgets)
	api.HandleFunc("/budgets/{id}", budgetHandler.HandleBudget)
	api.HandleFunc("/budgets/{id}/status", budgetHandler.HandleBudgetStatus)

	api.HandleFunc("/savings", savingHandler.HandleSavings)
	api.HandleFunc("/savings/{id}", savingHandler.HandleSaving)
	api.HandleFunc("/savings/{id}/movements", savingHandler.HandleMovements)
	api.HandleFunc("/savings/{id}/deposits", savingHandler.HandleDeposit)
	api.HandleFunc("/savings/{id}/withdrawals", savingHandler.HandleWithdrawal)
	api.HandleFunc("/savings/{id}/cancel", savingHandler.HandleCancel)

	api.HandleFunc("/reports/dashboard", reportingHandler.HandleDashboard)

	return router
}
