package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/plata-app/plata/internal/models"
)

func TestBudgetAPIStatusAndCopy(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := SetupTestServer(t)
	defer ts.Cleanup(t)

	var categories []*models.Category
	status := ts.doJSON(t, "GET", "/api/categories?user_id=u1&type=expense", nil, &categories)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, categories)
	categoryID := categories[0].ID

	created := &models.Budget{}
	status = ts.doJSON(t, "POST", "/api/budgets", map[string]interface{}{
		"user_id":     "u1",
		"category_id": categoryID,
		"month":       6,
		"year":        2026,
		"amount":      "1000",
	}, created)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, models.DefaultAlertThreshold, created.AlertThreshold)

	// Same period again conflicts
	status = ts.doJSON(t, "POST", "/api/budgets", map[string]interface{}{
		"user_id":     "u1",
		"category_id": categoryID,
		"month":       6,
		"year":        2026,
		"amount":      "2000",
	}, nil)
	require.Equal(t, http.StatusConflict, status)

	// Spend 85% of the ceiling
	status = ts.doJSON(t, "POST", "/api/transactions", map[string]interface{}{
		"user_id":     "u1",
		"category_id": categoryID,
		"type":        "expense",
		"date":        time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC),
		"description": "Compra grande",
		"amount":      "850",
		"currency":    "ARS",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	report := &models.BudgetStatusReport{}
	status = ts.doJSON(t, "GET", "/api/budgets/"+created.ID+"/status", nil, report)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, models.BudgetStatusAlert, report.Status)
	require.True(t, report.SpentAmount.Equal(decimal.RequireFromString("850")))
	require.True(t, report.SpentPercentage.Equal(decimal.RequireFromString("85")))

	summary := &models.BudgetSummary{}
	status = ts.doJSON(t, "GET", "/api/budgets/summary?user_id=u1&month=6&year=2026", nil, summary)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, summary.BudgetCount)
	require.Equal(t, 1, summary.AlertCount)

	// Copy into August; July is empty so the June budget is the source
	var copied []*models.Budget
	status = ts.doJSON(t, "POST", "/api/budgets/copy", map[string]interface{}{
		"user_id":     "u1",
		"category_id": categoryID,
		"month":       8,
		"year":        2026,
	}, &copied)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, copied, 1)
	require.True(t, copied[0].Amount.Equal(created.Amount))
	require.Equal(t, 8, copied[0].Month)

	// Copying again conflicts
	status = ts.doJSON(t, "POST", "/api/budgets/copy", map[string]interface{}{
		"user_id":     "u1",
		"category_id": categoryID,
		"month":       8,
		"year":        2026,
	}, nil)
	require.Equal(t, http.StatusConflict, status)
}

func TestDashboardAPI(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ts := SetupTestServer(t)
	defer ts.Cleanup(t)

	var expenseCats, incomeCats []*models.Category
	status := ts.doJSON(t, "GET", "/api/categories?user_id=u1&type=expense", nil, &expenseCats)
	require.Equal(t, http.StatusOK, status)
	status = ts.doJSON(t, "GET", "/api/categories?user_id=u1&type=income", nil, &incomeCats)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, expenseCats)
	require.NotEmpty(t, incomeCats)

	june := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	status = ts.doJSON(t, "POST", "/api/transactions", map[string]interface{}{
		"user_id":     "u1",
		"category_id": incomeCats[0].ID,
		"type":        "income",
		"date":        june,
		"description": "Sueldo",
		"amount":      "3000",
		"currency":    "ARS",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	status = ts.doJSON(t, "POST", "/api/transactions", map[string]interface{}{
		"user_id":     "u1",
		"category_id": expenseCats[0].ID,
		"type":        "expense",
		"date":        june,
		"description": "Supermercado",
		"amount":      "1200",
		"currency":    "ARS",
	}, nil)
	require.Equal(t, http.StatusCreated, status)

	dashboard := &models.Dashboard{}
	status = ts.doJSON(t, "GET", "/api/reports/dashboard?user_id=u1&month=6&year=2026", nil, dashboard)
	require.Equal(t, http.StatusOK, status)
	require.True(t, dashboard.Balance.IncomeTotal.Equal(decimal.RequireFromString("3000")))
	require.True(t, dashboard.Balance.ExpenseTotal.Equal(decimal.RequireFromString("1200")))
	require.True(t, dashboard.Balance.Balance.Equal(decimal.RequireFromString("1800")))
	require.Len(t, dashboard.RecentTransactions, 2)
	require.Len(t, dashboard.ExpensesByCategory, 1)
	require.True(t, dashboard.ExpensesByCategory[0].Total.Equal(decimal.RequireFromString("1200")))
}
