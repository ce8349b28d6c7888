package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testBudget() *Budget {
	return &Budget{
		ID:             "budget-1",
		UserID:         "user-1",
		CategoryID:     "cat-food",
		Month:          3,
		Year:           2025,
		Amount:         decimal.NewFromInt(1000),
		AlertThreshold: 80,
		IsActive:       true,
	}
}

func expenseTx(amountARS string, month int) *Transaction {
	return &Transaction{
		UserID:     "user-1",
		CategoryID: "cat-food",
		Type:       TransactionExpense,
		Date:       time.Date(2025, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
		AmountARS:  decimal.RequireFromString(amountARS),
		IsActive:   true,
	}
}

func TestComputeBudgetStatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		spent      []string
		status     BudgetStatus
		percentage string
	}{
		{"well under threshold", []string{"100", "250.50"}, BudgetStatusOK, "35.1"},
		{"just below threshold", []string{"799.99"}, BudgetStatusOK, "80"},
		{"exactly at threshold", []string{"800.00"}, BudgetStatusAlert, "80"},
		{"between threshold and limit", []string{"950"}, BudgetStatusAlert, "95"},
		{"exactly at limit", []string{"1000.00"}, BudgetStatusExceeded, "100"},
		{"over limit", []string{"1200", "55"}, BudgetStatusExceeded, "125.5"},
		{"nothing spent", nil, BudgetStatusOK, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := testBudget()
			var txs []*Transaction
			for _, amount := range tt.spent {
				txs = append(txs, expenseTx(amount, 3))
			}

			report := ComputeBudgetStatus(budget, txs)

			if report.Status != tt.status {
				t.Errorf("expected status %s, got %s", tt.status, report.Status)
			}
			if report.SpentPercentage.String() != tt.percentage {
				t.Errorf("expected percentage %s, got %s", tt.percentage, report.SpentPercentage)
			}
		})
	}
}

// 799.99 of 1000 is 79.999%, which rounds to 80.0 for display but must
// still classify as OK against the raw percentage.
func TestComputeBudgetStatusRoundingDoesNotTriggerAlert(t *testing.T) {
	report := ComputeBudgetStatus(testBudget(), []*Transaction{expenseTx("799.99", 3)})

	if report.Status != BudgetStatusOK {
		t.Errorf("expected ok, got %s", report.Status)
	}
	if report.SpentPercentage.String() != "80" {
		t.Errorf("expected displayed percentage 80, got %s", report.SpentPercentage)
	}
}

func TestComputeBudgetStatusFiltering(t *testing.T) {
	budget := testBudget()

	otherCategory := expenseTx("500", 3)
	otherCategory.CategoryID = "cat-transport"

	otherUser := expenseTx("500", 3)
	otherUser.UserID = "user-2"

	softDeleted := expenseTx("500", 3)
	softDeleted.IsActive = false

	income := expenseTx("500", 3)
	income.Type = TransactionIncome

	otherMonth := expenseTx("500", 4)

	otherYear := expenseTx("500", 3)
	otherYear.Date = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	counted := expenseTx("300", 3)

	report := ComputeBudgetStatus(budget, []*Transaction{
		otherCategory, otherUser, softDeleted, income, otherMonth, otherYear, counted,
	})

	if got, want := report.SpentAmount.String(), "300"; got != want {
		t.Errorf("expected spent %s, got %s", want, got)
	}
	if got, want := report.RemainingAmount.String(), "700"; got != want {
		t.Errorf("expected remaining %s, got %s", want, got)
	}
}

func TestComputeBudgetStatusZeroAmount(t *testing.T) {
	budget := testBudget()
	budget.Amount = decimal.Zero

	report := ComputeBudgetStatus(budget, []*Transaction{expenseTx("500", 3)})

	if report.Status != BudgetStatusOK {
		t.Errorf("expected ok for zero-amount budget, got %s", report.Status)
	}
	if !report.SpentPercentage.IsZero() {
		t.Errorf("expected 0%% for zero-amount budget, got %s", report.SpentPercentage)
	}
}

func TestComputeBudgetStatusIdempotent(t *testing.T) {
	budget := testBudget()
	txs := []*Transaction{expenseTx("333.33", 3), expenseTx("250", 3)}

	first := ComputeBudgetStatus(budget, txs)
	second := ComputeBudgetStatus(budget, txs)

	if first.Status != second.Status ||
		!first.SpentAmount.Equal(second.SpentAmount) ||
		!first.SpentPercentage.Equal(second.SpentPercentage) {
		t.Errorf("recomputation differed: %+v vs %+v", first, second)
	}
}

func TestSummarizeBudgets(t *testing.T) {
	foodBudget := testBudget()
	transportBudget := testBudget()
	transportBudget.ID = "budget-2"
	transportBudget.CategoryID = "cat-transport"
	transportBudget.Amount = decimal.NewFromInt(500)

	transportTx := expenseTx("600", 3)
	transportTx.CategoryID = "cat-transport"

	reports := []*BudgetStatusReport{
		ComputeBudgetStatus(foodBudget, []*Transaction{expenseTx("850", 3)}),
		ComputeBudgetStatus(transportBudget, []*Transaction{transportTx}),
	}

	summary := SummarizeBudgets(3, 2025, reports)

	if got, want := summary.TotalBudgeted.String(), "1500"; got != want {
		t.Errorf("total budgeted: got %s want %s", got, want)
	}
	if got, want := summary.TotalSpent.String(), "1450"; got != want {
		t.Errorf("total spent: got %s want %s", got, want)
	}
	if summary.AlertCount != 1 || summary.ExceededCount != 1 {
		t.Errorf("expected 1 alert and 1 exceeded, got %d and %d", summary.AlertCount, summary.ExceededCount)
	}
	if got, want := summary.OverallPercentage.String(), "96.7"; got != want {
		t.Errorf("overall percentage: got %s want %s", got, want)
	}
}

func TestBudgetValidate(t *testing.T) {
	budget := testBudget()
	if err := budget.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	budget.Month = 13
	if err := budget.Validate(); err == nil {
		t.Error("expected error for month 13")
	}

	budget = testBudget()
	budget.AlertThreshold = 101
	if err := budget.Validate(); err == nil {
		t.Error("expected error for threshold above 100")
	}

	budget = testBudget()
	budget.Amount = decimal.Zero
	if err := budget.Validate(); err == nil {
		t.Error("expected error for zero amount")
	}
}

func TestBudgetPreSaveDefaultsThreshold(t *testing.T) {
	budget := testBudget()
	budget.AlertThreshold = 0

	if err := budget.PreSave(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if budget.AlertThreshold != DefaultAlertThreshold {
		t.Errorf("expected default threshold %d, got %d", DefaultAlertThreshold, budget.AlertThreshold)
	}
}

func TestPreviousPeriod(t *testing.T) {
	month, year := PreviousPeriod(1, 2025)
	if month != 12 || year != 2024 {
		t.Errorf("expected 12/2024, got %d/%d", month, year)
	}

	month, year = PreviousPeriod(7, 2025)
	if month != 6 || year != 2025 {
		t.Errorf("expected 6/2025, got %d/%d", month, year)
	}
}
