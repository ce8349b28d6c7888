package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReport compares income against expenses for one month, with the
// previous month's totals for trend display.
type BalanceReport struct {
	Month int `json:"month"`
	Year  int `json:"year"`

	IncomeTotal  decimal.Decimal `json:"income_total"`
	ExpenseTotal decimal.Decimal `json:"expense_total"`
	Balance      decimal.Decimal `json:"balance"`

	PreviousIncomeTotal  decimal.Decimal `json:"previous_income_total"`
	PreviousExpenseTotal decimal.Decimal `json:"previous_expense_total"`
	PreviousBalance      decimal.Decimal `json:"previous_balance"`
}

// CategoryTotal is one slice of the expense distribution chart.
type CategoryTotal struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Icon         string          `json:"icon"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
}

// SavingOverview is one goal's card on the dashboard.
type SavingOverview struct {
	SavingID           string          `json:"saving_id"`
	Name               string          `json:"name"`
	Status             SavingStatus    `json:"status"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	CurrentAmount      decimal.Decimal `json:"current_amount"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	TargetDate         *time.Time      `json:"target_date,omitempty"`
}

// SavingsSummary aggregates the savings section of the dashboard.
type SavingsSummary struct {
	TotalSaved     decimal.Decimal   `json:"total_saved"`
	ActiveCount    int               `json:"active_count"`
	CompletedCount int               `json:"completed_count"`
	Goals          []*SavingOverview `json:"goals"`
}

// Dashboard is the full financial summary for one user and month.
type Dashboard struct {
	Balance            *BalanceReport   `json:"balance"`
	Budgets            *BudgetSummary   `json:"budgets"`
	Savings            *SavingsSummary  `json:"savings"`
	RecentTransactions []*Transaction   `json:"recent_transactions"`
	ExpensesByCategory []*CategoryTotal `json:"expenses_by_category"`
}
