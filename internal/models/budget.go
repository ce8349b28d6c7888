package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/plata-app/plata/internal/errors"
)

// BudgetStatus is the derived spend state of a budget for its period.
type BudgetStatus string

const (
	BudgetStatusOK       BudgetStatus = "ok"
	BudgetStatusAlert    BudgetStatus = "alert"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

// DefaultAlertThreshold is the percentage at which a budget moves from OK
// to Alert when no explicit threshold is set.
const DefaultAlertThreshold = 80

// Budget is a monthly spending ceiling for one expense category.
// At most one budget exists per (user, category, month, year).
type Budget struct {
	ID         string `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	UserID     string `json:"user_id" gorm:"column:user_id;type:varchar(255);not null;index:idx_budgets_period,priority:1;uniqueIndex:uniq_budget_period,priority:1"`
	CategoryID string `json:"category_id" gorm:"column:category_id;type:varchar(255);not null;uniqueIndex:uniq_budget_period,priority:2"`
	Month      int    `json:"month" gorm:"column:month;type:smallint;not null;index:idx_budgets_period,priority:2;uniqueIndex:uniq_budget_period,priority:3"`
	Year       int    `json:"year" gorm:"column:year;type:smallint;not null;index:idx_budgets_period,priority:3;uniqueIndex:uniq_budget_period,priority:4"`

	Amount         decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(12,2);not null"`
	AlertThreshold int             `json:"alert_threshold" gorm:"column:alert_threshold;type:smallint;not null;default:80"`
	Notes          string          `json:"notes" gorm:"column:notes;type:text"`

	IsActive bool `json:"is_active" gorm:"column:is_active;type:boolean;not null;default:true;index"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Budget model
func (Budget) TableName() string {
	return "budgets"
}

// Validate validates the budget data
func (b *Budget) Validate() error {
	if b.UserID == "" {
		return &apperrors.ErrValidation{Field: "user_id", Message: "is required"}
	}
	if b.CategoryID == "" {
		return &apperrors.ErrValidation{Field: "category_id", Message: "is required"}
	}
	if b.Month < 1 || b.Month > 12 {
		return &apperrors.ErrValidation{Field: "month", Message: "must be between 1 and 12"}
	}
	if b.Year < 2020 || b.Year > 2100 {
		return &apperrors.ErrValidation{Field: "year", Message: "must be between 2020 and 2100"}
	}
	if !b.Amount.IsPositive() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}
	if b.AlertThreshold < 1 || b.AlertThreshold > 100 {
		return &apperrors.ErrValidation{Field: "alert_threshold", Message: "must be between 1 and 100"}
	}
	return nil
}

// PreSave applies defaults and validates before persisting.
func (b *Budget) PreSave() error {
	if b.AlertThreshold == 0 {
		b.AlertThreshold = DefaultAlertThreshold
	}
	return b.Validate()
}

// BudgetStatusReport is the derived spend state shown on the dashboard.
type BudgetStatusReport struct {
	BudgetID        string          `json:"budget_id"`
	CategoryID      string          `json:"category_id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Amount          decimal.Decimal `json:"amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
	SpentPercentage decimal.Decimal `json:"spent_percentage"`
	AlertThreshold  int             `json:"alert_threshold"`
	Status          BudgetStatus    `json:"status"`
}

// BudgetSummary aggregates every budget of a (user, month, year) period.
type BudgetSummary struct {
	Month             int                   `json:"month"`
	Year              int                   `json:"year"`
	TotalBudgeted     decimal.Decimal       `json:"total_budgeted"`
	TotalSpent        decimal.Decimal       `json:"total_spent"`
	TotalRemaining    decimal.Decimal       `json:"total_remaining"`
	OverallPercentage decimal.Decimal       `json:"overall_percentage"`
	BudgetCount       int                   `json:"budget_count"`
	ExceededCount     int                   `json:"exceeded_count"`
	AlertCount        int                   `json:"alert_count"`
	Reports           []*BudgetStatusReport `json:"reports"`
}

var oneHundred = decimal.NewFromInt(100)

// ComputeBudgetStatus derives the spend state of a budget from the
// transactions of its period. Only active expense rows matching the
// budget's user, category, month and year contribute to the total, so
// callers may pass a broader slice than the exact period.
//
// Classification is evaluated in order: spent percentage >= 100 is
// exceeded, >= alert threshold is alert, anything else is ok. A zero
// budget amount short-circuits to ok with 0% to avoid dividing by zero.
// The function is pure; recomputing on unchanged inputs yields an
// identical report.
func ComputeBudgetStatus(budget *Budget, transactions []*Transaction) *BudgetStatusReport {
	spent := decimal.Zero
	for _, tx := range transactions {
		if !tx.IsActive || tx.Type != TransactionExpense {
			continue
		}
		if tx.UserID != budget.UserID || tx.CategoryID != budget.CategoryID {
			continue
		}
		if int(tx.Date.Month()) != budget.Month || tx.Date.Year() != budget.Year {
			continue
		}
		spent = spent.Add(tx.AmountARS)
	}

	report := &BudgetStatusReport{
		BudgetID:        budget.ID,
		CategoryID:      budget.CategoryID,
		Month:           budget.Month,
		Year:            budget.Year,
		Amount:          budget.Amount,
		SpentAmount:     spent,
		RemainingAmount: budget.Amount.Sub(spent),
		AlertThreshold:  budget.AlertThreshold,
	}

	if !budget.Amount.IsPositive() {
		report.SpentPercentage = decimal.Zero
		report.Status = BudgetStatusOK
		return report
	}

	percentage := spent.Div(budget.Amount).Mul(oneHundred)
	report.SpentPercentage = percentage.Round(1)

	threshold := decimal.NewFromInt(int64(budget.AlertThreshold))
	switch {
	case percentage.GreaterThanOrEqual(oneHundred):
		report.Status = BudgetStatusExceeded
	case percentage.GreaterThanOrEqual(threshold):
		report.Status = BudgetStatusAlert
	default:
		report.Status = BudgetStatusOK
	}
	return report
}

// SummarizeBudgets rolls individual status reports up into period totals.
func SummarizeBudgets(month, year int, reports []*BudgetStatusReport) *BudgetSummary {
	summary := &BudgetSummary{
		Month:             month,
		Year:              year,
		TotalBudgeted:     decimal.Zero,
		TotalSpent:        decimal.Zero,
		OverallPercentage: decimal.Zero,
		Reports:           reports,
	}

	for _, r := range reports {
		summary.TotalBudgeted = summary.TotalBudgeted.Add(r.Amount)
		summary.TotalSpent = summary.TotalSpent.Add(r.SpentAmount)
		switch r.Status {
		case BudgetStatusExceeded:
			summary.ExceededCount++
		case BudgetStatusAlert:
			summary.AlertCount++
		}
	}
	summary.BudgetCount = len(reports)
	summary.TotalRemaining = summary.TotalBudgeted.Sub(summary.TotalSpent)
	if summary.TotalBudgeted.IsPositive() {
		summary.OverallPercentage = summary.TotalSpent.Div(summary.TotalBudgeted).Mul(oneHundred).Round(1)
	}
	return summary
}

// PreviousPeriod returns the (month, year) immediately before the given one.
func PreviousPeriod(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}
