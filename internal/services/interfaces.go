package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/models"
)

// TransactionService defines the interface for transaction operations
type TransactionService interface {
	CreateTransaction(ctx context.Context, tx *models.Transaction) error
	GetTransaction(ctx context.Context, id string) (*models.Transaction, error)
	ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	GetTransactionCount(ctx context.Context, filter *models.TransactionFilter) (int, error)
	GetMonthlyTotal(ctx context.Context, userID string, txType models.TransactionType, month, year int) (decimal.Decimal, error)
}

// CategoryService defines the interface for category operations
type CategoryService interface {
	EnsureSystemCategories(ctx context.Context) error
	ListCategories(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

// BudgetService defines the interface for budget operations
type BudgetService interface {
	CreateBudget(ctx context.Context, budget *models.Budget) error
	GetBudget(ctx context.Context, id string) (*models.Budget, error)
	ListBudgets(ctx context.Context, userID string, month, year int) ([]*models.Budget, error)
	UpdateBudget(ctx context.Context, budget *models.Budget) error
	DeleteBudget(ctx context.Context, id string) error
	GetBudgetStatus(ctx context.Context, id string) (*models.BudgetStatusReport, error)
	GetMonthlySummary(ctx context.Context, userID string, month, year int) (*models.BudgetSummary, error)
	CopyBudget(ctx context.Context, userID, categoryID string, month, year int) (*models.Budget, error)
	CopyAllFromPrevious(ctx context.Context, userID string, month, year int) ([]*models.Budget, error)
}

// SavingService defines the interface for savings goal operations
type SavingService interface {
	CreateSaving(ctx context.Context, saving *models.Saving) error
	GetSaving(ctx context.Context, id string) (*models.Saving, error)
	ListSavings(ctx context.Context, userID string, status models.SavingStatus) ([]*models.Saving, error)
	UpdateSaving(ctx context.Context, saving *models.Saving) error
	ListMovements(ctx context.Context, savingID string) ([]*models.SavingMovement, error)
	AddDeposit(ctx context.Context, savingID string, amount decimal.Decimal, date time.Time, description string) (*models.Saving, error)
	AddWithdrawal(ctx context.Context, savingID string, amount decimal.Decimal, date time.Time, description string) (*models.Saving, error)
	CancelSaving(ctx context.Context, savingID string) (*models.Saving, error)
}

// ReportingService defines the interface for dashboard reporting
type ReportingService interface {
	GetDashboard(ctx context.Context, userID string, month, year int) (*models.Dashboard, error)
}
