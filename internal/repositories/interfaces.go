package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/models"
)

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error)
	GetCount(ctx context.Context, filter *models.TransactionFilter) (int, error)
	Update(ctx context.Context, tx *models.Transaction) error
	SoftDelete(ctx context.Context, id string) error
	SumAmountARS(ctx context.Context, userID string, txType models.TransactionType, month, year int) (decimal.Decimal, error)
	SumByCategory(ctx context.Context, userID string, month, year int) ([]*models.CategoryTotal, error)
	Recent(ctx context.Context, userID string, limit int) ([]*models.Transaction, error)
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id string) (*models.Category, error)
	ListForUser(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	SoftDelete(ctx context.Context, id string) error
	NameTaken(ctx context.Context, name string, categoryType models.CategoryType, userID *string, excludeID string) (bool, error)
	SystemCategoryExists(ctx context.Context, name string, categoryType models.CategoryType) (bool, error)
}

// BudgetRepository defines the interface for budget data operations
type BudgetRepository interface {
	Create(ctx context.Context, budget *models.Budget) error
	GetByID(ctx context.Context, id string) (*models.Budget, error)
	ListForPeriod(ctx context.Context, userID string, month, year int) ([]*models.Budget, error)
	Update(ctx context.Context, budget *models.Budget) error
	SoftDelete(ctx context.Context, id string) error
	ExistsForPeriod(ctx context.Context, userID, categoryID string, month, year int) (bool, error)
	LatestPrior(ctx context.Context, userID, categoryID string, month, year int) (*models.Budget, error)
	CategoriesWithBudgets(ctx context.Context, userID string) ([]string, error)
	PeriodTransactions(ctx context.Context, userID, categoryID string, month, year int) ([]*models.Transaction, error)
}

// SavingRepository defines the interface for savings goal data operations
type SavingRepository interface {
	Create(ctx context.Context, saving *models.Saving) error
	GetByID(ctx context.Context, id string) (*models.Saving, error)
	ListForUser(ctx context.Context, userID string, status models.SavingStatus) ([]*models.Saving, error)
	Update(ctx context.Context, saving *models.Saving) error
	ListMovements(ctx context.Context, savingID string) ([]*models.SavingMovement, error)
	// ApplyMovement runs mutate against the row-locked saving and persists
	// both the updated goal and the returned movement in one transaction.
	ApplyMovement(ctx context.Context, savingID string, mutate func(*models.Saving) (*models.SavingMovement, error)) (*models.Saving, *models.SavingMovement, error)
	// UpdateStatus persists a status change produced by a model transition.
	UpdateStatus(ctx context.Context, savingID string, mutate func(*models.Saving) error) (*models.Saving, error)
}

// monthRange returns the [start, end) timestamps covering a calendar month.
// Keeping the range computation in Go keeps the queries portable between
// postgres and the sqlite test driver.
func monthRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
