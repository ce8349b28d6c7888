package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
)

type budgetRepository struct {
	db *db.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(database *db.DB) BudgetRepository {
	return &budgetRepository{db: database}
}

func (r *budgetRepository) Create(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.NewString()
	}

	// Check-then-insert inside one transaction so the unique index is the
	// backstop, not the primary error path
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Budget{}).
			Where("user_id = ? AND category_id = ? AND month = ? AND year = ? AND is_active = ?",
				budget.UserID, budget.CategoryID, budget.Month, budget.Year, true).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check budget uniqueness: %w", err)
		}
		if count > 0 {
			return &apperrors.ErrDuplicate{
				Entity:     "budget",
				Constraint: fmt.Sprintf("%s/%d/%d", budget.CategoryID, budget.Month, budget.Year),
			}
		}
		if err := tx.Create(budget).Error; err != nil {
			return fmt.Errorf("failed to create budget: %w", err)
		}
		return nil
	})
}

func (r *budgetRepository) GetByID(ctx context.Context, id string) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.WithContext(ctx).First(&budget, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "budget", ID: id}
		}
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return &budget, nil
}

func (r *budgetRepository) ListForPeriod(ctx context.Context, userID string, month, year int) ([]*models.Budget, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true)
	if month > 0 {
		query = query.Where("month = ?", month)
	}
	if year > 0 {
		query = query.Where("year = ?", year)
	}

	var budgets []*models.Budget
	if err := query.Order("year DESC, month DESC").Find(&budgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (r *budgetRepository) Update(ctx context.Context, budget *models.Budget) error {
	if budget == nil || budget.ID == "" {
		return &apperrors.ErrValidation{Field: "id", Message: "is required"}
	}

	result := r.db.WithContext(ctx).Model(&models.Budget{}).
		Where("id = ? AND is_active = ?", budget.ID, true).
		Updates(map[string]interface{}{
			"amount":          budget.Amount,
			"alert_threshold": budget.AlertThreshold,
			"notes":           budget.Notes,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "budget", ID: budget.ID}
	}
	return nil
}

func (r *budgetRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Budget{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete budget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "budget", ID: id}
	}
	return nil
}

func (r *budgetRepository) ExistsForPeriod(ctx context.Context, userID, categoryID string, month, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Budget{}).
		Where("user_id = ? AND category_id = ? AND month = ? AND year = ? AND is_active = ?",
			userID, categoryID, month, year, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check budget existence: %w", err)
	}
	return count > 0, nil
}

// LatestPrior returns the most recent budget for the category strictly
// before the given period, ordered by (year, month).
func (r *budgetRepository) LatestPrior(ctx context.Context, userID, categoryID string, month, year int) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND is_active = ?", userID, categoryID, true).
		Where("year < ? OR (year = ? AND month < ?)", year, year, month).
		Order("year DESC, month DESC").
		First(&budget).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "budget", ID: fmt.Sprintf("%s before %d/%d", categoryID, month, year)}
		}
		return nil, fmt.Errorf("failed to find prior budget: %w", err)
	}
	return &budget, nil
}

func (r *budgetRepository) CategoriesWithBudgets(ctx context.Context, userID string) ([]string, error) {
	var categoryIDs []string
	err := r.db.WithContext(ctx).Model(&models.Budget{}).
		Distinct("category_id").
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("category_id", &categoryIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list budgeted categories: %w", err)
	}
	return categoryIDs, nil
}

// PeriodTransactions loads the active expense rows a budget's status is
// computed over.
func (r *budgetRepository) PeriodTransactions(ctx context.Context, userID, categoryID string, month, year int) ([]*models.Transaction, error) {
	start, end := monthRange(month, year)

	var transactions []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category_id = ? AND type = ? AND is_active = ?",
			userID, categoryID, models.TransactionExpense, true).
		Where("date >= ? AND date < ?", start, end).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load period transactions: %w", err)
	}
	return transactions, nil
}
