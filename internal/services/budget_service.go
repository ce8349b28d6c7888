package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/repositories"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	repo         repositories.BudgetRepository
	categoryRepo repositories.CategoryRepository
}

// NewBudgetService creates a new budget service
func NewBudgetService(database *db.DB) BudgetService {
	return &budgetService{
		repo:         repositories.NewBudgetRepository(database),
		categoryRepo: repositories.NewCategoryRepository(database),
	}
}

// CreateBudget persists a new budget after checking that the category is
// an expense category and that the (user, category, month, year) slot is
// free.
func (s *budgetService) CreateBudget(ctx context.Context, budget *models.Budget) error {
	budget.IsActive = true
	if err := budget.PreSave(); err != nil {
		return err
	}

	category, err := s.categoryRepo.GetByID(ctx, budget.CategoryID)
	if err != nil {
		return err
	}
	if category.Type != models.CategoryExpense {
		return &apperrors.ErrValidation{Field: "category_id", Message: "budgets can only target expense categories"}
	}

	if err := s.repo.Create(ctx, budget); err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	return nil
}

func (s *budgetService) GetBudget(ctx context.Context, id string) (*models.Budget, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, month, year int) ([]*models.Budget, error) {
	return s.repo.ListForPeriod(ctx, userID, month, year)
}

func (s *budgetService) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	existing, err := s.repo.GetByID(ctx, budget.ID)
	if err != nil {
		return err
	}

	// Period and category are immutable; only the ceiling, threshold and
	// notes can change
	budget.UserID = existing.UserID
	budget.CategoryID = existing.CategoryID
	budget.Month = existing.Month
	budget.Year = existing.Year
	if err := budget.PreSave(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, budget); err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// GetBudgetStatus loads a budget and the matching expense transactions
// and derives the spend state.
func (s *budgetService) GetBudgetStatus(ctx context.Context, id string) (*models.BudgetStatusReport, error) {
	budget, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	transactions, err := s.repo.PeriodTransactions(ctx, budget.UserID, budget.CategoryID, budget.Month, budget.Year)
	if err != nil {
		return nil, fmt.Errorf("budget status: %w", err)
	}

	return models.ComputeBudgetStatus(budget, transactions), nil
}

func (s *budgetService) GetMonthlySummary(ctx context.Context, userID string, month, year int) (*models.BudgetSummary, error) {
	budgets, err := s.repo.ListForPeriod(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	reports := make([]*models.BudgetStatusReport, 0, len(budgets))
	for _, budget := range budgets {
		transactions, err := s.repo.PeriodTransactions(ctx, budget.UserID, budget.CategoryID, budget.Month, budget.Year)
		if err != nil {
			return nil, fmt.Errorf("monthly summary: %w", err)
		}
		reports = append(reports, models.ComputeBudgetStatus(budget, transactions))
	}

	return models.SummarizeBudgets(month, year, reports), nil
}

// CopyBudget creates a budget for the target period from the latest
// prior budget of the same category. It fails with ErrNotFound when the
// category was never budgeted before the target period and with
// ErrDuplicate when the target period already has a budget.
func (s *budgetService) CopyBudget(ctx context.Context, userID, categoryID string, month, year int) (*models.Budget, error) {
	target := &models.Budget{UserID: userID, CategoryID: categoryID, Month: month, Year: year}
	if err := target.Validate(); err != nil && !isAmountValidation(err) {
		return nil, err
	}

	exists, err := s.repo.ExistsForPeriod(ctx, userID, categoryID, month, year)
	if err != nil {
		return nil, fmt.Errorf("copy budget: %w", err)
	}
	if exists {
		return nil, &apperrors.ErrDuplicate{
			Entity:     "budget",
			Constraint: fmt.Sprintf("%s/%d/%d", categoryID, month, year),
		}
	}

	source, err := s.repo.LatestPrior(ctx, userID, categoryID, month, year)
	if err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:         userID,
		CategoryID:     categoryID,
		Month:          month,
		Year:           year,
		Amount:         source.Amount,
		AlertThreshold: source.AlertThreshold,
		Notes:          fmt.Sprintf("Copiado de %d/%d", source.Month, source.Year),
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("copy budget: %w", err)
	}
	return budget, nil
}

// CopyAllFromPrevious copies every previously budgeted category into the
// target period, skipping categories that already have a budget there.
func (s *budgetService) CopyAllFromPrevious(ctx context.Context, userID string, month, year int) ([]*models.Budget, error) {
	categoryIDs, err := s.repo.CategoriesWithBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	var created []*models.Budget
	for _, categoryID := range categoryIDs {
		budget, err := s.CopyBudget(ctx, userID, categoryID, month, year)
		if err != nil {
			var notFound *apperrors.ErrNotFound
			var duplicate *apperrors.ErrDuplicate
			if errors.As(err, &notFound) || errors.As(err, &duplicate) {
				continue
			}
			return nil, err
		}
		created = append(created, budget)
	}
	return created, nil
}

// isAmountValidation filters the amount check out of period validation:
// the copy target has no amount of its own until the source is found.
func isAmountValidation(err error) bool {
	var valErr *apperrors.ErrValidation
	return errors.As(err, &valErr) && valErr.Field == "amount"
}
