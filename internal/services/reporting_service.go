package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/repositories"
)

const recentTransactionLimit = 5

// reportingService implements the ReportingService interface
type reportingService struct {
	transactions repositories.TransactionRepository
	savings      repositories.SavingRepository
	budgets      BudgetService
}

// NewReportingService creates a new reporting service
func NewReportingService(database *db.DB) ReportingService {
	return &reportingService{
		transactions: repositories.NewTransactionRepository(database),
		savings:      repositories.NewSavingRepository(database),
		budgets:      NewBudgetService(database),
	}
}

// GetDashboard assembles the month's financial summary: balance with a
// previous-month comparison, budget states, savings progress, the latest
// transactions and the expense distribution by category.
func (s *reportingService) GetDashboard(ctx context.Context, userID string, month, year int) (*models.Dashboard, error) {
	balance, err := s.balanceReport(ctx, userID, month, year)
	if err != nil {
		return nil, err
	}

	budgets, err := s.budgets.GetMonthlySummary(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard budgets: %w", err)
	}

	savings, err := s.savingsSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	recent, err := s.transactions.Recent(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard recent transactions: %w", err)
	}

	byCategory, err := s.transactions.SumByCategory(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard category totals: %w", err)
	}

	return &models.Dashboard{
		Balance:            balance,
		Budgets:            budgets,
		Savings:            savings,
		RecentTransactions: recent,
		ExpensesByCategory: byCategory,
	}, nil
}

func (s *reportingService) balanceReport(ctx context.Context, userID string, month, year int) (*models.BalanceReport, error) {
	income, err := s.transactions.SumAmountARS(ctx, userID, models.TransactionIncome, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard balance: %w", err)
	}
	expense, err := s.transactions.SumAmountARS(ctx, userID, models.TransactionExpense, month, year)
	if err != nil {
		return nil, fmt.Errorf("dashboard balance: %w", err)
	}

	prevMonth, prevYear := models.PreviousPeriod(month, year)
	prevIncome, err := s.transactions.SumAmountARS(ctx, userID, models.TransactionIncome, prevMonth, prevYear)
	if err != nil {
		return nil, fmt.Errorf("dashboard balance: %w", err)
	}
	prevExpense, err := s.transactions.SumAmountARS(ctx, userID, models.TransactionExpense, prevMonth, prevYear)
	if err != nil {
		return nil, fmt.Errorf("dashboard balance: %w", err)
	}

	return &models.BalanceReport{
		Month:                month,
		Year:                 year,
		IncomeTotal:          income,
		ExpenseTotal:         expense,
		Balance:              income.Sub(expense),
		PreviousIncomeTotal:  prevIncome,
		PreviousExpenseTotal: prevExpense,
		PreviousBalance:      prevIncome.Sub(prevExpense),
	}, nil
}

// savingsSummary lists every non-cancelled goal with its progress. Total
// saved counts active and completed goals alike.
func (s *reportingService) savingsSummary(ctx context.Context, userID string) (*models.SavingsSummary, error) {
	goals, err := s.savings.ListForUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("dashboard savings: %w", err)
	}

	summary := &models.SavingsSummary{
		TotalSaved: decimal.Zero,
		Goals:      make([]*models.SavingOverview, 0, len(goals)),
	}
	for _, goal := range goals {
		if goal.Status == models.SavingCancelled {
			continue
		}
		switch goal.Status {
		case models.SavingActive:
			summary.ActiveCount++
		case models.SavingCompleted:
			summary.CompletedCount++
		}
		summary.TotalSaved = summary.TotalSaved.Add(goal.CurrentAmount)
		summary.Goals = append(summary.Goals, &models.SavingOverview{
			SavingID:           goal.ID,
			Name:               goal.Name,
			Status:             goal.Status,
			TargetAmount:       goal.TargetAmount,
			CurrentAmount:      goal.CurrentAmount,
			RemainingAmount:    goal.RemainingAmount(),
			ProgressPercentage: goal.ProgressPercentage(),
			TargetDate:         goal.TargetDate,
		})
	}
	return summary, nil
}
