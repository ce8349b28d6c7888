package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/repositories"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	repo repositories.TransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(database *db.DB) TransactionService {
	return &transactionService{repo: repositories.NewTransactionRepository(database)}
}

// CreateTransaction validates the transaction, derives its base-currency
// amount and persists it.
func (s *transactionService) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	tx.IsActive = true
	if err := tx.PreSave(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, tx); err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (s *transactionService) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *transactionService) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	return s.repo.List(ctx, filter)
}

// UpdateTransaction replaces the mutable fields of an existing
// transaction. The derived amount is always recomputed from the
// incoming amount/currency/rate; it can never be edited directly.
func (s *transactionService) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	existing, err := s.repo.GetByID(ctx, tx.ID)
	if err != nil {
		return err
	}

	tx.UserID = existing.UserID
	tx.IsActive = existing.IsActive
	if err := tx.PreSave(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, tx); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *transactionService) GetTransactionCount(ctx context.Context, filter *models.TransactionFilter) (int, error) {
	return s.repo.GetCount(ctx, filter)
}

func (s *transactionService) GetMonthlyTotal(ctx context.Context, userID string, txType models.TransactionType, month, year int) (decimal.Decimal, error) {
	return s.repo.SumAmountARS(ctx, userID, txType, month, year)
}
