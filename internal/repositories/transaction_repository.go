package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
)

type transactionRepository struct {
	db *db.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(database *db.DB) TransactionRepository {
	return &transactionRepository{db: database}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).First(&tx, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "transaction", ID: id}
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) List(ctx context.Context, filter *models.TransactionFilter) ([]*models.Transaction, error) {
	query := r.applyFilter(r.db.WithContext(ctx), filter)
	query = query.Order("date DESC, created_at DESC")

	if filter != nil && filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var transactions []*models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) GetCount(ctx context.Context, filter *models.TransactionFilter) (int, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to get transaction count: %w", err)
	}
	return int(count), nil
}

func (r *transactionRepository) applyFilter(query *gorm.DB, filter *models.TransactionFilter) *gorm.DB {
	// Soft-deleted rows never leave the database, they just stop matching
	query = query.Where("is_active = ?", true)

	if filter == nil {
		return query
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Month >= 1 && filter.Month <= 12 && filter.Year > 0 {
		start, end := monthRange(filter.Month, filter.Year)
		query = query.Where("date >= ? AND date < ?", start, end)
	}
	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	return query
}

func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	if tx == nil || tx.ID == "" {
		return &apperrors.ErrValidation{Field: "id", Message: "is required"}
	}

	result := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND is_active = ?", tx.ID, true).
		Updates(map[string]interface{}{
			"category_id":    tx.CategoryID,
			"type":           tx.Type,
			"date":           tx.Date,
			"description":    tx.Description,
			"amount":         tx.Amount,
			"currency":       tx.Currency,
			"exchange_rate":  tx.ExchangeRate,
			"amount_ars":     tx.AmountARS,
			"payment_method": tx.PaymentMethod,
			"expense_type":   tx.ExpenseType,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "transaction", ID: tx.ID}
	}
	return nil
}

func (r *transactionRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "transaction", ID: id}
	}
	return nil
}

func (r *transactionRepository) SumAmountARS(ctx context.Context, userID string, txType models.TransactionType, month, year int) (decimal.Decimal, error) {
	start, end := monthRange(month, year)

	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("SUM(amount_ars)").
		Where("user_id = ? AND type = ? AND is_active = ?", userID, txType, true).
		Where("date >= ? AND date < ?", start, end).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *transactionRepository) SumByCategory(ctx context.Context, userID string, month, year int) ([]*models.CategoryTotal, error) {
	start, end := monthRange(month, year)

	var totals []*models.CategoryTotal
	err := r.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, categories.icon AS icon, categories.color AS color, SUM(transactions.amount_ars) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.type = ? AND transactions.is_active = ?", userID, models.TransactionExpense, true).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Group("transactions.category_id, categories.name, categories.icon, categories.color").
		Order("total DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions by category: %w", err)
	}
	return totals, nil
}

func (r *transactionRepository) Recent(ctx context.Context, userID string, limit int) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	return transactions, nil
}
