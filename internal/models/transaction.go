package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/plata-app/plata/internal/errors"
)

// Currency is an ISO-4217 style currency code supported by the tracker.
type Currency string

const (
	CurrencyARS Currency = "ARS"
	CurrencyUSD Currency = "USD"
)

// TransactionType distinguishes money going out from money coming in.
type TransactionType string

const (
	TransactionExpense TransactionType = "expense"
	TransactionIncome  TransactionType = "income"
)

// Payment methods for expenses.
const (
	PaymentCash     = "CASH"
	PaymentDebit    = "DEBIT"
	PaymentCredit   = "CREDIT"
	PaymentTransfer = "TRANSFER"
)

// Expense kinds.
const (
	ExpenseFixed    = "FIXED"
	ExpenseVariable = "VARIABLE"
)

// Transaction represents a single expense or income record
type Transaction struct {
	ID          string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	UserID      string          `json:"user_id" gorm:"column:user_id;type:varchar(255);not null;index"`
	CategoryID  string          `json:"category_id" gorm:"column:category_id;type:varchar(255);not null;index"`
	Type        TransactionType `json:"type" gorm:"column:type;type:varchar(10);not null;index"`
	Date        time.Time       `json:"date" gorm:"column:date;not null;index"`
	Description string          `json:"description" gorm:"column:description;type:varchar(255);not null"`

	// Amount fields
	Amount       decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(12,2);not null"`
	Currency     Currency        `json:"currency" gorm:"column:currency;type:varchar(3);not null;default:'ARS'"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" gorm:"column:exchange_rate;type:decimal(10,4);not null;default:1"`
	AmountARS    decimal.Decimal `json:"amount_ars" gorm:"column:amount_ars;type:decimal(14,2);not null"`

	// Optional expense metadata
	PaymentMethod *string `json:"payment_method,omitempty" gorm:"column:payment_method;type:varchar(10)"`
	ExpenseType   *string `json:"expense_type,omitempty" gorm:"column:expense_type;type:varchar(10)"`

	// Soft delete flag, filtered at query time
	IsActive bool `json:"is_active" gorm:"column:is_active;type:boolean;not null;default:true;index"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionFilter represents filters for querying transactions
type TransactionFilter struct {
	UserID     string
	CategoryID string
	Type       TransactionType
	Month      int
	Year       int
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// NormalizeAmount converts an amount into the base currency (ARS).
// ARS amounts pass through unchanged; USD amounts are multiplied by the
// exchange rate and rounded to 2 decimal places (half-up).
// The computation is pure: the same inputs always yield the same output.
func NormalizeAmount(amount decimal.Decimal, currency Currency, exchangeRate decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, &apperrors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}

	switch currency {
	case CurrencyARS:
		return amount.Round(2), nil
	case CurrencyUSD:
		if !exchangeRate.IsPositive() {
			return decimal.Zero, &apperrors.ErrValidation{Field: "exchange_rate", Message: "required and must be greater than zero for USD"}
		}
		return amount.Mul(exchangeRate).Round(2), nil
	default:
		return decimal.Zero, &apperrors.ErrValidation{Field: "currency", Message: "must be ARS or USD"}
	}
}

// Validate validates the transaction data
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return &apperrors.ErrValidation{Field: "user_id", Message: "is required"}
	}
	if t.CategoryID == "" {
		return &apperrors.ErrValidation{Field: "category_id", Message: "is required"}
	}
	if t.Type != TransactionExpense && t.Type != TransactionIncome {
		return &apperrors.ErrValidation{Field: "type", Message: "must be 'expense' or 'income'"}
	}
	if t.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if t.Description == "" {
		return &apperrors.ErrValidation{Field: "description", Message: "is required"}
	}
	if !t.Amount.IsPositive() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}
	if t.Currency != CurrencyARS && t.Currency != CurrencyUSD {
		return &apperrors.ErrValidation{Field: "currency", Message: "must be ARS or USD"}
	}
	if t.Currency == CurrencyUSD && !t.ExchangeRate.IsPositive() {
		return &apperrors.ErrValidation{Field: "exchange_rate", Message: "required and must be greater than zero for USD"}
	}

	if t.PaymentMethod != nil {
		switch *t.PaymentMethod {
		case PaymentCash, PaymentDebit, PaymentCredit, PaymentTransfer:
		default:
			return &apperrors.ErrValidation{Field: "payment_method", Message: "must be CASH, DEBIT, CREDIT or TRANSFER"}
		}
	}
	if t.ExpenseType != nil && *t.ExpenseType != ExpenseFixed && *t.ExpenseType != ExpenseVariable {
		return &apperrors.ErrValidation{Field: "expense_type", Message: "must be FIXED or VARIABLE"}
	}

	return nil
}

// CalculateDerivedFields recomputes AmountARS from amount, currency and
// exchange rate. It must run whenever any of those inputs change;
// AmountARS is never edited independently.
func (t *Transaction) CalculateDerivedFields() error {
	if t.Currency == CurrencyARS {
		// Unified formula: rate is pinned to 1 so amount_ars == amount
		t.ExchangeRate = decimal.NewFromInt(1)
	}

	amountARS, err := NormalizeAmount(t.Amount, t.Currency, t.ExchangeRate)
	if err != nil {
		return err
	}
	t.AmountARS = amountARS
	return nil
}

// PreSave prepares the transaction for saving by validating and calculating derived fields
func (t *Transaction) PreSave() error {
	if err := t.Validate(); err != nil {
		return err
	}
	return t.CalculateDerivedFields()
}
