package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/plata-app/plata/internal/errors"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		currency    Currency
		rate        string
		expected    string
		expectError bool
		errorField  string
	}{
		{
			name:     "ARS passes through unchanged",
			amount:   "1500.50",
			currency: CurrencyARS,
			rate:     "0",
			expected: "1500.5",
		},
		{
			name:     "USD multiplied by exchange rate",
			amount:   "100",
			currency: CurrencyUSD,
			rate:     "1050.25",
			expected: "105025",
		},
		{
			name:     "USD result rounded half-up to 2 decimals",
			amount:   "10",
			currency: CurrencyUSD,
			rate:     "1.3335",
			expected: "13.34",
		},
		{
			name:     "USD rounding down below midpoint",
			amount:   "10",
			currency: CurrencyUSD,
			rate:     "1.3334",
			expected: "13.33",
		},
		{
			name:        "USD with zero rate fails",
			amount:      "100",
			currency:    CurrencyUSD,
			rate:        "0",
			expectError: true,
			errorField:  "exchange_rate",
		},
		{
			name:        "USD with negative rate fails",
			amount:      "100",
			currency:    CurrencyUSD,
			rate:        "-1",
			expectError: true,
			errorField:  "exchange_rate",
		},
		{
			name:        "zero amount fails",
			amount:      "0",
			currency:    CurrencyARS,
			rate:        "1",
			expectError: true,
			errorField:  "amount",
		},
		{
			name:        "negative amount fails",
			amount:      "-50",
			currency:    CurrencyARS,
			rate:        "1",
			expectError: true,
			errorField:  "amount",
		},
		{
			name:        "unknown currency fails",
			amount:      "100",
			currency:    Currency("EUR"),
			rate:        "1",
			expectError: true,
			errorField:  "currency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAmount(
				decimal.RequireFromString(tt.amount),
				tt.currency,
				decimal.RequireFromString(tt.rate),
			)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				var valErr *apperrors.ErrValidation
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ErrValidation, got %T: %v", err, err)
				}
				if valErr.Field != tt.errorField {
					t.Errorf("expected error on field %q, got %q", tt.errorField, valErr.Field)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.String())
			}
		})
	}
}

func TestNormalizeAmountIdempotent(t *testing.T) {
	amount := decimal.RequireFromString("33.33")
	rate := decimal.RequireFromString("1012.5")

	first, err := NormalizeAmount(amount, CurrencyUSD, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NormalizeAmount(amount, CurrencyUSD, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) {
		t.Errorf("recomputation differed: %s vs %s", first, second)
	}
}

func TestTransactionCalculateDerivedFields(t *testing.T) {
	tx := &Transaction{
		UserID:      "user-1",
		CategoryID:  "cat-1",
		Type:        TransactionExpense,
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "groceries",
		Amount:      decimal.RequireFromString("120.50"),
		Currency:    CurrencyUSD,
		ExchangeRate: decimal.RequireFromString("1055.7500"),
		IsActive:    true,
	}

	if err := tx.PreSave(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := tx.AmountARS.String(), "127217.88"; got != want {
		t.Errorf("amount_ars: got %s want %s", got, want)
	}

	// ARS pins the rate to 1 so amount_ars always equals amount
	tx.Currency = CurrencyARS
	tx.ExchangeRate = decimal.RequireFromString("999")
	if err := tx.PreSave(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tx.ExchangeRate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected ARS rate pinned to 1, got %s", tx.ExchangeRate)
	}
	if !tx.AmountARS.Equal(tx.Amount) {
		t.Errorf("expected amount_ars == amount for ARS, got %s vs %s", tx.AmountARS, tx.Amount)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := func() *Transaction {
		return &Transaction{
			UserID:       "user-1",
			CategoryID:   "cat-1",
			Type:         TransactionExpense,
			Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Description:  "bus ticket",
			Amount:       decimal.NewFromInt(100),
			Currency:     CurrencyARS,
			ExchangeRate: decimal.NewFromInt(1),
		}
	}

	tests := []struct {
		name       string
		mutate     func(*Transaction)
		errorField string
	}{
		{"valid", func(tx *Transaction) {}, ""},
		{"missing user", func(tx *Transaction) { tx.UserID = "" }, "user_id"},
		{"missing category", func(tx *Transaction) { tx.CategoryID = "" }, "category_id"},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, "type"},
		{"zero date", func(tx *Transaction) { tx.Date = time.Time{} }, "date"},
		{"missing description", func(tx *Transaction) { tx.Description = "" }, "description"},
		{"non-positive amount", func(tx *Transaction) { tx.Amount = decimal.Zero }, "amount"},
		{"USD without rate", func(tx *Transaction) {
			tx.Currency = CurrencyUSD
			tx.ExchangeRate = decimal.Zero
		}, "exchange_rate"},
		{"bad payment method", func(tx *Transaction) {
			bad := "CHEQUE"
			tx.PaymentMethod = &bad
		}, "payment_method"},
		{"bad expense type", func(tx *Transaction) {
			bad := "WEEKLY"
			tx.ExpenseType = &bad
		}, "expense_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid()
			tt.mutate(tx)
			err := tx.Validate()

			if tt.errorField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var valErr *apperrors.ErrValidation
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ErrValidation, got %T: %v", err, err)
			}
			if valErr.Field != tt.errorField {
				t.Errorf("expected error on field %q, got %q", tt.errorField, valErr.Field)
			}
		})
	}
}
