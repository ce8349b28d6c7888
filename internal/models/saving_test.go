package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/plata-app/plata/internal/errors"
)

func testSaving(current, target int64) *Saving {
	return &Saving{
		ID:            "saving-1",
		UserID:        "user-1",
		Name:          "Vacaciones",
		TargetAmount:  decimal.NewFromInt(target),
		CurrentAmount: decimal.NewFromInt(current),
		Currency:      CurrencyARS,
		Status:        SavingActive,
		IsActive:      true,
	}
}

func TestApplyDepositCompletesGoal(t *testing.T) {
	saving := testSaving(450, 500)

	if err := saving.ApplyDeposit(decimal.NewFromInt(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := saving.CurrentAmount.String(), "500"; got != want {
		t.Errorf("current amount: got %s want %s", got, want)
	}
	if saving.Status != SavingCompleted {
		t.Errorf("expected completed, got %s", saving.Status)
	}
}

func TestApplyDepositBelowTargetStaysActive(t *testing.T) {
	saving := testSaving(100, 500)

	if err := saving.ApplyDeposit(decimal.NewFromInt(50)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saving.Status != SavingActive {
		t.Errorf("expected active, got %s", saving.Status)
	}
}

func TestApplyDepositRejectsNonPositiveAmount(t *testing.T) {
	saving := testSaving(100, 500)

	err := saving.ApplyDeposit(decimal.Zero)
	var valErr *apperrors.ErrValidation
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ErrValidation, got %T: %v", err, err)
	}
	if !saving.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("current amount changed on failed deposit: %s", saving.CurrentAmount)
	}
}

func TestApplyWithdrawalInsufficientFunds(t *testing.T) {
	saving := testSaving(100, 500)

	err := saving.ApplyWithdrawal(decimal.NewFromInt(150))
	var fundsErr *apperrors.ErrInsufficientFunds
	if !errors.As(err, &fundsErr) {
		t.Fatalf("expected ErrInsufficientFunds, got %T: %v", err, err)
	}
	if !saving.CurrentAmount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("current amount changed on failed withdrawal: %s", saving.CurrentAmount)
	}
}

func TestApplyWithdrawalDoesNotRevertCompleted(t *testing.T) {
	saving := testSaving(500, 500)
	saving.Status = SavingCompleted

	if err := saving.ApplyWithdrawal(decimal.NewFromInt(200)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := saving.CurrentAmount.String(), "300"; got != want {
		t.Errorf("current amount: got %s want %s", got, want)
	}
	// Forward-only status: dropping under target must not flap back to active
	if saving.Status != SavingCompleted {
		t.Errorf("expected completed, got %s", saving.Status)
	}
}

func TestCancelledGoalRejectsMovements(t *testing.T) {
	saving := testSaving(100, 500)
	saving.Status = SavingCancelled

	var stateErr *apperrors.ErrInvalidState
	if err := saving.ApplyDeposit(decimal.NewFromInt(10)); !errors.As(err, &stateErr) {
		t.Errorf("expected ErrInvalidState on deposit, got %v", err)
	}
	if err := saving.ApplyWithdrawal(decimal.NewFromInt(10)); !errors.As(err, &stateErr) {
		t.Errorf("expected ErrInvalidState on withdrawal, got %v", err)
	}
}

func TestCancelTransitions(t *testing.T) {
	saving := testSaving(100, 500)
	if err := saving.Cancel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saving.Status != SavingCancelled {
		t.Errorf("expected cancelled, got %s", saving.Status)
	}

	// Terminal states reject cancellation
	var stateErr *apperrors.ErrInvalidState
	if err := saving.Cancel(); !errors.As(err, &stateErr) {
		t.Errorf("expected ErrInvalidState cancelling twice, got %v", err)
	}

	completed := testSaving(500, 500)
	completed.Status = SavingCompleted
	if err := completed.Cancel(); !errors.As(err, &stateErr) {
		t.Errorf("expected ErrInvalidState cancelling completed goal, got %v", err)
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		target   int64
		expected string
	}{
		{"partial progress", 250, 1000, "25"},
		{"rounded to one decimal", 333, 1000, "33.3"},
		{"complete", 500, 500, "100"},
		{"capped at 100", 700, 500, "100"},
		{"zero target reports full", 0, 0, "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saving := testSaving(tt.current, tt.target)
			if got := saving.ProgressPercentage().String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestRemainingAmountNeverNegative(t *testing.T) {
	saving := testSaving(700, 500)
	if !saving.RemainingAmount().IsZero() {
		t.Errorf("expected zero remaining, got %s", saving.RemainingAmount())
	}
}

func TestMovementSum(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	movements := []*SavingMovement{
		{Type: MovementDeposit, Amount: decimal.NewFromInt(300), Date: date},
		{Type: MovementDeposit, Amount: decimal.NewFromInt(200), Date: date},
		{Type: MovementWithdrawal, Amount: decimal.NewFromInt(150), Date: date},
	}

	if got, want := MovementSum(movements).String(), "350"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestSavingValidate(t *testing.T) {
	saving := testSaving(0, 500)
	if err := saving.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	saving.TargetAmount = decimal.Zero
	if err := saving.Validate(); err == nil {
		t.Error("expected error for zero target")
	}

	saving = testSaving(0, 500)
	saving.CurrentAmount = decimal.NewFromInt(-1)
	if err := saving.Validate(); err == nil {
		t.Error("expected error for negative current amount")
	}

	saving = testSaving(0, 500)
	saving.Status = "paused"
	if err := saving.Validate(); err == nil {
		t.Error("expected error for unknown status")
	}
}
