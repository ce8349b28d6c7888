package models

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/plata-app/plata/internal/errors"
)

// SavingStatus is the lifecycle state of a savings goal.
//
// Transitions: active -> completed (automatic, when the current amount
// reaches the target) and active -> cancelled (explicit user action).
// Completed and cancelled are terminal; in particular a completed goal
// never auto-reverts to active when withdrawals drop it below target.
type SavingStatus string

const (
	SavingActive    SavingStatus = "active"
	SavingCompleted SavingStatus = "completed"
	SavingCancelled SavingStatus = "cancelled"
)

// MovementType is the direction of a savings movement.
type MovementType string

const (
	MovementDeposit    MovementType = "deposit"
	MovementWithdrawal MovementType = "withdrawal"
)

// Saving is a savings goal. CurrentAmount is the signed sum of the
// goal's movements and is maintained by the service layer inside the
// same transaction that records each movement.
type Saving struct {
	ID          string `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	UserID      string `json:"user_id" gorm:"column:user_id;type:varchar(255);not null;index"`
	Name        string `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Description string `json:"description" gorm:"column:description;type:text"`

	TargetAmount  decimal.Decimal `json:"target_amount" gorm:"column:target_amount;type:decimal(12,2);not null"`
	CurrentAmount decimal.Decimal `json:"current_amount" gorm:"column:current_amount;type:decimal(12,2);not null;default:0"`
	Currency      Currency        `json:"currency" gorm:"column:currency;type:varchar(3);not null;default:'ARS'"`
	TargetDate    *time.Time      `json:"target_date,omitempty" gorm:"column:target_date;type:date"`
	Status        SavingStatus    `json:"status" gorm:"column:status;type:varchar(10);not null;default:'active';index"`

	Icon  string `json:"icon" gorm:"column:icon;type:varchar(50);not null;default:'bi-piggy-bank'"`
	Color string `json:"color" gorm:"column:color;type:varchar(7);not null;default:'#17a2b8'"`

	IsActive bool `json:"is_active" gorm:"column:is_active;type:boolean;not null;default:true;index"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Saving model
func (Saving) TableName() string {
	return "savings"
}

// SavingMovement is a single deposit into or withdrawal from a goal.
type SavingMovement struct {
	ID          string          `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	SavingID    string          `json:"saving_id" gorm:"column:saving_id;type:varchar(255);not null;index"`
	Type        MovementType    `json:"type" gorm:"column:type;type:varchar(10);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(12,2);not null"`
	Description string          `json:"description" gorm:"column:description;type:varchar(255)"`
	Date        time.Time       `json:"date" gorm:"column:date;type:date;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the table name for the SavingMovement model
func (SavingMovement) TableName() string {
	return "saving_movements"
}

// Validate validates the saving goal data
func (s *Saving) Validate() error {
	if s.UserID == "" {
		return &apperrors.ErrValidation{Field: "user_id", Message: "is required"}
	}
	if s.Name == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}
	if len(s.Name) > 100 {
		return &apperrors.ErrValidation{Field: "name", Message: "must be 100 characters or less"}
	}
	if !s.TargetAmount.IsPositive() {
		return &apperrors.ErrValidation{Field: "target_amount", Message: "must be greater than zero"}
	}
	if s.CurrentAmount.IsNegative() {
		return &apperrors.ErrValidation{Field: "current_amount", Message: "cannot be negative"}
	}
	if s.Currency != CurrencyARS && s.Currency != CurrencyUSD {
		return &apperrors.ErrValidation{Field: "currency", Message: "must be ARS or USD"}
	}
	switch s.Status {
	case SavingActive, SavingCompleted, SavingCancelled:
	default:
		return &apperrors.ErrValidation{Field: "status", Message: "must be active, completed or cancelled"}
	}
	return nil
}

// ProgressPercentage returns how far along the goal is, capped at 100.
// A non-positive target reports 100 to keep the degenerate case rendering
// as a finished bar instead of dividing by zero.
func (s *Saving) ProgressPercentage() decimal.Decimal {
	if !s.TargetAmount.IsPositive() {
		return oneHundred
	}
	percentage := s.CurrentAmount.Div(s.TargetAmount).Mul(oneHundred).Round(1)
	if percentage.GreaterThan(oneHundred) {
		return oneHundred
	}
	return percentage
}

// RemainingAmount returns how much is still missing, never negative.
func (s *Saving) RemainingAmount() decimal.Decimal {
	remaining := s.TargetAmount.Sub(s.CurrentAmount)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// IsTerminal reports whether no further status transitions are possible.
func (s *Saving) IsTerminal() bool {
	return s.Status == SavingCompleted || s.Status == SavingCancelled
}

// ApplyDeposit adds a deposit amount to the running total and advances
// the status to completed when the target is reached. Status only moves
// forward; a goal that is already completed stays completed.
func (s *Saving) ApplyDeposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}
	if s.Status == SavingCancelled {
		return &apperrors.ErrInvalidState{Entity: "saving", State: string(s.Status), Action: "deposit into"}
	}

	s.CurrentAmount = s.CurrentAmount.Add(amount)
	if s.Status == SavingActive && s.CurrentAmount.GreaterThanOrEqual(s.TargetAmount) {
		s.Status = SavingCompleted
	}
	return nil
}

// ApplyWithdrawal subtracts a withdrawal amount from the running total.
// The balance may never go below zero. A completed goal dropping back
// under target keeps its completed status.
func (s *Saving) ApplyWithdrawal(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be greater than zero"}
	}
	if s.Status == SavingCancelled {
		return &apperrors.ErrInvalidState{Entity: "saving", State: string(s.Status), Action: "withdraw from"}
	}
	if amount.GreaterThan(s.CurrentAmount) {
		return &apperrors.ErrInsufficientFunds{Available: s.CurrentAmount, Requested: amount}
	}

	s.CurrentAmount = s.CurrentAmount.Sub(amount)
	return nil
}

// Cancel transitions an active goal to cancelled. Completed and
// cancelled goals are terminal.
func (s *Saving) Cancel() error {
	if s.Status != SavingActive {
		return &apperrors.ErrInvalidState{Entity: "saving", State: string(s.Status), Action: "cancel"}
	}
	s.Status = SavingCancelled
	return nil
}

// MovementSum returns the signed sum of movements: deposits add,
// withdrawals subtract. Used to re-derive CurrentAmount.
func MovementSum(movements []*SavingMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		switch m.Type {
		case MovementDeposit:
			total = total.Add(m.Amount)
		case MovementWithdrawal:
			total = total.Sub(m.Amount)
		}
	}
	return total
}
