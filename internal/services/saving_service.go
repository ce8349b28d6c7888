package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/repositories"
)

// savingService implements the SavingService interface
type savingService struct {
	repo repositories.SavingRepository
}

// NewSavingService creates a new saving service
func NewSavingService(database *db.DB) SavingService {
	return &savingService{repo: repositories.NewSavingRepository(database)}
}

// CreateSaving persists a new savings goal. New goals always start
// active with a zero balance regardless of what the caller sends.
func (s *savingService) CreateSaving(ctx context.Context, saving *models.Saving) error {
	saving.CurrentAmount = decimal.Zero
	saving.Status = models.SavingActive
	saving.IsActive = true
	if saving.Currency == "" {
		saving.Currency = models.CurrencyARS
	}
	if saving.Icon == "" {
		saving.Icon = "bi-piggy-bank"
	}
	if saving.Color == "" {
		saving.Color = "#17a2b8"
	}
	if err := saving.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, saving); err != nil {
		return fmt.Errorf("create saving: %w", err)
	}
	return nil
}

func (s *savingService) GetSaving(ctx context.Context, id string) (*models.Saving, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *savingService) ListSavings(ctx context.Context, userID string, status models.SavingStatus) ([]*models.Saving, error) {
	return s.repo.ListForUser(ctx, userID, status)
}

// UpdateSaving edits the descriptive fields of a goal. Balance and
// status are owned by the movement and cancel operations and never
// change here.
func (s *savingService) UpdateSaving(ctx context.Context, saving *models.Saving) error {
	existing, err := s.repo.GetByID(ctx, saving.ID)
	if err != nil {
		return err
	}

	saving.UserID = existing.UserID
	saving.CurrentAmount = existing.CurrentAmount
	saving.Status = existing.Status
	saving.IsActive = existing.IsActive
	if saving.Currency == "" {
		saving.Currency = existing.Currency
	}
	if err := saving.Validate(); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, saving); err != nil {
		return fmt.Errorf("update saving: %w", err)
	}
	return nil
}

func (s *savingService) ListMovements(ctx context.Context, savingID string) ([]*models.SavingMovement, error) {
	return s.repo.ListMovements(ctx, savingID)
}

// AddDeposit records a deposit against a goal. The goal row is locked
// while the new balance and any automatic completion are computed, so
// concurrent movements serialize.
func (s *savingService) AddDeposit(ctx context.Context, savingID string, amount decimal.Decimal, date time.Time, description string) (*models.Saving, error) {
	saving, _, err := s.repo.ApplyMovement(ctx, savingID, func(goal *models.Saving) (*models.SavingMovement, error) {
		if err := goal.ApplyDeposit(amount); err != nil {
			return nil, err
		}
		return &models.SavingMovement{
			Type:        models.MovementDeposit,
			Amount:      amount,
			Description: description,
			Date:        movementDate(date),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return saving, nil
}

// AddWithdrawal records a withdrawal against a goal under the same row
// lock as deposits. Withdrawing below zero is rejected before anything
// is written.
func (s *savingService) AddWithdrawal(ctx context.Context, savingID string, amount decimal.Decimal, date time.Time, description string) (*models.Saving, error) {
	saving, _, err := s.repo.ApplyMovement(ctx, savingID, func(goal *models.Saving) (*models.SavingMovement, error) {
		if err := goal.ApplyWithdrawal(amount); err != nil {
			return nil, err
		}
		return &models.SavingMovement{
			Type:        models.MovementWithdrawal,
			Amount:      amount,
			Description: description,
			Date:        movementDate(date),
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return saving, nil
}

// CancelSaving moves an active goal to cancelled. The balance and the
// movement history are kept for the record.
func (s *savingService) CancelSaving(ctx context.Context, savingID string) (*models.Saving, error) {
	return s.repo.UpdateStatus(ctx, savingID, func(goal *models.Saving) error {
		return goal.Cancel()
	})
}

func movementDate(date time.Time) time.Time {
	if date.IsZero() {
		return time.Now().UTC()
	}
	return date
}
