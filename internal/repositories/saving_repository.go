package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
)

type savingRepository struct {
	db *db.DB
}

// NewSavingRepository creates a new savings goal repository
func NewSavingRepository(database *db.DB) SavingRepository {
	return &savingRepository{db: database}
}

func (r *savingRepository) Create(ctx context.Context, saving *models.Saving) error {
	if saving.ID == "" {
		saving.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(saving).Error; err != nil {
		return fmt.Errorf("failed to create saving: %w", err)
	}
	return nil
}

func (r *savingRepository) GetByID(ctx context.Context, id string) (*models.Saving, error) {
	var saving models.Saving
	err := r.db.WithContext(ctx).First(&saving, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "saving", ID: id}
		}
		return nil, fmt.Errorf("failed to get saving: %w", err)
	}
	return &saving, nil
}

func (r *savingRepository) ListForUser(ctx context.Context, userID string, status models.SavingStatus) ([]*models.Saving, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND is_active = ?", userID, true)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var savings []*models.Saving
	if err := query.Order("created_at DESC").Find(&savings).Error; err != nil {
		return nil, fmt.Errorf("failed to list savings: %w", err)
	}
	return savings, nil
}

func (r *savingRepository) Update(ctx context.Context, saving *models.Saving) error {
	if saving == nil || saving.ID == "" {
		return &apperrors.ErrValidation{Field: "id", Message: "is required"}
	}

	result := r.db.WithContext(ctx).Model(&models.Saving{}).
		Where("id = ? AND is_active = ?", saving.ID, true).
		Updates(map[string]interface{}{
			"name":          saving.Name,
			"description":   saving.Description,
			"target_amount": saving.TargetAmount,
			"target_date":   saving.TargetDate,
			"icon":          saving.Icon,
			"color":         saving.Color,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update saving: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "saving", ID: saving.ID}
	}
	return nil
}

func (r *savingRepository) ListMovements(ctx context.Context, savingID string) ([]*models.SavingMovement, error) {
	var movements []*models.SavingMovement
	err := r.db.WithContext(ctx).
		Where("saving_id = ?", savingID).
		Order("date DESC, created_at DESC").
		Find(&movements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return movements, nil
}

// lockForUpdate adds a row-level lock on dialects that support it.
// sqlite has no FOR UPDATE; its writes serialize on the database lock.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// ApplyMovement serializes concurrent deposits/withdrawals against the
// same goal: the row is locked for the duration of the transaction, the
// mutation runs against the fresh state, and the goal plus its movement
// are written together.
func (r *savingRepository) ApplyMovement(ctx context.Context, savingID string, mutate func(*models.Saving) (*models.SavingMovement, error)) (*models.Saving, *models.SavingMovement, error) {
	var saving models.Saving
	var movement *models.SavingMovement

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			First(&saving, "id = ? AND is_active = ?", savingID, true).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.ErrNotFound{Entity: "saving", ID: savingID}
			}
			return fmt.Errorf("failed to load saving: %w", err)
		}

		movement, err = mutate(&saving)
		if err != nil {
			return err
		}
		if movement.ID == "" {
			movement.ID = uuid.NewString()
		}
		movement.SavingID = saving.ID

		if err := tx.Create(movement).Error; err != nil {
			return fmt.Errorf("failed to record movement: %w", err)
		}

		err = tx.Model(&models.Saving{}).Where("id = ?", saving.ID).
			Updates(map[string]interface{}{
				"current_amount": saving.CurrentAmount,
				"status":         saving.Status,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update saving: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &saving, movement, nil
}

func (r *savingRepository) UpdateStatus(ctx context.Context, savingID string, mutate func(*models.Saving) error) (*models.Saving, error) {
	var saving models.Saving

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := lockForUpdate(tx).
			First(&saving, "id = ? AND is_active = ?", savingID, true).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperrors.ErrNotFound{Entity: "saving", ID: savingID}
			}
			return fmt.Errorf("failed to load saving: %w", err)
		}

		if err := mutate(&saving); err != nil {
			return err
		}

		err = tx.Model(&models.Saving{}).Where("id = ?", saving.ID).
			Update("status", saving.Status).Error
		if err != nil {
			return fmt.Errorf("failed to update saving status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saving, nil
}
