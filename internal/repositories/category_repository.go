package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
)

type categoryRepository struct {
	db *db.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(database *db.DB) CategoryRepository {
	return &categoryRepository{db: database}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.ErrNotFound{Entity: "category", ID: id}
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

// ListForUser returns the categories visible to a user: the shared
// system set plus the user's own.
func (r *categoryRepository) ListForUser(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("is_system = ? OR user_id = ?", true, userID)

	if categoryType != "" {
		query = query.Where("type = ?", categoryType)
	}

	var categories []*models.Category
	if err := query.Order("type, name").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	if category == nil || category.ID == "" {
		return &apperrors.ErrValidation{Field: "id", Message: "is required"}
	}

	result := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND is_active = ?", category.ID, true).
		Updates(map[string]interface{}{
			"name":  category.Name,
			"icon":  category.Icon,
			"color": category.Color,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "category", ID: category.ID}
	}
	return nil
}

func (r *categoryRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return &apperrors.ErrNotFound{Entity: "category", ID: id}
	}
	return nil
}

// NameTaken reports whether another active category with the same name
// and type already exists for the user (or among system categories).
func (r *categoryRepository) NameTaken(ctx context.Context, name string, categoryType models.CategoryType, userID *string, excludeID string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ? AND type = ? AND is_active = ?", name, categoryType, true)

	if userID != nil {
		query = query.Where("is_system = ? OR user_id = ?", true, *userID)
	} else {
		query = query.Where("is_system = ?", true)
	}
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check category name: %w", err)
	}
	return count > 0, nil
}

func (r *categoryRepository) SystemCategoryExists(ctx context.Context, name string, categoryType models.CategoryType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("name = ? AND type = ? AND is_system = ?", name, categoryType, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check system category: %w", err)
	}
	return count > 0, nil
}
