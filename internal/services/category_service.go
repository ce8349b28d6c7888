package services

import (
	"context"
	"fmt"

	"github.com/plata-app/plata/internal/db"
	apperrors "github.com/plata-app/plata/internal/errors"
	"github.com/plata-app/plata/internal/models"
	"github.com/plata-app/plata/internal/repositories"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(database *db.DB) CategoryService {
	return &categoryService{repo: repositories.NewCategoryRepository(database)}
}

// EnsureSystemCategories seeds the shared default category set. It is
// idempotent and runs once at process start.
func (s *categoryService) EnsureSystemCategories(ctx context.Context) error {
	for _, seed := range models.SystemCategories {
		exists, err := s.repo.SystemCategoryExists(ctx, seed.Name, seed.Type)
		if err != nil {
			return fmt.Errorf("seed system categories: %w", err)
		}
		if exists {
			continue
		}

		category := &models.Category{
			Name:     seed.Name,
			Type:     seed.Type,
			IsSystem: true,
			Icon:     seed.Icon,
			Color:    seed.Color,
			IsActive: true,
		}
		if err := s.repo.Create(ctx, category); err != nil {
			return fmt.Errorf("seed system categories: %w", err)
		}
	}
	return nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType models.CategoryType) ([]*models.Category, error) {
	return s.repo.ListForUser(ctx, userID, categoryType)
}

func (s *categoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	category.IsSystem = false
	category.IsActive = true
	if category.Icon == "" {
		category.Icon = "bi-tag"
	}
	if category.Color == "" {
		category.Color = "#6c757d"
	}
	if err := category.Validate(); err != nil {
		return err
	}

	taken, err := s.repo.NameTaken(ctx, category.Name, category.Type, category.UserID, "")
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	if taken {
		return &apperrors.ErrDuplicate{Entity: "category", Constraint: category.Name + "/" + string(category.Type)}
	}

	if err := s.repo.Create(ctx, category); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, category *models.Category) error {
	existing, err := s.repo.GetByID(ctx, category.ID)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return &apperrors.ErrInvalidState{Entity: "category", State: "system", Action: "update"}
	}

	category.Type = existing.Type
	category.UserID = existing.UserID
	category.IsSystem = false
	if err := category.Validate(); err != nil {
		return err
	}

	taken, err := s.repo.NameTaken(ctx, category.Name, category.Type, category.UserID, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if taken {
		return &apperrors.ErrDuplicate{Entity: "category", Constraint: category.Name + "/" + string(category.Type)}
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.IsSystem {
		return &apperrors.ErrInvalidState{Entity: "category", State: "system", Action: "delete"}
	}
	return s.repo.SoftDelete(ctx, id)
}
