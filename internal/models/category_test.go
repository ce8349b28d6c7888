package models

import (
	"errors"
	"testing"

	apperrors "github.com/plata-app/plata/internal/errors"
)

func TestCategoryValidate(t *testing.T) {
	userID := "user-1"

	tests := []struct {
		name       string
		category   *Category
		errorField string
	}{
		{
			name:     "valid user category",
			category: &Category{Name: "Mascotas", Type: CategoryExpense, UserID: &userID},
		},
		{
			name:     "valid system category",
			category: &Category{Name: "Alimentación", Type: CategoryExpense, IsSystem: true},
		},
		{
			name:       "missing name",
			category:   &Category{Type: CategoryExpense, UserID: &userID},
			errorField: "name",
		},
		{
			name:       "bad type",
			category:   &Category{Name: "Mascotas", Type: "both", UserID: &userID},
			errorField: "type",
		},
		{
			name:       "system category with owner",
			category:   &Category{Name: "Alimentación", Type: CategoryExpense, IsSystem: true, UserID: &userID},
			errorField: "user_id",
		},
		{
			name:       "user category without owner",
			category:   &Category{Name: "Mascotas", Type: CategoryExpense},
			errorField: "user_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.category.Validate()

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

func TestSystemCategoriesSeedSet(t *testing.T) {
	seen := map[string]bool{}
	for _, seed := range SystemCategories {
		key := seed.Name + "/" + string(seed.Type)
		if seen[key] {
			t.Errorf("duplicate seed entry %s", key)
		}
		seen[key] = true

		if seed.Type != CategoryExpense && seed.Type != CategoryIncome {
			t.Errorf("seed %s has invalid type %s", seed.Name, seed.Type)
		}
	}
}
