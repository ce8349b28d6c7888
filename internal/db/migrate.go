package db

import (
	"fmt"

	"github.com/plata-app/plata/internal/models"
)

// Migrate creates or updates the schema for every domain model.
func (db *DB) Migrate() error {
	err := db.AutoMigrate(
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
		&models.Saving{},
		&models.SavingMovement{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
