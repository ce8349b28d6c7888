package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/plata-app/plata/internal/db"
	"github.com/plata-app/plata/internal/models"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	database := &db.DB{DB: gormDB}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test schema: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})
	return database
}

func seedCategory(t *testing.T, database *db.DB, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	userID := "test-user"
	category := &models.Category{
		UserID:   &userID,
		Name:     name,
		Type:     categoryType,
		IsActive: true,
	}
	if err := NewCategoryService(database).CreateCategory(context.Background(), category); err != nil {
		t.Fatalf("Failed to seed category %q: %v", name, err)
	}
	return category
}

func seedExpense(t *testing.T, database *db.DB, categoryID string, amount string, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      "test-user",
		CategoryID:  categoryID,
		Type:        models.TransactionExpense,
		Date:        date,
		Description: "seeded expense",
		Amount:      decimal.RequireFromString(amount),
		Currency:    models.CurrencyARS,
	}
	if err := NewTransactionService(database).CreateTransaction(context.Background(), tx); err != nil {
		t.Fatalf("Failed to seed expense: %v", err)
	}
	return tx
}
