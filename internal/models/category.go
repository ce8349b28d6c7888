package models

import (
	"time"

	apperrors "github.com/plata-app/plata/internal/errors"
)

// CategoryType mirrors TransactionType: a category classifies either
// expenses or income, never both.
type CategoryType string

const (
	CategoryExpense CategoryType = "expense"
	CategoryIncome  CategoryType = "income"
)

// Category classifies transactions. System categories (IsSystem) are a
// shared read-only set visible to every user; user categories belong to
// exactly one user.
type Category struct {
	ID       string       `json:"id" gorm:"primaryKey;column:id;type:varchar(255)"`
	Name     string       `json:"name" gorm:"column:name;type:varchar(100);not null"`
	Type     CategoryType `json:"type" gorm:"column:type;type:varchar(10);not null;index"`
	IsSystem bool         `json:"is_system" gorm:"column:is_system;type:boolean;not null;default:false;index"`
	UserID   *string      `json:"user_id,omitempty" gorm:"column:user_id;type:varchar(255);index"`
	Icon     string       `json:"icon" gorm:"column:icon;type:varchar(50);not null;default:'bi-tag'"`
	Color    string       `json:"color" gorm:"column:color;type:varchar(7);not null;default:'#6c757d'"`

	IsActive bool `json:"is_active" gorm:"column:is_active;type:boolean;not null;default:true;index"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Validate validates the category data
func (c *Category) Validate() error {
	if c.Name == "" {
		return &apperrors.ErrValidation{Field: "name", Message: "is required"}
	}
	if len(c.Name) > 100 {
		return &apperrors.ErrValidation{Field: "name", Message: "must be 100 characters or less"}
	}
	if c.Type != CategoryExpense && c.Type != CategoryIncome {
		return &apperrors.ErrValidation{Field: "type", Message: "must be 'expense' or 'income'"}
	}
	if c.IsSystem && c.UserID != nil {
		return &apperrors.ErrValidation{Field: "user_id", Message: "system categories cannot belong to a user"}
	}
	if !c.IsSystem && (c.UserID == nil || *c.UserID == "") {
		return &apperrors.ErrValidation{Field: "user_id", Message: "user categories require a user"}
	}
	return nil
}

// SystemCategorySeed describes one entry of the shared default category set.
type SystemCategorySeed struct {
	Name  string
	Type  CategoryType
	Icon  string
	Color string
}

// SystemCategories is the read-only default set seeded at process start.
var SystemCategories = []SystemCategorySeed{
	{Name: "Alimentación", Type: CategoryExpense, Icon: "bi-cart", Color: "#28a745"},
	{Name: "Transporte", Type: CategoryExpense, Icon: "bi-car-front", Color: "#17a2b8"},
	{Name: "Vivienda", Type: CategoryExpense, Icon: "bi-house", Color: "#6c757d"},
	{Name: "Servicios", Type: CategoryExpense, Icon: "bi-lightning", Color: "#ffc107"},
	{Name: "Salud", Type: CategoryExpense, Icon: "bi-heart-pulse", Color: "#dc3545"},
	{Name: "Entretenimiento", Type: CategoryExpense, Icon: "bi-controller", Color: "#e83e8c"},
	{Name: "Educación", Type: CategoryExpense, Icon: "bi-book", Color: "#6f42c1"},
	{Name: "Ropa", Type: CategoryExpense, Icon: "bi-bag", Color: "#fd7e14"},
	{Name: "Otros gastos", Type: CategoryExpense, Icon: "bi-three-dots", Color: "#6c757d"},
	{Name: "Sueldo", Type: CategoryIncome, Icon: "bi-briefcase", Color: "#28a745"},
	{Name: "Freelance", Type: CategoryIncome, Icon: "bi-laptop", Color: "#17a2b8"},
	{Name: "Inversiones", Type: CategoryIncome, Icon: "bi-graph-up-arrow", Color: "#6f42c1"},
	{Name: "Otros ingresos", Type: CategoryIncome, Icon: "bi-three-dots", Color: "#6c757d"},
}
