package catalog

import (
	"strings"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Category is a global product grouping shared by all shops. Names are
// unique; shops attach themselves to the categories they sell in.
type Category struct {
	shared.BaseEntity
	Name  string `gorm:"size:80;uniqueIndex;not null"`
	Shops []Shop `gorm:"many2many:shop_categories"`
}

// NewCategory validates and builds a category.
func NewCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "category name cannot be empty")
	}
	if len(name) > 80 {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "category name cannot exceed 80 characters")
	}
	return &Category{Name: name}, nil
}
