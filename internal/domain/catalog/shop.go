package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Shop is a supplier storefront. Each supplier account owns at most one
// shop; it is created lazily on the first successful price list import.
type Shop struct {
	shared.BaseEntity
	UserID     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Name       string     `gorm:"size:100;not null"`
	FileRef    string     `gorm:"size:500"`
	State      bool       `gorm:"not null;default:true"`
	Categories []Category `gorm:"many2many:shop_categories"`
}

// NewShop creates an open shop for the supplier.
func NewShop(userID uuid.UUID, name string) (*Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "shop name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_SHOP_NAME", "shop name cannot exceed 100 characters")
	}
	return &Shop{UserID: userID, Name: name, State: true}, nil
}

// Rename updates the shop name from a fresh price list.
func (s *Shop) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_SHOP_NAME", "shop name cannot be empty")
	}
	s.Name = name
	return nil
}

// IsAcceptingOrders reports whether the shop currently takes orders.
func (s *Shop) IsAcceptingOrders() bool {
	return s.State
}
