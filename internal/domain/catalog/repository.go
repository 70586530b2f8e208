package catalog

import (
	"context"

	"github.com/google/uuid"
)

// OfferFilter narrows catalog searches. Nil fields are ignored.
type OfferFilter struct {
	ShopID     *uuid.UUID
	CategoryID *uuid.UUID
}

// ShopRepository provides read and state access to shops. Import-time
// writes go through the import transaction scope instead.
type ShopRepository interface {
	Save(ctx context.Context, shop *Shop) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Shop, error)
	FindAllActive(ctx context.Context) ([]*Shop, error)
}

// CategoryRepository lists the global category tree.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]*Category, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
}

// ProductRepository searches sellable offers. Offers come back with
// product, category, shop and parameters loaded.
type ProductRepository interface {
	SearchOffers(ctx context.Context, filter OfferFilter) ([]*ProductInfo, error)
	FindOfferByID(ctx context.Context, id uuid.UUID) (*ProductInfo, error)
	FindOffersByIDs(ctx context.Context, ids []uuid.UUID) ([]*ProductInfo, error)
}
