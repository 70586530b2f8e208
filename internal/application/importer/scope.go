package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/catalog"
)

// Store is the catalog write surface an import runs against. All
// methods operate inside the transaction the scope opened.
type Store interface {
	GetOrCreateShop(ctx context.Context, userID uuid.UUID, name string) (*catalog.Shop, error)
	SaveShop(ctx context.Context, shop *catalog.Shop) error

	UpsertCategory(ctx context.Context, name string) (*catalog.Category, error)
	FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error)
	LinkShopCategory(ctx context.Context, shopID, categoryID uuid.UUID) error

	ClearShopCatalog(ctx context.Context, shopID uuid.UUID) error
	GetOrCreateProduct(ctx context.Context, product *catalog.Product) (*catalog.Product, error)
	GetOrCreateOffer(ctx context.Context, offer *catalog.ProductInfo) (*catalog.ProductInfo, error)

	UpsertParameter(ctx context.Context, name string) (*catalog.Parameter, error)
	UpsertOfferParameter(ctx context.Context, link *catalog.ProductParameter) error
}

// TransactionScope executes an import atomically. If fn returns an
// error every write it made is rolled back.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(store Store) error) error
}
