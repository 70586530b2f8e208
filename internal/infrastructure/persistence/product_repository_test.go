package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

type offerFixture struct {
	shop     *catalog.Shop
	category *catalog.Category
	offer    *catalog.ProductInfo
}

func seedCatalog(t *testing.T, db *gorm.DB, supplierEmail, categoryName string, active bool) offerFixture {
	t.Helper()

	supplier, err := identity.NewUser(supplierEmail, "password123", identity.RoleSupplier)
	require.NoError(t, err)
	require.NoError(t, db.Create(supplier).Error)

	shop, err := catalog.NewShop(supplier.ID, "Shop of "+supplierEmail)
	require.NoError(t, err)
	shop.State = active
	require.NoError(t, db.Create(shop).Error)

	category, err := catalog.NewCategory(categoryName)
	require.NoError(t, err)
	require.NoError(t, db.Create(category).Error)

	product, err := catalog.NewProduct(shop.ID, category.ID, 4216292, "iPhone 15")
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)

	offer, err := catalog.NewProductInfo(product.ID, shop.ID, "apple/iphone-15", 14,
		decimal.NewFromInt(110000), decimal.NewFromInt(116990))
	require.NoError(t, err)
	require.NoError(t, db.Create(offer).Error)

	parameter := catalog.Parameter{Name: "Color-" + supplierEmail}
	require.NoError(t, db.Create(&parameter).Error)
	require.NoError(t, db.Create(&catalog.ProductParameter{
		ProductInfoID: offer.ID,
		ParameterID:   parameter.ID,
		Value:         "black",
	}).Error)

	return offerFixture{shop: shop, category: category, offer: offer}
}

func TestGormProductRepository_SearchOffers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	open := seedCatalog(t, db, "open@example.com", "Phones", true)
	closed := seedCatalog(t, db, "closed@example.com", "Accessories", false)

	t.Run("only offers from accepting shops", func(t *testing.T) {
		offers, err := repo.SearchOffers(ctx, catalog.OfferFilter{})
		require.NoError(t, err)
		require.Len(t, offers, 1)
		assert.Equal(t, open.offer.ID, offers[0].ID)
		assert.Equal(t, "iPhone 15", offers[0].Product.Name)
		assert.Equal(t, "Phones", offers[0].Product.Category.Name)
		require.Len(t, offers[0].Parameters, 1)
		assert.Equal(t, "black", offers[0].Parameters[0].Value)
	})

	t.Run("filter by shop", func(t *testing.T) {
		offers, err := repo.SearchOffers(ctx, catalog.OfferFilter{ShopID: &open.shop.ID})
		require.NoError(t, err)
		assert.Len(t, offers, 1)

		offers, err = repo.SearchOffers(ctx, catalog.OfferFilter{ShopID: &closed.shop.ID})
		require.NoError(t, err)
		assert.Empty(t, offers, "a closed shop's offers are hidden")
	})

	t.Run("filter by category", func(t *testing.T) {
		offers, err := repo.SearchOffers(ctx, catalog.OfferFilter{CategoryID: &open.category.ID})
		require.NoError(t, err)
		assert.Len(t, offers, 1)

		offers, err = repo.SearchOffers(ctx, catalog.OfferFilter{CategoryID: &closed.category.ID})
		require.NoError(t, err)
		assert.Empty(t, offers)
	})
}

func TestGormProductRepository_FindOfferByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	fixture := seedCatalog(t, db, "open@example.com", "Phones", true)

	offer, err := repo.FindOfferByID(ctx, fixture.offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "apple/iphone-15", offer.Model)
	assert.Equal(t, "iPhone 15", offer.Product.Name)

	_, err = repo.FindOfferByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindOffersByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	fixture := seedCatalog(t, db, "open@example.com", "Phones", true)

	offers, err := repo.FindOffersByIDs(ctx, []uuid.UUID{fixture.offer.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, offers, 1, "missing IDs are dropped, not errors")

	offers, err = repo.FindOffersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestGormShopRepository_FindAllActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShopRepository(db)
	ctx := context.Background()

	seedCatalog(t, db, "b@example.com", "Phones", true)
	seedCatalog(t, db, "a@example.com", "Accessories", true)
	seedCatalog(t, db, "c@example.com", "Gadgets", false)

	shops, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "Shop of a@example.com", shops[0].Name, "sorted by name")
}

func TestGormShopRepository_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShopRepository(db)
	ctx := context.Background()

	fixture := seedCatalog(t, db, "open@example.com", "Phones", true)

	shop, err := repo.FindByUserID(ctx, fixture.shop.UserID)
	require.NoError(t, err)
	assert.Equal(t, fixture.shop.ID, shop.ID)

	_, err = repo.FindByUserID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
