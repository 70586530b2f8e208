package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketplace/backend/internal/application/importer"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormImportScope implements importer.TransactionScope using GORM
// transactions. A whole price list import runs inside one transaction
// so a structural failure leaves the previous catalog untouched.
type GormImportScope struct {
	db *gorm.DB
}

// NewGormImportScope creates a new GormImportScope
func NewGormImportScope(db *gorm.DB) *GormImportScope {
	return &GormImportScope{db: db}
}

// Execute runs the given function within a database transaction.
func (s *GormImportScope) Execute(ctx context.Context, fn func(store importer.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormImportStore{tx: tx})
	})
}

var _ importer.TransactionScope = (*GormImportScope)(nil)

// gormImportStore provides catalog writes scoped to one transaction.
type gormImportStore struct {
	tx *gorm.DB
}

// GetOrCreateShop returns the supplier's shop, creating it on the first
// import and renaming it on subsequent ones.
func (s *gormImportStore) GetOrCreateShop(ctx context.Context, userID uuid.UUID, name string) (*catalog.Shop, error) {
	var shop catalog.Shop
	err := s.tx.WithContext(ctx).Where("user_id = ?", userID).First(&shop).Error
	if err == nil {
		if err := shop.Rename(name); err != nil {
			return nil, err
		}
		if err := s.tx.WithContext(ctx).Save(&shop).Error; err != nil {
			return nil, err
		}
		return &shop, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := catalog.NewShop(userID, name)
	if err != nil {
		return nil, err
	}
	if err := s.tx.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// SaveShop persists shop changes such as the stored file reference.
func (s *gormImportStore) SaveShop(ctx context.Context, shop *catalog.Shop) error {
	return s.tx.WithContext(ctx).Save(shop).Error
}

// UpsertCategory finds a category by name or creates it.
func (s *gormImportStore) UpsertCategory(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	err := s.tx.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err == nil {
		return &category, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created, err := catalog.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if err := s.tx.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return created, nil
}

// FindCategoryByName looks up an existing category.
func (s *gormImportStore) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := s.tx.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// LinkShopCategory attaches the category to the shop's assortment.
func (s *gormImportStore) LinkShopCategory(ctx context.Context, shopID, categoryID uuid.UUID) error {
	return s.tx.WithContext(ctx).
		Exec("INSERT INTO shop_categories (shop_id, category_id) VALUES (?, ?) ON CONFLICT DO NOTHING", shopID, categoryID).Error
}

// ClearShopCatalog removes all products, offers and offer parameters
// that belong to the shop. Import is destructive replacement.
func (s *gormImportStore) ClearShopCatalog(ctx context.Context, shopID uuid.UUID) error {
	tx := s.tx.WithContext(ctx)

	if err := tx.
		Where("product_info_id IN (?)", tx.Session(&gorm.Session{NewDB: true}).
			Model(&catalog.ProductInfo{}).
			Select("id").
			Where("shop_id = ?", shopID)).
		Delete(&catalog.ProductParameter{}).Error; err != nil {
		return err
	}
	if err := tx.Where("shop_id = ?", shopID).Delete(&catalog.ProductInfo{}).Error; err != nil {
		return err
	}
	return tx.Where("shop_id = ?", shopID).Delete(&catalog.Product{}).Error
}

// GetOrCreateProduct upserts a product by its per-shop external ID.
func (s *gormImportStore) GetOrCreateProduct(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	var existing catalog.Product
	err := s.tx.WithContext(ctx).
		Where("shop_id = ? AND external_id = ?", product.ShopID, product.ExternalID).
		First(&existing).Error
	if err == nil {
		existing.Name = product.Name
		existing.CategoryID = product.CategoryID
		if err := s.tx.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.tx.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// GetOrCreateOffer inserts an offer unless a row with the same model,
// quantity and prices already exists for the product. Feeds that list a
// good twice with identical terms then share one offer row.
func (s *gormImportStore) GetOrCreateOffer(ctx context.Context, offer *catalog.ProductInfo) (*catalog.ProductInfo, error) {
	var existing catalog.ProductInfo
	err := s.tx.WithContext(ctx).
		Where("product_id = ? AND shop_id = ? AND model = ? AND quantity = ? AND price = ? AND price_rrc = ?",
			offer.ProductID, offer.ShopID, offer.Model, offer.Quantity, offer.Price, offer.PriceRRC).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.tx.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

// UpsertParameter finds a global parameter by name or creates it.
func (s *gormImportStore) UpsertParameter(ctx context.Context, name string) (*catalog.Parameter, error) {
	var parameter catalog.Parameter
	err := s.tx.WithContext(ctx).Where("name = ?", name).First(&parameter).Error
	if err == nil {
		return &parameter, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	parameter = catalog.Parameter{Name: name}
	if err := s.tx.WithContext(ctx).Create(&parameter).Error; err != nil {
		return nil, err
	}
	return &parameter, nil
}

// UpsertOfferParameter writes the offer's value for a parameter,
// replacing an earlier value from the same feed.
func (s *gormImportStore) UpsertOfferParameter(ctx context.Context, link *catalog.ProductParameter) error {
	return s.tx.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_info_id"}, {Name: "parameter_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(link).Error
}

var _ importer.Store = (*gormImportStore)(nil)
