package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// withAssociations preloads everything an offer is rendered with.
func (r *GormProductRepository) withAssociations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Product").
		Preload("Product.Category").
		Preload("Parameters").
		Preload("Parameters.Parameter")
}

// SearchOffers lists offers from shops that accept orders, optionally
// narrowed to one shop or one category.
func (r *GormProductRepository) SearchOffers(ctx context.Context, filter catalog.OfferFilter) ([]*catalog.ProductInfo, error) {
	query := r.db.WithContext(ctx).
		Model(&catalog.ProductInfo{}).
		Joins("JOIN shops ON shops.id = product_infos.shop_id AND shops.state = ?", true)

	if filter.ShopID != nil {
		query = query.Where("product_infos.shop_id = ?", *filter.ShopID)
	}
	if filter.CategoryID != nil {
		query = query.
			Joins("JOIN products ON products.id = product_infos.product_id").
			Where("products.category_id = ?", *filter.CategoryID)
	}

	var offers []*catalog.ProductInfo
	if err := r.withAssociations(query).Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

// FindOfferByID finds an offer with its associations loaded
func (r *GormProductRepository) FindOfferByID(ctx context.Context, id uuid.UUID) (*catalog.ProductInfo, error) {
	var offer catalog.ProductInfo
	if err := r.withAssociations(r.db.WithContext(ctx)).
		First(&offer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &offer, nil
}

// FindOffersByIDs loads the given offers; missing IDs are silently
// absent from the result, callers compare lengths when that matters.
func (r *GormProductRepository) FindOffersByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.ProductInfo, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var offers []*catalog.ProductInfo
	if err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
