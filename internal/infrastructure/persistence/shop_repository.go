package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormShopRepository implements catalog.ShopRepository using GORM
type GormShopRepository struct {
	db *gorm.DB
}

// NewGormShopRepository creates a new GormShopRepository
func NewGormShopRepository(db *gorm.DB) *GormShopRepository {
	return &GormShopRepository{db: db}
}

// Save creates or updates a shop
func (r *GormShopRepository) Save(ctx context.Context, shop *catalog.Shop) error {
	return r.db.WithContext(ctx).Save(shop).Error
}

// FindByID finds a shop by its ID
func (r *GormShopRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindByUserID finds the shop owned by the given supplier account
func (r *GormShopRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*catalog.Shop, error) {
	var shop catalog.Shop
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindAllActive lists shops currently accepting orders
func (r *GormShopRepository) FindAllActive(ctx context.Context) ([]*catalog.Shop, error) {
	var shops []*catalog.Shop
	if err := r.db.WithContext(ctx).
		Where("state = ?", true).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

var _ catalog.ShopRepository = (*GormShopRepository)(nil)

// GormCategoryRepository implements catalog.CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindAll lists all categories ordered by name
func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]*catalog.Category, error) {
	var categories []*catalog.Category
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
