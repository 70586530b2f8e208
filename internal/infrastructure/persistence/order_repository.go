package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/domain/shared"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Items").
		Preload("Items.ProductInfo").
		Preload("Items.ProductInfo.Product").
		Preload("Items.ProductInfo.Product.Category").
		Preload("Items.ProductInfo.Parameters").
		Preload("Items.ProductInfo.Parameters.Parameter")
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

// FindOrCreateBasket returns the user's basket, creating an empty one
// when none exists yet.
func (r *GormOrderRepository) FindOrCreateBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	basket, err := r.FindBasket(ctx, userID)
	if err == nil {
		return basket, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	basket = ordering.NewBasket(userID)
	if err := r.db.WithContext(ctx).Create(basket).Error; err != nil {
		return nil, err
	}
	return basket, nil
}

// FindBasket finds the user's basket order with items loaded
func (r *GormOrderRepository) FindBasket(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("user_id = ? AND status = ?", userID, ordering.StatusBasket).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUser finds an order by ID owned by the given user
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindPlacedForUser lists the user's orders excluding the basket,
// newest first
func (r *GormOrderRepository) FindPlacedForUser(ctx context.Context, userID uuid.UUID) ([]*ordering.Order, error) {
	var orders []*ordering.Order
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("user_id = ? AND status <> ?", userID, ordering.StatusBasket).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindPlacedForShop lists placed orders that contain at least one offer
// sold by the given shop
func (r *GormOrderRepository) FindPlacedForShop(ctx context.Context, shopID uuid.UUID) ([]*ordering.Order, error) {
	var orders []*ordering.Order
	if err := r.withItems(r.db.WithContext(ctx)).
		Where("orders.status <> ?", ordering.StatusBasket).
		Where("orders.id IN (?)", r.db.
			Model(&ordering.OrderItem{}).
			Select("order_items.order_id").
			Joins("JOIN product_infos ON product_infos.id = order_items.product_info_id").
			Where("product_infos.shop_id = ?", shopID)).
		Order("orders.created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpsertItem inserts the item or, when the offer is already in the
// order, replaces its quantity.
func (r *GormOrderRepository) UpsertItem(ctx context.Context, item *ordering.OrderItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}, {Name: "product_info_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

// DeleteItems removes the given items from the order and reports how
// many rows were deleted
func (r *GormOrderRepository) DeleteItems(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Where("order_id = ? AND id IN ?", orderID, ids).
		Delete(&ordering.OrderItem{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Place moves the basket to the new status and attaches the contact in
// one conditional update. The status predicate makes concurrent
// checkouts race-safe: only one update finds the row still in basket.
func (r *GormOrderRepository) Place(ctx context.Context, orderID, userID, contactID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("id = ? AND user_id = ? AND status = ?", orderID, userID, ordering.StatusBasket).
		Updates(map[string]interface{}{
			"status":     ordering.StatusNew,
			"contact_id": contactID,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus persists the order's current status
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).
		Model(&ordering.Order{}).
		Where("id = ?", order.ID).
		Update("status", order.Status).Error
}

var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
