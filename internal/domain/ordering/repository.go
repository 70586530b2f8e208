package ordering

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository provides access to baskets and placed orders. Items
// and their offers are loaded eagerly wherever orders are returned.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	// FindOrCreateBasket returns the user's basket order, creating an
	// empty one when none exists.
	FindOrCreateBasket(ctx context.Context, userID uuid.UUID) (*Order, error)
	FindBasket(ctx context.Context, userID uuid.UUID) (*Order, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Order, error)
	// FindPlacedForUser lists the user's orders excluding the basket,
	// newest first.
	FindPlacedForUser(ctx context.Context, userID uuid.UUID) ([]*Order, error)
	// FindPlacedForShop lists placed orders containing at least one
	// offer from the given shop.
	FindPlacedForShop(ctx context.Context, shopID uuid.UUID) ([]*Order, error)

	UpsertItem(ctx context.Context, item *OrderItem) error
	// DeleteItems removes the given items from the order and returns
	// how many rows were deleted.
	DeleteItems(ctx context.Context, orderID uuid.UUID, ids []uuid.UUID) (int64, error)

	// Place atomically moves the user's basket order to the new status
	// and attaches the contact. The conditional update is the arbiter
	// under concurrent checkouts: rows affected is zero unless the
	// order still is that user's basket.
	Place(ctx context.Context, orderID, userID, contactID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, order *Order) error
}
