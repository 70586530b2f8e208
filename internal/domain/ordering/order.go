package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/shared"
)

// OrderStatus tracks an order through its lifecycle. Every user has at
// most one order in the basket status; placing it moves it to new and
// from there fulfilment advances it step by step.
type OrderStatus string

const (
	StatusBasket    OrderStatus = "basket"
	StatusNew       OrderStatus = "new"
	StatusConfirmed OrderStatus = "confirmed"
	StatusAssembled OrderStatus = "assembled"
	StatusSent      OrderStatus = "sent"
	StatusDelivered OrderStatus = "delivered"
	StatusCanceled  OrderStatus = "canceled"
)

// IsValid checks if the status is one of the known values.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusBasket, StatusNew, StatusConfirmed, StatusAssembled,
		StatusSent, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// IsPlaced reports whether the order left the basket stage.
func (s OrderStatus) IsPlaced() bool {
	return s.IsValid() && s != StatusBasket
}

// IsTerminal reports whether no further transitions are possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// CanTransitionTo checks if transition to the target status is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	transitions := map[OrderStatus][]OrderStatus{
		StatusBasket:    {StatusNew},
		StatusNew:       {StatusConfirmed, StatusCanceled},
		StatusConfirmed: {StatusAssembled, StatusCanceled},
		StatusAssembled: {StatusSent, StatusCanceled},
		StatusSent:      {StatusDelivered, StatusCanceled},
		StatusDelivered: {},
		StatusCanceled:  {},
	}
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Order is the aggregate for both the basket and placed orders.
// ContactID is set at checkout and stays nil while in the basket.
type Order struct {
	shared.BaseEntity
	UserID    uuid.UUID   `gorm:"type:uuid;index;not null"`
	Status    OrderStatus `gorm:"size:20;index;not null;default:basket"`
	ContactID *uuid.UUID  `gorm:"type:uuid"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
}

// NewBasket creates an empty basket order for the user.
func NewBasket(userID uuid.UUID) *Order {
	return &Order{UserID: userID, Status: StatusBasket}
}

// IsBasket reports whether the order is still being assembled by the user.
func (o *Order) IsBasket() bool {
	return o.Status == StatusBasket
}

// TransitionTo moves the order to the target status after validating
// the transition against the lifecycle graph.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "unknown order status %q", target)
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainErrorf("INVALID_STATUS_TRANSITION",
			"cannot transition order from %s to %s", o.Status, target)
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Total sums quantity times offer price over the loaded items.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OrderItem is one offer position inside an order. An offer appears at
// most once per order; adding it again replaces the quantity.
type OrderItem struct {
	shared.BaseEntity
	OrderID       uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_pair"`
	ProductInfoID uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_order_items_pair"`
	Quantity      int                 `gorm:"not null"`
	ProductInfo   catalog.ProductInfo `gorm:"foreignKey:ProductInfoID"`
}

// NewOrderItem validates and builds an item.
func NewOrderItem(orderID, productInfoID uuid.UUID, quantity int) (*OrderItem, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "item quantity must be positive")
	}
	return &OrderItem{
		OrderID:       orderID,
		ProductInfoID: productInfoID,
		Quantity:      quantity,
	}, nil
}

// Subtotal is quantity times the offer price.
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.ProductInfo.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
