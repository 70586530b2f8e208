package ordering

import (
	"github.com/google/uuid"
)

// AddItemInput is one (offer, quantity) pair for a basket add call
type AddItemInput struct {
	ProductInfoID uuid.UUID
	Quantity      int
}

// CheckoutInput contains the input for placing a basket order
type CheckoutInput struct {
	UserID    uuid.UUID
	OrderID   uuid.UUID
	ContactID uuid.UUID
}
