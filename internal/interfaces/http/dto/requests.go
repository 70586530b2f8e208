package dto

import "github.com/google/uuid"

// RegisterRequest is the body of POST /user/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Company   string `json:"company" binding:"required,max=200"`
	Position  string `json:"position" binding:"required,max=100"`
	Role      string `json:"role" binding:"omitempty,oneof=customer supplier"`
}

// ConfirmRequest carries the query parameters of
// GET /user/register/confirm.
type ConfirmRequest struct {
	Email string `form:"email" binding:"required,email"`
	Token string `form:"token" binding:"required"`
}

// LoginRequest is the body of POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateDetailsRequest is the body of POST /user/details. All fields
// are optional; only the provided ones are applied.
type UpdateDetailsRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string `json:"last_name" binding:"omitempty,max=100"`
	Company   *string `json:"company" binding:"omitempty,max=200"`
	Position  *string `json:"position" binding:"omitempty,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=8,max=128"`
}

// CreateContactRequest is the body of POST /user/contact.
type CreateContactRequest struct {
	City      string `json:"city" binding:"required,max=50"`
	Street    string `json:"street" binding:"required,max=100"`
	House     string `json:"house" binding:"omitempty,max=15"`
	Structure string `json:"structure" binding:"omitempty,max=15"`
	Building  string `json:"building" binding:"omitempty,max=15"`
	Apartment string `json:"apartment" binding:"omitempty,max=15"`
	Phone     string `json:"phone" binding:"required,max=20"`
}

// UpdateContactRequest is the body of PUT /user/contact.
type UpdateContactRequest struct {
	ID        uuid.UUID `json:"id" binding:"required"`
	City      *string   `json:"city" binding:"omitempty,max=50"`
	Street    *string   `json:"street" binding:"omitempty,max=100"`
	House     *string   `json:"house" binding:"omitempty,max=15"`
	Structure *string   `json:"structure" binding:"omitempty,max=15"`
	Building  *string   `json:"building" binding:"omitempty,max=15"`
	Apartment *string   `json:"apartment" binding:"omitempty,max=15"`
	Phone     *string   `json:"phone" binding:"omitempty,max=20"`
}

// DeleteContactsRequest is the body of DELETE /user/contact.
type DeleteContactsRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// BasketItemRequest is one (offer, quantity) pair in a basket write.
type BasketItemRequest struct {
	ProductInfo uuid.UUID `json:"product_info" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,gt=0"`
}

// BasketWriteRequest is the body of POST and PUT /basket.
type BasketWriteRequest struct {
	Items []BasketItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BasketDeleteRequest is the body of DELETE /basket. Items are order
// item ids, not offer ids.
type BasketDeleteRequest struct {
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// CheckoutRequest is the body of POST /order.
type CheckoutRequest struct {
	ID      uuid.UUID `json:"id" binding:"required"`
	Contact uuid.UUID `json:"contact" binding:"required"`
}

// ShopStateRequest is the body of POST /partner/state.
type ShopStateRequest struct {
	State *bool `json:"state" binding:"required"`
}

// AdvanceStatusRequest is the body of POST /partner/order/:id/status.
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed assembled sent delivered canceled"`
}
