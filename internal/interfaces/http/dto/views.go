package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/ordering"
)

// ShopView is the public shape of a supplier storefront.
type ShopView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	State bool      `json:"state"`
}

// NewShopView converts a shop entity to its public view.
func NewShopView(shop *catalog.Shop) ShopView {
	return ShopView{
		ID:    shop.ID,
		Name:  shop.Name,
		State: shop.State,
	}
}

// NewShopViews converts a shop list.
func NewShopViews(shops []*catalog.Shop) []ShopView {
	views := make([]ShopView, 0, len(shops))
	for _, shop := range shops {
		views = append(views, NewShopView(shop))
	}
	return views
}

// CategoryView is the public shape of a category.
type CategoryView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewCategoryViews converts a category list.
func NewCategoryViews(categories []*catalog.Category) []CategoryView {
	views := make([]CategoryView, 0, len(categories))
	for _, cat := range categories {
		views = append(views, CategoryView{ID: cat.ID, Name: cat.Name})
	}
	return views
}

// ProductView is the product part embedded in an offer.
type ProductView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

// OfferView is a sellable product info with its product, prices and
// parameters.
type OfferView struct {
	ID         uuid.UUID         `json:"id"`
	ShopID     uuid.UUID         `json:"shop_id"`
	Model      string            `json:"model,omitempty"`
	Quantity   int               `json:"quantity"`
	Price      decimal.Decimal   `json:"price"`
	PriceRRC   decimal.Decimal   `json:"price_rrc"`
	Product    ProductView       `json:"product"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// NewOfferView converts an offer with its preloaded product, category
// and parameters.
func NewOfferView(offer *catalog.ProductInfo) OfferView {
	view := OfferView{
		ID:       offer.ID,
		ShopID:   offer.ShopID,
		Model:    offer.Model,
		Quantity: offer.Quantity,
		Price:    offer.Price,
		PriceRRC: offer.PriceRRC,
		Product: ProductView{
			ID:       offer.Product.ID,
			Name:     offer.Product.Name,
			Category: offer.Product.Category.Name,
		},
	}
	if len(offer.Parameters) > 0 {
		view.Parameters = make(map[string]string, len(offer.Parameters))
		for _, param := range offer.Parameters {
			view.Parameters[param.Parameter.Name] = param.Value
		}
	}
	return view
}

// NewOfferViews converts an offer list.
func NewOfferViews(offers []*catalog.ProductInfo) []OfferView {
	views := make([]OfferView, 0, len(offers))
	for _, offer := range offers {
		views = append(views, NewOfferView(offer))
	}
	return views
}

// ContactView is the shape of a delivery contact.
type ContactView struct {
	ID        uuid.UUID `json:"id"`
	City      string    `json:"city"`
	Street    string    `json:"street"`
	House     string    `json:"house,omitempty"`
	Structure string    `json:"structure,omitempty"`
	Building  string    `json:"building,omitempty"`
	Apartment string    `json:"apartment,omitempty"`
	Phone     string    `json:"phone"`
}

// NewContactView converts a contact entity.
func NewContactView(contact *identity.Contact) ContactView {
	return ContactView{
		ID:        contact.ID,
		City:      contact.City,
		Street:    contact.Street,
		House:     contact.House,
		Structure: contact.Structure,
		Building:  contact.Building,
		Apartment: contact.Apartment,
		Phone:     contact.Phone,
	}
}

// NewContactViews converts a contact list.
func NewContactViews(contacts []*identity.Contact) []ContactView {
	views := make([]ContactView, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, NewContactView(contact))
	}
	return views
}

// OrderItemView is one position inside an order.
type OrderItemView struct {
	ID       uuid.UUID       `json:"id"`
	Offer    OfferView       `json:"offer"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// OrderView is the shape of a basket or placed order with its total.
type OrderView struct {
	ID        uuid.UUID       `json:"id"`
	Status    string          `json:"status"`
	ContactID *uuid.UUID      `json:"contact_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Items     []OrderItemView `json:"items"`
	Total     decimal.Decimal `json:"total"`
}

// NewOrderView converts an order with preloaded items and offers.
func NewOrderView(order *ordering.Order) OrderView {
	items := make([]OrderItemView, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, OrderItemView{
			ID:       item.ID,
			Offer:    NewOfferView(&item.ProductInfo),
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		})
	}
	return OrderView{
		ID:        order.ID,
		Status:    string(order.Status),
		ContactID: order.ContactID,
		CreatedAt: order.CreatedAt,
		Items:     items,
		Total:     order.Total(),
	}
}

// NewOrderViews converts an order list.
func NewOrderViews(orders []*ordering.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, NewOrderView(order))
	}
	return views
}
