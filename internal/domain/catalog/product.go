package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketplace/backend/internal/domain/shared"
)

// Product is a catalog entry owned by a shop. ExternalID is the
// supplier's own identifier from the price list; it is unique per shop
// and is the upsert key during import.
type Product struct {
	shared.BaseEntity
	ShopID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_products_shop_external"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null"`
	ExternalID int64     `gorm:"not null;uniqueIndex:idx_products_shop_external"`
	Name       string    `gorm:"size:200;not null"`
	Category   Category  `gorm:"foreignKey:CategoryID"`
}

// NewProduct validates and builds a product.
func NewProduct(shopID, categoryID uuid.UUID, externalID int64, name string) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "product name cannot be empty")
	}
	if externalID <= 0 {
		return nil, shared.NewDomainError("INVALID_EXTERNAL_ID", "product external id must be positive")
	}
	return &Product{
		ShopID:     shopID,
		CategoryID: categoryID,
		ExternalID: externalID,
		Name:       name,
	}, nil
}

// ProductInfo is a sellable offer of a product: model variant, stock
// quantity and the two price points from the supplier's list. This is
// what baskets and orders reference.
type ProductInfo struct {
	shared.BaseEntity
	ProductID  uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_product_infos_offer"`
	ShopID     uuid.UUID          `gorm:"type:uuid;index;not null;uniqueIndex:idx_product_infos_offer"`
	Model      string             `gorm:"size:80;uniqueIndex:idx_product_infos_offer"`
	Quantity   int                `gorm:"not null;uniqueIndex:idx_product_infos_offer"`
	Price      decimal.Decimal    `gorm:"type:numeric(20,2);not null;uniqueIndex:idx_product_infos_offer"`
	PriceRRC   decimal.Decimal    `gorm:"type:numeric(20,2);not null;uniqueIndex:idx_product_infos_offer"`
	Product    Product            `gorm:"foreignKey:ProductID"`
	Parameters []ProductParameter `gorm:"foreignKey:ProductInfoID"`
}

// NewProductInfo validates and builds an offer.
func NewProductInfo(productID, shopID uuid.UUID, model string, quantity int, price, priceRRC decimal.Decimal) (*ProductInfo, error) {
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "stock quantity cannot be negative")
	}
	if price.IsNegative() || priceRRC.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "price cannot be negative")
	}
	return &ProductInfo{
		ProductID: productID,
		ShopID:    shopID,
		Model:     strings.TrimSpace(model),
		Quantity:  quantity,
		Price:     price,
		PriceRRC:  priceRRC,
	}, nil
}

// InStock reports whether at least one unit is available.
func (pi *ProductInfo) InStock() bool {
	return pi.Quantity > 0
}

// Parameter is a global characteristic name such as "Color" or
// "Diagonal". Values live on ProductParameter.
type Parameter struct {
	shared.BaseEntity
	Name string `gorm:"size:40;uniqueIndex;not null"`
}

// ProductParameter links an offer to a parameter with a concrete value.
type ProductParameter struct {
	shared.BaseEntity
	ProductInfoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_pair"`
	ParameterID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_parameters_pair"`
	Value         string    `gorm:"size:100;not null"`
	Parameter     Parameter `gorm:"foreignKey:ParameterID"`
}
