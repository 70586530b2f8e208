package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	"github.com/marketplace/backend/internal/domain/catalog"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles the public catalog endpoints. No
// authentication is required; only offers from open shops are visible.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *catalogapp.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListShops handles GET /shops.
func (h *CatalogHandler) ListShops(c *gin.Context) {
	shops, err := h.catalogService.ListShops(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewShopViews(shops))
}

// ListCategories handles GET /categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewCategoryViews(categories))
}

// SearchOffers handles GET /products with optional shop_id and
// category_id query filters.
func (h *CatalogHandler) SearchOffers(c *gin.Context) {
	var filter catalog.OfferFilter

	if raw := c.Query("shop_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "shop_id must be a valid UUID")
			return
		}
		filter.ShopID = &id
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "category_id must be a valid UUID")
			return
		}
		filter.CategoryID = &id
	}

	offers, err := h.catalogService.SearchOffers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOfferViews(offers))
}

// RegisterRoutes registers public catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/shops", h.ListShops)
	rg.GET("/categories", h.ListCategories)
	rg.GET("/products", h.SearchOffers)
}
