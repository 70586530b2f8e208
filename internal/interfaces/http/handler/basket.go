package handler

import (
	"github.com/gin-gonic/gin"

	orderingapp "github.com/marketplace/backend/internal/application/ordering"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// BasketHandler handles basket mutations for customers.
type BasketHandler struct {
	BaseHandler
	orderService *orderingapp.Service
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(orderService *orderingapp.Service) *BasketHandler {
	return &BasketHandler{orderService: orderService}
}

// GetBasket handles GET /basket. An empty basket is a valid result.
func (h *BasketHandler) GetBasket(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	basket, err := h.orderService.GetBasket(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderView(basket))
}

// AddItems handles POST and PUT /basket. An offer already in the
// basket gets its quantity overwritten, not summed.
func (h *BasketHandler) AddItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.BasketWriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	items := make([]orderingapp.AddItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderingapp.AddItemInput{
			ProductInfoID: item.ProductInfo,
			Quantity:      item.Quantity,
		})
	}

	basket, err := h.orderService.AddItems(c.Request.Context(), userID, items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderView(basket))
}

// RemoveItems handles DELETE /basket.
func (h *BasketHandler) RemoveItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.BasketDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	deleted, err := h.orderService.RemoveItems(c.Request.Context(), userID, req.Items)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"deleted": deleted})
}

// RegisterRoutes registers basket routes
func (h *BasketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	basket := rg.Group("/basket")
	basket.Use(middleware.RequireCustomer())
	{
		basket.GET("", h.GetBasket)
		basket.POST("", h.AddItems)
		basket.PUT("", h.AddItems)
		basket.DELETE("", h.RemoveItems)
	}
}
