package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderingapp "github.com/marketplace/backend/internal/application/ordering"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles placed orders for customers.
type OrderHandler struct {
	BaseHandler
	orderService *orderingapp.Service
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderingapp.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// ListOrders handles GET /order.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderViews(orders))
}

// GetOrder handles GET /order/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "order id must be a valid UUID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderView(order))
}

// Checkout handles POST /order: it places the caller's basket with the
// chosen delivery contact.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), orderingapp.CheckoutInput{
		UserID:    userID,
		OrderID:   req.ID,
		ContactID: req.Contact,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, dto.NewOrderView(order))
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	order := rg.Group("/order")
	order.Use(middleware.RequireCustomer())
	{
		order.GET("", h.ListOrders)
		order.GET("/:id", h.GetOrder)
		order.POST("", h.Checkout)
	}
}
