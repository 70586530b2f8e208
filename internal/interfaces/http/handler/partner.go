package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	orderingapp "github.com/marketplace/backend/internal/application/ordering"
	"github.com/marketplace/backend/internal/domain/ordering"
	"github.com/marketplace/backend/internal/infrastructure/queue"
	"github.com/marketplace/backend/internal/infrastructure/storage"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// ImportPublisher hands price list jobs to the worker process.
type ImportPublisher interface {
	PublishImport(ctx context.Context, job queue.ImportJob) error
}

// PartnerHandler handles the supplier-facing endpoints: price list
// upload, shop state and the supplier view of placed orders.
type PartnerHandler struct {
	BaseHandler
	catalogService *catalogapp.Service
	orderService   *orderingapp.Service
	fileStorage    storage.FileStorage
	publisher      ImportPublisher
	maxFileSize    int64
	logger         *zap.Logger
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(
	catalogService *catalogapp.Service,
	orderService *orderingapp.Service,
	fileStorage storage.FileStorage,
	publisher ImportPublisher,
	maxFileSize int64,
	logger *zap.Logger,
) *PartnerHandler {
	return &PartnerHandler{
		catalogService: catalogService,
		orderService:   orderService,
		fileStorage:    fileStorage,
		publisher:      publisher,
		maxFileSize:    maxFileSize,
		logger:         logger.Named("partner_handler"),
	}
}

// Update handles POST /partner/update. The uploaded price list is
// stored and a job is queued; the response only acknowledges
// acceptance, not completion.
func (h *PartnerHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "multipart field 'file' is required")
		return
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeFileTooLarge, "price list exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	key := storage.PriceListKey(userID, fileHeader.Filename)
	ctx := c.Request.Context()

	if err := h.fileStorage.Save(ctx, key, data); err != nil {
		h.logger.Error("Failed to store price list",
			zap.String("user_id", userID.String()),
			zap.String("key", key),
			zap.Error(err))
		h.InternalError(c, "Failed to store uploaded file")
		return
	}

	job := queue.ImportJob{
		UserID:   userID,
		FileRef:  key,
		FileName: fileHeader.Filename,
	}
	if err := h.publisher.PublishImport(ctx, job); err != nil {
		h.logger.Error("Failed to queue import job",
			zap.String("user_id", userID.String()),
			zap.String("file_ref", key),
			zap.Error(err))
		h.InternalError(c, "Failed to queue import job")
		return
	}

	h.logger.Info("Price list accepted",
		zap.String("user_id", userID.String()),
		zap.String("file_ref", key),
		zap.Int64("size", fileHeader.Size))

	h.Accepted(c, "Price list accepted for processing")
}

// GetState handles GET /partner/state.
func (h *PartnerHandler) GetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	shop, err := h.catalogService.GetShopState(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewShopView(shop))
}

// SetState handles POST /partner/state.
func (h *PartnerHandler) SetState(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ShopStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shop, err := h.catalogService.SetShopState(c.Request.Context(), userID, *req.State)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewShopView(shop))
}

// Orders handles GET /partner/orders: placed orders containing items
// from the supplier's shop.
func (h *PartnerHandler) Orders(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.PartnerOrders(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderViews(orders))
}

// AdvanceStatus handles POST /partner/order/:id/status: moves one of
// the supplier's orders along the fulfilment lifecycle.
func (h *PartnerHandler) AdvanceStatus(c *gin.Context) {
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

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.orderService.AdvanceStatus(c.Request.Context(), userID, orderID, ordering.OrderStatus(req.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.NewOrderView(order))
}

// RegisterRoutes registers supplier routes
func (h *PartnerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	partner := rg.Group("/partner")
	partner.Use(middleware.RequireSupplier())
	{
		partner.POST("/update", h.Update)
		partner.GET("/state", h.GetState)
		partner.POST("/state", h.SetState)
		partner.GET("/orders", h.Orders)
		partner.POST("/order/:id/status", h.AdvanceStatus)
	}
}
