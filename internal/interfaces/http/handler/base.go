package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getUserID extracts the authenticated user's ID from JWT claims.
func getUserID(c *gin.Context) (uuid.UUID, error) {
	userIDStr := middleware.GetJWTUserID(c)
	if userIDStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	return uuid.Parse(userIDStr)
}

// Success sends a 200 response carrying data.
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessMessage sends a 200 response with a message only.
func (h *BaseHandler) SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, dto.NewSuccessMessage(message))
}

// Created sends a 201 created response.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 response acknowledging asynchronous work.
func (h *BaseHandler) Accepted(c *gin.Context, message string) {
	c.JSON(http.StatusAccepted, dto.NewSuccessMessage(message))
}

// Error sends an error response with the given status code.
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message))
}

// BadRequest sends a 400 bad request response.
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response.
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// NotFound sends a 404 not found response.
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InternalError sends a 500 internal server error response.
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// BindError sends a 400 response for request binding failures.
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeInvalidInput, err.Error()))
}

// HandleError converts application and domain errors to HTTP responses.
// Unknown error types never leak their message to the client.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		statusCode := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(statusCode, dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
