package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/marketplace/backend/internal/application/identity"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, confirmation and token endpoints.
type AuthHandler struct {
	BaseHandler
	accountService *identityapp.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accountService *identityapp.AccountService) *AuthHandler {
	return &AuthHandler{accountService: accountService}
}

// Register handles POST /user/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.accountService.Register(c.Request.Context(), identityapp.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Company:   req.Company,
		Position:  req.Position,
		Role:      identity.UserRole(req.Role),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Confirm handles GET /user/register/confirm.
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	err := h.accountService.Confirm(c.Request.Context(), identityapp.ConfirmInput{
		Email: req.Email,
		Key:   req.Token,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessMessage(c, "Account confirmed")
}

// Login handles POST /user/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.accountService.Login(c.Request.Context(), identityapp.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout handles POST /user/logout. The presented token's jti is
// blacklisted until it would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.accountService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessMessage(c, "Logged out")
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/register", h.Register)
		user.GET("/register/confirm", h.Confirm)
		user.POST("/login", h.Login)
		user.POST("/logout", h.Logout)
	}
}
