package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

// RequireRole guards a route group so only users carrying the given
// role claim may pass. Must run after JWT authentication.
func RequireRole(role identity.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != string(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				dto.ErrCodeForbidden,
				"This endpoint requires the "+string(role)+" role",
			))
			return
		}
		c.Next()
	}
}

// RequireSupplier guards supplier-only routes.
func RequireSupplier() gin.HandlerFunc {
	return RequireRole(identity.RoleSupplier)
}

// RequireCustomer guards customer-only routes.
func RequireCustomer() gin.HandlerFunc {
	return RequireRole(identity.RoleCustomer)
}
