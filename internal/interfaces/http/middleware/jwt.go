package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/interfaces/http/dto"
)

const (
	JWTClaimsKey  = "jwt_claims"
	JWTUserIDKey  = "jwt_user_id"
	JWTRoleKey    = "jwt_role"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware.
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist, when set, rejects tokens revoked by logout.
	TokenBlacklist auth.TokenBlacklist
	// SkipPaths are matched exactly and served without authentication.
	SkipPaths []string
	Logger    *zap.Logger
}

// DefaultJWTConfig skips the public surface: health, registration,
// login and the read-only catalog.
func DefaultJWTConfig(jwtService *auth.JWTService) JWTMiddlewareConfig {
	return JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/health",
			"/api/v1/user/register",
			"/api/v1/user/register/confirm",
			"/api/v1/user/login",
			"/api/v1/shops",
			"/api/v1/categories",
			"/api/v1/products",
		},
	}
}

// JWTAuthMiddleware authenticates with the default configuration.
func JWTAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return JWTAuthMiddlewareWithConfig(DefaultJWTConfig(jwtService))
}

// JWTAuthMiddlewareWithConfig validates the bearer token on every
// request outside SkipPaths and exposes the claims through the gin
// context and the request context logger.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip {
				c.Next()
				return
			}
		}

		token, reason := bearerToken(c)
		if token == "" {
			rejectUnauthorized(c, cfg, auth.ErrInvalidToken, reason)
			return
		}

		claims, err := cfg.JWTService.ValidateToken(token)
		if err != nil {
			rejectUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		// Blacklist lookups fail open: an unavailable Redis must not
		// take the whole API down with it.
		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			switch {
			case err != nil:
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			case revoked:
				rejectUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTRoleKey, claims.Role)

		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// bearerToken extracts the token from the Authorization header. The
// second return value describes what was wrong when the token is empty.
func bearerToken(c *gin.Context) (string, string) {
	header := c.GetHeader(AuthHeaderKey)
	switch {
	case header == "":
		return "", "Missing authorization header"
	case !strings.HasPrefix(header, BearerPrefix):
		return "", "Invalid authorization header format"
	}
	token := strings.TrimPrefix(header, BearerPrefix)
	if token == "" {
		return "", "Missing token"
	}
	return token, ""
}

func rejectUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, reason string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("JWT authentication failed",
			zap.Error(err),
			zap.String("message", reason),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code, msg := dto.ErrCodeUnauthorized, "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code, msg = "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		code, msg = "INVALID_TOKEN", "Invalid token"
	case auth.ErrTokenNotYetValid:
		code, msg = "INVALID_TOKEN", "Token is not yet valid"
	case auth.ErrTokenBlacklisted:
		code, msg = "TOKEN_REVOKED", "Token has been revoked"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(code, msg))
}

// GetJWTClaims returns the validated claims, or nil outside an
// authenticated request.
func GetJWTClaims(c *gin.Context) *auth.Claims {
	v, _ := c.Get(JWTClaimsKey)
	claims, _ := v.(*auth.Claims)
	return claims
}

// GetJWTUserID returns the authenticated user's ID, or "".
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTRole returns the authenticated user's role, or "".
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}
