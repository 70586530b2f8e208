package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsRouter(cfg CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORSWithConfig(cfg))
	engine.GET("/shops", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return engine
}

func doCORSRequest(engine *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/shops", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("whitelisted origin gets headers", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://shop.example.com"}
		rec := doCORSRequest(corsRouter(cfg), http.MethodGet, "https://shop.example.com")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://shop.example.com"}
		rec := doCORSRequest(corsRouter(cfg), http.MethodGet, "https://evil.example.com")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("empty whitelist disables CORS entirely", func(t *testing.T) {
		rec := doCORSRequest(corsRouter(DefaultCORSConfig()), http.MethodGet, "https://shop.example.com")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}
		rec := doCORSRequest(corsRouter(cfg), http.MethodGet, "https://anywhere.example.com")

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("preflight from allowed origin", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://shop.example.com"}
		cfg.MaxAge = time.Hour
		rec := doCORSRequest(corsRouter(cfg), http.MethodOptions, "https://shop.example.com")

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("preflight from unlisted origin still gets 204", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"https://shop.example.com"}
		rec := doCORSRequest(corsRouter(cfg), http.MethodOptions, "https://evil.example.com")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("expose headers advertised", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"*"}
		rec := doCORSRequest(corsRouter(cfg), http.MethodGet, "https://shop.example.com")

		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
	})
}

func TestDefaultCORSConfig(t *testing.T) {
	cfg := DefaultCORSConfig()
	assert.Empty(t, cfg.AllowOrigins)
	assert.True(t, cfg.AllowCredentials)
	assert.Contains(t, cfg.AllowMethods, "OPTIONS")
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		assert.Equal(t, rec.Header().Get("X-Request-ID"), seen)
	})

	t.Run("propagates the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-42")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, "upstream-42", rec.Header().Get("X-Request-ID"))
		assert.Equal(t, "upstream-42", seen)
	})
}

func secureRouter(cfg SecurityConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(SecureWithConfig(cfg))
	engine.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestSecureWithConfig(t *testing.T) {
	t.Run("baseline headers always present", func(t *testing.T) {
		rec := httptest.NewRecorder()
		secureRouter(DefaultSecurityConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
		assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
		assert.NotEmpty(t, rec.Header().Get("Permissions-Policy"))
	})

	t.Run("hsts off by default", func(t *testing.T) {
		rec := httptest.NewRecorder()
		secureRouter(DefaultSecurityConfig()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("hsts header assembled from config", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.HSTSEnabled = true
		cfg.HSTSMaxAge = 600
		cfg.HSTSPreload = true
		rec := httptest.NewRecorder()
		secureRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "max-age=600; includeSubDomains; preload", rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("csp can be disabled", func(t *testing.T) {
		cfg := DefaultSecurityConfig()
		cfg.CSPEnabled = false
		rec := httptest.NewRecorder()
		secureRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	})
}
