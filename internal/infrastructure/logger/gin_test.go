package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func setupGin() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware_LogsRequest(t *testing.T) {
	setupGin()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(logger))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping?q=1", nil)
	router.ServeHTTP(w, req)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "/ping", ctx["path"])
	assert.Equal(t, int64(http.StatusOK), ctx["status"])
	assert.Equal(t, "q=1", ctx["query"])
}

func TestGinMiddleware_WarnsOnClientError(t *testing.T) {
	setupGin()
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(GinMiddleware(logger))
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestRecovery_RecoversFromPanic(t *testing.T) {
	setupGin()
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	router := gin.New()
	router.Use(Recovery(logger))
	router.GET("/boom", func(c *gin.Context) {
		panic("something broke")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Panic recovered", entries[0].Message)
}

func TestGetGinLogger(t *testing.T) {
	setupGin()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// No logger set yet
	assert.NotNil(t, GetGinLogger(c))

	logger := zap.NewNop()
	c.Set("logger", logger)
	assert.Same(t, logger, GetGinLogger(c))
}
