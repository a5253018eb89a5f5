package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/time"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newRouter(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(handlers...)
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/panic", func(c *gin.Context) { panic("boom") })
	router.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	return router
}

func serve(router *gin.Engine, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		for _, value := range v {
			req.Header.Add(k, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	router := newRouter(t, RequestID())

	t.Run("Generated", func(t *testing.T) {
		w := serve(router, "/ping", nil)
		_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("Propagated", func(t *testing.T) {
		w := serve(router, "/ping", http.Header{RequestIDHeader: {"abc-123"}})
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("Propagated in lower case", func(t *testing.T) {
		w := serve(router, "/ping", http.Header{"x-request-id": {"def-456"}})
		assert.Equal(t, "def-456", w.Header().Get(RequestIDHeader))
	})
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromCore(obs, core.LogLevelDebug)

	router := newRouter(t, RequestID(), ErrorHandler(log))
	w := serve(router, "/panic", http.Header{RequestIDHeader: {"req-1"}})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domainerr.CodeInternalServer, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)

	entries := logs.FilterMessage("Panic recovered in API request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error"])
	assert.NotEmpty(t, entries[0].ContextMap()["stack"])
	assert.Nil(t, resp.Details)
}

func TestLoggerLevels(t *testing.T) {
	obs, logs := observer.New(zapcore.DebugLevel)
	log := logger.NewFromCore(obs, core.LogLevelDebug)

	router := newRouter(t, Logger(log, timeprovider.NewRealTimeProvider()))
	serve(router, "/ping", nil)
	serve(router, "/missing", nil)

	assert.Equal(t, 1, logs.FilterMessage("Request processed").Len())
	rejected := logs.FilterMessage("Request rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, zapcore.WarnLevel, rejected[0].Level)
	assert.EqualValues(t, http.StatusNotFound, rejected[0].ContextMap()["status"])

	t.Run("Quiet paths log at debug", func(t *testing.T) {
		obs, logs := observer.New(zapcore.DebugLevel)
		log := logger.NewFromCore(obs, core.LogLevelDebug)

		router := newRouter(t, Logger(log, timeprovider.NewRealTimeProvider(), "/ping"))
		serve(router, "/ping?probe=1", nil)
		serve(router, "/missing", nil)

		processed := logs.FilterMessage("Request processed").All()
		require.Len(t, processed, 1)
		assert.Equal(t, zapcore.DebugLevel, processed[0].Level)
		assert.Equal(t, "probe=1", processed[0].ContextMap()["query"])
		assert.Equal(t, 1, logs.FilterMessage("Request rejected").Len())
	})
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	router := newRouter(t, metrics.Middleware(timeprovider.NewRealTimeProvider()))
	serve(router, "/ping", nil)
	serve(router, "/ping", nil)
	serve(router, "/nowhere", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "/ping", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.InFlight))
	assert.Equal(t, 2, testutil.CollectAndCount(metrics.RequestDuration))
}
