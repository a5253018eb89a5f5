package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/entity"
	domainerr "github.com/amirhossein-jamali/calendar-duration/internal/domain/error"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/usecase/calendar"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/usecase/preset"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/repository"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNoopLogger()
	testDB := database.NewTestDBManager(t, log)
	clock := testDB.TimeProvider
	presetRepo := repository.NewPresetRepository(testDB.Manager.DB(), clock, log)

	registry := prometheus.NewRegistry()
	router := gin.New()
	SetupMiddlewares(router, log, clock, middleware.NewMetrics(registry))
	SetupRoutes(router, Handlers{
		Duration: handler.NewDurationHandler(calendar.NewService(presetRepo, clock, log, calendar.Limits{MaxWalkLimit: 10, MaxIterateItems: 50}), log),
		Preset:   handler.NewPresetHandler(preset.NewService(presetRepo, clock, log), log),
		Health:   handler.NewHealthHandler(testDB.Manager, log),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	return router
}

func do(t *testing.T, router *gin.Engine, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func withQuery(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return path + "?" + q.Encode()
}

func at(s string) float64 {
	return entity.MustTimestamp(s)
}

func TestDescribeRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/durations/20w", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[dto.DurationResponse](t, w)
	assert.Equal(t, "20w", resp.Duration)
	assert.Equal(t, int64(20), resp.Magnitude)
	assert.Equal(t, "1y", resp.Parent)
	assert.True(t, resp.IsCalendarRequired)
	assert.False(t, resp.HasExactSeconds)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	t.Run("Unknown unit", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/durations/1fortnight", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[dto.ErrorResponse](t, w)
		assert.Equal(t, domainerr.CodeInvalidInput, resp.Code)
		require.NotNil(t, resp.Details)
		assert.Equal(t, "1fortnight", resp.Details.Input)
		assert.Contains(t, resp.Details.Reason, "unknown unit")
	})

	t.Run("Negative magnitude", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/durations/-1d", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidMagnitude, decode[dto.ErrorResponse](t, w).Code)
	})
}

func TestSpanAndAlignRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, withQuery("/durations/1M/span", map[string]string{"t": "2018-12-07 13:12"}), nil)
	require.Equal(t, http.StatusOK, w.Code)
	span := decode[dto.SpanResponse](t, w).Span
	assert.Equal(t, at("2018-12-01"), span.Start)
	assert.Equal(t, at("2019-01-01"), span.End)
	assert.False(t, span.StartOpen)
	assert.True(t, span.EndOpen)
	assert.Equal(t, 2018, span.StartTime.Year())

	testCases := []struct {
		path     string
		expected string
	}{
		{"/durations/1d/floor", "2018-12-07"},
		{"/durations/1d/ceil", "2018-12-08"},
		{"/durations/1h/next", "2018-12-07 14:00"},
		{"/durations/1h/previous", "2018-12-07 13:00"},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			w := do(t, router, http.MethodGet, withQuery(tc.path, map[string]string{"t": "2018-12-07 13:12"}), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, at(tc.expected), decode[dto.PointResponse](t, w).Seconds)
		})
	}

	t.Run("Step", func(t *testing.T) {
		w := do(t, router, http.MethodGet, withQuery("/durations/1M/step", map[string]string{
			"t":     "2018-06-07 13:12",
			"count": "3",
		}), nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, at("2018-09-01"), decode[dto.PointResponse](t, w).Seconds)
	})

	t.Run("Invalid timestamp", func(t *testing.T) {
		w := do(t, router, http.MethodGet, withQuery("/durations/1d/floor", map[string]string{"t": "someday"}), nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidTimestamp, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Invalid boolean", func(t *testing.T) {
		w := do(t, router, http.MethodGet, withQuery("/durations/1d/span", map[string]string{"startOpen": "maybe"}), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestWalkRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/durations/1h/walk?t=7200&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[dto.SpansResponse](t, w)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, 7200.0, resp.Spans[0].Start)
	assert.Equal(t, 14400.0, resp.Spans[1].End)

	t.Run("Limit is capped by configuration", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/durations/1h/walk?t=0&limit=500", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 10, decode[dto.SpansResponse](t, w).Count)
	})

	t.Run("Missing limit", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/durations/1h/walk?t=0", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestIntervalRoutes(t *testing.T) {
	router := newTestRouter(t)

	interval := map[string]any{"start": "2018-05-02", "end": "2018-06-03"}

	t.Run("Iterate", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1M/iterate", map[string]any{"interval": interval})
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode[dto.SpansResponse](t, w)
		require.Equal(t, 2, resp.Count)
		assert.Equal(t, at("2018-05-01"), resp.Spans[0].Start)
		assert.Equal(t, at("2018-07-01"), resp.Spans[1].End)
	})

	t.Run("Iterate over the configured cap", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1h/iterate", map[string]any{
			"interval": map[string]any{"start": 0, "end": 86400 * 30},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidRequest, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Count", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1M/count", map[string]any{
			"interval": map[string]any{"start": "2018-01-01", "end": "2019-01-01", "endOpen": true},
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12, decode[dto.CountResponse](t, w).Count)
	})

	t.Run("Span interval", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1h/span-interval", map[string]any{
			"interval": map[string]any{"start": 3600, "end": 7200, "endOpen": true},
		})
		require.Equal(t, http.StatusOK, w.Code)
		span := decode[dto.SpanResponse](t, w).Span
		assert.Equal(t, 3600.0, span.Start)
		assert.Equal(t, 7200.0, span.End)
	})

	t.Run("Pad", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1d/pad", map[string]any{
			"interval": map[string]any{"start": "2018-03-10", "end": "2019-03-20"},
			"start":    2,
			"end":      3,
		})
		require.Equal(t, http.StatusOK, w.Code)
		span := decode[dto.SpanResponse](t, w).Span
		assert.Equal(t, at("2018-03-08"), span.Start)
		assert.Equal(t, at("2019-03-23"), span.End)
	})

	t.Run("Malformed body", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/durations/1d/count", map[string]any{"interval": map[string]any{"start": true}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestArithmeticRoute(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/durations/1h/arithmetic?op=mul&operand=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7200.0, decode[dto.ArithmeticResponse](t, w).Result)

	w = do(t, router, http.MethodGet, "/durations/1M/arithmetic?op=div&operand=2", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errResp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, domainerr.CodeIncompatibleOperation, errResp.Code)
	require.NotNil(t, errResp.Details)
	assert.Equal(t, "divide", errResp.Details.Operation)
	require.NotNil(t, errResp.Details.MinSeconds)
	require.NotNil(t, errResp.Details.MaxSeconds)
	assert.Equal(t, 28*86400.0, *errResp.Details.MinSeconds)
	assert.Equal(t, 31*86400.0, *errResp.Details.MaxSeconds)

	w = do(t, router, http.MethodGet, "/durations/1h/arithmetic?op=pow&operand=2", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/durations/1h/arithmetic?op=add&operand=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPresetRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/presets", dto.PresetRequest{Name: "Quarterly", Duration: "3 months", Description: "Fiscal quarter"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[dto.PresetResponse](t, w)
	assert.Equal(t, "quarterly", created.Name)
	assert.Equal(t, "3M", created.Duration)

	t.Run("Duplicate", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/presets", dto.PresetRequest{Name: "quarterly", Duration: "1M"})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, domainerr.CodeDuplicatePreset, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Invalid name", func(t *testing.T) {
		w := do(t, router, http.MethodPost, "/presets", dto.PresetRequest{Name: "no spaces", Duration: "1M"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domainerr.CodeInvalidPresetName, decode[dto.ErrorResponse](t, w).Code)
	})

	t.Run("Preset names resolve in duration routes", func(t *testing.T) {
		w := do(t, router, http.MethodGet, withQuery("/durations/quarterly/span", map[string]string{"t": "2018-12-07"}), nil)
		require.Equal(t, http.StatusOK, w.Code)
		span := decode[dto.SpanResponse](t, w).Span
		assert.Equal(t, at("2018-10-01"), span.Start)
		assert.Equal(t, at("2019-01-01"), span.End)

		w = do(t, router, http.MethodGet, "/durations/quarterly", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "quarterly", decode[dto.DurationResponse](t, w).Preset)
	})

	t.Run("List", func(t *testing.T) {
		w := do(t, router, http.MethodGet, "/presets", nil)
		require.Equal(t, http.StatusOK, w.Code)
		list := decode[dto.PresetListResponse](t, w)
		require.Len(t, list.Presets, 1)
		assert.Equal(t, "Fiscal quarter", list.Presets[0].Description)
	})

	t.Run("Update then delete", func(t *testing.T) {
		w := do(t, router, http.MethodPut, "/presets/quarterly", dto.PresetRequest{Duration: "1M"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1M", decode[dto.PresetResponse](t, w).Duration)

		w = do(t, router, http.MethodGet, "/presets/quarterly", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1M", decode[dto.PresetResponse](t, w).Duration)

		w = do(t, router, http.MethodDelete, "/presets/quarterly", nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = do(t, router, http.MethodGet, "/presets/quarterly", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, domainerr.CodePresetNotFound, decode[dto.ErrorResponse](t, w).Code)
	})
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.HealthResponse{Status: "ok", Database: "ok"}, decode[dto.HealthResponse](t, w))

	do(t, router, http.MethodGet, "/durations/1d", nil)

	w = do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `calendar_duration_http_requests_total{endpoint="/durations/:duration",method="GET",status="200"} 1`)
}
