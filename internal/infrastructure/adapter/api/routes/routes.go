package routes

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/calendar-duration/internal/domain/port/core"
	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	Duration *handler.DurationHandler
	Preset   *handler.PresetHandler
	Health   *handler.HealthHandler
	Metrics  http.Handler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/health", h.Health.Health)
	if h.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.Metrics))
	}

	durationRoutes := router.Group("/durations/:duration")
	{
		durationRoutes.GET("", h.Duration.Describe)
		durationRoutes.GET("/span", h.Duration.Span)
		durationRoutes.GET("/floor", h.Duration.Align(usecase.AlignFloor))
		durationRoutes.GET("/ceil", h.Duration.Align(usecase.AlignCeil))
		durationRoutes.GET("/next", h.Duration.Align(usecase.AlignNext))
		durationRoutes.GET("/previous", h.Duration.Align(usecase.AlignPrevious))
		durationRoutes.GET("/step", h.Duration.Step)
		durationRoutes.GET("/walk", h.Duration.Walk)
		durationRoutes.GET("/arithmetic", h.Duration.Arithmetic)

		durationRoutes.POST("/span-interval", h.Duration.SpanInterval)
		durationRoutes.POST("/iterate", h.Duration.Iterate)
		durationRoutes.POST("/count", h.Duration.Count)
		durationRoutes.POST("/pad", h.Duration.Pad)
	}

	presetRoutes := router.Group("/presets")
	{
		presetRoutes.GET("", h.Preset.List)
		presetRoutes.POST("", h.Preset.Create)
		presetRoutes.GET("/:name", h.Preset.Get)
		presetRoutes.PUT("/:name", h.Preset.Update)
		presetRoutes.DELETE("/:name", h.Preset.Delete)
	}
}

// SetupMiddlewares configures global middlewares for the API. metrics may be nil.
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, metrics *middleware.Metrics) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider, "/health", "/metrics"))
	if metrics != nil {
		router.Use(metrics.Middleware(timeProvider))
	}
}
