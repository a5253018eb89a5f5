package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirhossein-jamali/calendar-duration/internal/domain/port/usecase"
	calendarUseCase "github.com/amirhossein-jamali/calendar-duration/internal/domain/usecase/calendar"
	presetUseCase "github.com/amirhossein-jamali/calendar-duration/internal/domain/usecase/preset"

	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/calendar-duration/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "calendar-duration"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.NewZapLogger(logger.Options{
		Format:  cfg.Logger.Format,
		Level:   cfg.Logger.Level,
		Service: serviceName,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Flush()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tp := timeProvider.NewRealTimeProvider()
	ctx := context.Background()

	// Connect to the database
	dbConfig := database.NewConfig(cfg.Database, cfg.Logger.Level)
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Repositories and use cases
	presetRepo := repository.NewPresetRepository(dbManager.DB(), tp, appLogger)
	presets := presetUseCase.NewService(presetRepo, tp, appLogger)
	calendar := calendarUseCase.NewService(presetRepo, tp, appLogger, calendarUseCase.Limits{
		MaxWalkLimit:    cfg.Calendar.MaxWalkLimit,
		MaxIterateItems: cfg.Calendar.MaxIterateItems,
	})

	if cfg.Presets.SeedDefaults {
		if err := presets.SeedDefaults(ctx, presetDefinitions(cfg)); err != nil {
			appLogger.Error("Failed to seed default presets", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if statsCollector, err := dbManager.StatsCollector(); err == nil {
		registry.MustRegister(statsCollector)
	} else {
		appLogger.Warn("Database stats are not exported", map[string]any{
			"error": err.Error(),
		})
	}
	metrics := middleware.NewMetrics(registry)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp, metrics)
	routes.SetupRoutes(router, routes.Handlers{
		Duration: handler.NewDurationHandler(calendar, appLogger),
		Preset:   handler.NewPresetHandler(presets, appLogger),
		Health:   handler.NewHealthHandler(dbManager, appLogger),
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":     server.Addr,
			"env":      cfg.Environment,
			"database": dbConfig.Redacted(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := tp.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// presetDefinitions prefers the presets listed in configuration over the built-in set
func presetDefinitions(cfg *config.Config) []usecase.PresetDefinition {
	if len(cfg.Presets.Defaults) == 0 {
		return presetUseCase.DefaultPresets()
	}

	definitions := make([]usecase.PresetDefinition, 0, len(cfg.Presets.Defaults))
	for _, p := range cfg.Presets.Defaults {
		definitions = append(definitions, usecase.PresetDefinition{
			Name:        p.Name,
			Duration:    p.Duration,
			Description: p.Description,
		})
	}
	return definitions
}
