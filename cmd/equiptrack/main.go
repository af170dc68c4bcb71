package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"equiptrack/internal/api"
	"equiptrack/internal/api/handlers"
	"equiptrack/internal/app"
	"equiptrack/pkg/config"
	"equiptrack/pkg/logger"

	"go.uber.org/zap"
)

// @title Equiptrack API
// @version 1.0
// @description Hospital equipment movement analytics and recommendations

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting equiptrack service",
		zap.String("store", cfg.Store.Driver),
		zap.String("utilization_mode", cfg.Analytics.UtilizationMode),
	)

	ctx := context.Background()
	a, err := app.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	router := api.SetupRouter(api.Handlers{
		Imports:         handlers.NewImportHandler(a.Imports, logger.Component("imports")),
		Inventory:       handlers.NewInventoryHandler(a.Inventory, logger.Component("inventory")),
		Recommendations: handlers.NewRecommendationHandler(a.Recommendations, logger.Component("recommendations")),
	}, api.Options{
		BodyLimitMB:  cfg.Server.UploadMaxMB,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Metrics:      a.Metrics,
	}, appLogger)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := router.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
