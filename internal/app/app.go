// Package app wires configuration into the store, location graph and services.
package app

import (
	"context"
	"fmt"

	"equiptrack/internal/graph"
	"equiptrack/internal/normalize"
	"equiptrack/internal/repository"
	"equiptrack/internal/service"
	"equiptrack/pkg/config"
	"equiptrack/pkg/metrics"
	"equiptrack/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type App struct {
	Store   *repository.Store
	Oracle  *graph.Oracle
	Metrics *metrics.Registry

	Movements       *service.MovementService
	Imports         *service.ImportService
	Inventory       *service.InventoryService
	Recommendations *service.RecommendationService

	pool *pgxpool.Pool
}

// New opens the configured store, loads the location graph and alias table
// and builds the services on top of them.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{}
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.DefaultRegistry()
	}

	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("Using in-memory store, data is lost on exit")
		a.Store = repository.NewMemoryStore()
	default:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		a.pool = pool
		a.Store = repository.NewPostgresStore(pool, logger)
	}

	g, err := graph.LoadDefinition(cfg.Analytics.GraphFile, logger)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load location graph: %w", err)
	}
	a.Oracle = graph.NewOracle(g, cfg.Analytics.DefaultDistanceFt)

	var aliases map[string]string
	if cfg.Analytics.AliasFile != "" {
		loaded, err := normalize.LoadAliases(cfg.Analytics.AliasFile)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to load location aliases: %w", err)
		}
		aliases = loaded
	}

	a.Movements = service.NewMovementService(a.Store, normalize.New(aliases), a.Oracle, a.Metrics, logger.With(zap.String("component", "movements")))
	a.Imports = service.NewImportService(a.Store, a.Movements, logger.With(zap.String("component", "imports")))
	a.Inventory = service.NewInventoryService(a.Store)
	a.Recommendations = service.NewRecommendationService(
		a.Store,
		service.NewPlacementService(a.Oracle, logger.With(zap.String("component", "placement"))),
		service.NewUtilizationService(cfg.Analytics.UtilizationMode, logger.With(zap.String("component", "utilization"))),
		service.NewMaintenanceService(cfg.Analytics.MaintenanceThresholds, logger.With(zap.String("component", "maintenance"))),
		a.Metrics,
		logger.With(zap.String("component", "recommendations")),
	)

	return a, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
