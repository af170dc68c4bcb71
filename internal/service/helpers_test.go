package service

import (
	"context"
	"testing"
	"time"

	"equiptrack/internal/graph"
	"equiptrack/internal/models"
	"equiptrack/internal/normalize"
	"equiptrack/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var baseTime = time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	store       *repository.Store
	oracle      *graph.Oracle
	movements   *MovementService
	placement   *PlacementService
	utilization *UtilizationService
	maintenance *MaintenanceService
	recs        *RecommendationService
	imports     *ImportService
}

func newTestEnv(t *testing.T, g *graph.Graph) *testEnv {
	t.Helper()
	if g == nil {
		g = graph.Empty()
	}
	logger := zap.NewNop()
	store := repository.NewMemoryStore()
	oracle := graph.NewOracle(g, graph.DefaultDistanceFeet)

	env := &testEnv{
		store:       store,
		oracle:      oracle,
		movements:   NewMovementService(store, normalize.New(nil), oracle, nil, logger),
		placement:   NewPlacementService(oracle, logger),
		utilization: NewUtilizationService(UtilizationModeType, logger),
		maintenance: NewMaintenanceService(nil, logger),
	}
	env.recs = NewRecommendationService(store, env.placement, env.utilization, env.maintenance, nil, logger)
	env.imports = NewImportService(store, env.movements, logger)
	return env
}

// abcGraph is A-B (10 ft) and B-C (5 ft).
func abcGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		[]string{"A", "B", "C"},
		[]models.Edge{{A: "A", B: "B", Distance: 10}, {A: "B", B: "C", Distance: 5}},
		nil,
	)
	require.NoError(t, err)
	return g
}

func roomGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(
		[]string{"K1000", "K1001", "K1002", "K0110"},
		[]models.Edge{
			{A: "K1000", B: "K1001", Distance: 40.26},
			{A: "K1001", B: "K1002", Distance: 25},
			{A: "K0110", B: "K1000", Distance: 60},
		},
		nil,
	)
	require.NoError(t, err)
	return g
}

func row(line int, device, location, status string, in, out time.Time) models.RawEvent {
	return models.RawEvent{
		Line:     line,
		Device:   device,
		Location: location,
		Status:   status,
		In:       in.Format("2006-01-02 15:04:05"),
		Out:      out.Format("2006-01-02 15:04:05"),
	}
}

func movement(device, from, to, status string, in time.Time, hours float64) *models.Movement {
	return &models.Movement{
		ID:           uuid.New(),
		DeviceID:     device,
		FromLocation: from,
		ToLocation:   to,
		TimeIn:       in,
		TimeOut:      in.Add(time.Duration(hours * float64(time.Hour))),
		Status:       status,
		DwellHours:   hours,
		CreatedAt:    in,
	}
}

// alternating returns n movements bouncing between storage (available) and use (in use).
func alternating(device, storage, use string, n int) []*models.Movement {
	var out []*models.Movement
	for i := 0; i < n; i++ {
		in := baseTime.Add(time.Duration(i) * 6 * time.Hour)
		if i%2 == 0 {
			out = append(out, movement(device, storage, use, "In Use", in, 4))
		} else {
			out = append(out, movement(device, use, storage, "Available", in, 2))
		}
	}
	return out
}

func seed(t *testing.T, store *repository.Store, devices []*models.Device, movements []*models.Movement) {
	t.Helper()
	ctx := context.Background()
	for _, d := range devices {
		require.NoError(t, store.Devices.Upsert(ctx, d))
	}
	for _, m := range movements {
		require.NoError(t, store.Movements.Insert(ctx, m))
	}
}
