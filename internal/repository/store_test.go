package repository_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"equiptrack/internal/models"
	"equiptrack/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

// runStoreSuite checks behavior every Store implementation must share.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) *repository.Store) {
	t.Run("devices", func(t *testing.T) { testDevices(t, newStore(t)) })
	t.Run("locations", func(t *testing.T) { testLocations(t, newStore(t)) })
	t.Run("movements", func(t *testing.T) { testMovements(t, newStore(t)) })
	t.Run("recommendations", func(t *testing.T) { testRecommendations(t, newStore(t)) })
	t.Run("imports", func(t *testing.T) { testImports(t, newStore(t)) })
	t.Run("reset", func(t *testing.T) { testReset(t, newStore(t)) })
}

func testDevices(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	_, err := store.Devices.Get(ctx, "Vent-1")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	serviced := t0.Add(-24 * time.Hour)
	vent := &models.Device{
		DeviceID:        "Vent-1",
		DeviceType:      "Vent",
		Status:          "In Use",
		CurrentLocation: "K1000",
		TotalUsageHours: 12.5,
		InUseCount:      3,
		TotalCount:      4,
		UsagePercentage: 75,
		LastMaintenance: &serviced,
		UpdatedAt:       t0,
	}
	require.NoError(t, store.Devices.Upsert(ctx, vent))
	require.NoError(t, store.Devices.Upsert(ctx, &models.Device{
		DeviceID: "Bed-1", DeviceType: "Bed", Status: "Available", CurrentLocation: "K0110", UpdatedAt: t0,
	}))

	got, err := store.Devices.Get(ctx, "Vent-1")
	require.NoError(t, err)
	assert.Equal(t, "K1000", got.CurrentLocation)
	assert.Equal(t, 12.5, got.TotalUsageHours)
	assert.Equal(t, 3, got.InUseCount)
	require.NotNil(t, got.LastMaintenance)
	assert.True(t, got.LastMaintenance.Equal(serviced))

	vent.CurrentLocation = "K1001"
	require.NoError(t, store.Devices.Upsert(ctx, vent))
	got, err = store.Devices.Get(ctx, "Vent-1")
	require.NoError(t, err)
	assert.Equal(t, "K1001", got.CurrentLocation)

	all, err := store.Devices.Find(ctx, repository.DeviceFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bed-1", all[0].DeviceID)

	beds, err := store.Devices.Find(ctx, repository.DeviceFilter{DeviceType: "Bed"})
	require.NoError(t, err)
	require.Len(t, beds, 1)
	assert.Nil(t, beds[0].LastMaintenance)
}

func testLocations(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	require.NoError(t, store.Locations.Upsert(ctx, &models.Location{
		ID: "K0110", DisplayName: "Main Equipment Storage", IsStorageType: true, CreatedAt: t0,
	}))
	require.NoError(t, store.Locations.Upsert(ctx, &models.Location{ID: "K1000", DisplayName: "K1000", CreatedAt: t0}))

	// a later upsert never renames or downgrades
	require.NoError(t, store.Locations.Upsert(ctx, &models.Location{ID: "K0110", DisplayName: "Storage", CreatedAt: t0}))

	locs, err := store.Locations.Find(ctx, repository.LocationFilter{IDs: []string{"K0110"}})
	require.NoError(t, err)
	require.Len(t, locs, 1)
	assert.Equal(t, "Main Equipment Storage", locs[0].DisplayName)
	assert.True(t, locs[0].IsStorageType)
	assert.False(t, locs[0].IsKnown)

	n, err := store.Locations.MarkKnown(ctx, []string{"K1000", "K9999"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.Locations.MarkKnown(ctx, []string{"K1000"})
	require.NoError(t, err)
	assert.Zero(t, n)

	known, err := store.Locations.Find(ctx, repository.LocationFilter{KnownOnly: true})
	require.NoError(t, err)
	require.Len(t, known, 1)
	assert.Equal(t, "K1000", known[0].ID)
}

func newMovement(device, from, to string, in time.Time, hours int) *models.Movement {
	return &models.Movement{
		ID:           uuid.New(),
		DeviceID:     device,
		FromLocation: from,
		ToLocation:   to,
		TimeIn:       in,
		TimeOut:      in.Add(time.Duration(hours) * time.Hour),
		Status:       "In Use",
		DwellHours:   float64(hours),
		CreatedAt:    t0,
	}
}

func testMovements(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	first := newMovement("Pump-1", "K1000", "K1001", t0, 2)
	first.DistanceTraveled = 40.3
	second := newMovement("Pump-1", "K1001", models.UnknownLocation, t0.Add(3*time.Hour), 1)
	second.HasUnknownLocation = true
	second.UnknownLocations = []string{"Loading Dock"}
	other := newMovement("Bed-1", "K2000", "K2001", t0.Add(time.Hour), 5)

	for _, m := range []*models.Movement{first, second, other} {
		require.NoError(t, store.Movements.Insert(ctx, m))
	}

	dup := newMovement("Pump-1", "K1000", "K1001", t0, 2)
	err := store.Movements.Insert(ctx, dup)
	assert.True(t, errors.Is(err, repository.ErrDuplicateMovement))

	exists, err := store.Movements.Exists(ctx, dup.Key())
	require.NoError(t, err)
	assert.True(t, exists)

	shifted := dup.Key()
	shifted.TimeOut = shifted.TimeOut.Add(time.Minute)
	exists, err = store.Movements.Exists(ctx, shifted)
	require.NoError(t, err)
	assert.False(t, exists)

	all, err := store.Movements.Find(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, second.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[2].ID)
	assert.Equal(t, 40.3, all[2].DistanceTraveled)
	assert.Equal(t, 2.0, all[2].DwellHours)

	pump, err := store.Movements.Find(ctx, repository.MovementFilter{DeviceID: "Pump-1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, pump, 1)
	assert.Equal(t, second.ID, pump[0].ID)

	unknown, err := store.Movements.Find(ctx, repository.MovementFilter{UnknownOnly: true})
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.Equal(t, []string{"Loading Dock"}, unknown[0].UnknownLocations)
}

func testRecommendations(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	placement := &models.Recommendation{
		ID: uuid.New(), Type: models.RecommendationPlacement, Title: "Store Vent-1 in K1001",
		DeviceID: "Vent-1", CurrentLocation: "K1000", OptimalLocation: "K1001",
		HoursSaved: 3.2, PercentImprovement: 41.5, CreatedAt: t0,
	}
	maint := &models.Recommendation{
		ID: uuid.New(), Type: models.RecommendationMaintenance, Title: "Service Monitor-7 immediately",
		DeviceID: "Monitor-7", HoursUsed: 820, Threshold: 800, Urgency: models.UrgencyUrgent, CreatedAt: t0,
	}
	require.NoError(t, store.Recommendations.ReplaceAll(ctx, []*models.Recommendation{maint, placement}))

	all, err := store.Recommendations.Find(ctx, repository.RecommendationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, placement.ID, all[0].ID, "higher savings first")

	got, err := store.Recommendations.Get(ctx, maint.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UrgencyUrgent, got.Urgency)
	assert.Equal(t, 820.0, got.HoursUsed)

	byType, err := store.Recommendations.Find(ctx, repository.RecommendationFilter{Type: models.RecommendationMaintenance})
	require.NoError(t, err)
	require.Len(t, byType, 1)

	purchase := &models.Recommendation{
		ID: uuid.New(), Type: models.RecommendationPurchase, DeviceType: "Vent",
		UtilizationRate: 85, AdditionalUnits: 1, CreatedAt: t0.Add(time.Hour),
	}
	require.NoError(t, store.Recommendations.ReplaceAll(ctx, []*models.Recommendation{purchase}))
	all, err = store.Recommendations.Find(ctx, repository.RecommendationFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, purchase.ID, all[0].ID)

	large := make([]*models.Recommendation, 3500)
	for i := range large {
		large[i] = &models.Recommendation{
			ID: uuid.New(), Type: models.RecommendationMaintenance,
			DeviceID: fmt.Sprintf("Pump-%d", i), HoursUsed: 700, Threshold: 800,
			Urgency: models.UrgencyUpcoming, CreatedAt: t0,
		}
	}
	require.NoError(t, store.Recommendations.ReplaceAll(ctx, large))
	all, err = store.Recommendations.Find(ctx, repository.RecommendationFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(large))

	require.NoError(t, store.Recommendations.ReplaceAll(ctx, []*models.Recommendation{purchase}))
	require.NoError(t, store.Recommendations.Remove(ctx, purchase.ID))
	err = store.Recommendations.Remove(ctx, purchase.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
	_, err = store.Recommendations.Get(ctx, purchase.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func testImports(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	_, err := store.Imports.GetByHash(ctx, "abc")
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	older := &models.ImportRun{ID: uuid.New(), FileName: "jan.csv", FileHash: "abc", Rows: 10, Movements: 8, CreatedAt: t0}
	newer := &models.ImportRun{ID: uuid.New(), FileName: "feb.csv", FileHash: "def", Rows: 4, Errors: 1, CreatedAt: t0.Add(time.Hour)}
	require.NoError(t, store.Imports.Insert(ctx, older))
	require.NoError(t, store.Imports.Insert(ctx, newer))

	got, err := store.Imports.GetByHash(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "jan.csv", got.FileName)
	assert.Equal(t, 8, got.Movements)

	runs, err := store.Imports.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, newer.ID, runs[0].ID)
}

func testReset(t *testing.T, store *repository.Store) {
	ctx := context.Background()

	require.NoError(t, store.Devices.Upsert(ctx, &models.Device{DeviceID: "Bed-1", DeviceType: "Bed", Status: "Available", CurrentLocation: "K1", UpdatedAt: t0}))
	require.NoError(t, store.Movements.Insert(ctx, newMovement("Bed-1", "K1", "K2", t0, 1)))
	require.NoError(t, store.Imports.Insert(ctx, &models.ImportRun{ID: uuid.New(), FileHash: "x", CreatedAt: t0}))

	require.NoError(t, store.Reset(ctx))

	devices, err := store.Devices.Find(ctx, repository.DeviceFilter{})
	require.NoError(t, err)
	assert.Empty(t, devices)
	moves, err := store.Movements.Find(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, moves)
	runs, err := store.Imports.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)

	// the duplicate index is cleared too
	require.NoError(t, store.Movements.Insert(ctx, newMovement("Bed-1", "K1", "K2", t0, 1)))
}
