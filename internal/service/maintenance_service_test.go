package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"equiptrack/internal/models"
	"equiptrack/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMaintenanceMonitorScenario(t *testing.T) {
	svc := NewMaintenanceService(nil, zap.NewNop())

	moves := []*models.Movement{
		movement("Monitor-7", "K1", "K2", "In Use", baseTime, 500),
		movement("Monitor-7", "K2", "K1", "Available", baseTime.AddDate(0, 1, 0), 100),
		movement("Monitor-7", "K1", "K2", "In Use", baseTime.AddDate(0, 2, 0), 320),
	}

	results := svc.Predict(moves)
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, "Monitor-7", r.DeviceID)
	assert.Equal(t, 820.0, r.HoursUsed)
	assert.Equal(t, 800.0, r.Threshold)
	assert.Equal(t, models.UrgencyUrgent, r.Urgency)
}

func TestMaintenanceThresholds(t *testing.T) {
	svc := NewMaintenanceService(map[string]float64{"Wheelchair": 100}, zap.NewNop())

	assert.Equal(t, 500.0, svc.Threshold("Ventilator"))
	assert.Equal(t, 1000.0, svc.Threshold("IVPump"))
	assert.Equal(t, 1000.0, svc.Threshold("Infusion Pump"))
	assert.Equal(t, 600.0, svc.Threshold("defibrillator"))
	assert.Equal(t, 2000.0, svc.Threshold("Bed"))
	assert.Equal(t, 100.0, svc.Threshold("Wheelchair"))
	assert.Equal(t, 1000.0, svc.Threshold("Scanner"))
}

func TestMaintenanceUrgencyBands(t *testing.T) {
	assert.Equal(t, models.Urgency(""), MaintenanceUrgency(600, 800))
	assert.Equal(t, models.UrgencyUpcoming, MaintenanceUrgency(641, 800))
	assert.Equal(t, models.UrgencyUpcoming, MaintenanceUrgency(799, 800))
	assert.Equal(t, models.UrgencyUrgent, MaintenanceUrgency(800, 800))

	svc := NewMaintenanceService(nil, zap.NewNop())
	_, ok := svc.Evaluate("Bed-1", 100)
	assert.False(t, ok)
}

func urgencyLevel(u models.Urgency) int {
	switch u {
	case models.UrgencyUrgent:
		return 2
	case models.UrgencyUpcoming:
		return 1
	default:
		return 0
	}
}

func TestMaintenanceUrgencyMonotonicProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("more hours never lower urgency", prop.ForAll(
		func(hours, extra, threshold float64) bool {
			return urgencyLevel(MaintenanceUrgency(hours+extra, threshold)) >= urgencyLevel(MaintenanceUrgency(hours, threshold))
		},
		gen.Float64Range(0, 5000),
		gen.Float64Range(0, 5000),
		gen.Float64Range(1, 3000),
	))

	properties.TestingRun(t)
}

func TestMaintenanceSinceService(t *testing.T) {
	svc := NewMaintenanceService(nil, zap.NewNop())
	moves := []*models.Movement{
		movement("Monitor-7", "K1", "K2", "In Use", baseTime, 500),
		movement("Monitor-7", "K1", "K2", "In Use", baseTime.AddDate(0, 2, 0), 320),
	}

	assert.Len(t, SinceService(moves, nil), 2)

	serviced := baseTime.AddDate(0, 1, 0)
	recent := SinceService(moves, &serviced)
	require.Len(t, recent, 1)
	assert.Empty(t, svc.Predict(recent), "320h is below 80% of 800h")
}

// backToBack renders n consecutive rows of hours each, alternating two rooms.
func backToBack(device string, n int, hours time.Duration) string {
	var b strings.Builder
	b.WriteString("Device,Location,Status,In,Out\n")
	for i := 0; i < n; i++ {
		room := "K1000"
		if i%2 == 1 {
			room = "K1001"
		}
		in := baseTime.Add(time.Duration(i) * hours)
		fmt.Fprintf(&b, "%s,%s,In Use,%s,%s\n", device, room,
			in.Format("2006-01-02 15:04:05"), in.Add(hours).Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

func TestMaintenanceCountsImportedDwellOnce(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.imports.ImportCSV(ctx, "monitor7.csv", strings.NewReader(backToBack("Monitor-7", 41, 10*time.Hour)), ImportOptions{})
	require.NoError(t, err)
	_, err = env.imports.ImportCSV(ctx, "monitor8.csv", strings.NewReader(backToBack("Monitor-8", 81, 10*time.Hour)), ImportOptions{})
	require.NoError(t, err)

	history, err := env.store.Movements.Find(ctx, repository.MovementFilter{DeviceID: "Monitor-7"})
	require.NoError(t, err)
	require.Len(t, history, 40)
	assert.Empty(t, env.maintenance.Predict(history), "400h of dwell is below 80% of 800h")

	device, err := env.store.Devices.Get(ctx, "Monitor-7")
	require.NoError(t, err)
	assert.InDelta(t, 400.0, device.TotalUsageHours, 1e-9)

	history, err = env.store.Movements.Find(ctx, repository.MovementFilter{DeviceID: "Monitor-8"})
	require.NoError(t, err)
	results := env.maintenance.Predict(history)
	require.Len(t, results, 1)
	assert.Equal(t, 800.0, results[0].HoursUsed)
	assert.Equal(t, models.UrgencyUrgent, results[0].Urgency)
}
