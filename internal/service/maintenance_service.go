package service

import (
	"sort"
	"strings"
	"time"

	"equiptrack/internal/models"

	"go.uber.org/zap"
)

const (
	defaultMaintenanceHours = 1000.0
	maintenanceWarnRatio    = 0.8
)

var defaultMaintenanceThresholds = map[string]float64{
	"ventilator":    500,
	"monitor":       800,
	"ivpump":        1000,
	"infusion":      1000,
	"infusionpump":  1000,
	"defibrillator": 600,
	"wheelchair":    1500,
	"bed":           2000,
}

type MaintenanceResult struct {
	DeviceID   string
	DeviceType string
	HoursUsed  float64
	Threshold  float64
	Urgency    models.Urgency
}

type MaintenanceService struct {
	thresholds map[string]float64
	logger     *zap.Logger
}

// NewMaintenanceService builds a predictor; overrides replace entries of the
// built-in service-interval table by device type.
func NewMaintenanceService(overrides map[string]float64, logger *zap.Logger) *MaintenanceService {
	thresholds := make(map[string]float64, len(defaultMaintenanceThresholds)+len(overrides))
	for k, v := range defaultMaintenanceThresholds {
		thresholds[k] = v
	}
	for k, v := range overrides {
		thresholds[thresholdKey(k)] = v
	}
	return &MaintenanceService{
		thresholds: thresholds,
		logger:     logger,
	}
}

// Threshold returns the service interval in hours for a device type.
func (s *MaintenanceService) Threshold(deviceType string) float64 {
	if h, ok := s.thresholds[thresholdKey(deviceType)]; ok {
		return h
	}
	return defaultMaintenanceHours
}

// MaintenanceUrgency classifies accumulated hours against a threshold. The empty
// urgency means no service is due yet.
func MaintenanceUrgency(hours, threshold float64) models.Urgency {
	switch {
	case hours >= threshold:
		return models.UrgencyUrgent
	case hours >= threshold*maintenanceWarnRatio:
		return models.UrgencyUpcoming
	default:
		return ""
	}
}

// SinceService keeps the movements whose window ended after the last service.
// A device that was never serviced keeps its full history.
func SinceService(movements []*models.Movement, lastService *time.Time) []*models.Movement {
	if lastService == nil {
		return movements
	}
	out := make([]*models.Movement, 0, len(movements))
	for _, m := range movements {
		if m.TimeOut.After(*lastService) {
			out = append(out, m)
		}
	}
	return out
}

// Predict sums in-use hours per device over the given movement history and
// returns the devices at or above 80% of their interval.
func (s *MaintenanceService) Predict(movements []*models.Movement) []MaintenanceResult {
	hours := make(map[string]float64)
	for _, m := range movements {
		if _, ok := hours[m.DeviceID]; !ok {
			hours[m.DeviceID] = 0
		}
		if models.IsInUse(m.Status) {
			hours[m.DeviceID] += m.Hours()
		}
	}

	ids := make([]string, 0, len(hours))
	for id := range hours {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var results []MaintenanceResult
	for _, id := range ids {
		r, ok := s.Evaluate(id, hours[id])
		if ok {
			results = append(results, r)
		}
	}
	return results
}

// Evaluate checks one device's accumulated hours.
func (s *MaintenanceService) Evaluate(deviceID string, hoursUsed float64) (MaintenanceResult, bool) {
	deviceType := models.DeviceTypeOf(deviceID)
	threshold := s.Threshold(deviceType)
	urgency := MaintenanceUrgency(hoursUsed, threshold)
	if urgency == "" {
		return MaintenanceResult{}, false
	}
	return MaintenanceResult{
		DeviceID:   deviceID,
		DeviceType: deviceType,
		HoursUsed:  round1(hoursUsed),
		Threshold:  threshold,
		Urgency:    urgency,
	}, true
}

func thresholdKey(deviceType string) string {
	k := strings.ToLower(strings.TrimSpace(deviceType))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(k)
}
