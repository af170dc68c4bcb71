package service

import (
	"fmt"
	"math"
	"sort"

	"equiptrack/internal/models"

	"go.uber.org/zap"
)

const (
	UtilizationModeType   = "type"
	UtilizationModeDevice = "device"

	utilizationThreshold  = 80.0
	maxRoomsPerDay        = 12.0
	maxDistancePerDayFeet = 250.0
)

// UtilizationResult is the usage summary of one device type or one device.
type UtilizationResult struct {
	DeviceType        string
	DeviceID          string
	TotalHours        float64
	InUseHours        float64
	UtilizationRate   float64
	AvgRoomsPerDay    float64
	AvgDistancePerDay float64
	AdditionalUnits   int
	Recommend         bool
}

type UtilizationService struct {
	mode   string
	logger *zap.Logger
}

func NewUtilizationService(mode string, logger *zap.Logger) *UtilizationService {
	if mode != UtilizationModeDevice {
		mode = UtilizationModeType
	}
	return &UtilizationService{
		mode:   mode,
		logger: logger,
	}
}

func (s *UtilizationService) Mode() string {
	return s.mode
}

// Analyze runs the configured mode.
func (s *UtilizationService) Analyze(movements []*models.Movement) []UtilizationResult {
	if s.mode == UtilizationModeDevice {
		return s.AnalyzeDevices(movements)
	}
	return s.AnalyzeTypes(movements)
}

// AnalyzeTypes computes the in-use share of tracked hours per device type.
func (s *UtilizationService) AnalyzeTypes(movements []*models.Movement) []UtilizationResult {
	byType := make(map[string]*UtilizationResult)
	for _, m := range movements {
		t := models.DeviceTypeOf(m.DeviceID)
		r, ok := byType[t]
		if !ok {
			r = &UtilizationResult{DeviceType: t}
			byType[t] = r
		}
		h := m.Hours()
		r.TotalHours += h
		if models.IsInUse(m.Status) {
			r.InUseHours += h
		}
	}

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	results := make([]UtilizationResult, 0, len(types))
	for _, t := range types {
		r := byType[t]
		if r.TotalHours > 0 {
			r.UtilizationRate = r.InUseHours / r.TotalHours * 100
		}
		if r.UtilizationRate > utilizationThreshold {
			r.Recommend = true
			r.AdditionalUnits = additionalUnits(r.UtilizationRate)
		}
		r.UtilizationRate = round2(r.UtilizationRate)
		r.TotalHours = round2(r.TotalHours)
		r.InUseHours = round2(r.InUseHours)
		results = append(results, *r)
	}
	return results
}

type dayBucket struct {
	total    float64
	inUse    float64
	rooms    map[string]bool
	distance float64
}

// AnalyzeDevices buckets each device's movements by calendar day (UTC) and
// averages usage ratio, distinct rooms and distance per day.
func (s *UtilizationService) AnalyzeDevices(movements []*models.Movement) []UtilizationResult {
	days := make(map[string]map[string]*dayBucket)
	for _, m := range movements {
		perDay, ok := days[m.DeviceID]
		if !ok {
			perDay = make(map[string]*dayBucket)
			days[m.DeviceID] = perDay
		}
		key := m.TimeIn.UTC().Format("2006-01-02")
		b, ok := perDay[key]
		if !ok {
			b = &dayBucket{rooms: make(map[string]bool)}
			perDay[key] = b
		}
		h := m.Hours()
		b.total += h
		if models.IsInUse(m.Status) {
			b.inUse += h
		}
		b.rooms[m.FromLocation] = true
		b.rooms[m.ToLocation] = true
		b.distance += m.DistanceTraveled
	}

	ids := make([]string, 0, len(days))
	for id := range days {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]UtilizationResult, 0, len(ids))
	for _, id := range ids {
		r := UtilizationResult{DeviceID: id, DeviceType: models.DeviceTypeOf(id)}
		var ratioSum, roomSum, distSum float64
		for _, b := range days[id] {
			r.TotalHours += b.total
			r.InUseHours += b.inUse
			if b.total > 0 {
				ratioSum += b.inUse / b.total
			}
			roomSum += float64(len(b.rooms))
			distSum += b.distance
		}
		n := float64(len(days[id]))
		avgRatio := ratioSum / n
		r.UtilizationRate = round2(avgRatio * 100)
		r.AvgRoomsPerDay = round2(roomSum / n)
		r.AvgDistancePerDay = round2(distSum / n)

		if avgRatio > utilizationThreshold/100 || roomSum/n > maxRoomsPerDay || distSum/n > maxDistancePerDayFeet {
			r.Recommend = true
			r.AdditionalUnits = additionalUnits(avgRatio * 100)
		}
		r.TotalHours = round2(r.TotalHours)
		r.InUseHours = round2(r.InUseHours)
		results = append(results, r)
	}
	return results
}

// additionalUnits sizes a purchase from the utilization rate; a triggered
// recommendation always asks for at least one unit.
func additionalUnits(rate float64) int {
	return int(math.Max(1, math.Ceil((rate-utilizationThreshold)/10)))
}

func (r UtilizationResult) subject() string {
	if r.DeviceID != "" {
		return fmt.Sprintf("%s (%s)", r.DeviceType, r.DeviceID)
	}
	return r.DeviceType
}
