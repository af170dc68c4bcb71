package service

import (
	"math"
	"sort"

	"equiptrack/internal/graph"
	"equiptrack/internal/models"
	"equiptrack/internal/normalize"

	"go.uber.org/zap"
)

const (
	// WalkingSpeedFtPerSec converts walked distance into staff time.
	WalkingSpeedFtPerSec = 3.5

	minPlacementHistory   = 3
	minPercentImprovement = 5.0
)

// PlacementInput is one device's history as seen by the optimizer.
type PlacementInput struct {
	DeviceID       string
	StoredLocation string
	// Movements in chronological order.
	Movements []*models.Movement
	// StorageRooms flags rooms recorded as storage-type locations.
	StorageRooms map[string]bool
}

type PlacementResult struct {
	OK                  bool
	CurrentLocation     string
	OptimalLocation     string
	BestOverallLocation string
	BestStorageLocation string
	DistanceSaved       float64
	PercentImprovement  float64
	HoursSaved          float64
	MovementsPerMonth   float64
	TotalMovements      int
}

// Accepted reports whether the result moves the device somewhere else.
func (r PlacementResult) Accepted() bool {
	return r.OK && r.OptimalLocation != r.CurrentLocation
}

type PlacementService struct {
	oracle *graph.Oracle
	logger *zap.Logger
}

func NewPlacementService(oracle *graph.Oracle, logger *zap.Logger) *PlacementService {
	return &PlacementService{
		oracle: oracle,
		logger: logger,
	}
}

// Optimize picks the storage room that minimizes frequency-weighted walking
// distance to the rooms where the device is used.
func (s *PlacementService) Optimize(in PlacementInput) PlacementResult {
	var moves []*models.Movement
	for _, m := range in.Movements {
		if m.FromLocation == models.UnknownLocation || m.ToLocation == models.UnknownLocation {
			continue
		}
		moves = append(moves, m)
	}
	if len(moves) < minPlacementHistory {
		return PlacementResult{}
	}

	current := mostFrequent(moves, models.IsAvailable)
	if current == "" && in.StoredLocation != models.UnknownLocation {
		current = in.StoredLocation
	}
	if current == "" {
		return PlacementResult{}
	}

	usage, usageOrder := frequencies(moves, models.IsInUse)
	cost := func(candidate string) float64 {
		total := 0.0
		for _, room := range usageOrder {
			total += float64(usage[room]) * s.oracle.Distance(candidate, room)
		}
		return total
	}

	storage, storedIn, everything := s.candidateTiers(moves, in.StorageRooms)

	result := PlacementResult{
		OK:                true,
		CurrentLocation:   current,
		OptimalLocation:   current,
		TotalMovements:    len(moves),
		MovementsPerMonth: round2(movementsPerMonth(moves)),
	}
	result.BestStorageLocation, _ = argmin(storage, cost)
	result.BestOverallLocation, _ = argmin(unionSorted(storage, storedIn, everything), cost)

	for _, tier := range [][]string{storage, storedIn, everything} {
		if !offersAlternative(tier, current) {
			continue
		}
		if best, ok := argmin(tier, cost); ok && cost(best) < cost(current) {
			result.OptimalLocation = best
		}
		break
	}

	if result.OptimalLocation == current {
		return result
	}

	actual := routeDistance(moves, s.oracle, current, current)
	optimized := routeDistance(moves, s.oracle, current, result.OptimalLocation)
	saved := actual - optimized
	percent := 0.0
	if actual > 0 {
		percent = saved / actual * 100
	}

	if percent < minPercentImprovement {
		s.logger.Debug("Placement rejected below improvement threshold",
			zap.String("device_id", in.DeviceID),
			zap.Float64("percent_improvement", percent),
		)
		result.OptimalLocation = current
		return result
	}

	result.DistanceSaved = round1(saved)
	result.PercentImprovement = round1(percent)
	result.HoursSaved = round2(saved / (WalkingSpeedFtPerSec * 3600) * result.MovementsPerMonth)
	return result
}

func (s *PlacementService) candidateTiers(moves []*models.Movement, flagged map[string]bool) (storage, storedIn, everything []string) {
	nodes := s.oracle.Graph().Nodes()

	storageSet := make(map[string]bool)
	isStorage := func(room string) bool {
		return flagged[room] || normalize.IsStorageName(room)
	}
	for _, n := range nodes {
		if isStorage(n) {
			storageSet[n] = true
		}
	}

	storedSet := make(map[string]bool)
	historySet := make(map[string]bool)
	for _, m := range moves {
		for _, room := range []string{m.FromLocation, m.ToLocation} {
			historySet[room] = true
			if isStorage(room) {
				storageSet[room] = true
			}
		}
		if models.IsAvailable(m.Status) {
			storedSet[m.ToLocation] = true
		}
	}

	everything = nodes
	if len(everything) == 0 {
		everything = sortedKeys(historySet)
	}
	return sortedKeys(storageSet), sortedKeys(storedSet), everything
}

// mostFrequent returns the destination room seen most often among movements
// whose status matches; ties keep the room seen first.
func mostFrequent(moves []*models.Movement, match func(string) bool) string {
	counts, order := frequencies(moves, match)
	best, bestCount := "", 0
	for _, room := range order {
		if counts[room] > bestCount {
			best, bestCount = room, counts[room]
		}
	}
	return best
}

func frequencies(moves []*models.Movement, match func(string) bool) (map[string]int, []string) {
	counts := make(map[string]int)
	var order []string
	for _, m := range moves {
		if !match(m.Status) {
			continue
		}
		if _, ok := counts[m.ToLocation]; !ok {
			order = append(order, m.ToLocation)
		}
		counts[m.ToLocation]++
	}
	return counts, order
}

// routeDistance sums the leg distances with every occurrence of from replaced by to.
func routeDistance(moves []*models.Movement, oracle *graph.Oracle, from, to string) float64 {
	sub := func(room string) string {
		if room == from {
			return to
		}
		return room
	}
	total := 0.0
	for _, m := range moves {
		total += oracle.Distance(sub(m.FromLocation), sub(m.ToLocation))
	}
	return total
}

func movementsPerMonth(moves []*models.Movement) float64 {
	first, last := moves[0].TimeIn, moves[0].TimeOut
	for _, m := range moves {
		if m.TimeIn.Before(first) {
			first = m.TimeIn
		}
		if m.TimeOut.After(last) {
			last = m.TimeOut
		}
	}
	spanDays := math.Max(last.Sub(first).Hours()/24, 1)
	return float64(len(moves)) / spanDays * 30
}

func argmin(candidates []string, cost func(string) float64) (string, bool) {
	best, bestCost, found := "", math.Inf(1), false
	for _, c := range candidates {
		if v := cost(c); v < bestCost {
			best, bestCost, found = c, v, true
		}
	}
	return best, found
}

func offersAlternative(tier []string, current string) bool {
	for _, room := range tier {
		if room != current {
			return true
		}
	}
	return false
}

func unionSorted(lists ...[]string) []string {
	set := make(map[string]bool)
	for _, l := range lists {
		for _, v := range l {
			set[v] = true
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
