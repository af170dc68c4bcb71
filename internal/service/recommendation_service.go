package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"equiptrack/internal/models"
	"equiptrack/internal/repository"
	"equiptrack/pkg/metrics"

	"github.com/google/uuid"
	"github.com/moby/locker"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GenerateResult is the outcome of one generation run. A declined run carries
// Reason and leaves stored recommendations untouched.
type GenerateResult struct {
	Declined        bool
	Reason          string
	Recommendations []*models.Recommendation
	ByType          map[string]int
	SkippedDevices  []string
}

type ApplyResult struct {
	Recommendation *models.Recommendation
	Device         *models.Device
}

type ApplyAllResult struct {
	ImplementedCount int
	NumRemoved       int
	Failed           []string
}

type RecommendationService struct {
	store       *repository.Store
	placement   *PlacementService
	utilization *UtilizationService
	maintenance *MaintenanceService
	locks       *locker.Locker
	metrics     *metrics.Registry
	logger      *zap.Logger
	now         func() time.Time

	runMu sync.Mutex
}

func NewRecommendationService(
	store *repository.Store,
	placement *PlacementService,
	utilization *UtilizationService,
	maintenance *MaintenanceService,
	registry *metrics.Registry,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		store:       store,
		placement:   placement,
		utilization: utilization,
		maintenance: maintenance,
		locks:       locker.New(),
		metrics:     registry,
		logger:      logger,
		now:         time.Now,
	}
}

// snapshot is the read-only input shared by the analyzers of one run.
type snapshot struct {
	devices   []*models.Device
	movements []*models.Movement
	byDevice  map[string][]*models.Movement
	storage   map[string]bool
}

func (s *RecommendationService) loadSnapshot(ctx context.Context) (*snapshot, error) {
	devices, err := s.store.Devices.Find(ctx, repository.DeviceFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load devices: %w", err)
	}
	movements, err := s.store.Movements.Find(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}
	locations, err := s.store.Locations.Find(ctx, repository.LocationFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load locations: %w", err)
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].TimeIn.Before(movements[j].TimeIn)
	})

	snap := &snapshot{
		devices:   devices,
		movements: movements,
		byDevice:  make(map[string][]*models.Movement),
		storage:   make(map[string]bool),
	}
	for _, m := range movements {
		snap.byDevice[m.DeviceID] = append(snap.byDevice[m.DeviceID], m)
	}
	for _, loc := range locations {
		if loc.IsStorageType {
			snap.storage[loc.ID] = true
		}
	}
	return snap, nil
}

// Generate recomputes every recommendation from the stored devices and
// movements and replaces the previous batch. Runs are serialized.
func (s *RecommendationService) Generate(ctx context.Context) (*GenerateResult, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	started := s.now()

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		s.metrics.RecordGenerate("error", nil, s.now().Sub(started))
		return nil, err
	}
	if len(snap.devices) == 0 || len(snap.movements) == 0 {
		s.logger.Info("Recommendation generation declined", zap.Error(ErrNoData))
		s.metrics.RecordGenerate("declined", nil, s.now().Sub(started))
		return &GenerateResult{Declined: true, Reason: ErrNoData.Error()}, nil
	}

	var (
		placements   []*models.Recommendation
		purchases    []*models.Recommendation
		maintenances []*models.Recommendation
		skippedMu    sync.Mutex
		skipped      []string
	)
	skip := func(deviceID string) {
		skippedMu.Lock()
		skipped = append(skipped, deviceID)
		skippedMu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, d := range snap.devices {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.guard("placement", d.DeviceID, func() (*models.Recommendation, error) {
				return s.placeDevice(d, snap), nil
			})
			if err != nil {
				skip(d.DeviceID)
				continue
			}
			if rec != nil {
				placements = append(placements, rec)
			}
		}
		return nil
	})
	g.Go(func() error {
		_, err := s.guard("utilization", "", func() (*models.Recommendation, error) {
			for _, r := range s.utilization.Analyze(snap.movements) {
				if r.Recommend {
					purchases = append(purchases, purchaseRecommendation(r))
				}
			}
			return nil, nil
		})
		if err != nil {
			purchases = nil
		}
		return nil
	})
	g.Go(func() error {
		for _, d := range snap.devices {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.guard("maintenance", d.DeviceID, func() (*models.Recommendation, error) {
				results := s.maintenance.Predict(SinceService(snap.byDevice[d.DeviceID], d.LastMaintenance))
				if len(results) == 0 {
					return nil, nil
				}
				return maintenanceRecommendation(results[0]), nil
			})
			if err != nil {
				skip(d.DeviceID)
				continue
			}
			if rec != nil {
				maintenances = append(maintenances, rec)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.metrics.RecordGenerate("error", nil, s.now().Sub(started))
		return nil, err
	}

	all := make([]*models.Recommendation, 0, len(placements)+len(purchases)+len(maintenances))
	all = append(all, placements...)
	all = append(all, purchases...)
	all = append(all, maintenances...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].HoursSaved > all[j].HoursSaved
	})

	createdAt := s.now().UTC()
	byType := make(map[string]int)
	for _, rec := range all {
		rec.ID = uuid.New()
		rec.CreatedAt = createdAt
		byType[string(rec.Type)]++
	}

	if err := s.store.Recommendations.ReplaceAll(ctx, all); err != nil {
		s.metrics.RecordGenerate("error", nil, s.now().Sub(started))
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}

	s.metrics.RecordGenerate("success", byType, s.now().Sub(started))
	s.logger.Info("Recommendations generated",
		zap.Int("count", len(all)),
		zap.Int("placement", byType[string(models.RecommendationPlacement)]),
		zap.Int("purchase", byType[string(models.RecommendationPurchase)]),
		zap.Int("maintenance", byType[string(models.RecommendationMaintenance)]),
		zap.Int("skipped_devices", len(skipped)),
	)

	sort.Strings(skipped)
	return &GenerateResult{Recommendations: all, ByType: byType, SkippedDevices: skipped}, nil
}

func (s *RecommendationService) placeDevice(d *models.Device, snap *snapshot) *models.Recommendation {
	r := s.placement.Optimize(PlacementInput{
		DeviceID:       d.DeviceID,
		StoredLocation: d.CurrentLocation,
		Movements:      snap.byDevice[d.DeviceID],
		StorageRooms:   snap.storage,
	})
	if !r.Accepted() {
		return nil
	}
	return placementRecommendation(d, r)
}

// guard runs one unit of analysis, turning a panic into an error so a bad
// device cannot abort the whole run.
func (s *RecommendationService) guard(analyzer, deviceID string, fn func() (*models.Recommendation, error)) (rec *models.Recommendation, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%s analysis panicked: %v", analyzer, p)
		}
		if err != nil {
			s.metrics.RecordAnalyzerFailure(analyzer)
			s.logger.Error("Analysis failed, skipping",
				zap.String("analyzer", analyzer),
				zap.String("device_id", deviceID),
				zap.Error(err),
			)
			rec = nil
		}
	}()
	return fn()
}

// Apply carries out one recommendation against device state and removes it.
// Applies touching the same device are serialized.
func (s *RecommendationService) Apply(ctx context.Context, id uuid.UUID) (*ApplyResult, error) {
	rec, err := s.getRecommendation(ctx, id)
	if err != nil {
		return nil, err
	}

	key := lockKey(rec)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	// another apply may have consumed it while we waited
	rec, err = s.getRecommendation(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{Recommendation: rec}

	switch rec.Type {
	case models.RecommendationPlacement:
		device, err := s.getDevice(ctx, rec.DeviceID)
		if err != nil {
			s.metrics.RecordApply(string(rec.Type), "error")
			return nil, err
		}
		device.CurrentLocation = rec.OptimalLocation
		device.UpdatedAt = s.now()
		if err := s.store.Devices.Upsert(ctx, device); err != nil {
			return nil, err
		}
		result.Device = device
	case models.RecommendationPurchase:
	case models.RecommendationMaintenance:
		device, err := s.getDevice(ctx, rec.DeviceID)
		if err != nil {
			s.metrics.RecordApply(string(rec.Type), "error")
			return nil, err
		}
		now := s.now()
		device.LastMaintenance = &now
		device.UpdatedAt = now
		if err := s.store.Devices.Upsert(ctx, device); err != nil {
			return nil, err
		}
		result.Device = device
	default:
		s.metrics.RecordApply(string(rec.Type), "error")
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRecommendation, rec.Type)
	}

	if err := s.store.Recommendations.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecommendationNotFound, id)
		}
		return nil, err
	}

	rec.Implemented = true
	s.metrics.RecordApply(string(rec.Type), "success")
	s.logger.Info("Recommendation applied",
		zap.String("id", id.String()),
		zap.String("type", string(rec.Type)),
		zap.String("device_id", rec.DeviceID),
	)
	return result, nil
}

// ApplyAll applies every stored recommendation. Individual failures are
// logged and reported, not returned.
func (s *RecommendationService) ApplyAll(ctx context.Context) (*ApplyAllResult, error) {
	recs, err := s.store.Recommendations.Find(ctx, repository.RecommendationFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}

	result := &ApplyAllResult{Failed: []string{}}
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, err := s.Apply(ctx, rec.ID); err != nil {
			s.logger.Error("Failed to apply recommendation",
				zap.String("id", rec.ID.String()),
				zap.String("type", string(rec.Type)),
				zap.Error(err),
			)
			result.Failed = append(result.Failed, rec.ID.String())
			continue
		}
		result.ImplementedCount++
		result.NumRemoved++
	}

	s.logger.Info("Recommendations applied",
		zap.Int("implemented", result.ImplementedCount),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *RecommendationService) List(ctx context.Context, filter repository.RecommendationFilter) ([]*models.Recommendation, error) {
	return s.store.Recommendations.Find(ctx, filter)
}

// Reset removes every device, location, movement, recommendation and import record.
func (s *RecommendationService) Reset(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset data: %w", err)
	}
	s.logger.Warn("All data removed")
	return nil
}

func (s *RecommendationService) getRecommendation(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	rec, err := s.store.Recommendations.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRecommendationNotFound, id)
	}
	return rec, err
}

func (s *RecommendationService) getDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	device, err := s.store.Devices.Get(ctx, deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, deviceID)
	}
	return device, err
}

func lockKey(rec *models.Recommendation) string {
	if rec.DeviceID != "" {
		return "device:" + rec.DeviceID
	}
	return "type:" + rec.DeviceType
}
