package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"equiptrack/internal/graph"
	"equiptrack/internal/ingest"
	"equiptrack/internal/models"
	"equiptrack/internal/normalize"
	"equiptrack/internal/repository"
	"equiptrack/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildResult reports the outcome of one import run.
type BuildResult struct {
	Rows             int
	Movements        []*models.Movement
	Inserted         int
	Duplicates       int
	Skipped          int
	Errors           []models.RowError
	UnknownLocations []string
	DevicesUpdated   int
	LocationsMarked  int
}

type MovementService struct {
	store      *repository.Store
	normalizer *normalize.Normalizer
	oracle     *graph.Oracle
	validate   *validator.Validate
	metrics    *metrics.Registry
	logger     *zap.Logger
	now        func() time.Time
}

func NewMovementService(
	store *repository.Store,
	normalizer *normalize.Normalizer,
	oracle *graph.Oracle,
	registry *metrics.Registry,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		store:      store,
		normalizer: normalizer,
		oracle:     oracle,
		validate:   validator.New(),
		metrics:    registry,
		logger:     logger,
		now:        time.Now,
	}
}

// resolvedRow is a validated input row with its normalized room.
type resolvedRow struct {
	models.RawEvent
	room string
}

// Build turns raw rows into movements, device state and location records.
// Bad rows are reported in the result; only store failures return an error.
func (s *MovementService) Build(ctx context.Context, rows []models.RawEvent) (*BuildResult, error) {
	started := s.now()
	result := &BuildResult{Rows: len(rows)}
	unknown := normalize.NewUnknownSet()

	byDevice := make(map[string][]resolvedRow)
	for _, row := range rows {
		row.Device = sanitizeLabel(row.Device)
		row.Location = sanitizeLabel(row.Location)
		row.Status = sanitizeLabel(row.Status)

		if err := s.parseRow(&row); err != nil {
			result.Errors = append(result.Errors, models.RowError{
				Line:   row.Line,
				Error:  err.Error(),
				Record: row.Fields(),
			})
			continue
		}
		room := s.normalizer.Normalize(row.Device, row.Location, unknown)
		byDevice[row.Device] = append(byDevice[row.Device], resolvedRow{RawEvent: row, room: room})
	}

	deviceIDs := make([]string, 0, len(byDevice))
	for id := range byDevice {
		deviceIDs = append(deviceIDs, id)
	}
	sort.Strings(deviceIDs)

	seenRooms := make(map[string]string)
	var roomOrder []string

	for _, deviceID := range deviceIDs {
		events := byDevice[deviceID]
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].TimeIn.Before(events[j].TimeIn)
		})

		for _, ev := range events {
			if ev.room == models.UnknownLocation {
				continue
			}
			if _, ok := seenRooms[ev.room]; !ok {
				seenRooms[ev.room] = ev.Location
				roomOrder = append(roomOrder, ev.room)
			}
		}

		if err := s.buildDevice(ctx, deviceID, events, result); err != nil {
			return nil, err
		}
	}

	for _, room := range roomOrder {
		label := seenRooms[room]
		loc := &models.Location{
			ID:            room,
			DisplayName:   label,
			IsStorageType: normalize.IsStorageName(label) || normalize.IsStorageName(room),
			IsKnown:       s.oracle.Graph().HasNode(room),
			CreatedAt:     s.now(),
		}
		if err := s.store.Locations.Upsert(ctx, loc); err != nil {
			return nil, fmt.Errorf("failed to save location: %w", err)
		}
	}

	marked, err := s.RefreshKnown(ctx)
	if err != nil {
		return nil, err
	}
	result.LocationsMarked = marked
	result.UnknownLocations = unknown.Labels()

	s.metrics.RecordImport(result.Inserted, result.Duplicates, len(result.Errors), len(result.UnknownLocations), s.now().Sub(started))
	s.logger.Info("Movement build completed",
		zap.Int("rows", result.Rows),
		zap.Int("inserted", result.Inserted),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("row_errors", len(result.Errors)),
		zap.Int("unknown_locations", len(result.UnknownLocations)),
	)

	return result, nil
}

func (s *MovementService) parseRow(row *models.RawEvent) error {
	if err := s.validate.Struct(row); err != nil {
		return formatValidationError(err)
	}
	in, err := ingest.ParseTime(row.In)
	if err != nil {
		return fmt.Errorf("In: %w", err)
	}
	out, err := ingest.ParseTime(row.Out)
	if err != nil {
		return fmt.Errorf("Out: %w", err)
	}
	row.TimeIn, row.TimeOut = in, out
	return nil
}

func (s *MovementService) buildDevice(ctx context.Context, deviceID string, events []resolvedRow, result *BuildResult) error {
	device, err := s.store.Devices.Get(ctx, deviceID)
	if errors.Is(err, repository.ErrNotFound) {
		device = &models.Device{DeviceID: deviceID}
	} else if err != nil {
		return fmt.Errorf("failed to load device %s: %w", deviceID, err)
	}

	// A row counts toward the status totals once, when it first enters the
	// stored history: as the destination of a new movement, or as the opening
	// row of a device seen for the first time.
	countRow := func(status string) {
		device.TotalCount++
		if models.IsInUse(status) {
			device.InUseCount++
		}
	}
	if device.TotalCount == 0 {
		countRow(events[0].Status)
	}

	last := events[len(events)-1]
	device.DeviceType = models.DeviceTypeOf(deviceID)
	device.Status = last.Status
	// an unresolved room never replaces a known one
	for i := len(events) - 1; i >= 0; i-- {
		if events[i].room != models.UnknownLocation {
			device.CurrentLocation = events[i].room
			break
		}
	}
	if device.CurrentLocation == "" {
		device.CurrentLocation = models.UnknownLocation
	}
	for i := 0; i+1 < len(events); i++ {
		m, ok := s.candidate(deviceID, events[i], events[i+1])
		if !ok {
			result.Skipped++
			continue
		}

		exists, err := s.store.Movements.Exists(ctx, m.Key())
		if err != nil {
			return fmt.Errorf("failed to check movement: %w", err)
		}
		if exists {
			result.Duplicates++
			continue
		}

		if err := s.store.Movements.Insert(ctx, m); err != nil {
			if errors.Is(err, repository.ErrDuplicateMovement) {
				result.Duplicates++
				continue
			}
			return fmt.Errorf("failed to insert movement: %w", err)
		}

		result.Inserted++
		result.Movements = append(result.Movements, m)
		countRow(events[i+1].Status)
		if models.IsInUse(m.Status) {
			device.TotalUsageHours += m.Hours()
		}
	}
	if device.TotalCount > 0 {
		device.UsagePercentage = round2(float64(device.InUseCount) / float64(device.TotalCount) * 100)
	}

	device.UpdatedAt = s.now()
	if err := s.store.Devices.Upsert(ctx, device); err != nil {
		return fmt.Errorf("failed to save device %s: %w", deviceID, err)
	}
	result.DevicesUpdated++
	return nil
}

// candidate pairs two consecutive rows of one device. The window runs from
// the first row's In to the second row's Out and carries the second status;
// only the second row's own In-Out span counts as dwell.
func (s *MovementService) candidate(deviceID string, cur, next resolvedRow) (*models.Movement, bool) {
	if cur.room == next.room {
		return nil, false
	}
	if next.TimeOut.Before(cur.TimeIn) {
		return nil, false
	}

	m := &models.Movement{
		ID:           uuid.New(),
		DeviceID:     deviceID,
		FromLocation: cur.room,
		ToLocation:   next.room,
		TimeIn:       cur.TimeIn,
		TimeOut:      next.TimeOut,
		Status:       next.Status,
		CreatedAt:    s.now(),
	}
	if dwell := next.TimeOut.Sub(next.TimeIn); dwell > 0 {
		m.DwellHours = dwell.Hours()
	}

	if d, ok := s.oracle.Graph().EdgeWeight(cur.room, next.room); ok {
		m.DistanceTraveled = round1(d)
	}

	if cur.room == models.UnknownLocation {
		m.UnknownLocations = append(m.UnknownLocations, cur.Location)
	}
	if next.room == models.UnknownLocation {
		m.UnknownLocations = append(m.UnknownLocations, next.Location)
	}
	m.HasUnknownLocation = len(m.UnknownLocations) > 0

	return m, true
}

// RefreshKnown marks stored locations that the loaded graph now contains.
func (s *MovementService) RefreshKnown(ctx context.Context) (int, error) {
	nodes := s.oracle.Graph().Nodes()
	if len(nodes) == 0 {
		return 0, nil
	}
	n, err := s.store.Locations.MarkKnown(ctx, nodes)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh known locations: %w", err)
	}
	if n > 0 {
		s.logger.Info("Locations resolved by graph data", zap.Int("count", n))
	}
	return n, nil
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
