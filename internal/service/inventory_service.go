package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"equiptrack/internal/models"
	"equiptrack/internal/repository"
)

// InventoryService serves the read-only views of devices, locations and movements.
type InventoryService struct {
	store *repository.Store
}

func NewInventoryService(store *repository.Store) *InventoryService {
	return &InventoryService{store: store}
}

func (s *InventoryService) Devices(ctx context.Context, filter repository.DeviceFilter) ([]*models.Device, error) {
	return s.store.Devices.Find(ctx, filter)
}

func (s *InventoryService) Locations(ctx context.Context, filter repository.LocationFilter) ([]*models.Location, error) {
	return s.store.Locations.Find(ctx, filter)
}

// Movements returns movements newest first.
func (s *InventoryService) Movements(ctx context.Context, filter repository.MovementFilter) ([]*models.Movement, error) {
	return s.store.Movements.Find(ctx, filter)
}

// ExportUnknown writes movements that touch an unresolved location as CSV
// and returns how many were written.
func (s *InventoryService) ExportUnknown(ctx context.Context, w io.Writer) (int, error) {
	movements, err := s.store.Movements.Find(ctx, repository.MovementFilter{UnknownOnly: true})
	if err != nil {
		return 0, fmt.Errorf("failed to load movements: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"device", "from", "to", "timeIn", "timeOut", "status", "unknownLocations"}); err != nil {
		return 0, err
	}
	for _, m := range movements {
		if err := cw.Write([]string{
			m.DeviceID,
			m.FromLocation,
			m.ToLocation,
			m.TimeIn.UTC().Format(time.RFC3339),
			m.TimeOut.UTC().Format(time.RFC3339),
			m.Status,
			strings.Join(m.UnknownLocations, "; "),
		}); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	return len(movements), cw.Error()
}
