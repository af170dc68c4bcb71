package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"equiptrack/internal/models"

	"github.com/google/uuid"
)

// NewMemoryStore returns a Store kept entirely in process memory.
// Stored values are copied on the way in and out.
func NewMemoryStore() *Store {
	return &Store{
		Devices:         &memDevices{items: make(map[string]models.Device)},
		Locations:       &memLocations{items: make(map[string]models.Location)},
		Movements:       &memMovements{keys: make(map[models.MovementKey]struct{})},
		Recommendations: &memRecommendations{},
		Imports:         &memImports{},
	}
}

type memDevices struct {
	mu    sync.RWMutex
	items map[string]models.Device
}

func (s *memDevices) Find(_ context.Context, filter DeviceFilter) ([]*models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Device, 0, len(s.items))
	for _, d := range s.items {
		if filter.DeviceID != "" && d.DeviceID != filter.DeviceID {
			continue
		}
		if filter.DeviceType != "" && d.DeviceType != filter.DeviceType {
			continue
		}
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeviceID < out[j].DeviceID })
	return out, nil
}

func (s *memDevices) Get(_ context.Context, deviceID string) (*models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.items[deviceID]
	if !ok {
		return nil, fmt.Errorf("device %s: %w", deviceID, ErrNotFound)
	}
	return &d, nil
}

func (s *memDevices) Upsert(_ context.Context, d *models.Device) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[d.DeviceID] = *d
	return nil
}

func (s *memDevices) RemoveAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]models.Device)
	return nil
}

type memLocations struct {
	mu    sync.RWMutex
	items map[string]models.Location
}

func (s *memLocations) Find(_ context.Context, filter LocationFilter) ([]*models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids map[string]bool
	if len(filter.IDs) > 0 {
		ids = make(map[string]bool, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = true
		}
	}

	out := make([]*models.Location, 0, len(s.items))
	for _, loc := range s.items {
		if ids != nil && !ids[loc.ID] {
			continue
		}
		if filter.KnownOnly && !loc.IsKnown {
			continue
		}
		loc := loc
		out = append(out, &loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memLocations) Upsert(_ context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.items[loc.ID]; ok {
		existing.IsKnown = existing.IsKnown || loc.IsKnown
		s.items[loc.ID] = existing
		return nil
	}
	s.items[loc.ID] = *loc
	return nil
}

func (s *memLocations) MarkKnown(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, id := range ids {
		loc, ok := s.items[id]
		if !ok || loc.IsKnown {
			continue
		}
		loc.IsKnown = true
		s.items[id] = loc
		changed++
	}
	return changed, nil
}

func (s *memLocations) RemoveAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[string]models.Location)
	return nil
}

type memMovements struct {
	mu    sync.RWMutex
	items []models.Movement
	keys  map[models.MovementKey]struct{}
}

func (s *memMovements) Find(_ context.Context, filter MovementFilter) ([]*models.Movement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Movement, 0, len(s.items))
	for _, m := range s.items {
		if filter.DeviceID != "" && m.DeviceID != filter.DeviceID {
			continue
		}
		if filter.UnknownOnly && !m.HasUnknownLocation {
			continue
		}
		m := m
		m.UnknownLocations = append([]string(nil), m.UnknownLocations...)
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TimeIn.Equal(out[j].TimeIn) {
			return out[i].TimeIn.After(out[j].TimeIn)
		}
		return out[i].DeviceID < out[j].DeviceID
	})
	if filter.Limit > 0 && uint64(len(out)) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (s *memMovements) Exists(_ context.Context, key models.MovementKey) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keys[normalizeKey(key)]
	return ok, nil
}

func (s *memMovements) Insert(_ context.Context, m *models.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := m.Key()
	if _, ok := s.keys[key]; ok {
		return fmt.Errorf("%w: %s %s->%s", ErrDuplicateMovement, m.DeviceID, m.FromLocation, m.ToLocation)
	}
	s.keys[key] = struct{}{}
	stored := *m
	stored.UnknownLocations = append([]string(nil), m.UnknownLocations...)
	s.items = append(s.items, stored)
	return nil
}

func (s *memMovements) RemoveAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.keys = make(map[models.MovementKey]struct{})
	return nil
}

func normalizeKey(k models.MovementKey) models.MovementKey {
	k.TimeIn = k.TimeIn.UTC()
	k.TimeOut = k.TimeOut.UTC()
	return k
}

type memRecommendations struct {
	mu    sync.RWMutex
	items []models.Recommendation
}

func (s *memRecommendations) Find(_ context.Context, filter RecommendationFilter) ([]*models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Recommendation, 0, len(s.items))
	for _, rec := range s.items {
		if filter.Type != "" && rec.Type != filter.Type {
			continue
		}
		if filter.DeviceID != "" && rec.DeviceID != filter.DeviceID {
			continue
		}
		rec := rec
		out = append(out, &rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].HoursSaved > out[j].HoursSaved
	})
	return out, nil
}

func (s *memRecommendations) Get(_ context.Context, id uuid.UUID) (*models.Recommendation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.items {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
}

func (s *memRecommendations) ReplaceAll(_ context.Context, recs []*models.Recommendation) error {
	items := make([]models.Recommendation, 0, len(recs))
	for _, rec := range recs {
		items = append(items, *rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}

func (s *memRecommendations) Remove(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.items {
		if rec.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("recommendation %s: %w", id, ErrNotFound)
}

func (s *memRecommendations) RemoveAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}

type memImports struct {
	mu    sync.RWMutex
	items []models.ImportRun
}

func (s *memImports) Insert(_ context.Context, run *models.ImportRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *run)
	return nil
}

func (s *memImports) GetByHash(_ context.Context, hash string) (*models.ImportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].FileHash == hash {
			run := s.items[i]
			return &run, nil
		}
	}
	return nil, fmt.Errorf("import %s: %w", hash, ErrNotFound)
}

func (s *memImports) List(_ context.Context, limit uint64) ([]*models.ImportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ImportRun, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		run := s.items[i]
		out = append(out, &run)
		if limit > 0 && uint64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (s *memImports) RemoveAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return nil
}
