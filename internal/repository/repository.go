// Package repository persists devices, locations, movements and recommendations.
package repository

import (
	"context"
	"errors"

	"equiptrack/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateMovement indicates a movement with the same
	// (device, from, to, timeIn, timeOut) tuple is already stored.
	ErrDuplicateMovement = errors.New("duplicate movement")
)

type DeviceFilter struct {
	DeviceID   string
	DeviceType string
}

type LocationFilter struct {
	IDs       []string
	KnownOnly bool
}

type MovementFilter struct {
	DeviceID    string
	UnknownOnly bool
	Limit       uint64
}

type RecommendationFilter struct {
	Type     models.RecommendationType
	DeviceID string
}

type DeviceStore interface {
	Find(ctx context.Context, filter DeviceFilter) ([]*models.Device, error)
	Get(ctx context.Context, deviceID string) (*models.Device, error)
	Upsert(ctx context.Context, device *models.Device) error
	RemoveAll(ctx context.Context) error
}

// LocationStore never overwrites an existing location; Upsert only flips
// IsKnown from false to true.
type LocationStore interface {
	Find(ctx context.Context, filter LocationFilter) ([]*models.Location, error)
	Upsert(ctx context.Context, loc *models.Location) error
	MarkKnown(ctx context.Context, ids []string) (int, error)
	RemoveAll(ctx context.Context) error
}

// MovementStore returns movements ordered by TimeIn descending.
type MovementStore interface {
	Find(ctx context.Context, filter MovementFilter) ([]*models.Movement, error)
	Exists(ctx context.Context, key models.MovementKey) (bool, error)
	Insert(ctx context.Context, m *models.Movement) error
	RemoveAll(ctx context.Context) error
}

// RecommendationStore returns recommendations ordered by CreatedAt descending,
// then HoursSaved descending.
type RecommendationStore interface {
	Find(ctx context.Context, filter RecommendationFilter) ([]*models.Recommendation, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Recommendation, error)
	// ReplaceAll removes every stored recommendation and inserts recs atomically.
	ReplaceAll(ctx context.Context, recs []*models.Recommendation) error
	Remove(ctx context.Context, id uuid.UUID) error
	RemoveAll(ctx context.Context) error
}

type ImportStore interface {
	Insert(ctx context.Context, run *models.ImportRun) error
	GetByHash(ctx context.Context, hash string) (*models.ImportRun, error)
	List(ctx context.Context, limit uint64) ([]*models.ImportRun, error)
	RemoveAll(ctx context.Context) error
}

// Store groups the collections behind one handle.
type Store struct {
	Devices         DeviceStore
	Locations       LocationStore
	Movements       MovementStore
	Recommendations RecommendationStore
	Imports         ImportStore
}

func NewPostgresStore(db *pgxpool.Pool, logger *zap.Logger) *Store {
	return &Store{
		Devices:         NewDeviceRepository(db, logger),
		Locations:       NewLocationRepository(db, logger),
		Movements:       NewMovementRepository(db, logger),
		Recommendations: NewRecommendationRepository(db, logger),
		Imports:         NewImportRepository(db, logger),
	}
}

// Reset clears every collection.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.Recommendations.RemoveAll(ctx); err != nil {
		return err
	}
	if err := s.Movements.RemoveAll(ctx); err != nil {
		return err
	}
	if err := s.Devices.RemoveAll(ctx); err != nil {
		return err
	}
	if err := s.Locations.RemoveAll(ctx); err != nil {
		return err
	}
	return s.Imports.RemoveAll(ctx)
}
