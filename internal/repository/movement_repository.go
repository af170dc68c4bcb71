package repository

import (
	"context"
	"errors"
	"fmt"

	"equiptrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

var movementColumns = []string{
	"id", "device_id", "from_location", "to_location", "time_in", "time_out", "status",
	"distance_traveled", "dwell_hours", "has_unknown_location", "unknown_locations", "created_at",
}

type MovementRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMovementRepository(db *pgxpool.Pool, logger *zap.Logger) *MovementRepository {
	return &MovementRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MovementRepository) Insert(ctx context.Context, m *models.Movement) error {
	unknown := m.UnknownLocations
	if unknown == nil {
		unknown = []string{}
	}

	query := squirrel.Insert("movements").
		Columns(movementColumns...).
		Values(m.ID, m.DeviceID, m.FromLocation, m.ToLocation, m.TimeIn, m.TimeOut, m.Status,
			m.DistanceTraveled, m.DwellHours, m.HasUnknownLocation, unknown, m.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s %s->%s", ErrDuplicateMovement, m.DeviceID, m.FromLocation, m.ToLocation)
	}
	return err
}

func (r *MovementRepository) Exists(ctx context.Context, key models.MovementKey) (bool, error) {
	query := squirrel.Select("1").
		Prefix("SELECT EXISTS (").
		From("movements").
		Where(squirrel.Eq{
			"device_id":     key.DeviceID,
			"from_location": key.FromLocation,
			"to_location":   key.ToLocation,
			"time_in":       key.TimeIn,
			"time_out":      key.TimeOut,
		}).
		Suffix(")").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MovementRepository) Find(ctx context.Context, filter MovementFilter) ([]*models.Movement, error) {
	query := squirrel.Select(movementColumns...).
		From("movements").
		OrderBy("time_in DESC", "device_id").
		PlaceholderFormat(squirrel.Dollar)
	if filter.DeviceID != "" {
		query = query.Where(squirrel.Eq{"device_id": filter.DeviceID})
	}
	if filter.UnknownOnly {
		query = query.Where(squirrel.Eq{"has_unknown_location": true})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		var m models.Movement
		if err := rows.Scan(
			&m.ID, &m.DeviceID, &m.FromLocation, &m.ToLocation, &m.TimeIn, &m.TimeOut, &m.Status,
			&m.DistanceTraveled, &m.DwellHours, &m.HasUnknownLocation, &m.UnknownLocations, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

func (r *MovementRepository) RemoveAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM movements")
	return err
}
