package repository

import (
	"context"
	"fmt"

	"equiptrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type LocationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewLocationRepository(db *pgxpool.Pool, logger *zap.Logger) *LocationRepository {
	return &LocationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *LocationRepository) Upsert(ctx context.Context, loc *models.Location) error {
	query := squirrel.Insert("locations").
		Columns("location_id", "display_name", "is_storage_type", "is_known", "created_at").
		Values(loc.ID, loc.DisplayName, loc.IsStorageType, loc.IsKnown, loc.CreatedAt).
		Suffix("ON CONFLICT (location_id) DO UPDATE SET is_known = locations.is_known OR EXCLUDED.is_known").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert location %s: %w", loc.ID, err)
	}
	return nil
}

// MarkKnown flips is_known for the given ids and returns how many rows changed.
func (r *LocationRepository) MarkKnown(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := squirrel.Update("locations").
		Set("is_known", true).
		Where(squirrel.Eq{"location_id": ids, "is_known": false}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *LocationRepository) Find(ctx context.Context, filter LocationFilter) ([]*models.Location, error) {
	query := squirrel.Select("location_id", "display_name", "is_storage_type", "is_known", "created_at").
		From("locations").
		OrderBy("location_id").
		PlaceholderFormat(squirrel.Dollar)
	if len(filter.IDs) > 0 {
		query = query.Where(squirrel.Eq{"location_id": filter.IDs})
	}
	if filter.KnownOnly {
		query = query.Where(squirrel.Eq{"is_known": true})
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

	var locations []*models.Location
	for rows.Next() {
		var loc models.Location
		if err := rows.Scan(&loc.ID, &loc.DisplayName, &loc.IsStorageType, &loc.IsKnown, &loc.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, &loc)
	}
	return locations, rows.Err()
}

func (r *LocationRepository) RemoveAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM locations")
	return err
}
