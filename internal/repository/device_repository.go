package repository

import (
	"context"
	"errors"
	"fmt"

	"equiptrack/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var deviceColumns = []string{
	"device_id", "device_type", "status", "current_location", "total_usage_hours",
	"last_maintenance", "in_use_count", "total_count", "usage_percentage", "updated_at",
}

type DeviceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDeviceRepository(db *pgxpool.Pool, logger *zap.Logger) *DeviceRepository {
	return &DeviceRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DeviceRepository) Upsert(ctx context.Context, d *models.Device) error {
	query := squirrel.Insert("devices").
		Columns(deviceColumns...).
		Values(d.DeviceID, d.DeviceType, d.Status, d.CurrentLocation, d.TotalUsageHours,
			d.LastMaintenance, d.InUseCount, d.TotalCount, d.UsagePercentage, d.UpdatedAt).
		Suffix(`ON CONFLICT (device_id) DO UPDATE SET
			device_type = EXCLUDED.device_type,
			status = EXCLUDED.status,
			current_location = EXCLUDED.current_location,
			total_usage_hours = EXCLUDED.total_usage_hours,
			last_maintenance = EXCLUDED.last_maintenance,
			in_use_count = EXCLUDED.in_use_count,
			total_count = EXCLUDED.total_count,
			usage_percentage = EXCLUDED.usage_percentage,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to upsert device %s: %w", d.DeviceID, err)
	}
	return nil
}

func (r *DeviceRepository) Get(ctx context.Context, deviceID string) (*models.Device, error) {
	query := squirrel.Select(deviceColumns...).
		From("devices").
		Where(squirrel.Eq{"device_id": deviceID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	d, err := scanDevice(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("device %s: %w", deviceID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DeviceRepository) Find(ctx context.Context, filter DeviceFilter) ([]*models.Device, error) {
	query := squirrel.Select(deviceColumns...).
		From("devices").
		OrderBy("device_id").
		PlaceholderFormat(squirrel.Dollar)
	if filter.DeviceID != "" {
		query = query.Where(squirrel.Eq{"device_id": filter.DeviceID})
	}
	if filter.DeviceType != "" {
		query = query.Where(squirrel.Eq{"device_type": filter.DeviceType})
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

	var devices []*models.Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

func (r *DeviceRepository) RemoveAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM devices")
	return err
}

func scanDevice(row pgx.Row) (*models.Device, error) {
	var d models.Device
	if err := row.Scan(
		&d.DeviceID, &d.DeviceType, &d.Status, &d.CurrentLocation, &d.TotalUsageHours,
		&d.LastMaintenance, &d.InUseCount, &d.TotalCount, &d.UsagePercentage, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
