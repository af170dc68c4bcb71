package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS devices (
	device_id TEXT PRIMARY KEY,
	device_type TEXT NOT NULL,
	status TEXT NOT NULL,
	current_location TEXT NOT NULL,
	total_usage_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	last_maintenance TIMESTAMPTZ,
	in_use_count INTEGER NOT NULL DEFAULT 0,
	total_count INTEGER NOT NULL DEFAULT 0,
	usage_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_devices_type ON devices(device_type);

CREATE TABLE IF NOT EXISTS locations (
	location_id TEXT PRIMARY KEY,
	display_name TEXT NOT NULL,
	is_storage_type BOOLEAN NOT NULL DEFAULT FALSE,
	is_known BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS movements (
	id UUID PRIMARY KEY,
	device_id TEXT NOT NULL,
	from_location TEXT NOT NULL,
	to_location TEXT NOT NULL,
	time_in TIMESTAMPTZ NOT NULL,
	time_out TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	distance_traveled DOUBLE PRECISION NOT NULL DEFAULT 0,
	dwell_hours DOUBLE PRECISION NOT NULL DEFAULT 0,
	has_unknown_location BOOLEAN NOT NULL DEFAULT FALSE,
	unknown_locations TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL,
	CHECK (from_location <> to_location),
	CHECK (time_out >= time_in)
);

ALTER TABLE movements ADD COLUMN IF NOT EXISTS dwell_hours DOUBLE PRECISION NOT NULL DEFAULT 0;

CREATE UNIQUE INDEX IF NOT EXISTS idx_movements_unique
	ON movements(device_id, from_location, to_location, time_in, time_out);
CREATE INDEX IF NOT EXISTS idx_movements_time_in ON movements(time_in DESC);

CREATE TABLE IF NOT EXISTS recommendations (
	id UUID PRIMARY KEY,
	type TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	savings_text TEXT NOT NULL,
	implemented BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	hours_saved DOUBLE PRECISION NOT NULL DEFAULT 0,
	device_id TEXT NOT NULL DEFAULT '',
	current_location TEXT NOT NULL DEFAULT '',
	optimal_location TEXT NOT NULL DEFAULT '',
	best_overall_location TEXT NOT NULL DEFAULT '',
	best_storage_location TEXT NOT NULL DEFAULT '',
	distance_saved DOUBLE PRECISION NOT NULL DEFAULT 0,
	movements_per_month DOUBLE PRECISION NOT NULL DEFAULT 0,
	percent_improvement DOUBLE PRECISION NOT NULL DEFAULT 0,
	device_type TEXT NOT NULL DEFAULT '',
	utilization_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
	additional_units INTEGER NOT NULL DEFAULT 0,
	hours_used DOUBLE PRECISION NOT NULL DEFAULT 0,
	threshold DOUBLE PRECISION NOT NULL DEFAULT 0,
	urgency TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS imports (
	id UUID PRIMARY KEY,
	file_name TEXT NOT NULL,
	file_size BIGINT NOT NULL DEFAULT 0,
	file_hash TEXT NOT NULL,
	row_count INTEGER NOT NULL DEFAULT 0,
	movements INTEGER NOT NULL DEFAULT 0,
	duplicates INTEGER NOT NULL DEFAULT 0,
	errors INTEGER NOT NULL DEFAULT 0,
	unknown_locations INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_imports_hash ON imports(file_hash);
`

// Migrate creates the tables used by the repositories if they do not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
