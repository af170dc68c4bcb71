package models

import "time"

// UnknownLocation is the sentinel room id for labels that could not be normalized.
const UnknownLocation = "UNKNOWN LOCATION"

type Location struct {
	ID            string    `db:"location_id"`
	DisplayName   string    `db:"display_name"`
	IsStorageType bool      `db:"is_storage_type"`
	IsKnown       bool      `db:"is_known"`
	CreatedAt     time.Time `db:"created_at"`
}

// Edge is an undirected weighted link between two rooms, distance in feet.
type Edge struct {
	A        string
	B        string
	Distance float64
}
