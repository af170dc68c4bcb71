package models

import (
	"time"

	"github.com/google/uuid"
)

// ImportRun records one ingested event log and its outcome counts.
type ImportRun struct {
	ID               uuid.UUID `db:"id"`
	FileName         string    `db:"file_name"`
	FileSize         int64     `db:"file_size"`
	FileHash         string    `db:"file_hash"`
	Rows             int       `db:"row_count"`
	Movements        int       `db:"movements"`
	Duplicates       int       `db:"duplicates"`
	Errors           int       `db:"errors"`
	UnknownLocations int       `db:"unknown_locations"`
	CreatedAt        time.Time `db:"created_at"`
}
