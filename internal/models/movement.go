package models

import (
	"time"

	"github.com/google/uuid"
)

type Movement struct {
	ID                 uuid.UUID `db:"id"`
	DeviceID           string    `db:"device_id"`
	FromLocation       string    `db:"from_location"`
	ToLocation         string    `db:"to_location"`
	TimeIn             time.Time `db:"time_in"`
	TimeOut            time.Time `db:"time_out"`
	Status             string    `db:"status"`
	DistanceTraveled   float64   `db:"distance_traveled"`
	// DwellHours is the time spent at ToLocation under Status.
	DwellHours         float64   `db:"dwell_hours"`
	HasUnknownLocation bool      `db:"has_unknown_location"`
	UnknownLocations   []string  `db:"unknown_locations"`
	CreatedAt          time.Time `db:"created_at"`
}

// MovementKey is the uniqueness tuple of a movement.
type MovementKey struct {
	DeviceID     string
	FromLocation string
	ToLocation   string
	TimeIn       time.Time
	TimeOut      time.Time
}

func (m *Movement) Key() MovementKey {
	return MovementKey{
		DeviceID:     m.DeviceID,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		TimeIn:       m.TimeIn.UTC(),
		TimeOut:      m.TimeOut.UTC(),
	}
}

// Hours returns the dwell at the destination. Dwell windows of consecutive
// movements never overlap, so summing Hours never counts a row twice.
func (m *Movement) Hours() float64 {
	if m.DwellHours < 0 {
		return 0
	}
	return m.DwellHours
}

// RawEvent is one parsed row of a location-tracking export.
type RawEvent struct {
	Line     int    `validate:"-"`
	Device   string `validate:"required"`
	Location string `validate:"required"`
	Status   string `validate:"required"`
	In       string `validate:"required"`
	Out      string `validate:"required"`

	TimeIn  time.Time `validate:"-"`
	TimeOut time.Time `validate:"-"`
}

// RowError describes an input row that could not become part of a movement.
type RowError struct {
	Line   int               `json:"line"`
	Error  string            `json:"error"`
	Record map[string]string `json:"record,omitempty"`
}

// Fields returns the raw column values of the row keyed by canonical field name.
func (e *RawEvent) Fields() map[string]string {
	return map[string]string{
		"device":   e.Device,
		"location": e.Location,
		"status":   e.Status,
		"in":       e.In,
		"out":      e.Out,
	}
}
