package dto

import (
	"time"

	"equiptrack/internal/models"
)

type DeviceResponse struct {
	DeviceID        string  `json:"device_id"`
	DeviceType      string  `json:"device_type"`
	Status          string  `json:"status"`
	CurrentLocation string  `json:"current_location"`
	TotalUsageHours float64 `json:"total_usage_hours"`
	LastMaintenance *string `json:"last_maintenance"`
	InUseCount      int     `json:"in_use_count"`
	TotalCount      int     `json:"total_count"`
	UsagePercentage float64 `json:"usage_percentage"`
	UpdatedAt       string  `json:"updated_at"`
}

func NewDeviceResponse(d *models.Device) *DeviceResponse {
	resp := &DeviceResponse{
		DeviceID:        d.DeviceID,
		DeviceType:      d.DeviceType,
		Status:          d.Status,
		CurrentLocation: d.CurrentLocation,
		TotalUsageHours: d.TotalUsageHours,
		InUseCount:      d.InUseCount,
		TotalCount:      d.TotalCount,
		UsagePercentage: d.UsagePercentage,
		UpdatedAt:       d.UpdatedAt.Format(time.RFC3339),
	}
	if d.LastMaintenance != nil {
		s := d.LastMaintenance.Format(time.RFC3339)
		resp.LastMaintenance = &s
	}
	return resp
}

type LocationResponse struct {
	ID            string `json:"location_id"`
	DisplayName   string `json:"display_name"`
	IsStorageType bool   `json:"is_storage_type"`
	IsKnown       bool   `json:"is_known"`
}

type MovementResponse struct {
	ID                 string   `json:"id"`
	DeviceID           string   `json:"device_id"`
	FromLocation       string   `json:"from_location"`
	ToLocation         string   `json:"to_location"`
	TimeIn             string   `json:"time_in"`
	TimeOut            string   `json:"time_out"`
	Status             string   `json:"status"`
	DistanceTraveled   float64  `json:"distance_traveled"`
	DwellHours         float64  `json:"dwell_hours"`
	HasUnknownLocation bool     `json:"has_unknown_location"`
	UnknownLocations   []string `json:"unknown_locations,omitempty"`
}

func NewMovementResponse(m *models.Movement) MovementResponse {
	return MovementResponse{
		ID:                 m.ID.String(),
		DeviceID:           m.DeviceID,
		FromLocation:       m.FromLocation,
		ToLocation:         m.ToLocation,
		TimeIn:             m.TimeIn.Format(time.RFC3339),
		TimeOut:            m.TimeOut.Format(time.RFC3339),
		Status:             m.Status,
		DistanceTraveled:   m.DistanceTraveled,
		DwellHours:         m.DwellHours,
		HasUnknownLocation: m.HasUnknownLocation,
		UnknownLocations:   m.UnknownLocations,
	}
}
