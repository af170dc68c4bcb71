package models

import (
	"regexp"
	"strings"
	"time"
)

type DeviceStatus string

const (
	DeviceStatusInUse     DeviceStatus = "in use"
	DeviceStatusAvailable DeviceStatus = "available"
)

type Device struct {
	DeviceID        string     `db:"device_id"`
	DeviceType      string     `db:"device_type"`
	Status          string     `db:"status"`
	CurrentLocation string     `db:"current_location"`
	TotalUsageHours float64    `db:"total_usage_hours"`
	LastMaintenance *time.Time `db:"last_maintenance"`
	InUseCount      int        `db:"in_use_count"`
	TotalCount      int        `db:"total_count"`
	UsagePercentage float64    `db:"usage_percentage"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// DeviceTypeOf returns the part of a device id before the first '-'.
func DeviceTypeOf(deviceID string) string {
	if i := strings.Index(deviceID, "-"); i >= 0 {
		return deviceID[:i]
	}
	return deviceID
}

// IsInUse reports whether a raw status string marks the device as in use.
func IsInUse(status string) bool {
	return strings.Contains(strings.ToLower(status), string(DeviceStatusInUse))
}

// availablePattern captures a negating prefix so "Unavailable" or
// "Not available" can be told apart from "Available".
var availablePattern = regexp.MustCompile(`(?i)\b(un|not\s+|non-?)?available\b`)

// IsAvailable reports whether a raw status string marks the device as idle in storage.
func IsAvailable(status string) bool {
	for _, m := range availablePattern.FindAllStringSubmatch(status, -1) {
		if m[1] == "" {
			return true
		}
	}
	return false
}
