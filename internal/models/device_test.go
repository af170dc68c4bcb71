package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"Available", true},
		{"available", true},
		{"AVAILABLE - cleaned", true},
		{"Available (storage)", true},
		{"Unavailable", false},
		{"UNAVAILABLE", false},
		{"Not available", false},
		{"not  Available", false},
		{"Non-available", false},
		{"Nonavailable", false},
		{"Unavailable, now available", true},
		{"In Use", false},
		{"", false},
		{"Availableish", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(tt.status))
		})
	}
}

func TestIsInUse(t *testing.T) {
	assert.True(t, IsInUse("In Use"))
	assert.True(t, IsInUse("in use - ICU"))
	assert.False(t, IsInUse("Available"))
}

func TestDeviceTypeOf(t *testing.T) {
	assert.Equal(t, "Ventilator", DeviceTypeOf("Ventilator-1"))
	assert.Equal(t, "IVPump", DeviceTypeOf("IVPump-3-B"))
	assert.Equal(t, "Scanner", DeviceTypeOf("Scanner"))
}
