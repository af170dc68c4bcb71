package service

import (
	"fmt"

	"equiptrack/internal/models"
)

func placementRecommendation(device *models.Device, r PlacementResult) *models.Recommendation {
	return &models.Recommendation{
		Type:  models.RecommendationPlacement,
		Title: fmt.Sprintf("Store %s in %s", device.DeviceID, r.OptimalLocation),
		Description: fmt.Sprintf(
			"%s is usually stored in %s. Keeping it in %s shortens its routes by %.1f%% "+
				"(best overall room: %s, best storage room: %s).",
			device.DeviceID, r.CurrentLocation, r.OptimalLocation, r.PercentImprovement,
			orNone(r.BestOverallLocation), orNone(r.BestStorageLocation),
		),
		SavingsText:         fmt.Sprintf("Saves about %.1f staff hours per month (%.0f ft over the recorded history)", r.HoursSaved, r.DistanceSaved),
		HoursSaved:          r.HoursSaved,
		DeviceID:            device.DeviceID,
		DeviceType:          device.DeviceType,
		CurrentLocation:     r.CurrentLocation,
		OptimalLocation:     r.OptimalLocation,
		BestOverallLocation: r.BestOverallLocation,
		BestStorageLocation: r.BestStorageLocation,
		DistanceSaved:       r.DistanceSaved,
		MovementsPerMonth:   r.MovementsPerMonth,
		PercentImprovement:  r.PercentImprovement,
	}
}

func purchaseRecommendation(r UtilizationResult) *models.Recommendation {
	unit := "unit"
	if r.AdditionalUnits > 1 {
		unit = "units"
	}
	return &models.Recommendation{
		Type:  models.RecommendationPurchase,
		Title: fmt.Sprintf("Add %d %s %s", r.AdditionalUnits, r.DeviceType, unit),
		Description: fmt.Sprintf(
			"%s is in use %.1f%% of tracked time (%.1f of %.1f hours), above the %.0f%% target.",
			r.subject(), r.UtilizationRate, r.InUseHours, r.TotalHours, utilizationThreshold,
		),
		SavingsText:     "Reduces time staff spend searching for available equipment",
		DeviceID:        r.DeviceID,
		DeviceType:      r.DeviceType,
		UtilizationRate: r.UtilizationRate,
		AdditionalUnits: r.AdditionalUnits,
	}
}

func maintenanceRecommendation(r MaintenanceResult) *models.Recommendation {
	when := "within the next month"
	if r.Urgency == models.UrgencyUrgent {
		when = "immediately"
	}
	return &models.Recommendation{
		Type:  models.RecommendationMaintenance,
		Title: fmt.Sprintf("Service %s %s", r.DeviceID, when),
		Description: fmt.Sprintf(
			"%s has %.1f in-use hours against a %.0f hour service interval.",
			r.DeviceID, r.HoursUsed, r.Threshold,
		),
		SavingsText: "Avoids unplanned downtime",
		DeviceID:    r.DeviceID,
		DeviceType:  r.DeviceType,
		HoursUsed:   r.HoursUsed,
		Threshold:   r.Threshold,
		Urgency:     r.Urgency,
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
