package dto

import (
	"time"

	"equiptrack/internal/models"
)

type RecommendationResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	SavingsText string  `json:"savings_text"`
	HoursSaved  float64 `json:"hours_saved"`
	Implemented bool    `json:"implemented"`
	DeviceID    string  `json:"device_id,omitempty"`
	DeviceType  string  `json:"device_type,omitempty"`
	CreatedAt   string  `json:"created_at"`

	CurrentLocation     string  `json:"current_location,omitempty"`
	OptimalLocation     string  `json:"optimal_location,omitempty"`
	BestOverallLocation string  `json:"best_overall_location,omitempty"`
	BestStorageLocation string  `json:"best_storage_location,omitempty"`
	DistanceSaved       float64 `json:"distance_saved,omitempty"`
	MovementsPerMonth   float64 `json:"movements_per_month,omitempty"`
	PercentImprovement  float64 `json:"percent_improvement,omitempty"`

	UtilizationRate float64 `json:"utilization_rate,omitempty"`
	AdditionalUnits int     `json:"additional_units,omitempty"`

	HoursUsed float64 `json:"hours_used,omitempty"`
	Threshold float64 `json:"threshold,omitempty"`
	Urgency   string  `json:"urgency,omitempty"`
}

func NewRecommendationResponse(rec *models.Recommendation) RecommendationResponse {
	return RecommendationResponse{
		ID:                  rec.ID.String(),
		Type:                string(rec.Type),
		Title:               rec.Title,
		Description:         rec.Description,
		SavingsText:         rec.SavingsText,
		HoursSaved:          rec.HoursSaved,
		Implemented:         rec.Implemented,
		DeviceID:            rec.DeviceID,
		DeviceType:          rec.DeviceType,
		CreatedAt:           rec.CreatedAt.Format(time.RFC3339),
		CurrentLocation:     rec.CurrentLocation,
		OptimalLocation:     rec.OptimalLocation,
		BestOverallLocation: rec.BestOverallLocation,
		BestStorageLocation: rec.BestStorageLocation,
		DistanceSaved:       rec.DistanceSaved,
		MovementsPerMonth:   rec.MovementsPerMonth,
		PercentImprovement:  rec.PercentImprovement,
		UtilizationRate:     rec.UtilizationRate,
		AdditionalUnits:     rec.AdditionalUnits,
		HoursUsed:           rec.HoursUsed,
		Threshold:           rec.Threshold,
		Urgency:             string(rec.Urgency),
	}
}

func NewRecommendationList(recs []*models.Recommendation) []RecommendationResponse {
	out := make([]RecommendationResponse, len(recs))
	for i, rec := range recs {
		out[i] = NewRecommendationResponse(rec)
	}
	return out
}

type GenerateResponse struct {
	Declined        bool                     `json:"declined"`
	Reason          string                   `json:"reason,omitempty"`
	Count           int                      `json:"count"`
	ByType          map[string]int           `json:"by_type,omitempty"`
	SkippedDevices  []string                 `json:"skipped_devices,omitempty"`
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type ApplyResponse struct {
	Recommendation RecommendationResponse `json:"recommendation"`
	Device         *DeviceResponse        `json:"device,omitempty"`
}

type ApplyAllResponse struct {
	ImplementedCount int      `json:"implemented_count"`
	NumRemoved       int      `json:"num_removed"`
	Failed           []string `json:"failed"`
}
