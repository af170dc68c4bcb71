package models

import (
	"time"

	"github.com/google/uuid"
)

type RecommendationType string

const (
	RecommendationPlacement   RecommendationType = "placement"
	RecommendationPurchase    RecommendationType = "purchase"
	RecommendationMaintenance RecommendationType = "maintenance"
)

type Urgency string

const (
	UrgencyUrgent   Urgency = "urgent"
	UrgencyUpcoming Urgency = "upcoming"
)

type Recommendation struct {
	ID          uuid.UUID          `db:"id"`
	Type        RecommendationType `db:"type"`
	Title       string             `db:"title"`
	Description string             `db:"description"`
	SavingsText string             `db:"savings_text"`
	Implemented bool               `db:"implemented"`
	CreatedAt   time.Time          `db:"created_at"`
	HoursSaved  float64            `db:"hours_saved"`

	DeviceID string `db:"device_id"`

	// placement
	CurrentLocation     string  `db:"current_location"`
	OptimalLocation     string  `db:"optimal_location"`
	BestOverallLocation string  `db:"best_overall_location"`
	BestStorageLocation string  `db:"best_storage_location"`
	DistanceSaved       float64 `db:"distance_saved"`
	MovementsPerMonth   float64 `db:"movements_per_month"`
	PercentImprovement  float64 `db:"percent_improvement"`

	// purchase
	DeviceType      string  `db:"device_type"`
	UtilizationRate float64 `db:"utilization_rate"`
	AdditionalUnits int     `db:"additional_units"`

	// maintenance
	HoursUsed float64 `db:"hours_used"`
	Threshold float64 `db:"threshold"`
	Urgency   Urgency `db:"urgency"`
}
