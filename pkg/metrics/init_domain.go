package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initImportMetrics() {
	r.ImportRowsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_import_rows_total",
			Help: "Imported event rows by outcome (movement, duplicate, error, skipped)",
		},
		[]string{"outcome"},
	)

	r.ImportDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "equiptrack_import_duration_seconds",
			Help:    "Duration of movement build runs",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	r.UnknownLocationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "equiptrack_unknown_locations_total",
			Help: "Distinct unresolved location labels seen per import",
		},
	)

	r.MovementsInsertedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "equiptrack_movements_inserted_total",
			Help: "Movements persisted",
		},
	)
}

func (r *Registry) initRecommendationMetrics() {
	r.GenerateRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_generate_runs_total",
			Help: "Recommendation generation runs by outcome",
		},
		[]string{"outcome"},
	)

	r.GenerateDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "equiptrack_generate_duration_seconds",
			Help:    "Duration of recommendation generation runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	r.RecommendationsGenerated = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_recommendations_generated_total",
			Help: "Recommendations produced by type",
		},
		[]string{"type"},
	)

	r.AnalyzerFailuresTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_analyzer_failures_total",
			Help: "Per-device analysis failures that were isolated and skipped",
		},
		[]string{"analyzer"},
	)

	r.ApplyTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "equiptrack_recommendations_applied_total",
			Help: "Recommendation apply attempts by type and outcome",
		},
		[]string{"type", "outcome"},
	)
}
