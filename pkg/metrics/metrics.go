package metrics

import (
	"time"
)

// The Record helpers accept a nil registry so callers can run without metrics.

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordImport records the outcome counts of one movement build run.
func (r *Registry) RecordImport(movements, duplicates, rowErrors, unknown int, duration time.Duration) {
	if r == nil {
		return
	}
	r.ImportRowsTotal.WithLabelValues("movement").Add(float64(movements))
	r.ImportRowsTotal.WithLabelValues("duplicate").Add(float64(duplicates))
	r.ImportRowsTotal.WithLabelValues("error").Add(float64(rowErrors))
	r.MovementsInsertedTotal.Add(float64(movements))
	r.UnknownLocationsTotal.Add(float64(unknown))
	r.ImportDuration.Observe(duration.Seconds())
}

// RecordGenerate records a generation run and the per-type recommendation counts.
func (r *Registry) RecordGenerate(outcome string, byType map[string]int, duration time.Duration) {
	if r == nil {
		return
	}
	r.GenerateRunsTotal.WithLabelValues(outcome).Inc()
	r.GenerateDuration.Observe(duration.Seconds())
	for t, n := range byType {
		r.RecommendationsGenerated.WithLabelValues(t).Add(float64(n))
	}
}

func (r *Registry) RecordAnalyzerFailure(analyzer string) {
	if r == nil {
		return
	}
	r.AnalyzerFailuresTotal.WithLabelValues(analyzer).Inc()
}

func (r *Registry) RecordApply(recType, outcome string) {
	if r == nil {
		return
	}
	r.ApplyTotal.WithLabelValues(recType, outcome).Inc()
}

func (r *Registry) IncInFlight() {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Inc()
}

func (r *Registry) DecInFlight() {
	if r == nil {
		return
	}
	r.HTTPRequestsInFlight.Dec()
}
