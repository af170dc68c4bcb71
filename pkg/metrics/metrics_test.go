package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/api/v1/devices", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/api/v1/devices", "200", 10*time.Millisecond)
	r.RecordHTTPRequest("POST", "/api/v1/imports", "400", 5*time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, r.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/devices", "200")))
	assert.Equal(t, 1.0, counterValue(t, r.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/imports", "400")))
}

func TestRecordImportAndGenerate(t *testing.T) {
	r := NewRegistry()

	r.RecordImport(7, 2, 1, 3, time.Second)
	assert.Equal(t, 7.0, counterValue(t, r.ImportRowsTotal.WithLabelValues("movement")))
	assert.Equal(t, 2.0, counterValue(t, r.ImportRowsTotal.WithLabelValues("duplicate")))
	assert.Equal(t, 1.0, counterValue(t, r.ImportRowsTotal.WithLabelValues("error")))
	assert.Equal(t, 3.0, counterValue(t, r.UnknownLocationsTotal))

	r.RecordGenerate("success", map[string]int{"placement": 2, "maintenance": 1}, time.Second)
	assert.Equal(t, 1.0, counterValue(t, r.GenerateRunsTotal.WithLabelValues("success")))
	assert.Equal(t, 2.0, counterValue(t, r.RecommendationsGenerated.WithLabelValues("placement")))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.RecordImport(1, 1, 1, 1, time.Second)
		r.RecordApply("placement", "success")
		r.IncInFlight()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordApply("placement", "success")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "equiptrack_recommendations_applied_total"))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, c.Write(&metric))
	return metric.GetCounter().GetValue()
}
