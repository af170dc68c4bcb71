package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"equiptrack/internal/api/handlers"
	"equiptrack/internal/app"
	"equiptrack/internal/dto"
	"equiptrack/pkg/config"
	"equiptrack/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Vent-1 shuttles between storage K0110 and K1000, with one visit to a room
// missing from every table.
const eventLog = `Device,Location,Status,In,Out
Vent-1,K0110 Storage,Available,2024-01-01 08:00:00,2024-01-01 09:00:00
Vent-1,K1000,In Use,2024-01-01 09:00:00,2024-01-01 13:00:00
Vent-1,K0110 Storage,Available,2024-01-01 13:00:00,2024-01-01 14:00:00
Vent-1,K1000,In Use,2024-01-01 14:00:00,2024-01-01 18:00:00
Vent-1,K0110 Storage,Available,2024-01-01 18:00:00,2024-01-01 19:00:00
Vent-1,K1000,In Use,2024-01-01 19:00:00,2024-01-01 23:00:00
Vent-1,Loading Dock,Available,2024-01-02 08:00:00,2024-01-02 09:00:00
`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Store: config.StoreConfig{Driver: "memory"},
		Analytics: config.AnalyticsConfig{
			DefaultDistanceFt: 100,
			UtilizationMode:   "type",
		},
	}
	logger := zap.NewNop()
	a, err := app.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	return SetupRouter(Handlers{
		Imports:         handlers.NewImportHandler(a.Imports, logger),
		Inventory:       handlers.NewInventoryHandler(a.Inventory, logger),
		Recommendations: handlers.NewRecommendationHandler(a.Recommendations, logger),
	}, Options{BodyLimitMB: 4, Metrics: metrics.NewRegistry()}, logger)
}

func uploadRequest(t *testing.T, name, content string, skipSeen bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = io.WriteString(part, content)
	require.NoError(t, err)
	if skipSeen {
		require.NoError(t, w.WriteField("skip_seen", "true"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func do(t *testing.T, srv *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()
	resp, err := srv.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestApp(t)
	var body map[string]string
	resp := do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil), &body)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestImportGenerateApplyFlow(t *testing.T) {
	srv := newTestApp(t)

	var imported dto.ImportResponse
	resp := do(t, srv, uploadRequest(t, "log.csv", eventLog, true), &imported)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 7, imported.Rows)
	assert.Equal(t, 6, imported.Movements)
	assert.Equal(t, []string{"Loading Dock"}, imported.UnknownLocations)

	var conflict map[string]string
	resp = do(t, srv, uploadRequest(t, "again.csv", eventLog, true), &conflict)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NotEmpty(t, conflict["error"])

	var devices []dto.DeviceResponse
	resp = do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/devices", nil), &devices)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, devices, 1)
	assert.Equal(t, "Vent-1", devices[0].DeviceID)
	assert.Equal(t, "K1000", devices[0].CurrentLocation, "unknown last room keeps the previous location")

	var locations []dto.LocationResponse
	do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/locations", nil), &locations)
	require.Len(t, locations, 2)
	assert.Equal(t, "K0110", locations[0].ID)
	assert.True(t, locations[0].IsStorageType)

	resp, err := srv.Test(httptest.NewRequest(http.MethodGet, "/api/v1/movements/unknown.csv", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/csv")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Loading Dock")

	var generated dto.GenerateResponse
	resp = do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil), &generated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, generated.Declined)
	assert.Equal(t, len(generated.Recommendations), generated.Count)

	var listed []dto.RecommendationResponse
	do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil), &listed)
	assert.Len(t, listed, generated.Count)

	var applied dto.ApplyAllResponse
	resp = do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/apply-all", nil), &applied)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, generated.Count, applied.ImplementedCount)
	assert.Empty(t, applied.Failed)
}

func TestImportRecords(t *testing.T) {
	srv := newTestApp(t)

	body := `{"records":[
		{"device":"Pump-1","location":"K2000","status":"Available","in":"2024-01-01T08:00:00Z","out":"2024-01-01T09:00:00Z"},
		{"device":"Pump-1","location":"K2001","status":"In Use","in":"2024-01-01T09:00:00Z","out":"2024-01-01T10:00:00Z"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/records", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	var res dto.ImportResponse
	resp := do(t, srv, req, &res)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, res.Movements)

	var runs []dto.ImportRunResponse
	do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/imports", nil), &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, "api", runs[0].FileName)
}

func TestGenerateDeclinedOnEmptyStore(t *testing.T) {
	srv := newTestApp(t)

	var generated dto.GenerateResponse
	resp := do(t, srv, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", nil), &generated)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, generated.Declined)
	assert.NotEmpty(t, generated.Reason)
	assert.Zero(t, generated.Count)
}

func TestRequestErrors(t *testing.T) {
	srv := newTestApp(t)

	cases := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{"bad id", httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/not-a-uuid/apply", nil), fiber.StatusBadRequest},
		{"unknown id", httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/6f1c1c56-8a4e-4d0f-9d64-2b1b7f0e6a11/apply", nil), fiber.StatusNotFound},
		{"bad type filter", httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?type=relocation", nil), fiber.StatusBadRequest},
		{"missing file", httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil), fiber.StatusBadRequest},
		{"unrecognized header", uploadRequest(t, "bad.csv", "foo,bar\n1,2\n", false), fiber.StatusBadRequest},
		{"unknown device", httptest.NewRequest(http.MethodGet, "/api/v1/devices/Nope-1", nil), fiber.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body map[string]string
			resp := do(t, srv, tc.req, &body)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestResetAndMetrics(t *testing.T) {
	srv := newTestApp(t)
	do(t, srv, uploadRequest(t, "log.csv", eventLog, false), nil)

	resp := do(t, srv, httptest.NewRequest(http.MethodDelete, "/api/v1/data", nil), nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	var devices []dto.DeviceResponse
	do(t, srv, httptest.NewRequest(http.MethodGet, "/api/v1/devices", nil), &devices)
	assert.Empty(t, devices)

	resp, err := srv.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "equiptrack_http_requests_total")
}
