package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"equiptrack/internal/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `device,location,status,in,out
Vent-1,K1000,Available,2024-01-01 08:00:00,2024-01-01 09:00:00
Vent-1,K1001,In Use,2024-01-01 09:00:00,2024-01-01 11:00:00
Vent-1,Loading Dock,Available,2024-01-01 11:00:00,2024-01-01 12:00:00
Vent-1,K1002,In Use,yesterday,2024-01-01 13:00:00
`

func TestImportCSV(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	res, err := env.imports.ImportCSV(ctx, "export.csv", strings.NewReader(sampleExport), ImportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "export.csv", res.FileName)
	assert.Equal(t, int64(len(sampleExport)), res.FileSize)
	assert.Len(t, res.FileHash, 32)
	assert.Equal(t, 4, res.Rows)
	assert.Equal(t, 2, res.Movements)
	assert.Equal(t, []string{"Loading Dock"}, res.UnknownLocations)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 5, res.Errors[0].Line)
	assert.Equal(t, 1, res.DevicesUpdated)

	runs, err := env.imports.ListImports(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.FileHash, runs[0].FileHash)
	assert.Equal(t, 2, runs[0].Movements)
	assert.Equal(t, 1, runs[0].Errors)
	assert.Equal(t, 1, runs[0].UnknownLocations)
}

func TestImportCSVSkipSeen(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.imports.ImportCSV(ctx, "a.csv", strings.NewReader(sampleExport), ImportOptions{SkipSeen: true})
	require.NoError(t, err)

	_, err = env.imports.ImportCSV(ctx, "b.csv", strings.NewReader(sampleExport), ImportOptions{SkipSeen: true})
	assert.True(t, errors.Is(err, ErrAlreadyImported))

	again, err := env.imports.ImportCSV(ctx, "b.csv", strings.NewReader(sampleExport), ImportOptions{})
	require.NoError(t, err)
	assert.Zero(t, again.Movements)
	assert.Equal(t, 2, again.Duplicates)
}

func TestImportCSVMissingColumnReportsEveryRow(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	data := "device,location,in,out\n" +
		"Vent-1,K1000,2024-01-01 08:00:00,2024-01-01 09:00:00\n" +
		"Vent-1,K1001,2024-01-01 09:00:00,2024-01-01 12:00:00\n"

	res, err := env.imports.ImportCSV(ctx, "nostatus.csv", strings.NewReader(data), ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Zero(t, res.Movements)
	require.Len(t, res.Errors, 2)
	for i, rowErr := range res.Errors {
		assert.Equal(t, i+2, rowErr.Line)
		assert.Contains(t, rowErr.Error, "Status")
		assert.Equal(t, "Vent-1", rowErr.Record["device"])
	}

	records, err := env.imports.ImportRecords(ctx, "api", []map[string]any{
		{"device": "Vent-2", "location": "K1000", "in": "2024-01-01 08:00:00", "out": "2024-01-01 09:00:00"},
		{"device": "Vent-2", "location": "K1001", "in": "2024-01-01 09:00:00", "out": "2024-01-01 12:00:00"},
	})
	require.NoError(t, err)
	assert.Len(t, records.Errors, len(res.Errors), "csv and record imports report the same rows")
}

func TestImportCSVUnrecognizedHeader(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.imports.ImportCSV(context.Background(), "bad.csv", strings.NewReader("foo,bar\n1,2\n"), ImportOptions{})
	assert.True(t, errors.Is(err, ingest.ErrUnrecognizedHeader))
}

func TestImportRecords(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	res, err := env.imports.ImportRecords(ctx, "api", []map[string]any{
		{"device": "Pump-1", "location": "K2000", "status": "Available", "in": "2024-01-01T08:00:00Z", "out": "2024-01-01T09:00:00Z"},
		{"Device": "Pump-1", "Location": "K2001", "Status": "In Use", "In": "2024-01-01T09:00:00Z", "Out": "2024-01-01T12:00:00Z"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, 1, res.Movements)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.FileHash)

	device, err := env.store.Devices.Get(ctx, "Pump-1")
	require.NoError(t, err)
	assert.Equal(t, "K2001", device.CurrentLocation)
}
