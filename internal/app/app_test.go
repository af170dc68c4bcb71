package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"equiptrack/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Driver: "memory"},
		Analytics: config.AnalyticsConfig{
			DefaultDistanceFt: 100,
			UtilizationMode:   "type",
		},
	}
}

func TestNewMemoryApp(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Metrics)
	assert.Equal(t, 100.0, a.Oracle.Distance("K1000", "K2000"))

	res, err := a.Recommendations.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Declined)
}

func TestNewLoadsGraphFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nodes: [K1000, K1001]
edges:
  - [K1000, K1001, 42]
`), 0o644))

	cfg := memoryConfig()
	cfg.Analytics.GraphFile = path
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, 42.0, a.Oracle.Distance("K1000", "K1001"))
}

func TestNewGraphFallbacks(t *testing.T) {
	cfg := memoryConfig()
	cfg.Analytics.GraphFile = filepath.Join(t.TempDir(), "missing.yaml")
	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err, "a missing graph file degrades to default distances")
	assert.Equal(t, 100.0, a.Oracle.Distance("K1000", "K1001"))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("edges: [[K1000, K1001]]\n"), 0o644))
	cfg.Analytics.GraphFile = bad
	_, err = New(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
}
