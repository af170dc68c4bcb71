package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseYAMLAndJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "yaml",
			data: `
nodes: [K1000, K1001, K2000]
edges:
  - [K1000, K1001, 12]
  - [K1001, K2000, 7.5]
coordinates:
  K1000: [0, 0]
  K2000: [30, 40]
`,
		},
		{
			name: "json",
			data: `{"nodes": ["K1000", "K1001", "K2000"],
"edges": [["K1000", "K1001", 12], ["K1001", "K2000", 7.5]],
"coordinates": {"K1000": [0, 0], "K2000": [30, 40]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Parse([]byte(tt.data))
			require.NoError(t, err)

			assert.Equal(t, 3, g.Len())
			d, ok := g.EdgeWeight("K2000", "K1001")
			assert.True(t, ok)
			assert.Equal(t, 7.5, d)

			p, ok := g.Coordinates("K2000")
			require.True(t, ok)
			assert.Equal(t, Point{X: 30, Y: 40}, p)
		})
	}
}

func TestParseRejectsBadEdges(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"short edge", `edges: [[K1000, K1001]]`},
		{"numeric endpoint", `edges: [[1000, K1001, 5]]`},
		{"text distance", `edges: [[K1000, K1001, far]]`},
		{"negative distance", `edges: [[K1000, K1001, -3]]`},
		{"bad coordinates", `coordinates: {K1000: [1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadDefinition(t *testing.T) {
	logger := zap.NewNop()

	g, err := LoadDefinition("", logger)
	require.NoError(t, err)
	assert.Zero(t, g.Len())

	g, err = LoadDefinition(filepath.Join(t.TempDir(), "absent.yaml"), logger)
	require.NoError(t, err)
	assert.Zero(t, g.Len())

	path := filepath.Join(t.TempDir(), "graph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("edges: [[A, B, 4]]\n"), 0o644))
	g, err = LoadDefinition(path, logger)
	require.NoError(t, err)
	assert.True(t, g.HasNode("A"))
	assert.Equal(t, 4.0, NewOracle(g, 100).Distance("B", "A"))
}
