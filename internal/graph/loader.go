package graph

import (
	"errors"
	"fmt"
	"os"

	"equiptrack/internal/models"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Definition is the on-disk graph format. JSON files decode as YAML.
type Definition struct {
	Nodes       []string             `yaml:"nodes"`
	Edges       [][]any              `yaml:"edges"`
	Coordinates map[string][]float64 `yaml:"coordinates"`
}

// Build converts a definition into a Graph.
func (d *Definition) Build() (*Graph, error) {
	edges := make([]models.Edge, 0, len(d.Edges))
	for i, raw := range d.Edges {
		if len(raw) != 3 {
			return nil, fmt.Errorf("edge %d: expected [a, b, distance], got %d values", i, len(raw))
		}
		a, okA := raw[0].(string)
		b, okB := raw[1].(string)
		if !okA || !okB {
			return nil, fmt.Errorf("edge %d: endpoints must be strings", i)
		}
		w, err := toFloat(raw[2])
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		edges = append(edges, models.Edge{A: a, B: b, Distance: w})
	}

	coords := make(map[string]Point, len(d.Coordinates))
	for id, xy := range d.Coordinates {
		if len(xy) != 2 {
			return nil, fmt.Errorf("coordinates for %s: expected [x, y]", id)
		}
		coords[id] = Point{X: xy[0], Y: xy[1]}
	}

	return New(d.Nodes, edges, coords)
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("distance must be numeric, got %T", v)
	}
}

// Parse decodes a graph definition from JSON or YAML bytes.
func Parse(data []byte) (*Graph, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse graph definition: %w", err)
	}
	return def.Build()
}

// LoadDefinition reads the graph file. A missing file yields an empty graph
// so that every distance degrades to the default fallback.
func LoadDefinition(path string, logger *zap.Logger) (*Graph, error) {
	if path == "" {
		logger.Warn("No graph definition configured, distances will use the default fallback")
		return Empty(), nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Graph definition not found, distances will use the default fallback",
			zap.String("path", path),
		)
		return Empty(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read graph definition: %w", err)
	}

	g, err := Parse(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Graph definition loaded",
		zap.String("path", path),
		zap.Int("nodes", g.Len()),
	)
	return g, nil
}
