// Package graph holds the static room graph used as a distance oracle.
package graph

import (
	"fmt"
	"sort"

	"equiptrack/internal/models"
)

// Point is a room position on the floor plan, in feet.
type Point struct {
	X float64
	Y float64
}

// Graph is an undirected weighted graph over room ids. It is read-only after New.
type Graph struct {
	nodes  map[string]struct{}
	adj    map[string]map[string]float64
	coords map[string]Point
}

// New builds a graph. Edge endpoints missing from nodes are added as nodes.
// When the same pair appears twice the shorter distance is kept.
func New(nodes []string, edges []models.Edge, coords map[string]Point) (*Graph, error) {
	g := &Graph{
		nodes:  make(map[string]struct{}, len(nodes)),
		adj:    make(map[string]map[string]float64, len(nodes)),
		coords: make(map[string]Point, len(coords)),
	}
	for _, n := range nodes {
		if n == "" {
			continue
		}
		g.nodes[n] = struct{}{}
	}
	for _, e := range edges {
		if e.A == "" || e.B == "" {
			return nil, fmt.Errorf("edge with empty endpoint: %q-%q", e.A, e.B)
		}
		if e.Distance < 0 {
			return nil, fmt.Errorf("edge %s-%s has negative distance %v", e.A, e.B, e.Distance)
		}
		if e.A == e.B {
			continue
		}
		g.nodes[e.A] = struct{}{}
		g.nodes[e.B] = struct{}{}
		g.link(e.A, e.B, e.Distance)
		g.link(e.B, e.A, e.Distance)
	}
	for id, p := range coords {
		g.coords[id] = p
	}
	return g, nil
}

// Empty returns a graph without nodes; every distance falls back to the default.
func Empty() *Graph {
	g, _ := New(nil, nil, nil)
	return g
}

func (g *Graph) link(a, b string, d float64) {
	m, ok := g.adj[a]
	if !ok {
		m = make(map[string]float64)
		g.adj[a] = m
	}
	if old, exists := m[b]; exists && old <= d {
		return
	}
	m[b] = d
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// EdgeWeight returns the direct edge distance between a and b.
// It returns 0, true when a == b and 0, false when there is no direct edge.
func (g *Graph) EdgeWeight(a, b string) (float64, bool) {
	if a == b {
		return 0, true
	}
	d, ok := g.adj[a][b]
	return d, ok
}

// Nodes returns all node ids in sorted order.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Coordinates returns the stored position of a room, if any.
func (g *Graph) Coordinates(id string) (Point, bool) {
	p, ok := g.coords[id]
	return p, ok
}

func (g *Graph) neighbors(id string) map[string]float64 {
	return g.adj[id]
}

func (g *Graph) Len() int {
	return len(g.nodes)
}
