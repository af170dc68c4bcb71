package graph

import (
	"container/heap"
	"math"
	"sync"
)

// DefaultDistanceFeet is used when neither a path nor coordinates exist.
const DefaultDistanceFeet = 100.0

// Oracle answers distance queries over a Graph, falling back in order:
// direct edge, shortest path, coordinate distance, default constant.
type Oracle struct {
	graph           *Graph
	defaultDistance float64

	mu    sync.RWMutex
	cache map[string]map[string]float64
}

func NewOracle(g *Graph, defaultDistance float64) *Oracle {
	if g == nil {
		g = Empty()
	}
	if defaultDistance <= 0 {
		defaultDistance = DefaultDistanceFeet
	}
	return &Oracle{
		graph:           g,
		defaultDistance: defaultDistance,
		cache:           make(map[string]map[string]float64),
	}
}

func (o *Oracle) Graph() *Graph {
	return o.graph
}

// Distance never returns an undefined value.
func (o *Oracle) Distance(a, b string) float64 {
	if a == b {
		return 0
	}
	if d, ok := o.graph.EdgeWeight(a, b); ok {
		return d
	}
	if d, ok := o.ShortestPath(a, b); ok {
		return d
	}
	pa, okA := o.graph.Coordinates(a)
	pb, okB := o.graph.Coordinates(b)
	if okA && okB {
		return math.Hypot(pa.X-pb.X, pa.Y-pb.Y)
	}
	return o.defaultDistance
}

// ShortestPath returns the weighted shortest path length from a to b.
func (o *Oracle) ShortestPath(a, b string) (float64, bool) {
	if a == b {
		return 0, true
	}
	if !o.graph.HasNode(a) || !o.graph.HasNode(b) {
		return 0, false
	}
	dist := o.distancesFrom(a)
	d, ok := dist[b]
	return d, ok
}

func (o *Oracle) distancesFrom(src string) map[string]float64 {
	o.mu.RLock()
	dist, ok := o.cache[src]
	o.mu.RUnlock()
	if ok {
		return dist
	}

	dist = dijkstra(o.graph, src)

	o.mu.Lock()
	o.cache[src] = dist
	o.mu.Unlock()
	return dist
}

type pqItem struct {
	node string
	dist float64
}

type pq []pqItem

func (q pq) Len() int { return len(q) }
func (q pq) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q pq) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *pq) Push(x any) { *q = append(*q, x.(pqItem)) }
func (q *pq) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// dijkstra computes single-source distances; unreachable nodes are absent.
func dijkstra(g *Graph, src string) map[string]float64 {
	dist := map[string]float64{src: 0}
	done := make(map[string]bool)
	q := &pq{{node: src, dist: 0}}

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		if done[cur.node] {
			continue
		}
		done[cur.node] = true

		for next, w := range g.neighbors(cur.node) {
			nd := cur.dist + w
			if old, seen := dist[next]; !seen || nd < old {
				dist[next] = nd
				heap.Push(q, pqItem{node: next, dist: nd})
			}
		}
	}
	return dist
}
