// Package dagpath solves single-source shortest paths and the critical
// (longest) path over directed acyclic graphs by dynamic programming along
// a topological order.
//
// Cyclic input is handled in a best-effort mode: relaxation runs over the
// partial order Kahn's algorithm can produce, and nodes trapped on or
// behind a cycle simply stay unreached. The topological-sort layer logs the
// diagnostic warning.
package dagpath

import (
	"errors"

	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/metrics"
	"github.com/matzehuels/graphlens/pkg/toposort"
)

// NoNode is the explicit absent marker for predecessor and source fields.
const NoNode = -1

var (
	// ErrNoSource is returned by [ReconstructPath] when the result was
	// computed without a source node. Reconstruction would be meaningless,
	// so it fails instead of returning a wrong path.
	ErrNoSource = errors.New("no source specified for path reconstruction")

	// ErrNodeOutOfRange is returned when a source or target node id falls
	// outside [0, n).
	ErrNodeOutOfRange = errors.New("node id out of range")
)

// Result bundles the outcome of one shortest-path run.
//
// Dist[v] is meaningful only where Reached[v] is true; unreached nodes are
// marked explicitly instead of carrying an extreme sentinel magnitude.
// Pred[v] is NoNode unless v was improved by some relaxation. The critical
// path fields are source-independent and always populated.
type Result struct {
	Dist    []int `json:"dist" bson:"dist"`
	Reached []bool `json:"reached" bson:"reached"`
	Pred    []int `json:"pred" bson:"pred"`
	Source  int   `json:"source" bson:"source"` // NoNode in source-free mode

	CriticalLength int   `json:"critical_length" bson:"critical_length"`
	CriticalPath   []int `json:"critical_path" bson:"critical_path"`

	Metrics metrics.Snapshot `json:"metrics" bson:"metrics"`
}

// ShortestPaths computes single-source shortest distances and the
// source-independent critical path. Pass NoNode as source for the
// source-free mode, in which only the critical path carries information.
//
// The relaxation counter records attempted relaxations - every outgoing
// arc examined during the shortest and critical passes - not just the
// improving ones.
func ShortestPaths(g *graph.Graph, source int) (*Result, error) {
	n := g.N()
	if source != NoNode && (source < 0 || source >= n) {
		return nil, ErrNodeOutOfRange
	}

	rec := metrics.NewRecorder()
	rec.Start()

	order := toposort.Kahn(g).Order

	dist := make([]int, n)
	reached := make([]bool, n)
	pred := make([]int, n)
	for i := range pred {
		pred[i] = NoNode
	}
	if source != NoNode {
		reached[source] = true
	}

	for _, u := range order {
		if source != NoNode && !reached[u] {
			continue
		}
		for _, arc := range g.Out(u) {
			rec.AddRelaxation()
			if !reached[u] {
				continue
			}
			if d := dist[u] + arc.Weight; !reached[arc.To] || d < dist[arc.To] {
				dist[arc.To] = d
				reached[arc.To] = true
				pred[arc.To] = u
			}
		}
	}

	criticalLength := criticalPathLength(g, order, rec)
	criticalPath := reconstructCriticalPath(g, order)

	rec.Stop()

	return &Result{
		Dist:           dist,
		Reached:        reached,
		Pred:           pred,
		Source:         source,
		CriticalLength: criticalLength,
		CriticalPath:   criticalPath,
		Metrics:        rec.Snapshot(),
	}, nil
}

// criticalPathLength runs the maximizing DP over the topological order.
// Every node starts at 0, so the result is floored at 0 and an edgeless
// graph reports length 0 rather than "no path".
func criticalPathLength(g *graph.Graph, order []int, rec *metrics.Recorder) int {
	longest := make([]int, g.N())

	for _, u := range order {
		for _, arc := range g.Out(u) {
			rec.AddRelaxation()
			if l := longest[u] + arc.Weight; l > longest[arc.To] {
				longest[arc.To] = l
			}
		}
	}

	maxDist := 0
	for _, l := range longest {
		if l > maxDist {
			maxDist = l
		}
	}
	return maxDist
}

// reconstructCriticalPath repeats the maximizing DP with a parallel
// predecessor array, picks the first strict maximum by ascending node id as
// the path end, and walks predecessors back to the start.
func reconstructCriticalPath(g *graph.Graph, order []int) []int {
	n := g.N()
	longest := make([]int, n)
	pred := make([]int, n)
	for i := range pred {
		pred[i] = NoNode
	}

	for _, u := range order {
		for _, arc := range g.Out(u) {
			if l := longest[u] + arc.Weight; l > longest[arc.To] {
				longest[arc.To] = l
				pred[arc.To] = u
			}
		}
	}

	endNode := NoNode
	maxDist := -1
	for i := 0; i < n; i++ {
		if longest[i] > maxDist {
			maxDist = longest[i]
			endNode = i
		}
	}

	var path []int
	for cur := endNode; cur != NoNode; cur = pred[cur] {
		path = append(path, cur)
	}
	reverse(path)
	return path
}

// ReconstructPath walks predecessors from target back to the source and
// returns the forward path. It requires the result to have been computed
// with a source (ErrNoSource otherwise) and returns an empty path when the
// target is unreached - that is not an error.
func ReconstructPath(res *Result, target int) ([]int, error) {
	if res.Source == NoNode {
		return nil, ErrNoSource
	}
	if target < 0 || target >= len(res.Dist) {
		return nil, ErrNodeOutOfRange
	}
	if !res.Reached[target] {
		return []int{}, nil
	}

	var path []int
	for cur := target; cur != NoNode; cur = res.Pred[cur] {
		path = append(path, cur)
	}
	reverse(path)
	return path, nil
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
