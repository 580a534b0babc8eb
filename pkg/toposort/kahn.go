package toposort

import (
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/metrics"
)

// Kahn orders the graph with Kahn's algorithm: nodes are emitted as their
// in-degree drains to zero through a FIFO queue seeded with the initially
// degree-free nodes in ascending id order.
//
// If the graph contains a cycle the returned order is shorter than N - the
// nodes on or downstream of the cycle never reach zero in-degree. This is
// the documented degraded mode, flagged via IsDAG.
func Kahn(g *graph.Graph) *Result {
	rec := metrics.NewRecorder()
	rec.Start()

	n := g.N()
	indegree := make([]int, n)
	for _, e := range g.Edges() {
		indegree[e.V]++
		rec.AddEdgeExplored()
	}

	queue := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if indegree[i] == 0 {
			queue = append(queue, i)
			rec.AddStackPush()
		}
	}

	order := make([]int, 0, n)
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		rec.AddStackPop()
		order = append(order, u)

		for _, arc := range g.Out(u) {
			indegree[arc.To]--
			rec.AddEdgeExplored()
			if indegree[arc.To] == 0 {
				queue = append(queue, arc.To)
				rec.AddStackPush()
			}
		}
	}

	rec.Stop()

	isDAG := len(order) == n
	if !isDAG {
		logger.Warn("graph contains a cycle, topological order is incomplete",
			"ordered", len(order), "nodes", n)
	}

	return &Result{Order: order, IsDAG: isDAG, Metrics: rec.Snapshot()}
}
