package toposort

import (
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/metrics"
)

// dfsFrame is one level of the explicit traversal stack. next indexes the
// first unexplored outgoing arc of node.
type dfsFrame struct {
	node int
	next int
}

// DFS orders the graph by depth-first search: each node is appended to a
// finish list once all of its descendants are explored, and the final order
// is that list reversed (last finished first).
//
// The traversal is iterative with an explicit frame stack but reproduces
// the visitation and finish order of the recursive formulation exactly, so
// arbitrarily deep chains cannot exhaust the call stack.
//
// A back edge to a node still on the active path marks the graph cyclic.
// Even then the full reversed finish order is returned; only IsDAG signals
// that it is unverified.
func DFS(g *graph.Graph) *Result {
	rec := metrics.NewRecorder()
	rec.Start()

	n := g.N()
	visited := make([]bool, n)
	onPath := make([]bool, n)
	finish := make([]int, 0, n)
	hasCycle := false

	stack := make([]dfsFrame, 0, n)
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true
		onPath[i] = true
		rec.AddDFSVisit()
		stack = append(stack, dfsFrame{node: i})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			arcs := g.Out(f.node)

			if f.next < len(arcs) {
				v := arcs[f.next].To
				f.next++
				rec.AddEdgeExplored()

				if !visited[v] {
					visited[v] = true
					onPath[v] = true
					rec.AddDFSVisit()
					stack = append(stack, dfsFrame{node: v})
				} else if onPath[v] {
					hasCycle = true
				}
				continue
			}

			onPath[f.node] = false
			finish = append(finish, f.node)
			rec.AddStackPush()
			stack = stack[:len(stack)-1]
		}
	}

	rec.Stop()

	order := make([]int, n)
	for i, node := range finish {
		order[n-1-i] = node
	}

	isDAG := !hasCycle
	if !isDAG {
		logger.Warn("cycle detected during depth-first search, ordering is unverified",
			"nodes", n)
	}

	return &Result{Order: order, IsDAG: isDAG, Metrics: rec.Snapshot()}
}
