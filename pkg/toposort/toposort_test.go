package toposort

import (
	"testing"

	"github.com/matzehuels/graphlens/pkg/graph"
)

func mustGraph(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.New(n, edges)
	if err != nil {
		t.Fatalf("graph.New() error = %v", err)
	}
	return g
}

// checkTopological verifies that every edge points from an earlier to a
// later position in order, and that order covers all nodes exactly once.
func checkTopological(t *testing.T, g *graph.Graph, order []int) {
	t.Helper()
	if len(order) != g.N() {
		t.Fatalf("order length = %d, want %d", len(order), g.N())
	}
	pos := make(map[int]int, len(order))
	for i, v := range order {
		if _, dup := pos[v]; dup {
			t.Fatalf("node %d appears twice in order %v", v, order)
		}
		pos[v] = i
	}
	for _, e := range g.Edges() {
		if pos[e.U] >= pos[e.V] {
			t.Errorf("edge %d->%d violates order %v", e.U, e.V, order)
		}
	}
}

var dagCases = []struct {
	name  string
	n     int
	edges []graph.Edge
}{
	{name: "Empty", n: 0},
	{name: "SingleNode", n: 1},
	{name: "Chain", n: 4, edges: []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}}},
	{name: "Diamond", n: 4, edges: []graph.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 3}, {U: 2, V: 3}}},
	{name: "Disconnected", n: 5, edges: []graph.Edge{{U: 3, V: 1}, {U: 4, V: 0}}},
	{name: "ParallelEdges", n: 3, edges: []graph.Edge{{U: 0, V: 1}, {U: 0, V: 1}, {U: 1, V: 2}}},
}

func TestKahnOrdersDAGs(t *testing.T) {
	for _, tt := range dagCases {
		t.Run(tt.name, func(t *testing.T) {
			res := Kahn(mustGraph(t, tt.n, tt.edges))
			if !res.IsDAG {
				t.Fatal("IsDAG = false, want true")
			}
			checkTopological(t, mustGraph(t, tt.n, tt.edges), res.Order)
		})
	}
}

func TestDFSOrdersDAGs(t *testing.T) {
	for _, tt := range dagCases {
		t.Run(tt.name, func(t *testing.T) {
			res := DFS(mustGraph(t, tt.n, tt.edges))
			if !res.IsDAG {
				t.Fatal("IsDAG = false, want true")
			}
			checkTopological(t, mustGraph(t, tt.n, tt.edges), res.Order)
		})
	}
}

func TestKahnSeedsAscending(t *testing.T) {
	// Three independent roots feeding one sink: roots must be dequeued in
	// ascending id order because the seed scan runs 0..n-1.
	g := mustGraph(t, 4, []graph.Edge{{U: 0, V: 3}, {U: 1, V: 3}, {U: 2, V: 3}})
	res := Kahn(g)
	want := []int{0, 1, 2, 3}
	for i, v := range want {
		if res.Order[i] != v {
			t.Fatalf("Order = %v, want %v", res.Order, want)
		}
	}
}

func TestCycleDetectionAgreement(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []graph.Edge
	}{
		{name: "TwoNodeCycle", n: 2, edges: []graph.Edge{{U: 0, V: 1}, {U: 1, V: 0}}},
		{name: "SelfLoop", n: 1, edges: []graph.Edge{{U: 0, V: 0}}},
		{name: "CycleWithTail", n: 4, edges: []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 2, V: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.n, tt.edges)
			if res := Kahn(g); res.IsDAG {
				t.Error("Kahn: IsDAG = true, want false")
			}
			if res := DFS(g); res.IsDAG {
				t.Error("DFS: IsDAG = true, want false")
			}
		})
	}
}

func TestKahnPartialOrderOnCycle(t *testing.T) {
	// Nodes 0,1 form a cycle; node 2 sits before it.
	g := mustGraph(t, 3, []graph.Edge{{U: 2, V: 0}, {U: 0, V: 1}, {U: 1, V: 0}})
	res := Kahn(g)
	if res.IsDAG {
		t.Fatal("IsDAG = true, want false")
	}
	if len(res.Order) != 1 || res.Order[0] != 2 {
		t.Errorf("Order = %v, want [2]", res.Order)
	}
}

func TestPureCycleKahnOrderEmpty(t *testing.T) {
	g := mustGraph(t, 2, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 0}})
	res := Kahn(g)
	if res.IsDAG {
		t.Error("Kahn: IsDAG = true, want false")
	}
	if len(res.Order) != 0 {
		t.Errorf("Kahn: Order = %v, want empty", res.Order)
	}

	dfs := DFS(g)
	if dfs.IsDAG {
		t.Error("DFS: IsDAG = true, want false")
	}
	if len(dfs.Order) != 2 {
		t.Errorf("DFS: Order = %v, want full unverified ordering of 2 nodes", dfs.Order)
	}
}

// dfsRecursiveReference is the plain recursive formulation. The iterative
// DFS must reproduce its finish order exactly.
func dfsRecursiveReference(g *graph.Graph) []int {
	n := g.N()
	visited := make([]bool, n)
	var finish []int
	var walk func(u int)
	walk = func(u int) {
		visited[u] = true
		for _, arc := range g.Out(u) {
			if !visited[arc.To] {
				walk(arc.To)
			}
		}
		finish = append(finish, u)
	}
	for i := 0; i < n; i++ {
		if !visited[i] {
			walk(i)
		}
	}
	order := make([]int, n)
	for i, v := range finish {
		order[n-1-i] = v
	}
	return order
}

func TestDFSMatchesRecursiveOrder(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []graph.Edge
	}{
		{name: "Diamond", n: 4, edges: []graph.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 3}, {U: 2, V: 3}}},
		{name: "Forest", n: 6, edges: []graph.Edge{{U: 0, V: 1}, {U: 2, V: 3}, {U: 2, V: 4}, {U: 4, V: 5}}},
		{name: "Branching", n: 7, edges: []graph.Edge{{U: 0, V: 2}, {U: 0, V: 1}, {U: 1, V: 4}, {U: 1, V: 3}, {U: 2, V: 5}, {U: 5, V: 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.n, tt.edges)
			got := DFS(g).Order
			want := dfsRecursiveReference(g)
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("Order = %v, want recursive order %v", got, want)
				}
			}
		})
	}
}

func TestKahnMetrics(t *testing.T) {
	// Chain 0->1->2: indegree scan explores 2 edges, dequeue loop explores
	// 2 more; 3 enqueues and 3 dequeues.
	g := mustGraph(t, 3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	m := Kahn(g).Metrics
	if m.EdgesExplored != 4 {
		t.Errorf("EdgesExplored = %d, want 4", m.EdgesExplored)
	}
	if m.StackPushes != 3 || m.StackPops != 3 {
		t.Errorf("pushes/pops = %d/%d, want 3/3", m.StackPushes, m.StackPops)
	}
}

func TestDFSMetrics(t *testing.T) {
	g := mustGraph(t, 3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	m := DFS(g).Metrics
	if m.DFSVisits != 3 {
		t.Errorf("DFSVisits = %d, want 3", m.DFSVisits)
	}
	if m.EdgesExplored != 2 {
		t.Errorf("EdgesExplored = %d, want 2", m.EdgesExplored)
	}
	if m.StackPushes != 3 {
		t.Errorf("StackPushes = %d, want 3", m.StackPushes)
	}
}
