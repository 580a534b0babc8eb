package scc

import (
	"sort"
	"testing"

	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/toposort"
)

func mustGraph(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.New(n, edges)
	if err != nil {
		t.Fatalf("graph.New() error = %v", err)
	}
	return g
}

// reachability computes the transitive closure by breadth-first search from
// every node. Used as the brute-force cross-check for component membership.
func reachability(g *graph.Graph) [][]bool {
	n := g.N()
	reach := make([][]bool, n)
	for s := 0; s < n; s++ {
		reach[s] = make([]bool, n)
		reach[s][s] = true
		queue := []int{s}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, arc := range g.Out(u) {
				if !reach[s][arc.To] {
					reach[s][arc.To] = true
					queue = append(queue, arc.To)
				}
			}
		}
	}
	return reach
}

// checkPartition verifies the components are disjoint, cover 0..n-1, and
// group exactly the mutually reachable node pairs.
func checkPartition(t *testing.T, g *graph.Graph, res *Result) {
	t.Helper()

	n := g.N()
	comp := make([]int, n)
	for i := range comp {
		comp[i] = -1
	}
	for id, c := range res.Components {
		if len(c) != res.Sizes[id] {
			t.Errorf("Sizes[%d] = %d, want %d", id, res.Sizes[id], len(c))
		}
		for _, v := range c {
			if comp[v] != -1 {
				t.Fatalf("node %d assigned to components %d and %d", v, comp[v], id)
			}
			comp[v] = id
		}
	}
	for v, id := range comp {
		if id == -1 {
			t.Fatalf("node %d missing from every component", v)
		}
	}

	reach := reachability(g)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			mutual := reach[a][b] && reach[b][a]
			if same := comp[a] == comp[b]; same != mutual {
				t.Errorf("nodes %d,%d: same component = %v, mutually reachable = %v", a, b, same, mutual)
			}
		}
	}
}

func TestKosaraju(t *testing.T) {
	tests := []struct {
		name          string
		n             int
		edges         []graph.Edge
		wantComponents int
	}{
		{name: "Empty", n: 0, wantComponents: 0},
		{name: "Singletons", n: 3, wantComponents: 3},
		{
			name:          "Chain",
			n:             3,
			edges:         []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}},
			wantComponents: 3,
		},
		{
			name:          "OneCycle",
			n:             3,
			edges:         []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}},
			wantComponents: 1,
		},
		{
			name: "TwoCyclesBridged",
			n:    6,
			edges: []graph.Edge{
				{U: 0, V: 1}, {U: 1, V: 0},
				{U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 2},
				{U: 1, V: 2}, {U: 4, V: 5},
			},
			wantComponents: 3,
		},
		{
			name: "SelfLoop",
			n:    2,
			edges: []graph.Edge{
				{U: 0, V: 0}, {U: 0, V: 1},
			},
			wantComponents: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGraph(t, tt.n, tt.edges)
			res := Kosaraju(g)
			if len(res.Components) != tt.wantComponents {
				t.Errorf("components = %d, want %d", len(res.Components), tt.wantComponents)
			}
			checkPartition(t, g, res)
		})
	}
}

func TestScenarioB(t *testing.T) {
	// Nodes {0,1,2,3}, edges 0->1, 1->2, 2->0, 2->3: components {0,1,2}
	// and {3}, condensation has exactly one edge between them.
	g := mustGraph(t, 4, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 2, V: 3},
	})

	res := Kosaraju(g)
	if len(res.Components) != 2 {
		t.Fatalf("components = %d, want 2", len(res.Components))
	}

	var big, small []int
	for _, c := range res.Components {
		sorted := append([]int(nil), c...)
		sort.Ints(sorted)
		if len(sorted) == 3 {
			big = sorted
		} else {
			small = sorted
		}
	}
	if len(big) != 3 || big[0] != 0 || big[1] != 1 || big[2] != 2 {
		t.Errorf("large component = %v, want [0 1 2]", big)
	}
	if len(small) != 1 || small[0] != 3 {
		t.Errorf("small component = %v, want [3]", small)
	}

	cg := res.Condensation
	if cg.N() != 2 {
		t.Errorf("condensation nodes = %d, want 2", cg.N())
	}
	if cg.EdgeCount() != 1 {
		t.Errorf("condensation edges = %d, want 1", cg.EdgeCount())
	}
}

func TestCondensationDeduplicatesEdges(t *testing.T) {
	// Two parallel cross-component edges plus an intra-component edge:
	// only one condensation edge must survive.
	g := mustGraph(t, 4, []graph.Edge{
		{U: 0, V: 1}, {U: 1, V: 0}, // component A
		{U: 0, V: 2}, {U: 1, V: 2}, // A -> B twice
		{U: 2, V: 3},
	})

	res := Kosaraju(g)
	cg := res.Condensation
	wantEdges := 2 // A->{2} and {2}->{3}
	if cg.EdgeCount() != wantEdges {
		t.Errorf("condensation edges = %d, want %d", cg.EdgeCount(), wantEdges)
	}
}

func TestCondensationIsAcyclic(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		edges []graph.Edge
	}{
		{
			name: "TwoCyclesBridged",
			n:    6,
			edges: []graph.Edge{
				{U: 0, V: 1}, {U: 1, V: 0},
				{U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 2},
				{U: 1, V: 2}, {U: 4, V: 5},
			},
		},
		{
			name: "DenseCyclic",
			n:    5,
			edges: []graph.Edge{
				{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0},
				{U: 2, V: 3}, {U: 3, V: 4}, {U: 4, V: 3},
				{U: 0, V: 4}, {U: 1, V: 3},
			},
		},
		{
			name:  "AlreadyAcyclic",
			n:     4,
			edges: []graph.Edge{{U: 0, V: 1}, {U: 0, V: 2}, {U: 1, V: 3}, {U: 2, V: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Kosaraju(mustGraph(t, tt.n, tt.edges))
			if topo := toposort.Kahn(res.Condensation); !topo.IsDAG {
				t.Error("condensation graph contains a cycle")
			}
		})
	}
}

func TestKosarajuMetrics(t *testing.T) {
	// Chain 0->1: pass 1 visits 2 nodes and explores 1 edge, pass 2 the
	// same on the reverse view; 2 finish pushes, 2 pops.
	g := mustGraph(t, 2, []graph.Edge{{U: 0, V: 1}})
	m := Kosaraju(g).Metrics
	if m.DFSVisits != 4 {
		t.Errorf("DFSVisits = %d, want 4", m.DFSVisits)
	}
	if m.EdgesExplored != 2 {
		t.Errorf("EdgesExplored = %d, want 2", m.EdgesExplored)
	}
	if m.StackPushes != 2 || m.StackPops != 2 {
		t.Errorf("pushes/pops = %d/%d, want 2/2", m.StackPushes, m.StackPops)
	}
}
