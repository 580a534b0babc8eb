// Package scc decomposes directed graphs into strongly connected components
// with Kosaraju's two-pass depth-first search and derives the condensation
// graph obtained by collapsing each component to a single node.
//
// The condensation of any directed graph is acyclic, which makes it a handy
// structural invariant for callers and tests alike.
package scc

import (
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/metrics"
)

// Result is the outcome of one decomposition run. Components partition the
// node set 0..n-1 exactly; Sizes is parallel to Components. Condensation
// has one node per component and at most one edge per ordered component
// pair.
type Result struct {
	Components   [][]int          `json:"components" bson:"components"`
	Sizes        []int            `json:"sizes" bson:"sizes"`
	Condensation *graph.Graph     `json:"-" bson:"-"`
	Metrics      metrics.Snapshot `json:"metrics" bson:"metrics"`
}

// Kosaraju computes the strongly connected components of g.
//
// Pass 1 runs depth-first search over the forward graph from every
// unvisited node in ascending id order, stacking nodes by finish time.
// Pass 2 pops that stack and searches the reverse graph; every pop that
// reaches an unvisited node opens a new component. Both passes use
// explicit-stack traversals that reproduce recursive visitation order.
func Kosaraju(g *graph.Graph) *Result {
	rec := metrics.NewRecorder()
	rec.Start()

	n := g.N()

	// Pass 1: order nodes by decreasing finish time on the forward graph.
	visited := make([]bool, n)
	finish := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !visited[i] {
			forwardDFS(g, i, visited, &finish, rec)
		}
	}

	// Pass 2: collect components on the reverse graph.
	for i := range visited {
		visited[i] = false
	}
	var components [][]int
	var sizes []int
	for i := len(finish) - 1; i >= 0; i-- {
		node := finish[i]
		rec.AddStackPop()
		if visited[node] {
			continue
		}
		component := reverseDFS(g, node, visited, rec)
		components = append(components, component)
		sizes = append(sizes, len(component))
	}

	condensation := Condense(g, components)

	rec.Stop()

	return &Result{
		Components:   components,
		Sizes:        sizes,
		Condensation: condensation,
		Metrics:      rec.Snapshot(),
	}
}

type frame struct {
	node int
	next int
}

// forwardDFS explores the forward graph from root and appends nodes to
// finish in postorder.
func forwardDFS(g *graph.Graph, root int, visited []bool, finish *[]int, rec *metrics.Recorder) {
	visited[root] = true
	rec.AddDFSVisit()
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		arcs := g.Out(f.node)

		if f.next < len(arcs) {
			v := arcs[f.next].To
			f.next++
			rec.AddEdgeExplored()
			if !visited[v] {
				visited[v] = true
				rec.AddDFSVisit()
				stack = append(stack, frame{node: v})
			}
			continue
		}

		*finish = append(*finish, f.node)
		rec.AddStackPush()
		stack = stack[:len(stack)-1]
	}
}

// reverseDFS explores the reverse graph from root and returns every node
// reached as one component, in visitation order.
func reverseDFS(g *graph.Graph, root int, visited []bool, rec *metrics.Recorder) []int {
	visited[root] = true
	rec.AddDFSVisit()
	component := []int{root}
	stack := []frame{{node: root}}

	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		preds := g.In(f.node)

		if f.next < len(preds) {
			v := preds[f.next]
			f.next++
			rec.AddEdgeExplored()
			if !visited[v] {
				visited[v] = true
				rec.AddDFSVisit()
				component = append(component, v)
				stack = append(stack, frame{node: v})
			}
			continue
		}

		stack = stack[:len(stack)-1]
	}

	return component
}

// Condense builds the condensation graph: one node per component, one edge
// per ordered pair of distinct components with at least one crossing edge.
// The pair key is structural, so node ids can never collide through string
// formatting. Components must partition g's nodes, as returned by Kosaraju.
func Condense(g *graph.Graph, components [][]int) *graph.Graph {
	nodeToComp := make([]int, g.N())
	for compID, comp := range components {
		for _, node := range comp {
			nodeToComp[node] = compID
		}
	}

	seen := make(map[[2]int]struct{})
	var edges []graph.Edge
	for _, e := range g.Edges() {
		uc, vc := nodeToComp[e.U], nodeToComp[e.V]
		if uc == vc {
			continue
		}
		key := [2]int{uc, vc}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		edges = append(edges, graph.Edge{U: uc, V: vc, W: 1})
	}

	// Components and edges are derived from a valid graph, so this cannot
	// fail endpoint validation.
	cg, _ := graph.New(len(components), edges)
	return cg
}
