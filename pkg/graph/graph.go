// Package graph provides the immutable directed-graph entity shared by all
// analyzers, plus its canonical JSON serialization.
//
// Nodes are identified by the integers 0..n-1. A Graph is built once from a
// node count and an ordered edge list; construction validates every edge
// endpoint and derives forward and reverse adjacency views. After New
// returns, the graph never changes, so a single instance may be shared
// read-only across concurrent analyzer invocations.
package graph

import "errors"

var (
	// ErrNegativeNodeCount is returned by [New] when the node count is
	// negative. An empty graph (n == 0) is valid.
	ErrNegativeNodeCount = errors.New("node count must not be negative")

	// ErrEdgeEndpointOutOfRange is returned by [New] when an edge endpoint
	// falls outside [0, n). Malformed edges are rejected at construction
	// time rather than corrupting the adjacency views.
	ErrEdgeEndpointOutOfRange = errors.New("edge endpoint out of range")
)

// Edge is a directed weighted edge from U to V. Duplicate and parallel
// edges are permitted; each one is relaxed independently by the path
// analyzers.
type Edge struct {
	U int `json:"u" bson:"u"`
	V int `json:"v" bson:"v"`
	W int `json:"w" bson:"w"`
}

// Arc is one entry of a node's forward adjacency: the successor node and
// the weight of the connecting edge.
type Arc struct {
	To     int
	Weight int
}

// Graph is an immutable directed graph over nodes 0..n-1.
//
// The zero value is an empty graph. Use New to build a graph with edges -
// it is the only way to populate the adjacency views.
type Graph struct {
	n     int
	edges []Edge
	out   [][]Arc // forward adjacency, edge-list order per node
	in    [][]int // reverse adjacency (predecessor node ids)
}

// New builds a graph with n nodes from the given edge list.
// Returns ErrNegativeNodeCount or ErrEdgeEndpointOutOfRange for malformed
// input. The edge slice is copied; the caller keeps ownership of its own.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeNodeCount
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, ErrEdgeEndpointOutOfRange
		}
	}

	g := &Graph{
		n:     n,
		edges: make([]Edge, len(edges)),
		out:   make([][]Arc, n),
		in:    make([][]int, n),
	}
	copy(g.edges, edges)
	for _, e := range g.edges {
		g.out[e.U] = append(g.out[e.U], Arc{To: e.V, Weight: e.W})
		g.in[e.V] = append(g.in[e.V], e.U)
	}
	return g, nil
}

// N returns the node count.
func (g *Graph) N() int { return g.n }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Edges returns the edge list in construction order.
// The returned slice is a read-only view - callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Out returns the outgoing arcs of u in edge-list order.
// The returned slice is a read-only view - callers must not modify it.
func (g *Graph) Out(u int) []Arc { return g.out[u] }

// In returns the predecessor node ids of v in edge-list order.
// The returned slice is a read-only view - callers must not modify it.
func (g *Graph) In(v int) []int { return g.in[v] }

// OutDegree returns the number of outgoing edges from u.
func (g *Graph) OutDegree(u int) int { return len(g.out[u]) }

// InDegree returns the number of incoming edges to v.
func (g *Graph) InDegree(v int) int { return len(g.in[v]) }
