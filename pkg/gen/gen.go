// Package gen produces synthetic test graphs with controlled structure:
// pure DAGs, layered DAGs, cyclic graphs with planted cycles, graphs with a
// planted number of strongly connected components, and mixed shapes
// combining all of the above.
//
// Generation is driven by a seeded random source so datasets are fully
// reproducible; the default seed is 42.
package gen

import (
	"math/rand"

	"github.com/matzehuels/graphlens/pkg/graph"
)

// DefaultSeed seeds the random source when no seed is configured.
const DefaultSeed int64 = 42

// Generator builds random edge lists. It is not safe for concurrent use -
// the underlying random source is stateful.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded with the given value.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// weight draws an edge weight in [1, 10].
func (g *Generator) weight() int { return g.rng.Intn(10) + 1 }

// DAG generates an acyclic edge list over nodes 0..nodes-1. Edges only run
// from lower to higher ids, so no cycle can form. Density scales the edge
// probability and caps the total edge count.
func (g *Generator) DAG(nodes int, density float64) []graph.Edge {
	var edges []graph.Edge
	maxEdges := int(float64(nodes*(nodes-1)) * density / 2)

	for u := 0; u < nodes; u++ {
		for v := u + 1; v < nodes; v++ {
			if g.rng.Float64() < density && len(edges) < maxEdges {
				edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
			}
		}
	}
	return edges
}

// LayeredDAG assigns every node to one of layers random layers and creates
// edges only from lower to higher layers, producing a layered DAG.
func (g *Generator) LayeredDAG(nodes int, density float64, layers int) []graph.Edge {
	layer := make([]int, nodes)
	for i := range layer {
		layer[i] = g.rng.Intn(layers)
	}

	var edges []graph.Edge
	for u := 0; u < nodes; u++ {
		for v := 0; v < nodes; v++ {
			if u != v && layer[u] < layer[v] && g.rng.Float64() < density {
				edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
			}
		}
	}
	return edges
}

// Cyclic plants cycleCount directed cycles of size 2-4 at random offsets,
// then fills with random edges until the density target is met.
func (g *Generator) Cyclic(nodes int, density float64, cycleCount int) []graph.Edge {
	var edges []graph.Edge

	for i := 0; i < cycleCount; i++ {
		cycleSize := g.rng.Intn(3) + 2
		if cycleSize > nodes {
			cycleSize = nodes
		}
		start := 0
		if nodes > cycleSize {
			start = g.rng.Intn(nodes - cycleSize)
		}
		for j := 0; j < cycleSize; j++ {
			u := start + j
			v := start + (j+1)%cycleSize
			edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
		}
	}

	target := int(float64(nodes*nodes) * density)
	if most := nodes * (nodes - 1); target > most {
		target = most
	}
	for len(edges) < target {
		u := g.rng.Intn(nodes)
		v := g.rng.Intn(nodes)
		if u != v && !edgeExists(edges, u, v) {
			edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
		}
	}
	return edges
}

// MultiSCC assigns nodes to sccCount components, wires each multi-node
// component into a single shuffled cycle (making it strongly connected),
// and adds sparse cross-component edges.
func (g *Generator) MultiSCC(nodes int, density float64, sccCount int) []graph.Edge {
	component := make([]int, nodes)
	for i := range component {
		component[i] = g.rng.Intn(sccCount)
	}

	var edges []graph.Edge
	for comp := 0; comp < sccCount; comp++ {
		var members []int
		for i := 0; i < nodes; i++ {
			if component[i] == comp {
				members = append(members, i)
			}
		}
		if len(members) < 2 {
			continue
		}
		g.rng.Shuffle(len(members), func(a, b int) {
			members[a], members[b] = members[b], members[a]
		})
		for i := range members {
			u := members[i]
			v := members[(i+1)%len(members)]
			edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
		}
	}

	for u := 0; u < nodes; u++ {
		for v := 0; v < nodes; v++ {
			if component[u] != component[v] && g.rng.Float64() < density*0.3 {
				edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
			}
		}
	}
	return edges
}

// Mixed starts from a DAG base at reduced density and adds a few random
// edges, sometimes paired with their reverse to create cycles.
func (g *Generator) Mixed(nodes int, density float64) []graph.Edge {
	edges := g.DAG(nodes, density*0.7)

	cycleCount := g.rng.Intn(3) + 1
	for i := 0; i < cycleCount; i++ {
		u := g.rng.Intn(nodes)
		v := g.rng.Intn(nodes)
		if u != v && !edgeExists(edges, u, v) {
			edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
			if g.rng.Intn(2) == 0 && !edgeExists(edges, v, u) {
				edges = append(edges, graph.Edge{U: v, V: u, W: g.weight()})
			}
		}
	}
	return edges
}

// ComplexMixed combines a multi-SCC half with an id-offset DAG half and
// wires connector edges from the SCC part into the DAG part.
func (g *Generator) ComplexMixed(nodes int, density float64) []graph.Edge {
	half := nodes / 2
	edges := g.MultiSCC(half, density, 2)

	for _, e := range g.DAG(half, density) {
		edges = append(edges, graph.Edge{U: e.U + half, V: e.V + half, W: e.W})
	}

	for i := 0; i < nodes/4; i++ {
		u := g.rng.Intn(half)
		v := g.rng.Intn(half) + half
		edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
	}
	return edges
}

// LargeMixed splits the nodes into four quarters, alternating cyclic and
// DAG structure per quarter, then sprinkles cross-quarter edges.
func (g *Generator) LargeMixed(nodes int, density float64) []graph.Edge {
	quarter := nodes / 4
	if quarter < 1 {
		return g.Mixed(nodes, density)
	}

	var edges []graph.Edge
	for comp := 0; comp < 4; comp++ {
		var part []graph.Edge
		if comp%2 == 0 {
			part = g.Cyclic(quarter, density, 2)
		} else {
			part = g.DAG(quarter, density)
		}
		for _, e := range part {
			edges = append(edges, graph.Edge{U: e.U + comp*quarter, V: e.V + comp*quarter, W: e.W})
		}
	}

	for i := 0; i < nodes*2; i++ {
		u := g.rng.Intn(nodes)
		v := g.rng.Intn(nodes)
		if u/quarter != v/quarter && g.rng.Float64() < density*0.2 {
			edges = append(edges, graph.Edge{U: u, V: v, W: g.weight()})
		}
	}
	return edges
}

func edgeExists(edges []graph.Edge, u, v int) bool {
	for _, e := range edges {
		if e.U == u && e.V == v {
			return true
		}
	}
	return false
}
