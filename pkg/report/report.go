// Package report renders analysis results into the labeled multi-line text
// form consumed by the CLI and written next to generated datasets. Every
// report ends with the metrics summary of the run that produced it.
package report

import (
	"fmt"
	"strings"

	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/scc"
	"github.com/matzehuels/graphlens/pkg/toposort"
)

// TopoSort renders a topological-sort result.
func TopoSort(res *toposort.Result) string {
	var b strings.Builder
	b.WriteString("Topological Sort Result:\n")
	fmt.Fprintf(&b, "  Is DAG: %t\n", res.IsDAG)
	fmt.Fprintf(&b, "  Order: %v\n", res.Order)
	b.WriteString(res.Metrics.Summary())
	return b.String()
}

// ShortestPaths renders a shortest-path result. Distances are listed only
// when the run had a source; unreached nodes print as INFINITY.
func ShortestPaths(res *dagpath.Result) string {
	var b strings.Builder
	b.WriteString("Shortest Path Results:\n")
	if res.Source != dagpath.NoNode {
		fmt.Fprintf(&b, "Source: %d\n", res.Source)
		for v := range res.Dist {
			if res.Reached[v] {
				fmt.Fprintf(&b, "  Distance to %d: %d\n", v, res.Dist[v])
			} else {
				fmt.Fprintf(&b, "  Distance to %d: INFINITY\n", v)
			}
		}
	}
	b.WriteString("\nCritical Path Analysis:\n")
	fmt.Fprintf(&b, "  Critical Path Length: %d\n", res.CriticalLength)
	fmt.Fprintf(&b, "  Critical Path: %v\n", res.CriticalPath)
	b.WriteString(res.Metrics.Summary())
	return b.String()
}

// SCC renders a strongly-connected-components result, component by
// component, followed by the condensation graph totals.
func SCC(res *scc.Result) string {
	var b strings.Builder
	b.WriteString("Strongly Connected Components (Kosaraju's Algorithm):\n")
	for i, comp := range res.Components {
		fmt.Fprintf(&b, "  Component %d (size: %d): %v\n", i+1, res.Sizes[i], comp)
	}
	b.WriteString("\nCondensation Graph:\n")
	fmt.Fprintf(&b, "  Nodes: %d\n", res.Condensation.N())
	fmt.Fprintf(&b, "  Edges: %d\n", res.Condensation.EdgeCount())
	b.WriteString(res.Metrics.Summary())
	return b.String()
}
