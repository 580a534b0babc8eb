package report

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/gen"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/scc"
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

func TestTopoSortReport(t *testing.T) {
	g := mustGraph(t, 3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}})
	out := TopoSort(toposort.Kahn(g))

	for _, want := range []string{
		"Topological Sort Result:",
		"Is DAG: true",
		"Order: [0 1 2]",
		"Metrics:",
		"Stack Pops:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestShortestPathsReport(t *testing.T) {
	g := mustGraph(t, 3, []graph.Edge{{U: 0, V: 1, W: 2}, {U: 1, V: 2, W: 3}, {U: 0, V: 2, W: 10}})
	res, err := dagpath.ShortestPaths(g, 0)
	if err != nil {
		t.Fatalf("ShortestPaths() error = %v", err)
	}
	out := ShortestPaths(res)

	for _, want := range []string{
		"Source: 0",
		"Distance to 1: 2",
		"Distance to 2: 5",
		"Critical Path Length: 10",
		"Critical Path: [0 2]",
		"Relaxations:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestShortestPathsReportUnreached(t *testing.T) {
	g := mustGraph(t, 2, nil)
	res, err := dagpath.ShortestPaths(g, 0)
	if err != nil {
		t.Fatalf("ShortestPaths() error = %v", err)
	}
	out := ShortestPaths(res)

	if !strings.Contains(out, "Distance to 1: INFINITY") {
		t.Errorf("report missing INFINITY marker:\n%s", out)
	}
}

func TestShortestPathsReportSourceFree(t *testing.T) {
	g := mustGraph(t, 2, []graph.Edge{{U: 0, V: 1, W: 4}})
	res, err := dagpath.ShortestPaths(g, dagpath.NoNode)
	if err != nil {
		t.Fatalf("ShortestPaths() error = %v", err)
	}
	out := ShortestPaths(res)

	if strings.Contains(out, "Source:") {
		t.Errorf("source-free report lists a source:\n%s", out)
	}
	if !strings.Contains(out, "Critical Path Length: 4") {
		t.Errorf("report missing critical length:\n%s", out)
	}
}

func TestSCCReport(t *testing.T) {
	g := mustGraph(t, 4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 0}, {U: 2, V: 3}})
	out := SCC(scc.Kosaraju(g))

	for _, want := range []string{
		"Strongly Connected Components (Kosaraju's Algorithm):",
		"Component 1 (size:",
		"Condensation Graph:",
		"Nodes: 2",
		"Edges: 1",
		"DFS Visits:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestDatasetMarkdown(t *testing.T) {
	datasets := []gen.Dataset{
		{Name: "small_dag_1", Nodes: 8, Edges: 7, Cyclic: false, SCCCount: 8, Density: "Medium", Description: "Pure DAG, no cycles"},
		{Name: "small_cyclic_1", Nodes: 7, Edges: 12, Cyclic: true, SCCCount: 2, Density: "Dense", Description: "Cyclic with 2 SCCs"},
	}
	out := DatasetMarkdown(datasets)

	for _, want := range []string{
		"# Graph Dataset Report",
		"Generated 2 test datasets",
		"| Name | Nodes | Edges | Cyclic | SCCs | Density | Description |",
		"| small_dag_1 | 8 | 7 | false | 8 | Medium | Pure DAG, no cycles |",
		"| small_cyclic_1 | 7 | 12 | true | 2 | Dense | Cyclic with 2 SCCs |",
		"- **Large**: 20-50 nodes, performance testing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}
