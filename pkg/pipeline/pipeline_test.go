package pipeline

import (
	"context"
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphlens/pkg/cache"
	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/graph"
)

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New(3, []graph.Edge{
		{U: 0, V: 1, W: 2},
		{U: 0, V: 2, W: 5},
		{U: 1, V: 2, W: 3},
	})
	if err != nil {
		t.Fatalf("graph.New: %v", err)
	}
	return g
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestExecuteDefaultKinds(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	g := testGraph(t)

	result, err := r.Execute(context.Background(), g, Options{Source: dagpath.NoNode})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.RunID == uuid.Nil {
		t.Error("RunID should be set")
	}
	if len(result.GraphHash) != 64 {
		t.Errorf("GraphHash length = %d, want 64", len(result.GraphHash))
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 3 {
		t.Errorf("stats = %d nodes %d edges, want 3/3", result.Stats.NodeCount, result.Stats.EdgeCount)
	}

	if result.Report.TopoKahn == nil || !result.Report.TopoKahn.IsDAG {
		t.Error("expected Kahn result on a DAG")
	}
	if result.Report.TopoDFS == nil || !result.Report.TopoDFS.IsDAG {
		t.Error("expected DFS result on a DAG")
	}
	if result.Report.Paths == nil {
		t.Fatal("expected paths result")
	}
	if result.Report.Paths.CriticalLength != 5 {
		t.Errorf("CriticalLength = %d, want 5", result.Report.Paths.CriticalLength)
	}
	if result.Report.SCC == nil || len(result.Report.SCC.Components) != 3 {
		t.Error("expected 3 singleton components on a DAG")
	}

	for _, kind := range DefaultKinds {
		if _, ok := result.Stats.Analysis[kind]; !ok {
			t.Errorf("missing timing for %s", kind)
		}
		if result.CacheInfo.Hit(kind) {
			t.Errorf("%s should miss on a fresh run", kind)
		}
	}
}

func TestExecuteSelectedKinds(t *testing.T) {
	r := NewRunner(nil, quietLogger())
	g := testGraph(t)

	result, err := r.Execute(context.Background(), g, Options{Kinds: []string{KindSCC}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Report.SCC == nil {
		t.Error("expected SCC result")
	}
	if result.Report.TopoKahn != nil || result.Report.TopoDFS != nil || result.Report.Paths != nil {
		t.Error("unrequested analyses should stay nil")
	}
}

func TestExecuteInvalidKind(t *testing.T) {
	r := NewRunner(nil, quietLogger())

	_, err := r.Execute(context.Background(), testGraph(t), Options{Kinds: []string{"nonsense"}})
	if err == nil {
		t.Fatal("expected error for invalid kind")
	}
}

func TestExecuteInvalidSource(t *testing.T) {
	r := NewRunner(nil, quietLogger())

	_, err := r.Execute(context.Background(), testGraph(t), Options{
		Kinds:  []string{KindPaths},
		Source: 99,
	})
	if !errors.Is(err, dagpath.ErrNodeOutOfRange) {
		t.Errorf("err = %v, want ErrNodeOutOfRange", err)
	}
}

func TestExecuteCacheReuse(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, quietLogger())
	g := testGraph(t)
	ctx := context.Background()
	opts := Options{Source: dagpath.NoNode}

	first, err := r.Execute(ctx, g, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := r.Execute(ctx, g, Options{Source: dagpath.NoNode})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	for _, kind := range DefaultKinds {
		if first.CacheInfo.Hit(kind) {
			t.Errorf("%s should miss on the first run", kind)
		}
		if !second.CacheInfo.Hit(kind) {
			t.Errorf("%s should hit on the second run", kind)
		}
	}

	if !reflect.DeepEqual(first.Report.TopoKahn.Order, second.Report.TopoKahn.Order) {
		t.Error("cached Kahn order differs from computed order")
	}
	if !reflect.DeepEqual(first.Report.Paths.Dist, second.Report.Paths.Dist) {
		t.Error("cached distances differ from computed distances")
	}
	if !reflect.DeepEqual(first.Report.SCC.Components, second.Report.SCC.Components) {
		t.Error("cached components differ from computed components")
	}
	if second.Report.SCC.Condensation == nil {
		t.Error("condensation should be rebuilt on a cache hit")
	}
	if second.Report.SCC.Condensation.N() != 3 {
		t.Errorf("condensation nodes = %d, want 3", second.Report.SCC.Condensation.N())
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, quietLogger())
	g := testGraph(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, g, Options{Kinds: []string{KindSCC}}); err != nil {
		t.Fatalf("warm-up Execute: %v", err)
	}
	result, err := r.Execute(ctx, g, Options{Kinds: []string{KindSCC}, Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if result.CacheInfo.Hit(KindSCC) {
		t.Error("refresh run should not hit the cache")
	}
}

func TestPathsSourceSeparatesCacheEntries(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	r := NewRunner(c, quietLogger())
	g := testGraph(t)
	ctx := context.Background()

	from0, err := r.Execute(ctx, g, Options{Kinds: []string{KindPaths}, Source: 0})
	if err != nil {
		t.Fatalf("Execute source 0: %v", err)
	}
	from1, err := r.Execute(ctx, g, Options{Kinds: []string{KindPaths}, Source: 1})
	if err != nil {
		t.Fatalf("Execute source 1: %v", err)
	}

	if from1.CacheInfo.Hit(KindPaths) {
		t.Error("a different source must not reuse the cached entry")
	}
	if reflect.DeepEqual(from0.Report.Paths.Dist, from1.Report.Paths.Dist) {
		t.Error("distances from different sources should differ")
	}
}
