package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphlens/pkg/cache"
	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/observability"
	"github.com/matzehuels/graphlens/pkg/scc"
	"github.com/matzehuels/graphlens/pkg/toposort"
)

// Runner executes analysis runs with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the requested analyses over g, reusing cached results where
// the graph hash and analysis parameters match.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	data, err := graph.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("serialize graph: %w", err)
	}

	result := &Result{
		RunID:     uuid.New(),
		GraphHash: cache.Hash(data),
		Stats: Stats{
			NodeCount: g.N(),
			EdgeCount: g.EdgeCount(),
			Analysis:  make(map[string]time.Duration),
		},
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
	}

	runStart := time.Now()
	observability.Analysis().OnRunStart(ctx, result.RunID.String(), g.N(), g.EdgeCount())

	for _, kind := range opts.Kinds {
		start := time.Now()
		hit, err := r.runAnalysis(ctx, g, kind, opts, result)
		elapsed := time.Since(start)
		if err != nil {
			observability.Analysis().OnRunComplete(ctx, result.RunID.String(), time.Since(runStart), err)
			return nil, fmt.Errorf("%s: %w", kind, err)
		}

		result.Stats.Analysis[kind] = elapsed
		result.CacheInfo.Hits[kind] = hit

		r.Logger.Info("analysis complete",
			"run_id", result.RunID,
			"kind", kind,
			"duration", elapsed,
			"cache_hit", hit)
	}

	result.Stats.Total = time.Since(runStart)
	observability.Analysis().OnRunComplete(ctx, result.RunID.String(), result.Stats.Total, nil)
	return result, nil
}

// runAnalysis executes one analysis, consulting the cache first. It returns
// whether the result came from the cache.
func (r *Runner) runAnalysis(ctx context.Context, g *graph.Graph, kind string, opts Options, result *Result) (bool, error) {
	key := r.analysisKey(result.GraphHash, kind, opts)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if err := r.restore(g, kind, data, result); err == nil {
				observability.Cache().OnCacheHit(ctx, kind)
				return true, nil
			}
			// A stale or corrupt entry falls through to recompute.
		}
	}
	observability.Cache().OnCacheMiss(ctx, kind)

	observability.Analysis().OnAnalysisStart(ctx, kind, g.N(), g.EdgeCount())
	start := time.Now()
	payload, err := r.compute(g, kind, opts, result)
	observability.Analysis().OnAnalysisComplete(ctx, kind, time.Since(start), err)
	if err != nil {
		return false, err
	}

	if data, err := json.Marshal(payload); err == nil {
		if err := r.Cache.Set(ctx, key, data, TTLAnalysis); err == nil {
			observability.Cache().OnCacheSet(ctx, kind, len(data))
		}
	}
	return false, nil
}

// compute runs the algorithm for kind, stores the result on result, and
// returns the value to cache.
func (r *Runner) compute(g *graph.Graph, kind string, opts Options, result *Result) (any, error) {
	switch kind {
	case KindTopoKahn:
		result.Report.TopoKahn = toposort.Kahn(g)
		return result.Report.TopoKahn, nil
	case KindTopoDFS:
		result.Report.TopoDFS = toposort.DFS(g)
		return result.Report.TopoDFS, nil
	case KindPaths:
		res, err := dagpath.ShortestPaths(g, opts.Source)
		if err != nil {
			return nil, err
		}
		result.Report.Paths = res
		return res, nil
	case KindSCC:
		result.Report.SCC = scc.Kosaraju(g)
		return result.Report.SCC, nil
	}
	return nil, fmt.Errorf("invalid analysis kind: %q", kind)
}

// restore deserializes a cached result into the report. The SCC condensation
// is not serialized, so it is rebuilt from the cached components.
func (r *Runner) restore(g *graph.Graph, kind string, data []byte, result *Result) error {
	switch kind {
	case KindTopoKahn:
		var res toposort.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		result.Report.TopoKahn = &res
	case KindTopoDFS:
		var res toposort.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		result.Report.TopoDFS = &res
	case KindPaths:
		var res dagpath.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		result.Report.Paths = &res
	case KindSCC:
		var res scc.Result
		if err := json.Unmarshal(data, &res); err != nil {
			return err
		}
		res.Condensation = scc.Condense(g, res.Components)
		result.Report.SCC = &res
	default:
		return fmt.Errorf("invalid analysis kind: %q", kind)
	}
	return nil
}

// analysisKey builds the cache key for one analysis. The paths key carries
// the source node so runs with different sources are cached separately.
func (r *Runner) analysisKey(graphHash, kind string, opts Options) string {
	if kind == KindPaths {
		return cache.AnalysisKey(graphHash, kind, opts.Source)
	}
	return cache.AnalysisKey(graphHash, kind)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
