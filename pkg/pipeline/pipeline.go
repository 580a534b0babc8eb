// Package pipeline runs graph analyses with caching.
//
// This package implements the analyze step shared by the CLI and the API.
// By centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// A run takes one graph and a set of analysis kinds:
//
//   - toposort-kahn: topological sort, Kahn's algorithm
//   - toposort-dfs:  topological sort, depth-first finish order
//   - paths:         DAG shortest paths and critical path
//   - scc:           strongly connected components and condensation
//
// Each analysis result is cached individually, keyed by graph content hash,
// so a re-run over an unchanged graph only recomputes what is missing.
//
// # Usage
//
// Create a Runner and execute a run:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Kinds: []string{pipeline.KindSCC}}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Report.SCC.Components)
package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/scc"
	"github.com/matzehuels/graphlens/pkg/toposort"
)

// Analysis kind constants.
const (
	KindTopoKahn = "toposort-kahn"
	KindTopoDFS  = "toposort-dfs"
	KindPaths    = "paths"
	KindSCC      = "scc"
)

// ValidKinds is the set of supported analysis kinds.
var ValidKinds = map[string]bool{
	KindTopoKahn: true,
	KindTopoDFS:  true,
	KindPaths:    true,
	KindSCC:      true,
}

// DefaultKinds is the analyses a run executes when none are named.
var DefaultKinds = []string{KindTopoKahn, KindTopoDFS, KindPaths, KindSCC}

// TTLAnalysis is how long cached analysis results stay valid. Results are
// pure functions of the graph, so the TTL only bounds cache growth.
const TTLAnalysis = 24 * time.Hour

// ErrInvalidOptions marks option validation failures so callers can map
// them to client errors.
var ErrInvalidOptions = errors.New("invalid options")

// Options contains all configuration for one analysis run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Kinds names the analyses to run. Empty means DefaultKinds.
	Kinds []string `json:"kinds,omitempty"`

	// Source is the source node for the paths analysis. dagpath.NoNode
	// selects the virtual-source mode where every node is a start.
	Source int `json:"source,omitempty"`

	// Refresh bypasses the cache and recomputes every analysis.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks the requested kinds and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Kinds) == 0 {
		o.Kinds = DefaultKinds
	}
	for _, kind := range o.Kinds {
		if !ValidKinds[kind] {
			return fmt.Errorf("%w: unknown analysis kind %q (must be one of: %s, %s, %s, %s)",
				ErrInvalidOptions, kind, KindTopoKahn, KindTopoDFS, KindPaths, KindSCC)
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// WantsKind reports whether the run includes the given analysis.
func (o *Options) WantsKind(kind string) bool {
	for _, k := range o.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Report aggregates the results of the analyses a run executed. Fields for
// analyses that did not run are nil.
type Report struct {
	TopoKahn *toposort.Result `json:"toposort_kahn,omitempty" bson:"toposort_kahn,omitempty"`
	TopoDFS  *toposort.Result `json:"toposort_dfs,omitempty" bson:"toposort_dfs,omitempty"`
	Paths    *dagpath.Result  `json:"paths,omitempty" bson:"paths,omitempty"`
	SCC      *scc.Result      `json:"scc,omitempty" bson:"scc,omitempty"`
}

// Result contains the outputs of one run.
type Result struct {
	// RunID identifies this run in logs and the store.
	RunID uuid.UUID

	// GraphHash is the content hash of the analyzed graph.
	GraphHash string

	// Report holds the analysis results.
	Report Report

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which analyses hit the cache.
	CacheInfo CacheInfo
}

// Stats contains run execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Analysis  map[string]time.Duration
	Total     time.Duration
}

// CacheInfo tracks cache hits per analysis kind.
type CacheInfo struct {
	Hits map[string]bool
}

// Hit reports whether the given analysis came from the cache.
func (c CacheInfo) Hit(kind string) bool { return c.Hits[kind] }
