// Package metrics provides per-run instrumentation for graph algorithms.
//
// Each algorithm invocation creates its own Recorder, counts the work it
// performs, and attaches an immutable Snapshot to its result. Recorders are
// never shared between calls, so concurrent invocations of the same
// algorithm cannot race on counter state.
package metrics

import (
	"fmt"
	"strings"
	"time"
)

// Recorder accumulates operation counters and wall-clock time for a single
// algorithm run. The zero value is ready to use after calling Start.
//
// Recorder is not safe for concurrent use - each run owns its own instance.
type Recorder struct {
	relaxations   int64
	dfsVisits     int64
	edgesExplored int64
	stackPushes   int64
	stackPops     int64

	start   time.Time
	elapsed time.Duration
}

// NewRecorder creates a recorder with all counters at zero.
func NewRecorder() *Recorder { return &Recorder{} }

// Start marks the beginning of the timed section.
func (r *Recorder) Start() { r.start = time.Now() }

// Stop marks the end of the timed section and freezes the elapsed duration.
func (r *Recorder) Stop() { r.elapsed = time.Since(r.start) }

// AddRelaxation records one attempted edge relaxation.
func (r *Recorder) AddRelaxation() { r.relaxations++ }

// AddDFSVisit records one depth-first node visit.
func (r *Recorder) AddDFSVisit() { r.dfsVisits++ }

// AddEdgeExplored records one edge examination.
func (r *Recorder) AddEdgeExplored() { r.edgesExplored++ }

// AddStackPush records one push onto a traversal stack or queue.
func (r *Recorder) AddStackPush() { r.stackPushes++ }

// AddStackPop records one pop from a traversal stack or queue.
func (r *Recorder) AddStackPop() { r.stackPops++ }

// Snapshot returns an immutable copy of the current counter state.
func (r *Recorder) Snapshot() Snapshot {
	return Snapshot{
		Relaxations:   r.relaxations,
		DFSVisits:     r.dfsVisits,
		EdgesExplored: r.edgesExplored,
		StackPushes:   r.stackPushes,
		StackPops:     r.stackPops,
		Elapsed:       r.elapsed,
	}
}

// Snapshot is a frozen view of a run's counters, attached to algorithm
// results. It is a plain value and safe to copy and share.
type Snapshot struct {
	Relaxations   int64         `json:"relaxations" bson:"relaxations"`
	DFSVisits     int64         `json:"dfs_visits" bson:"dfs_visits"`
	EdgesExplored int64         `json:"edges_explored" bson:"edges_explored"`
	StackPushes   int64         `json:"stack_pushes" bson:"stack_pushes"`
	StackPops     int64         `json:"stack_pops" bson:"stack_pops"`
	Elapsed       time.Duration `json:"elapsed_ns" bson:"elapsed_ns"`
}

// Summary renders the labeled multi-line metrics block that terminates
// every result report.
func (s Snapshot) Summary() string {
	var b strings.Builder
	b.WriteString("Metrics:\n")
	fmt.Fprintf(&b, "  Elapsed: %s\n", s.Elapsed)
	fmt.Fprintf(&b, "  Relaxations: %d\n", s.Relaxations)
	fmt.Fprintf(&b, "  DFS Visits: %d\n", s.DFSVisits)
	fmt.Fprintf(&b, "  Edges Explored: %d\n", s.EdgesExplored)
	fmt.Fprintf(&b, "  Stack Pushes: %d\n", s.StackPushes)
	fmt.Fprintf(&b, "  Stack Pops: %d\n", s.StackPops)
	return b.String()
}
