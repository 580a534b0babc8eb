// Package toposort computes topological orderings of directed graphs using
// two independent strategies: Kahn's queue-based algorithm and an iterative
// depth-first search with postorder reversal.
//
// Both strategies detect cycles. A cyclic input is not an error - the
// result carries IsDAG=false and a diagnostic warning is logged; the caller
// decides whether to treat it as fatal.
package toposort

import (
	charmlog "github.com/charmbracelet/log"

	"github.com/matzehuels/graphlens/pkg/metrics"
)

// Result is the outcome of one topological-sort run.
//
// When IsDAG is false the meaning of Order depends on the strategy: Kahn
// returns a valid partial order covering only the acyclic-reachable prefix,
// while DFS returns a full but unverified ordering of all nodes. Only the
// IsDAG flag signals invalidity.
type Result struct {
	Order   []int            `json:"order" bson:"order"`
	IsDAG   bool             `json:"is_dag" bson:"is_dag"`
	Metrics metrics.Snapshot `json:"metrics" bson:"metrics"`
}

var logger = charmlog.Default()

// SetLogger replaces the logger used for cycle warnings.
// Passing nil restores the default logger.
func SetLogger(l *charmlog.Logger) {
	if l == nil {
		l = charmlog.Default()
	}
	logger = l
}
