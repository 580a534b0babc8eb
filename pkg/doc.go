// Package pkg provides the core libraries for Graphlens graph analysis.
//
// # Overview
//
// Graphlens analyzes the structure of directed graphs: topological ordering,
// DAG path analysis, and strongly connected components, all instrumented
// with per-run operation metrics. The pkg directory is organized into three
// main areas:
//
//  1. Analysis - graph structure and algorithms ([graph], [toposort],
//     [dagpath], [scc], [metrics])
//  2. Tooling - dataset generation and output ([gen], [report], [render])
//  3. Infrastructure - execution and persistence ([pipeline], [cache],
//     [store], [observability])
//
// # Architecture
//
// The typical data flow through Graphlens:
//
//	JSON graph file
//	         ↓
//	    [graph] package (validation + adjacency views)
//	         ↓
//	    [toposort] / [dagpath] / [scc] (analysis + [metrics])
//	         ↓
//	    [pipeline] package (caching + run orchestration)
//	         ↓
//	    text / JSON / DOT / SVG output
//
// # Quick Start
//
// Analyze a graph:
//
//	g, _ := graph.New(3, []graph.Edge{{U: 0, V: 1, W: 2}, {U: 1, V: 2, W: 3}})
//	topo := toposort.Kahn(g)
//	paths, _ := dagpath.ShortestPaths(g, 0)
//	comps := scc.Kosaraju(g)
//
// Or run everything through the pipeline with caching:
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, _ := runner.Execute(ctx, g, pipeline.Options{})
//
// # Main Packages
//
// [graph] - Immutable weighted directed graph with forward and reverse
// adjacency views, plus the JSON file format.
//
// [toposort] - Topological ordering via Kahn's algorithm and depth-first
// finish order, with cycle detection.
//
// [dagpath] - Shortest and critical (longest) paths over DAGs by dynamic
// programming in topological order.
//
// [scc] - Strongly connected components (Kosaraju) and the condensation
// graph.
//
// [metrics] - Operation counters and timing shared by every analysis.
//
// [gen] - Seeded random graph generators and the benchmark dataset suite.
//
// [report] - Text and markdown rendering of analysis results and datasets.
//
// [render] - Graphviz DOT export and SVG rendering.
//
// [pipeline] - Analysis orchestration with per-analysis result caching,
// used by both the CLI and the HTTP API.
//
// [cache] - Result cache backends: file, Redis, and null.
//
// [store] - Run history backends: in-memory and MongoDB.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/graph
// [toposort]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/toposort
// [dagpath]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/dagpath
// [scc]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/scc
// [metrics]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/metrics
// [gen]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/gen
// [report]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/report
// [render]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/store
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphlens/pkg/observability
package pkg
