package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/render"
	"github.com/matzehuels/graphlens/pkg/scc"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format       string // "dot" or "svg"
	output       string // output file, stdout for DOT if empty
	components   bool   // color nodes by strongly connected component
	condensation bool   // render the condensation DAG instead of the graph
	weights      bool   // include edge weight labels
	name         string // digraph name
}

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	opts := renderOpts{format: "dot", weights: true}

	cmd := &cobra.Command{
		Use:   "render <graph.json>",
		Short: "Render a graph to Graphviz DOT or SVG",
		Long: `Render a JSON graph file to Graphviz DOT or SVG.

With --components the graph is first decomposed into strongly connected
components and every node is filled with its component's color, which makes
cycle structure visible at a glance. With --condensation the components are
collapsed and the resulting DAG is rendered instead.

Examples:
  graphlens render data/medium_dag.json
  graphlens render data/multi_scc.json --components -f svg -o graph.svg
  graphlens render data/multi_scc.json --condensation`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runRender(c.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot or svg")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout for dot if empty)")
	cmd.Flags().BoolVar(&opts.components, "components", false, "color nodes by strongly connected component")
	cmd.Flags().BoolVar(&opts.condensation, "condensation", false, "render the condensation DAG of the components")
	cmd.Flags().BoolVar(&opts.weights, "weights", opts.weights, "include edge weight labels")
	cmd.Flags().StringVar(&opts.name, "name", "", "digraph name (defaults to the file name)")

	return cmd
}

// runRender reads a graph and writes its DOT or SVG rendering.
func runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read graph: %w", err)
	}

	name := opts.name
	if name == "" {
		name = graphName(path)
	}
	renderOptions := render.Options{Weights: opts.weights, Name: name}

	var dot string
	switch {
	case opts.condensation:
		res := scc.Kosaraju(g)
		logger.Debugf("Condensed %d nodes into %d components", g.N(), len(res.Components))
		condOptions := renderOptions
		condOptions.Weights = false
		if opts.name == "" {
			condOptions.Name = name + "_condensation"
		}
		dot = render.ToDOT(res.Condensation, condOptions)
	case opts.components:
		res := scc.Kosaraju(g)
		logger.Debugf("Found %d components", len(res.Components))
		dot = render.ComponentsDOT(g, res, renderOptions)
	default:
		dot = render.ToDOT(g, renderOptions)
	}

	switch opts.format {
	case "dot":
		if opts.output == "" {
			fmt.Print(dot)
			return nil
		}
		if err := os.WriteFile(opts.output, []byte(dot), 0644); err != nil {
			return err
		}
	case "svg":
		if opts.output == "" {
			return fmt.Errorf("svg output requires --output")
		}
		spin := newSpinnerWithContext(ctx, "Rendering SVG...")
		spin.Start()
		data, err := render.RenderSVG(dot)
		spin.Stop()
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(opts.output, data, 0644); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid format: %q (must be dot or svg)", opts.format)
	}

	printSuccess("Rendered %s", path)
	printFile(opts.output)
	return nil
}

// graphName derives a digraph name from a file path: the base name without
// extension, with characters Graphviz rejects replaced.
func graphName(path string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(path, ".json"), ".JSON")
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
