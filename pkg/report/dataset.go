package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/matzehuels/graphlens/pkg/gen"
)

// DatasetMarkdown renders the dataset overview as a markdown document with
// one table row per generated graph.
func DatasetMarkdown(datasets []gen.Dataset) string {
	var b strings.Builder
	b.WriteString("# Graph Dataset Report\n\n")
	b.WriteString("## Overview\n")
	fmt.Fprintf(&b, "Generated %d test datasets for graph algorithm testing.\n\n", len(datasets))
	b.WriteString("## Dataset Details\n\n")
	b.WriteString("| Name | Nodes | Edges | Cyclic | SCCs | Density | Description |\n")
	b.WriteString("|------|-------|-------|--------|------|---------|-------------|\n")

	for _, d := range datasets {
		fmt.Fprintf(&b, "| %s | %d | %d | %t | %d | %s | %s |\n",
			d.Name, d.Nodes, d.Edges, d.Cyclic, d.SCCCount, d.Density, d.Description)
	}

	b.WriteString("\n## Categories\n")
	b.WriteString("- **Small**: 6-10 nodes, simple structures\n")
	b.WriteString("- **Medium**: 10-20 nodes, mixed structures\n")
	b.WriteString("- **Large**: 20-50 nodes, performance testing\n")
	return b.String()
}

// WriteDatasetMarkdown writes the dataset report to w.
func WriteDatasetMarkdown(datasets []gen.Dataset, w io.Writer) error {
	_, err := io.WriteString(w, DatasetMarkdown(datasets))
	return err
}

// WriteDatasetFile writes the dataset report to path with 0644 permissions.
func WriteDatasetFile(datasets []gen.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDatasetMarkdown(datasets, f)
}
