package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphlens/pkg/dagpath"
	"github.com/matzehuels/graphlens/pkg/graph"
	"github.com/matzehuels/graphlens/pkg/scc"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// newBrowseCmd creates the browse command.
func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [dir]",
		Short: "Interactively explore generated datasets",
		Long: `Interactively explore the graph datasets in a directory.

Each JSON graph in the directory is listed with its size and component
structure. Selecting one runs the full analysis suite over it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			dir := "data"
			if len(args) == 1 {
				dir = args[0]
			}
			return runBrowse(c.Context(), dir)
		},
	}
}

// runBrowse lists the datasets in dir and analyzes the selected one.
func runBrowse(ctx context.Context, dir string) error {
	entries, err := loadDatasets(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		printInfo("No datasets in %s", dir)
		printDetail("Run: %s generate --out %s", appName, dir)
		return nil
	}

	model := newDatasetListModel(entries)
	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	m, ok := final.(datasetListModel)
	if !ok || m.Selected == nil {
		return nil
	}
	printNewline()
	return runAnalyze(ctx, m.Selected.Path, analyzeOpts{source: dagpath.NoNode, target: dagpath.NoNode})
}

// datasetEntry is one row of the browse list.
type datasetEntry struct {
	Name       string
	Path       string
	Nodes      int
	Edges      int
	Components int
	Cyclic     bool
}

// loadDatasets reads every JSON graph in dir and summarizes its structure.
// Files that do not parse as graphs are skipped with a warning.
func loadDatasets(dir string) ([]datasetEntry, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	var entries []datasetEntry
	for _, path := range paths {
		g, err := graph.ReadFile(path)
		if err != nil {
			printWarning("Skipping %s: %v", filepath.Base(path), err)
			continue
		}
		res := scc.Kosaraju(g)
		entries = append(entries, datasetEntry{
			Name:       strings.TrimSuffix(filepath.Base(path), ".json"),
			Path:       path,
			Nodes:      g.N(),
			Edges:      g.EdgeCount(),
			Components: len(res.Components),
			Cyclic:     len(res.Components) < g.N(),
		})
	}
	if entries == nil && len(paths) > 0 {
		return nil, fmt.Errorf("no readable graphs in %s", dir)
	}
	return entries, nil
}

// datasetListModel is the bubbletea model for interactive dataset selection.
type datasetListModel struct {
	Entries  []datasetEntry
	Cursor   int
	Selected *datasetEntry
	Height   int
	Offset   int
}

// newDatasetListModel creates a new dataset list model.
func newDatasetListModel(entries []datasetEntry) datasetListModel {
	return datasetListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m datasetListModel) Init() tea.Cmd {
	return nil
}

func (m datasetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m datasetListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dataset"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ analyze  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		structure := "acyclic"
		if e.Cyclic {
			structure = fmt.Sprintf("%d SCCs", e.Components)
		}

		rows = append(rows, []string{
			cursor,
			e.Name,
			fmt.Sprintf("%d", e.Nodes),
			fmt.Sprintf("%d", e.Edges),
			structure,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Dataset", "Nodes", "Edges", "Structure").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
