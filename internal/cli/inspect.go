package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/bif"
	"github.com/matzehuels/bifconv/pkg/dag"
	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/network"
	"github.com/matzehuels/bifconv/pkg/pipeline"
)

// headerRow is the row index lipgloss tables pass to StyleFunc for headers.
const headerRow = -1

type inspectOpts struct {
	check     bool
	tolerance float64
}

func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{tolerance: network.DefaultTolerance}

	cmd := &cobra.Command{
		Use:   "inspect <file.bif>",
		Short: "Summarize a network and its variables",
		Long: `Inspect prints the network's size and structure followed by a table of
its variables. With --check it also verifies that every CPT column sums to 1
and fails if any does not.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBIF,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.check, "check", false, "verify that CPT columns sum to 1")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", opts.tolerance, "allowed deviation of a column sum from 1")

	return cmd
}

// summary is the structural overview printed by inspect.
type summary struct {
	Name        string
	Variables   int
	Edges       int
	Roots       []string
	Leaves      []string
	MaxInDegree int
	Cells       int
	Cyclic      bool
}

func summarize(n *network.Network) summary {
	g, _ := pipeline.Graph(n)
	maxIn := 0
	for _, node := range g.Nodes() {
		maxIn = max(maxIn, g.InDegree(node.ID))
	}
	return summary{
		Name:        n.Name,
		Variables:   len(n.Variables),
		Edges:       n.EdgeCount(),
		Roots:       n.Roots(),
		Leaves:      n.Leaves(),
		MaxInDegree: maxIn,
		Cells:       n.CellCount(),
		Cyclic:      stderrors.Is(g.Validate(), dag.ErrGraphHasCycle),
	}
}

func (c *CLI) runInspect(cmd *cobra.Command, path string, opts inspectOpts) error {
	if opts.tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "tolerance must not be negative")
	}
	logger := loggerFromContext(cmd.Context())

	f, n, err := bif.LoadFile(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded network", "path", path, "variables", len(n.Variables))

	s := summarize(n)
	writeSummary(c.Stdout, s)
	fmt.Fprintln(c.Stdout)
	fmt.Fprintln(c.Stdout, variableTable(f, n))

	if s.Cyclic {
		printWarning(c.Stderr, "network %q has directed cycles", n.Name)
	}
	if !opts.check {
		return nil
	}

	devs := n.CheckNormalization(opts.tolerance)
	if len(devs) == 0 {
		printSuccess(c.Stderr, "All CPT columns sum to 1 (tolerance %g)", opts.tolerance)
		return nil
	}
	fmt.Fprintln(c.Stdout)
	fmt.Fprintln(c.Stdout, deviationTable(devs))
	return errors.New(errors.ErrCodeInvalidInput, "%d CPT columns do not sum to 1 within %g", len(devs), opts.tolerance)
}

func writeSummary(w io.Writer, s summary) {
	name := s.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintln(w, StyleTitle.Render(name))
	printKeyValue(w, "variables", strconv.Itoa(s.Variables))
	printKeyValue(w, "links", strconv.Itoa(s.Edges))
	printKeyValue(w, "roots", listOrDash(s.Roots))
	printKeyValue(w, "leaves", listOrDash(s.Leaves))
	printKeyValue(w, "max parents", strconv.Itoa(s.MaxInDegree))
	printKeyValue(w, "cpt cells", strconv.Itoa(s.Cells))
	printKeyValue(w, "acyclic", strconv.FormatBool(!s.Cyclic))
}

func variableTable(f *bif.File, n *network.Network) string {
	props := make(map[string][]string, len(f.Variables))
	for _, v := range f.Variables {
		props[v.Name] = v.Properties
	}

	rows := make([][]string, 0, len(n.Variables))
	for _, v := range n.Variables {
		rows = append(rows, []string{
			v,
			strings.Join(n.States[v], ", "),
			listOrDash(n.Parents[v]),
			shapeString(n.ShapeOf(v)),
			listOrDash(props[v]),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Variable", "States", "Parents", "CPT", "Properties").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col == 3 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func deviationTable(devs []network.Deviation) string {
	rows := make([][]string, len(devs))
	for i, d := range devs {
		given := "-"
		if len(d.Parents) > 0 {
			given = strings.Join(d.Parents, ", ")
		}
		rows[i] = []string{d.Variable, given, strconv.FormatFloat(d.Sum, 'g', 8, 64)}
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Variable", "Given", "Sum").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			if col == 2 {
				return StyleWarning
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

func shapeString(shape []int) string {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}
	return strings.Join(dims, "x")
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
