package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/pipeline"
	"github.com/matzehuels/bifconv/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	format   string // dot or svg
	detailed bool   // add states and CPT shape to node labels
	output   string // output file; stdout when empty
}

// renderCommand draws the network structure: one node per variable, one edge
// per parent link, rows by topological depth.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:               "render <file.bif>",
		Short:             "Render the network structure as Graphviz DOT or SVG",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBIF,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(nodelink.FormatDOT), "output format: dot, svg")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show states and CPT shape in node labels")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Path:     path,
		Format:   override(cmd, "format", opts.format, c.Config.Render.Format),
		Detailed: override(cmd, "detailed", opts.detailed, c.Config.Render.Detailed),
		Logger:   logger,
	}

	var spin *Spinner
	if popts.Format == string(nodelink.FormatSVG) && isTerminal(c.Stderr) {
		spin = newSpinnerWithContext(ctx, c.Stderr, "Rendering "+path)
		spin.Start()
	}

	prog := newProgress(logger)
	res, err := c.newRunner().Render(ctx, popts)
	if spin != nil {
		if err != nil {
			spin.StopWithError("Rendering failed")
		} else {
			spin.StopWithSuccess(fmt.Sprintf("Rendered %d variables", res.Stats.VariableCount))
		}
	}
	if err != nil {
		return err
	}

	if err := c.emit(res.Output, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		prog.done(fmt.Sprintf("Rendered %d variables, %d links", res.Stats.VariableCount, res.Stats.EdgeCount))
		printFile(c.Stderr, opts.output)
	}
	return nil
}
