package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/network"
	"github.com/matzehuels/bifconv/pkg/pipeline"
)

// convertOpts holds the command-line flags of the root command.
type convertOpts struct {
	layout string // CPT nesting: tensor or matrix
	indent string // JSON indent; empty for a single line
	output string // output file; stdout when empty
}

func addConvertFlags(cmd *cobra.Command, opts *convertOpts) {
	cmd.Flags().StringVar(&opts.layout, "layout", string(network.DefaultLayout), "CPT layout: tensor (one axis per variable), matrix (state x parent combination)")
	cmd.Flags().StringVar(&opts.indent, "indent", "", "indent JSON with this string (spaces or tabs)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to this file instead of stdout")
}

func (c *CLI) runConvert(cmd *cobra.Command, path string, opts *convertOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	res, err := c.newRunner().Convert(ctx, pipeline.Options{
		Path:   path,
		Layout: override(cmd, "layout", opts.layout, c.Config.Convert.Layout),
		Indent: override(cmd, "indent", opts.indent, c.Config.Convert.Indent),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if err := c.emit(res.Output, opts.output); err != nil {
		return err
	}
	if opts.output != "" {
		prog.done(fmt.Sprintf("Converted %d variables", res.Stats.VariableCount))
		printFile(c.Stderr, opts.output)
	}
	return nil
}
