package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/internal/api"
	"github.com/matzehuels/bifconv/pkg/observability"
)

type serveOpts struct {
	addr           string
	maxBodyBytes   int64
	allowedOrigins []string
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve conversion and rendering over HTTP",
		Long: `Serve starts an HTTP server with the endpoints

  POST /v1/convert?layout=tensor|matrix   BIF body, JSON document response
  POST /v1/render?format=dot|svg          BIF body, DOT or SVG response
  GET  /healthz

It runs until interrupted and then drains in-flight requests.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", api.DefaultMaxBodyBytes, "largest accepted request body")
	cmd.Flags().StringSliceVar(&opts.allowedOrigins, "allow-origin", nil, "enable CORS for these origins (repeatable)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg := api.Config{
		Addr:           override(cmd, "addr", opts.addr, c.Config.Serve.Addr),
		MaxBodyBytes:   override(cmd, "max-body-bytes", opts.maxBodyBytes, c.Config.Serve.MaxBodyBytes),
		AllowedOrigins: override(cmd, "allow-origin", opts.allowedOrigins, c.Config.Serve.AllowedOrigins),
	}

	observability.SetHTTPHooks(api.AccessLog{Logger: logger})
	defer observability.Reset()

	return api.New(c.newRunner(), logger, cfg).ListenAndServe(ctx)
}
