package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	bifio "github.com/matzehuels/bifconv/pkg/io"
	"github.com/matzehuels/bifconv/pkg/network"
	"github.com/matzehuels/bifconv/pkg/observability"
	"github.com/matzehuels/bifconv/pkg/render/nodelink"
)

// Runner executes pipelines with a shared logger.
// Both CLI and API use this to avoid duplicating stage logic.
//
// The Runner is stateless except for the logger - it doesn't store pipeline
// results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert runs the complete load → remap → emit pipeline.
//
// The output is only produced once every stage has succeeded, so a failed
// run never yields partial JSON.
func (r *Runner) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	n, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Network = n
	result.Stats.LoadTime = time.Since(loadStart)
	r.fillStats(&result.Stats, n)

	// Stage 2: Remap
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	remapStart := time.Now()
	layout, err := network.ParseLayout(opts.Layout)
	if err != nil {
		return nil, err
	}
	result.Document = network.Assemble(n, layout)
	result.Stats.RemapTime = time.Since(remapStart)

	logger.Debug("remapped tables",
		"layout", layout,
		"cells", result.Stats.CellCount,
		"duration", result.Stats.RemapTime)

	// Stage 3: Emit
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, "json")
	emitStart := time.Now()
	out, err := bifio.Marshal(result.Document, bifio.Options{Indent: opts.Indent})
	hooks.OnEmitComplete(ctx, "json", len(out), time.Since(emitStart), err)
	if err != nil {
		return nil, err
	}
	result.Output = out
	result.Stats.EmitTime = time.Since(emitStart)
	result.Stats.OutputBytes = len(out)

	logger.Debug("encoded document",
		"bytes", len(out),
		"duration", result.Stats.EmitTime)

	return result, nil
}

// Load runs the load stage only.
func (r *Runner) Load(ctx context.Context, opts Options) (*network.Network, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.InputName())
	start := time.Now()
	n, err := Load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.InputName(), 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, opts.InputName(), len(n.Variables), time.Since(start), nil)
	r.logger(opts).Debug("loaded network",
		"input", opts.InputName(),
		"name", n.Name,
		"variables", len(n.Variables),
		"edges", n.EdgeCount(),
		"duration", time.Since(start))
	return n, nil
}

// Render runs load → graph → render and returns DOT or SVG in Output.
func (r *Runner) Render(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	n, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{Network: n}
	r.fillStats(&result.Stats, n)

	g, backEdges := Graph(n)
	if err := g.Validate(); err != nil {
		logger.Warn("network has cycles, layering ignores some links",
			"name", n.Name,
			"err", err,
			"ignored", backEdges)
	}

	format, err := nodelink.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, string(format))
	start := time.Now()
	out, err := nodelink.Render(ctx, g, format, nodelink.Options{Detailed: opts.Detailed, Ranked: true})
	hooks.OnEmitComplete(ctx, string(format), len(out), time.Since(start), err)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	result.Output = out
	result.Stats.EmitTime = time.Since(start)
	result.Stats.OutputBytes = len(out)

	logger.Debug("rendered graph",
		"format", format,
		"rows", g.RowCount(),
		"bytes", len(out),
		"duration", result.Stats.EmitTime)

	return result, nil
}

func (r *Runner) fillStats(s *Stats, n *network.Network) {
	s.VariableCount = len(n.Variables)
	s.EdgeCount = n.EdgeCount()
	s.CellCount = n.CellCount()
}

// logger prefers the per-run logger over the runner's.
func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}
