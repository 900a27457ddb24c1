// Package cli implements the bifconv command-line interface.
//
// The root command converts a BIF file to JSON on standard output:
//
//	bifconv alarm.bif > alarm.json
//
// Further commands work on the same input:
//   - render: Draw the network structure as Graphviz DOT or SVG
//   - inspect: Summarize a network and optionally check CPT normalization
//   - browse: Page through variables and their CPTs interactively
//   - serve: Expose conversion and rendering over HTTP
//   - completion: Generate shell completion scripts
//
// Standard output carries only command results. Logs, progress and
// diagnostics go to standard error.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Configuration
//
// Defaults for flags may be set in a TOML file; see [Config].
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/buildinfo"
	bifio "github.com/matzehuels/bifconv/pkg/io"
	"github.com/matzehuels/bifconv/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "bifconv"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Stdout io.Writer
	Stderr io.Writer

	// Config is loaded before any command runs.
	Config Config

	configPath string
	verbose    bool
}

// New creates a CLI writing results to stdout and logs to stderr.
func New(stdout, stderr io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(stderr, level),
		Stdout: stdout,
		Stderr: stderr,
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Run without a subcommand, it converts its single argument to JSON.
func (c *CLI) RootCommand() *cobra.Command {
	opts := convertOpts{}

	root := &cobra.Command{
		Use:   "bifconv <file.bif>",
		Short: "bifconv converts Bayesian network definitions to JSON",
		Long: `bifconv reads a Bayesian network in the BIF interchange format and writes
an equivalent JSON document with the keys network, variables, cpts, states
and parents to standard output.

An input file named like a command (render, inspect, browse, serve,
completion or help) must be given with a directory, as in bifconv ./render.`,
		Example: `  bifconv alarm.bif
  bifconv alarm.bif --layout matrix -o alarm.json
  bifconv render alarm.bif --format svg -o alarm.svg`,
		Version:           buildinfo.Version,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeBIF,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, args[0], &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Stdout)
	root.SetErr(c.Stderr)

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bifconv/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	addConvertFlags(root, &opts)

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}

	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Output
// =============================================================================

// emit writes a command result to stdout, or to path when set. Data is
// written in one call so a failed run leaves nothing behind on stdout.
func (c *CLI) emit(data []byte, path string) error {
	if path == "" {
		return bifio.Write(c.Stdout, data)
	}
	return bifio.WriteFile(path, data)
}

// override returns the flag value when the user set the flag and the
// configured value otherwise.
func override[T any](cmd *cobra.Command, name string, flag, configured T) T {
	if cmd.Flags().Changed(name) {
		return flag
	}
	return configured
}
