// Package pipeline provides the load → remap → emit pipeline for bifconv.
//
// This package implements the conversion that the CLI and the HTTP API both
// run. By centralizing it, every entry point produces byte-identical output
// for the same input and options.
//
// # Architecture
//
// The conversion consists of three stages:
//
//  1. Load: Parse a BIF document into a network descriptor
//  2. Remap: Turn CPT tensors into nested sequences and assemble the document
//  3. Emit: Encode the document as JSON
//
// A second pipeline renders the network structure instead of converting it:
// load, build the graph, assign rows, then emit DOT or SVG.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Convert(ctx, pipeline.Options{Path: "alarm.bif"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
//
// Run individual stages:
//
//	n, err := runner.Load(ctx, opts)
//	svg, err := runner.Render(ctx, pipeline.Options{Path: "alarm.bif", Format: "svg"})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bifconv/pkg/errors"
	"github.com/matzehuels/bifconv/pkg/network"
	"github.com/matzehuels/bifconv/pkg/render/nodelink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultLayout is the default CPT layout.
const DefaultLayout = network.DefaultLayout

// DefaultFormat is the default graph output format.
const DefaultFormat = nodelink.FormatDOT

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// Exactly one of Path and Source must be set.
type Options struct {
	// Input options
	Path   string `json:"path,omitempty"`
	Source []byte `json:"-"`

	// Convert options
	Layout string `json:"layout,omitempty"`
	Indent string `json:"indent,omitempty"`

	// Render options
	Format   string `json:"format,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"` // overrides Runner.Logger for one run

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the loaded descriptor.
	Network *network.Network

	// Document is the assembled five-key mapping (Convert only).
	Document network.Document

	// Output is the encoded JSON, DOT or SVG.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VariableCount int
	EdgeCount     int
	CellCount     int
	OutputBytes   int
	LoadTime      time.Duration
	RemapTime     time.Duration
	EmitTime      time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateLayout checks that a layout name is valid.
func ValidateLayout(layout string) error {
	_, err := network.ParseLayout(layout)
	return err
}

// ValidateFormat checks that a graph format name is valid.
func ValidateFormat(format string) error {
	_, err := nodelink.ParseFormat(format)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	switch {
	case o.Path == "" && o.Source == nil:
		return errors.New(errors.ErrCodeInvalidInput, "path or source is required")
	case o.Path != "" && o.Source != nil:
		return errors.New(errors.ErrCodeInvalidInput, "path and source are mutually exclusive")
	case o.Path != "":
		if err := errors.ValidatePath(o.Path); err != nil {
			return err
		}
	}

	if o.Layout == "" {
		o.Layout = string(DefaultLayout)
	}
	if err := ValidateLayout(o.Layout); err != nil {
		return err
	}
	if err := errors.ValidateIndent(o.Indent); err != nil {
		return err
	}
	if o.Format == "" {
		o.Format = string(DefaultFormat)
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// InputName names the input in logs and messages.
func (o *Options) InputName() string {
	if o.Path != "" {
		return o.Path
	}
	return "input"
}
