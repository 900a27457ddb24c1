package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/bifconv/pkg/dag"
	"github.com/matzehuels/bifconv/pkg/errors"
)

// Format is an output format for [Render].
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

// Formats lists the supported format names.
var Formats = []string{string(FormatDOT), string(FormatSVG)}

// ParseFormat converts a format name into a Format. The empty string maps
// to [FormatDOT].
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatDOT, nil
	}
	if err := errors.ValidateChoice("format", s, Formats...); err != nil {
		return "", err
	}
	return Format(s), nil
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "text/vnd.graphviz; charset=utf-8"
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the row number and every metadata entry to node labels.
	// When false, only the node ID is shown.
	Detailed bool

	// Ranked pins nodes that share a row to the same rank. Set it once rows
	// have been assigned, e.g. with transform.AssignLayersAcyclic.
	Ranked bool
}

// ToDOT converts a graph to Graphviz DOT source. Nodes and edges keep the
// graph's insertion order, so equal graphs produce identical output.
func ToDOT(g *dag.DAG, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	if name, ok := g.Meta()["name"].(string); ok && name != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", name)
		buf.WriteString("  labelloc=t;\n")
	}
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(*n, opts.Detailed))
	}

	if opts.Ranked && g.RowCount() > 1 {
		buf.WriteString("\n")
		for _, row := range g.RowIDs() {
			ids := dag.NodeIDs(g.NodesInRow(row))
			if len(ids) < 2 {
				continue
			}
			quoted := make([]string, len(ids))
			for i, id := range ids {
				quoted[i] = strconv.Quote(id)
			}
			fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		}
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n dag.Node, detailed bool) string {
	if !detailed {
		return n.ID
	}

	parts := []string{fmt.Sprintf("row: %d", n.Row)}
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fmtValue(n.Meta[k])))
	}

	return n.ID + "\n" + strings.Join(parts, "\n")
}

func fmtValue(v any) string {
	switch x := v.(type) {
	case []string:
		return strings.Join(x, ", ")
	case []int:
		dims := make([]string, len(x))
		for i, d := range x {
			dims[i] = strconv.Itoa(d)
		}
		return strings.Join(dims, "x")
	default:
		return fmt.Sprint(v)
	}
}

// Render produces the graph in the requested format.
func Render(ctx context.Context, g *dag.DAG, format Format, opts Options) ([]byte, error) {
	dot := ToDOT(g, opts)
	if format == FormatSVG {
		return RenderSVG(ctx, dot)
	}
	return []byte(dot), nil
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render SVG")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the image scales cleanly.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
