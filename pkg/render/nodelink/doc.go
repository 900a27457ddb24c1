// Package nodelink renders network structure as node-link diagrams.
//
// # Overview
//
// Each variable becomes a rounded box and each parent -> child link an
// arrow. Layout is left to Graphviz; when rows have been assigned to the
// graph, nodes of the same row can be pinned to one rank so that roots sit
// at the top and every child below its deepest parent.
//
// # Usage
//
//	g := n.Graph()
//	transform.AssignLayersAcyclic(g)
//	dot := nodelink.ToDOT(g, nodelink.Options{Ranked: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [Render] combines both steps for a [Format].
//
// # Options
//
//   - Detailed: node labels also list the row and the node metadata
//     (states and CPT shape for network graphs)
//   - Ranked: emit "rank=same" groups per row
//
// # Dependencies
//
// SVG output uses [github.com/goccy/go-graphviz], which embeds Graphviz as
// WebAssembly; no system installation is required.
package nodelink
