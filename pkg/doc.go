// Package pkg provides the libraries behind bifconv, a converter from
// Bayesian network definitions in the BIF interchange format to JSON.
//
// # Overview
//
// The conversion runs in three stages, each in its own package:
//
//  1. [bif] - Load: lex, parse and build a network descriptor from BIF text
//  2. [network] - Remap: turn CPT tensors into nested sequences and assemble
//     the document with the keys network, variables, cpts, states, parents
//  3. [io] - Emit: encode the document as JSON in a single write
//
// [pipeline] chains the stages and is the only entry point the CLI and the
// HTTP server use.
//
// # Data Flow
//
//	alarm.bif
//	    ↓
//	[bif] Load → *network.Network
//	    ↓
//	[network] Assemble → network.Document
//	    ↓
//	[io] Marshal → {"network":"Alarm",...}
//
// # Quick Start
//
//	n, err := bif.Load("alarm.bif")
//	if err != nil {
//	    return err
//	}
//	doc := network.Assemble(n, network.LayoutTensor)
//	return io.WriteJSON(os.Stdout, doc, io.Options{})
//
// # Supporting Packages
//
// [dag] and [dag/transform] hold the network structure as a layered graph,
// which [render/nodelink] draws as Graphviz DOT or SVG. [errors] defines the
// error codes shared by every stage (FILE_NOT_FOUND, PARSE_ERROR,
// SERIALIZATION_ERROR and INVALID_INPUT). [observability] lets callers hook
// into stage and request events. [buildinfo] carries the version set at
// link time.
//
// [bif]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/bif
// [network]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/network
// [io]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/pipeline
// [dag]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/dag/transform
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/render/nodelink
// [errors]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/bifconv/pkg/buildinfo
package pkg
