// Package network holds the in-memory descriptor of a discrete Bayesian
// network and the remapping of its conditional probability tables into
// plain nested sequences.
//
// # Descriptor
//
// A [Network] is built once per conversion (usually by [bif.Load]) and is
// not mutated afterwards. It carries five fields:
//
//   - Name: the network identifier, possibly empty
//   - Variables: variable names in declaration order
//   - States: ordered state labels per variable
//   - Parents: ordered parent names per variable (empty for roots)
//   - CPTs: one dense [CPT] per variable
//
// # CPT Layout
//
// A [CPT] is stored row-major with Shape [card(v), card(p1), card(p2), ...].
// The child state is the slowest index and the last parent the fastest, so
// the flat value order is the same whether the table is viewed as a tensor
// or as a matrix with one column per parent combination.
//
// # Remapping
//
// [Remap] turns CPTs into nested []any / []float64 values that any generic
// encoder can serialize. [LayoutTensor] nests one level per dimension;
// [LayoutMatrix] always produces two levels (child state × parent
// combination). [Assemble] combines the remapped tables with the rest of
// the descriptor into a [Document] with the fixed keys network, variables,
// cpts, states and parents. [FromDocument] reverses the process.
//
// [bif.Load]: github.com/matzehuels/bifconv/pkg/bif.Load
package network
