package network

import (
	"fmt"
	"slices"

	"github.com/matzehuels/bifconv/pkg/errors"
)

// Network is the descriptor of a discrete Bayesian network.
//
// Every name in Parents and every key of CPTs appears in Variables, and the
// shape of CPTs[v] matches the cardinalities in States. Constructors in this
// module guarantee these invariants; they are not re-checked on output.
type Network struct {
	Name      string
	Variables []string
	States    map[string][]string
	Parents   map[string][]string
	CPTs      map[string]*CPT
}

// New returns an empty network with initialized maps.
func New(name string) *Network {
	return &Network{
		Name:      name,
		Variables: []string{},
		States:    make(map[string][]string),
		Parents:   make(map[string][]string),
		CPTs:      make(map[string]*CPT),
	}
}

// Cardinality returns the number of states of v, or 0 if v is unknown.
func (n *Network) Cardinality(v string) int { return len(n.States[v]) }

// HasVariable reports whether v is declared.
func (n *Network) HasVariable(v string) bool { return slices.Contains(n.Variables, v) }

// EdgeCount returns the number of parent -> child links.
func (n *Network) EdgeCount() int {
	count := 0
	for _, ps := range n.Parents {
		count += len(ps)
	}
	return count
}

// CellCount returns the total number of probability values over all CPTs.
func (n *Network) CellCount() int {
	count := 0
	for _, c := range n.CPTs {
		count += c.Len()
	}
	return count
}

// ShapeOf returns the CPT shape implied by States and Parents for v:
// [card(v), card(p1), ...].
func (n *Network) ShapeOf(v string) []int {
	shape := make([]int, 0, 1+len(n.Parents[v]))
	shape = append(shape, n.Cardinality(v))
	for _, p := range n.Parents[v] {
		shape = append(shape, n.Cardinality(p))
	}
	return shape
}

// CPT is a dense conditional probability table stored in row-major order.
//
// Shape[0] is the cardinality of the variable itself and Shape[i] the
// cardinality of its i-th parent. Values has exactly product(Shape) entries.
type CPT struct {
	Shape  []int
	Values []float64
}

// NewCPT creates a table after checking that len(values) matches shape.
// The CPT takes ownership of both slices.
func NewCPT(shape []int, values []float64) (*CPT, error) {
	if len(shape) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cpt shape must have at least one dimension")
	}
	for i, d := range shape {
		if d <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cpt dimension %d has size %d", i, d)
		}
	}
	if want := product(shape); len(values) != want {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cpt shape %v needs %d values, got %d", shape, want, len(values))
	}
	return &CPT{Shape: shape, Values: values}, nil
}

// Len returns the number of values in the table.
func (c *CPT) Len() int { return len(c.Values) }

// Rows returns the cardinality of the variable the table belongs to.
func (c *CPT) Rows() int { return c.Shape[0] }

// Columns returns the number of parent state combinations (1 for roots).
func (c *CPT) Columns() int { return product(c.Shape[1:]) }

// At returns the value at the given multi-index. It panics if the number of
// indices does not match the table's dimensionality or an index is out of
// range.
func (c *CPT) At(idx ...int) float64 {
	if len(idx) != len(c.Shape) {
		panic(fmt.Sprintf("network: CPT.At got %d indices for %d dimensions", len(idx), len(c.Shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= c.Shape[i] {
			panic(fmt.Sprintf("network: CPT.At index %d out of range [0,%d)", x, c.Shape[i]))
		}
		off = off*c.Shape[i] + x
	}
	return c.Values[off]
}

// Column returns the distribution over the variable's states for the j-th
// parent combination.
func (c *CPT) Column(j int) []float64 {
	cols := c.Columns()
	col := make([]float64, c.Rows())
	for i := range col {
		col[i] = c.Values[i*cols+j]
	}
	return col
}

func product(dims []int) int {
	p := 1
	for _, d := range dims {
		p *= d
	}
	return p
}
