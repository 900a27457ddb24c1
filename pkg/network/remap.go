package network

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/bifconv/pkg/errors"
)

// Layout selects how a CPT is nested when remapped.
type Layout string

const (
	// LayoutTensor nests one level per dimension: [own][parent1][parent2]...
	// A root variable becomes a flat list of probabilities.
	LayoutTensor Layout = "tensor"
	// LayoutMatrix always nests two levels: [own][parent combination].
	// A root variable becomes a column vector [[p1], [p2], ...].
	LayoutMatrix Layout = "matrix"
)

// DefaultLayout is used when no layout is requested.
const DefaultLayout = LayoutTensor

// Layouts lists the supported layout names.
var Layouts = []string{string(LayoutTensor), string(LayoutMatrix)}

// ParseLayout converts a layout name into a Layout. The empty string maps to
// [DefaultLayout].
func ParseLayout(s string) (Layout, error) {
	if s == "" {
		return DefaultLayout, nil
	}
	if err := errors.ValidateChoice("layout", s, Layouts...); err != nil {
		return "", err
	}
	return Layout(s), nil
}

// Nested returns the table as nested plain sequences in the given layout.
// Leaves are []float64; inner levels are []any. Element order is the
// table's row-major order.
func (c *CPT) Nested(layout Layout) any {
	if layout == LayoutMatrix {
		cols := c.Columns()
		rows := make([][]float64, c.Rows())
		for i := range rows {
			rows[i] = slices.Clone(c.Values[i*cols : (i+1)*cols])
		}
		return rows
	}
	return nest(c.Shape, c.Values)
}

func nest(shape []int, values []float64) any {
	if len(shape) == 1 {
		return slices.Clone(values)
	}
	stride := product(shape[1:])
	out := make([]any, shape[0])
	for i := range out {
		out[i] = nest(shape[1:], values[i*stride:(i+1)*stride])
	}
	return out
}

// Remap converts every CPT into nested plain sequences. The input is not
// modified.
func Remap(cpts map[string]*CPT, layout Layout) map[string]any {
	out := make(map[string]any, len(cpts))
	for v, c := range cpts {
		out[v] = c.Nested(layout)
	}
	return out
}

// Document is the serializable form of a network. Field order fixes the
// order of the top-level JSON keys.
type Document struct {
	Network   string              `json:"network"`
	Variables []string            `json:"variables"`
	CPTs      map[string]any      `json:"cpts"`
	States    map[string][]string `json:"states"`
	Parents   map[string][]string `json:"parents"`
}

// Assemble builds the five-key document for n with CPTs remapped in layout.
// Slices and maps are never nil so that they encode as [] and {}.
func Assemble(n *Network, layout Layout) Document {
	doc := Document{
		Network:   n.Name,
		Variables: slices.Clone(n.Variables),
		CPTs:      Remap(n.CPTs, layout),
		States:    make(map[string][]string, len(n.States)),
		Parents:   make(map[string][]string, len(n.Variables)),
	}
	if doc.Variables == nil {
		doc.Variables = []string{}
	}
	for v, states := range n.States {
		doc.States[v] = slices.Clone(states)
	}
	for _, v := range n.Variables {
		ps := slices.Clone(n.Parents[v])
		if ps == nil {
			ps = []string{}
		}
		doc.Parents[v] = ps
	}
	return doc
}

// FromDocument rebuilds a network from a decoded document. CPTs may be in
// either layout; the flat value order is the same for both. Errors carry
// the PARSE_ERROR code.
func FromDocument(doc Document) (*Network, error) {
	n := New(doc.Network)
	for _, v := range doc.Variables {
		if n.HasVariable(v) {
			return nil, errors.New(errors.ErrCodeParse, "duplicate variable %q", v)
		}
		if len(doc.States[v]) == 0 {
			return nil, errors.New(errors.ErrCodeParse, "variable %q has no states", v)
		}
		n.Variables = append(n.Variables, v)
		n.States[v] = slices.Clone(doc.States[v])
		n.Parents[v] = []string{}
	}
	for v := range doc.States {
		if !n.HasVariable(v) {
			return nil, errors.New(errors.ErrCodeParse, "states given for undeclared variable %q", v)
		}
	}
	for v, ps := range doc.Parents {
		if !n.HasVariable(v) {
			return nil, errors.New(errors.ErrCodeParse, "parents given for undeclared variable %q", v)
		}
		for _, p := range ps {
			if !n.HasVariable(p) {
				return nil, errors.New(errors.ErrCodeParse, "variable %q has undeclared parent %q", v, p)
			}
		}
		n.Parents[v] = slices.Clone(ps)
	}
	for v, raw := range doc.CPTs {
		if !n.HasVariable(v) {
			return nil, errors.New(errors.ErrCodeParse, "cpt given for undeclared variable %q", v)
		}
		values, shape, err := Flatten(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "cpt %q", v)
		}
		want := n.ShapeOf(v)
		matrix := []int{want[0], product(want[1:])}
		if !slices.Equal(shape, want) && !slices.Equal(shape, matrix) {
			return nil, errors.New(errors.ErrCodeParse, "cpt %q has shape %v, want %v or %v", v, shape, want, matrix)
		}
		c, err := NewCPT(want, values)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParse, err, "cpt %q", v)
		}
		n.CPTs[v] = c
	}
	return n, nil
}

// Flatten walks a nested sequence of numbers and returns its values in
// row-major order together with its shape. Ragged or non-numeric input is
// an error.
func Flatten(v any) ([]float64, []int, error) {
	switch x := v.(type) {
	case float64:
		return []float64{x}, nil, nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", x.String())
		}
		return []float64{f}, nil, nil
	case []float64:
		return slices.Clone(x), []int{len(x)}, nil
	case [][]float64:
		items := make([]any, len(x))
		for i := range x {
			items[i] = x[i]
		}
		return flattenList(items)
	case []any:
		return flattenList(x)
	default:
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "expected number or list, got %T", v)
	}
}

func flattenList(items []any) ([]float64, []int, error) {
	if len(items) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "empty list")
	}
	var (
		values []float64
		inner  []int
	)
	for i, item := range items {
		vs, shape, err := Flatten(item)
		if err != nil {
			return nil, nil, err
		}
		if i == 0 {
			inner = shape
		} else if !slices.Equal(shape, inner) {
			return nil, nil, errors.New(errors.ErrCodeInvalidInput, "ragged list: element %d has shape %v, want %v", i, shape, inner)
		}
		values = append(values, vs...)
	}
	return values, append([]int{len(items)}, inner...), nil
}
