package network

import (
	"math"
	"slices"
)

// DefaultTolerance is the default allowed deviation of a column sum from 1.
const DefaultTolerance = 1e-6

// Deviation describes a CPT column whose probabilities do not sum to 1.
type Deviation struct {
	Variable string
	Column   int      // parent combination index
	Parents  []string // parent state labels of the column, in parent order
	Sum      float64
}

// CheckNormalization returns every CPT column whose sum differs from 1 by
// more than tol. Variables are visited in declaration order. Conversion
// never calls this; it backs the opt-in inspect check.
func (n *Network) CheckNormalization(tol float64) []Deviation {
	var out []Deviation
	for _, v := range n.Variables {
		c, ok := n.CPTs[v]
		if !ok {
			continue
		}
		for j := 0; j < c.Columns(); j++ {
			sum := 0.0
			for _, p := range c.Column(j) {
				sum += p
			}
			if math.IsNaN(sum) || math.Abs(sum-1) > tol {
				out = append(out, Deviation{
					Variable: v,
					Column:   j,
					Parents:  n.ParentStates(v, j),
					Sum:      sum,
				})
			}
		}
	}
	return out
}

// ParentStates returns the parent state labels of column j of v's CPT.
// The last parent varies fastest.
func (n *Network) ParentStates(v string, j int) []string {
	parents := n.Parents[v]
	labels := make([]string, len(parents))
	for i := len(parents) - 1; i >= 0; i-- {
		states := n.States[parents[i]]
		labels[i] = states[j%len(states)]
		j /= len(states)
	}
	return labels
}

// Combinations returns the parent state labels of every column of v's CPT,
// in column order.
func (n *Network) Combinations(v string) [][]string {
	cols := product(n.ShapeOf(v)[1:])
	out := make([][]string, cols)
	for j := range out {
		out[j] = n.ParentStates(v, j)
	}
	return out
}

// Roots returns variables without parents, in declaration order.
func (n *Network) Roots() []string {
	return slices.DeleteFunc(slices.Clone(n.Variables), func(v string) bool {
		return len(n.Parents[v]) > 0
	})
}

// Leaves returns variables that are nobody's parent, in declaration order.
func (n *Network) Leaves() []string {
	isParent := make(map[string]bool)
	for _, ps := range n.Parents {
		for _, p := range ps {
			isParent[p] = true
		}
	}
	return slices.DeleteFunc(slices.Clone(n.Variables), func(v string) bool {
		return isParent[v]
	})
}
