package bif

import (
	"slices"
	"strings"

	"github.com/matzehuels/bifconv/pkg/network"
)

// Build turns a parsed file into a network descriptor. It resolves every
// probability block against the declared variables and lays the values out
// as dense row-major tensors, child state slowest and last parent fastest.
//
// All failures are *Error values positioned at the offending block.
func Build(f *File) (*network.Network, error) {
	n := network.New(f.Network.Name)

	decl := make(map[string]Variable, len(f.Variables))
	for _, v := range f.Variables {
		if _, dup := decl[v.Name]; dup {
			return nil, errorf(v.Pos, "variable %q declared more than once", v.Name)
		}
		if err := checkStates(v); err != nil {
			return nil, err
		}
		decl[v.Name] = v
		n.Variables = append(n.Variables, v.Name)
		n.States[v.Name] = slices.Clone(v.States)
	}

	blocks := make(map[string]Probability, len(f.Probabilities))
	for _, p := range f.Probabilities {
		if _, ok := decl[p.Variable]; !ok {
			return nil, errorf(p.Pos, "probability block for undeclared variable %q", p.Variable)
		}
		if _, dup := blocks[p.Variable]; dup {
			return nil, errorf(p.Pos, "probability block for %q given more than once", p.Variable)
		}
		blocks[p.Variable] = p
	}

	for _, v := range f.Variables {
		p, ok := blocks[v.Name]
		if !ok {
			return nil, errorf(v.Pos, "variable %q has no probability block", v.Name)
		}
		if err := checkParents(p, decl); err != nil {
			return nil, err
		}
		n.Parents[v.Name] = append([]string{}, p.Parents...)
		values, err := tensor(p, n)
		if err != nil {
			return nil, err
		}
		cpt, err := network.NewCPT(shapeOf(p, n.States), values)
		if err != nil {
			return nil, errorf(p.Pos, "%v", err)
		}
		n.CPTs[v.Name] = cpt
	}
	return n, nil
}

func checkStates(v Variable) error {
	if len(v.States) == 0 {
		return errorf(v.Pos, "variable %q has no states", v.Name)
	}
	if len(v.States) != v.Size {
		return errorf(v.Pos, "variable %q declares %d states but lists %d", v.Name, v.Size, len(v.States))
	}
	seen := make(map[string]bool, len(v.States))
	for _, s := range v.States {
		if seen[s] {
			return errorf(v.Pos, "variable %q lists state %q more than once", v.Name, s)
		}
		seen[s] = true
	}
	return nil
}

func checkParents(p Probability, decl map[string]Variable) error {
	seen := make(map[string]bool, len(p.Parents))
	for _, parent := range p.Parents {
		switch {
		case parent == p.Variable:
			return errorf(p.Pos, "variable %q lists itself as a parent", p.Variable)
		case seen[parent]:
			return errorf(p.Pos, "parent %q of %q listed more than once", parent, p.Variable)
		}
		if _, ok := decl[parent]; !ok {
			return errorf(p.Pos, "undeclared parent %q of %q", parent, p.Variable)
		}
		seen[parent] = true
	}
	return nil
}

func shapeOf(p Probability, states map[string][]string) []int {
	shape := []int{len(states[p.Variable])}
	for _, parent := range p.Parents {
		shape = append(shape, len(states[parent]))
	}
	return shape
}

// tensor computes the row-major values of one probability block. The
// parents of p.Variable must already be recorded in n.
func tensor(p Probability, n *network.Network) ([]float64, error) {
	states := n.States
	shape := shapeOf(p, states)
	rows := shape[0]
	cols := 1
	for _, d := range shape[1:] {
		cols *= d
	}

	if p.Table != nil {
		if len(p.Entries) > 0 || p.Default != nil {
			return nil, errorf(p.tablePos, "probability block for %q mixes a table with entries", p.Variable)
		}
		if len(p.Table) != rows*cols {
			return nil, errorf(p.tablePos, "table for %q has %d values, want %d", p.Variable, len(p.Table), rows*cols)
		}
		return slices.Clone(p.Table), nil
	}
	if len(p.Entries) == 0 && p.Default == nil {
		return nil, errorf(p.Pos, "probability block for %q has no values", p.Variable)
	}

	values := make([]float64, rows*cols)
	covered := make([]bool, cols)
	for _, e := range p.Entries {
		col, err := column(p, e, states)
		if err != nil {
			return nil, err
		}
		if covered[col] {
			return nil, errorf(e.Pos, "entry (%s) of %q given more than once", strings.Join(e.States, ", "), p.Variable)
		}
		if len(e.Values) != rows {
			return nil, errorf(e.Pos, "entry (%s) of %q has %d values, want %d", strings.Join(e.States, ", "), p.Variable, len(e.Values), rows)
		}
		covered[col] = true
		for r, x := range e.Values {
			values[r*cols+col] = x
		}
	}

	if p.Default != nil && len(p.Default) != rows {
		return nil, errorf(p.defaultPos, "default of %q has %d values, want %d", p.Variable, len(p.Default), rows)
	}
	for col, ok := range covered {
		if ok {
			continue
		}
		if p.Default == nil {
			return nil, errorf(p.Pos, "probability block for %q has no values for (%s) and no default",
				p.Variable, strings.Join(n.ParentStates(p.Variable, col), ", "))
		}
		for r, x := range p.Default {
			values[r*cols+col] = x
		}
	}
	return values, nil
}

// column maps an entry's parent states to its column index.
func column(p Probability, e Entry, states map[string][]string) (int, error) {
	if len(e.States) != len(p.Parents) {
		return 0, errorf(e.Pos, "entry of %q names %d parent states, want %d", p.Variable, len(e.States), len(p.Parents))
	}
	col := 0
	for i, parent := range p.Parents {
		idx := slices.Index(states[parent], e.States[i])
		if idx < 0 {
			return 0, errorf(e.Pos, "unknown state %q of parent %q", e.States[i], parent)
		}
		col = col*len(states[parent]) + idx
	}
	return col, nil
}
