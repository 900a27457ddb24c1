package bif

import "fmt"

// File is the syntax tree of a BIF document.
type File struct {
	Network       Header
	Variables     []Variable
	Probabilities []Probability
}

// Header is the network block.
type Header struct {
	Name       string
	Properties []string
	Pos        Pos
}

// Variable is a variable block with its discrete states.
type Variable struct {
	Name       string
	Type       string   // always "discrete" once parsed
	Size       int      // the declared state count, "[ n ]"
	States     []string // state labels in declaration order
	Properties []string
	Pos        Pos
}

// Probability is a probability block. A block holds a table, a list of
// entries, a default row, or entries plus a default.
type Probability struct {
	Variable   string
	Parents    []string
	Table      []float64
	Entries    []Entry
	Default    []float64
	Properties []string
	Pos        Pos

	tablePos   Pos
	defaultPos Pos
}

// Entry is one "(parent states) values;" line of a probability block.
type Entry struct {
	States []string
	Values []float64
	Pos    Pos
}

// Error is a syntax or semantic error at a position in the source.
type Error struct {
	Pos Pos
	Msg string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

func errorf(pos Pos, format string, args ...any) *Error {
	return &Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
