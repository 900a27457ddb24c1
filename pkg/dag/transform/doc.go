// Package transform provides graph transformations used before rendering a
// network's structure.
//
// # Layer Assignment
//
// [AssignLayers] places every node one row below its deepest parent, so
// root variables sit in row 0 and each child appears under all of the
// variables it is conditioned on. The node-link renderer groups nodes of the
// same row into one rank.
//
// # Cycles
//
// A well-formed Bayesian network is acyclic, but the converter does not
// reject cyclic input. [BreakCycles] removes back edges found by depth-first
// search, and [AssignLayersAcyclic] layers a cycle-free copy of the graph and
// copies the resulting rows back without touching the original edges.
package transform
