// Package dag provides a small directed graph used to describe the
// structure of a Bayesian network: one node per variable and one edge from
// each parent to its child.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "Burglary"})
//	g.AddNode(dag.Node{ID: "Alarm"})
//	g.AddEdge(dag.Edge{From: "Burglary", To: "Alarm"})
//
// Nodes are returned in insertion order, so a graph built from a network's
// variable list renders deterministically. Query the structure with
// [DAG.Children], [DAG.Parents], [DAG.Sources] and [DAG.Sinks]; use
// [DAG.Validate] to detect directed cycles.
//
// # Rows
//
// Each node carries a Row. The [transform] subpackage assigns rows by
// longest path from the roots, which the renderer uses to place variables of
// equal depth side by side.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read or modify the same graph.
//
// [transform]: github.com/matzehuels/bifconv/pkg/dag/transform
package dag
