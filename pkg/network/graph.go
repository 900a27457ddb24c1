package network

import "github.com/matzehuels/bifconv/pkg/dag"

// Metadata keys set on graph nodes by [Network.Graph].
const (
	MetaStates = "states" // []string
	MetaShape  = "shape"  // []int, CPT shape
)

// Graph returns the network structure as a directed graph: one node per
// variable in declaration order and one edge per parent -> child link.
// The network name is stored under the graph metadata key "name".
func (n *Network) Graph() *dag.DAG {
	g := dag.New(dag.Metadata{"name": n.Name})
	for _, v := range n.Variables {
		meta := dag.Metadata{MetaStates: n.States[v]}
		if c, ok := n.CPTs[v]; ok {
			meta[MetaShape] = c.Shape
		}
		_ = g.AddNode(dag.Node{ID: v, Meta: meta})
	}
	for _, v := range n.Variables {
		for _, p := range n.Parents[v] {
			_ = g.AddEdge(dag.Edge{From: p, To: v})
		}
	}
	return g
}
