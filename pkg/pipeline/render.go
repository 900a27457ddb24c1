package pipeline

import (
	"github.com/matzehuels/bifconv/pkg/dag"
	dagtransform "github.com/matzehuels/bifconv/pkg/dag/transform"
	"github.com/matzehuels/bifconv/pkg/network"
)

// Graph builds the layered structure graph of n. It returns the number of
// links that close a cycle; those links stay in the graph but do not affect
// the rows.
func Graph(n *network.Network) (*dag.DAG, int) {
	g := n.Graph()
	backEdges := dagtransform.AssignLayersAcyclic(g)
	return g, backEdges
}

