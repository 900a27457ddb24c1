package transform

import "github.com/matzehuels/bifconv/pkg/dag"

// AssignLayers assigns nodes to rows by longest path from the sources.
//
// It performs a topological traversal (Kahn's algorithm): sources start at
// row 0 and every child is placed at one plus the maximum row of its
// parents. Existing row assignments are overwritten.
//
// AssignLayers assumes the graph is acyclic. Nodes on a cycle never reach
// zero in-degree and stay at row 0; use [AssignLayersAcyclic] for graphs
// that may contain cycles.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) {
	g.SetRows(depths(g))
}

// AssignLayersAcyclic layers a copy of g with its cycles broken and applies
// the resulting rows to g. The edges of g are left untouched. It returns the
// number of back edges that were ignored for layering.
func AssignLayersAcyclic(g *dag.DAG) int {
	work := g.Clone()
	removed := BreakCycles(work)
	g.SetRows(depths(work))
	return removed
}

func depths(g *dag.DAG) map[string]int {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		rows[n.ID] = 0
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	return rows
}
