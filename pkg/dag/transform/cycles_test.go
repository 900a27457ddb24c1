package transform

import (
	"testing"

	"github.com/matzehuels/bifconv/pkg/dag"
)

func build(nodes []string, edges [][2]string) *dag.DAG {
	g := dag.New(nil)
	for _, id := range nodes {
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		_ = g.AddEdge(dag.Edge{From: e[0], To: e[1]})
	}
	return g
}

func TestBreakCycles_NoCycles(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	if removed := BreakCycles(g); removed != 0 {
		t.Errorf("BreakCycles() removed %d edges, want 0", removed)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
}

func TestBreakCycles_SimpleCycle(t *testing.T) {
	g := build([]string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}})

	if removed := BreakCycles(g); removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}

func TestBreakCycles_TriangleCycle(t *testing.T) {
	g := build([]string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	if removed := BreakCycles(g); removed != 1 {
		t.Errorf("BreakCycles() removed %d edges, want 1", removed)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after BreakCycles = %v", err)
	}
}
