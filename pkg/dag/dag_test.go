package dag

import (
	"errors"
	"slices"
	"testing"
)

func chain(ids ...string) *DAG {
	g := New(nil)
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	for i := 1; i < len(ids); i++ {
		_ = g.AddEdge(Edge{From: ids[i-1], To: ids[i]})
	}
	return g
}

func TestAddNodeErrors(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want %v", err, ErrInvalidNodeID)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want %v", err, ErrDuplicateNodeID)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Error("AddNode should initialize Meta")
	}
}

func TestAddEdgeErrors(t *testing.T) {
	g := chain("a")
	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge(x->a) = %v, want %v", err, ErrUnknownSourceNode)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge(a->x) = %v, want %v", err, ErrUnknownTargetNode)
	}
}

func TestNodesInsertionOrder(t *testing.T) {
	ids := []string{"zeta", "alpha", "mid", "beta"}
	g := chain(ids...)
	if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
		t.Errorf("Nodes() = %v, want %v", got, ids)
	}
}

func TestValidate(t *testing.T) {
	g := chain("a", "b", "c")
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() on chain = %v, want nil", err)
	}

	_ = g.AddEdge(Edge{From: "c", To: "a"})
	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("Validate() on cycle = %v, want %v", err, ErrGraphHasCycle)
	}

	g.RemoveEdge("c", "a")
	if err := g.Validate(); err != nil {
		t.Errorf("Validate() after RemoveEdge = %v, want nil", err)
	}
}

func TestSelfLoopIsCycle(t *testing.T) {
	g := chain("a")
	_ = g.AddEdge(Edge{From: "a", To: "a"})
	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("Validate() = %v, want %v", err, ErrGraphHasCycle)
	}
}

func TestSetRows(t *testing.T) {
	g := chain("a", "b", "c")
	g.SetRows(map[string]int{"b": 1, "c": 2})

	if got := g.RowIDs(); !slices.Equal(got, []int{0, 1, 2}) {
		t.Errorf("RowIDs() = %v, want [0 1 2]", got)
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"b"}) {
		t.Errorf("NodesInRow(1) = %v, want [b]", got)
	}
}

func TestClone(t *testing.T) {
	g := chain("a", "b")
	g.Meta()["name"] = "net"
	c := g.Clone()

	c.RemoveEdge("a", "b")
	_ = c.AddNode(Node{ID: "extra"})
	c.Meta()["name"] = "other"

	if g.EdgeCount() != 1 || g.NodeCount() != 2 {
		t.Errorf("original modified: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
	if g.Meta()["name"] != "net" {
		t.Error("original metadata modified")
	}
}

func TestDegrees(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "c"})
	_ = g.AddEdge(Edge{From: "b", To: "c"})

	if got := g.InDegree("c"); got != 2 {
		t.Errorf("InDegree(c) = %d, want 2", got)
	}
	if got := g.Children("a"); !slices.Equal(got, []string{"c"}) {
		t.Errorf("Children(a) = %v, want [c]", got)
	}
	if got := g.InDegree("missing"); got != 0 {
		t.Errorf("InDegree(missing) = %d, want 0", got)
	}
}
