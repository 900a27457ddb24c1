package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/bifconv/pkg/dag"
)

func diamond() *dag.DAG {
	g := dag.New(dag.Metadata{"name": "diamond"})
	for _, id := range []string{"a", "b", "c", "d"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "a", To: "b"})
	_ = g.AddEdge(dag.Edge{From: "a", To: "c"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "d"})
	_ = g.AddEdge(dag.Edge{From: "c", To: "d"})
	g.SetRows(map[string]int{"a": 0, "b": 1, "c": 1, "d": 2})
	return g
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(diamond(), Options{})

	for _, want := range []string{"digraph G", `label="diamond"`, `"a" [label="a"]`, `"a" -> "b"`, `"c" -> "d"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Contains(dot, "rank=same") {
		t.Error("ToDOT() emitted rank groups without Ranked")
	}
}

func TestToDOT_Ranked(t *testing.T) {
	dot := ToDOT(diamond(), Options{Ranked: true})

	if !strings.Contains(dot, `{ rank=same; "b"; "c"; }`) {
		t.Errorf("ToDOT() missing rank group for row 1:\n%s", dot)
	}
	if strings.Count(dot, "rank=same") != 1 {
		t.Errorf("expected one rank group, got %d", strings.Count(dot, "rank=same"))
	}
}

func TestToDOT_Detailed(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{
		ID:  "Alarm",
		Row: 1,
		Meta: dag.Metadata{
			"states": []string{"True", "False"},
			"shape":  []int{2, 2},
		},
	})

	dot := ToDOT(g, Options{Detailed: true})

	for _, want := range []string{`row: 1`, `shape: 2x2`, `states: True, False`} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() detailed output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "label=\"\"") {
		t.Error("graph without name should not get a label")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	if ToDOT(diamond(), Options{Ranked: true}) != ToDOT(diamond(), Options{Ranked: true}) {
		t.Error("ToDOT() output differs between identical graphs")
	}
}

func TestToDOT_QuotesIDs(t *testing.T) {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: `say "hi"`})
	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"say \"hi\""`) {
		t.Errorf("ID not escaped:\n%s", dot)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatDOT, false},
		{"dot", FormatDOT, false},
		{"svg", FormatSVG, false},
		{"png", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderDOT(t *testing.T) {
	out, err := Render(context.Background(), diamond(), FormatDOT, Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.HasPrefix(string(out), "digraph G {") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 116.00" width="62" height="116"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() =\n%s\nwant\n%s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox should be unchanged")
	}
}
