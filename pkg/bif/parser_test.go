package bif

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestParseAlarm(t *testing.T) {
	f, err := Parse(strings.NewReader(alarmBIF))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if f.Network.Name != "Alarm" {
		t.Errorf("network name = %q, want Alarm", f.Network.Name)
	}
	if want := []string{`author = "unknown"`}; !slices.Equal(f.Network.Properties, want) {
		t.Errorf("network properties = %q, want %q", f.Network.Properties, want)
	}
	if len(f.Variables) != 2 {
		t.Fatalf("got %d variables, want 2", len(f.Variables))
	}

	alarm := f.Variables[1]
	if alarm.Name != "Alarm" || alarm.Size != 2 || alarm.Type != "discrete" {
		t.Errorf("variable = %+v", alarm)
	}
	if !slices.Equal(alarm.States, []string{"True", "False"}) {
		t.Errorf("states = %v", alarm.States)
	}
	if want := []string{"position = (120, 40)"}; !slices.Equal(alarm.Properties, want) {
		t.Errorf("variable properties = %q, want %q", alarm.Properties, want)
	}

	if len(f.Probabilities) != 2 {
		t.Fatalf("got %d probability blocks, want 2", len(f.Probabilities))
	}
	root := f.Probabilities[0]
	if root.Variable != "Burglary" || len(root.Parents) != 0 || !slices.Equal(root.Table, []float64{0.01, 0.99}) {
		t.Errorf("root block = %+v", root)
	}
	cond := f.Probabilities[1]
	if !slices.Equal(cond.Parents, []string{"Burglary"}) {
		t.Errorf("parents = %v", cond.Parents)
	}
	if len(cond.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(cond.Entries))
	}
	if e := cond.Entries[1]; !slices.Equal(e.States, []string{"False"}) || !slices.Equal(e.Values, []float64{0.01, 0.99}) {
		t.Errorf("entry = %+v", e)
	}
	if cond.Pos != (Pos{Line: 15, Col: 1}) {
		t.Errorf("block pos = %v, want 15:1", cond.Pos)
	}
}

func TestParseNetworkName(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"network Asia { }", "Asia"},
		{`network "Child Network" { }`, "Child Network"},
		{"network { }", ""},
		{"network unknown {}", "unknown"},
	}
	for _, tt := range tests {
		f, err := ParseBytes([]byte(tt.src))
		if err != nil {
			t.Errorf("ParseBytes(%q): %v", tt.src, err)
			continue
		}
		if f.Network.Name != tt.want {
			t.Errorf("ParseBytes(%q) name = %q, want %q", tt.src, f.Network.Name, tt.want)
		}
	}
}

func TestParseLenientSeparators(t *testing.T) {
	f, err := ParseBytes([]byte(asiaBIF))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if got := f.Variables[0].States; !slices.Equal(got, []string{"yes", "no"}) {
		t.Errorf("whitespace separated states = %v", got)
	}
	if got := f.Probabilities[0].Table; !slices.Equal(got, []float64{0.01, 0.99}) {
		t.Errorf("whitespace separated table = %v", got)
	}
	either := f.Probabilities[4]
	if !slices.Equal(either.Parents, []string{"lung", "tub"}) {
		t.Errorf("parents = %v", either.Parents)
	}
	if !slices.Equal(either.Default, []float64{0.5, 0.5}) {
		t.Errorf("default = %v", either.Default)
	}
	if len(either.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(either.Entries))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  Pos
		msg  string
	}{
		{"empty", "", Pos{1, 1}, "expected network declaration"},
		{"variable first", "variable x { }", Pos{1, 1}, "expected network declaration"},
		{"unknown block", "network n { }\nnode x { }", Pos{2, 1}, "variable or probability block"},
		{"truncated", "network n { }\nvariable x { type discrete [ 2 ] { a, b", Pos{2, 40}, "state name or '}'"},
		{"missing type", "network n { }\nvariable x { }", Pos{2, 14}, "has no type declaration"},
		{"continuous", "network n { }\nvariable x { type continuous; }", Pos{2, 19}, "only discrete"},
		{"bad count", "network n { }\nvariable x { type discrete [ two ] { a }; }", Pos{2, 30}, "expected state count"},
		{"bad number", "network n { }\nprobability ( x ) { table 0.5, half; }", Pos{2, 32}, "expected number"},
		{"nan in table", "network n { }\nprobability ( x ) { table NaN, 1; }", Pos{2, 27}, "expected finite number"},
		{"inf in table", "network n { }\nprobability ( x ) { table 0.5, Inf; }", Pos{2, 32}, "expected finite number"},
		{"nan in default", "network n { }\nprobability ( x | y ) { default nan, 0.5; }", Pos{2, 33}, "expected finite number"},
		{"empty table", "network n { }\nprobability ( x ) { table ; }", Pos{2, 27}, "expected number"},
		{"two tables", "network n { }\nprobability ( x ) { table 1; table 1; }", Pos{2, 30}, "more than one table"},
		{"junk in block", "network n { }\nprobability ( x ) { values 1; }", Pos{2, 21}, "expected table"},
		{"unterminated block", "network n { }\nprobability ( x ) { table 1;", Pos{2, 29}, "found end of input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes([]byte(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error type = %T, want *Error", err)
			}
			if e.Pos != tt.pos {
				t.Errorf("pos = %v, want %v (%v)", e.Pos, tt.pos, err)
			}
			if !strings.Contains(e.Msg, tt.msg) {
				t.Errorf("message = %q, want it to contain %q", e.Msg, tt.msg)
			}
		})
	}
}
