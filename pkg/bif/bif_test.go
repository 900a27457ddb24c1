package bif

import (
	"os"
	"path/filepath"
	"testing"
)

const alarmBIF = `// Burglary alarm, reduced.
network Alarm {
  property author = "unknown";
}
variable Burglary {
  type discrete [ 2 ] { True, False };
}
variable Alarm {
  type discrete [ 2 ] { True, False };
  property position = (120, 40);
}
probability ( Burglary ) {
  table 0.01, 0.99;
}
probability ( Alarm | Burglary ) {
  (True) 0.94, 0.06;
  (False) 0.01, 0.99;
}
`

// asiaBIF covers multi-parent blocks, the "default" row and whitespace-only
// separators.
const asiaBIF = `network "Asia" { }
variable asia { type discrete [ 2 ] { yes no } }
variable tub { type discrete [ 2 ] { yes, no }; }
variable smoke { type discrete [ 2 ] { yes, no }; }
variable lung { type discrete [ 2 ] { yes, no }; }
variable either { type discrete [ 2 ] { yes, no }; }
probability ( asia ) { table 0.01 0.99; }
probability ( tub | asia ) {
  (yes) 0.05, 0.95;
  (no) 0.01, 0.99;
}
probability ( smoke ) { table 0.5, 0.5; }
probability ( lung | smoke ) {
  (yes) 0.1, 0.9;
  (no) 0.01, 0.99;
}
probability ( either | lung, tub ) {
  (yes, yes) 1.0, 0.0;
  default 0.5, 0.5;
  (no, no) 0.0, 1.0;
}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
