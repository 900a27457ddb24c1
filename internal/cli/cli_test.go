package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bifconv/pkg/errors"
)

const alarmBIF = `network Alarm {}
variable Burglary { type discrete [2] { yes, no }; }
variable Alarm {
  type discrete [2] { on, off };
  property position = (120, 40);
}
probability ( Burglary ) { table 0.01, 0.99; }
probability ( Alarm | Burglary ) { (yes) 0.94, 0.06; (no) 0.01, 0.99; }
`

const alarmJSON = `{"network":"Alarm","variables":["Burglary","Alarm"],` +
	`"cpts":{"Alarm":[[0.94,0.01],[0.06,0.99]],"Burglary":[0.01,0.99]},` +
	`"states":{"Alarm":["on","off"],"Burglary":["yes","no"]},` +
	`"parents":{"Alarm":["Burglary"],"Burglary":[]}}` + "\n"

// skewedBIF has a column that sums to 0.9.
const skewedBIF = `network skewed {}
variable a { type discrete [2] { t, f }; }
probability ( a ) { table 0.4, 0.5; }
`

const loopBIF = `network loop {}
variable a { type discrete [2] { t, f }; }
variable b { type discrete [2] { t, f }; }
probability ( a | b ) { table 0.5, 0.5, 0.5, 0.5; }
probability ( b | a ) { table 0.5, 0.5, 0.5, 0.5; }
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// execute runs the CLI with an empty config directory and returns what it
// wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	c := New(&stdout, &stderr, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestConvert(t *testing.T) {
	stdout, stderr, err := execute(t, writeFile(t, "alarm.bif", alarmBIF))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if stdout != alarmJSON {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, alarmJSON)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want nothing", stderr)
	}
}

func TestConvertFlags(t *testing.T) {
	path := writeFile(t, "alarm.bif", alarmBIF)

	stdout, _, err := execute(t, path, "--layout", "matrix")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"Burglary":[[0.01],[0.99]]`) {
		t.Errorf("matrix layout not applied: %s", stdout)
	}

	stdout, _, err = execute(t, path, "--indent", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "{\n  \"network\": \"Alarm\",\n") {
		t.Errorf("indent not applied: %s", stdout)
	}
}

func TestConvertToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "alarm.json")
	stdout, stderr, err := execute(t, writeFile(t, "alarm.bif", alarmBIF), "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != alarmJSON {
		t.Errorf("file = %s", data)
	}
	if !strings.Contains(stderr, out) || !strings.Contains(stderr, "Converted 2 variables") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	truncated := alarmBIF[:strings.Index(alarmBIF, "(no)")]

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"nonexistent", []string{filepath.Join(dir, "missing.bif")}, errors.ErrCodeFileNotFound},
		{"truncated", []string{writeFile(t, "truncated.bif", truncated)}, errors.ErrCodeParse},
		{"bad layout", []string{writeFile(t, "alarm.bif", alarmBIF), "--layout", "cube"}, errors.ErrCodeInvalidInput},
		{"bad output", []string{writeFile(t, "alarm.bif", alarmBIF), "-o", filepath.Join(dir, "no", "such", "dir.json")}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if stdout != "" {
				t.Errorf("stdout = %q, want nothing on failure", stdout)
			}
		})
	}
}

func TestConvertArgs(t *testing.T) {
	if _, _, err := execute(t); err == nil {
		t.Error("no arguments: want error")
	}
	a, b := writeFile(t, "a.bif", alarmBIF), writeFile(t, "b.bif", alarmBIF)
	if _, _, err := execute(t, a, b); err == nil {
		t.Error("two arguments: want error")
	}
}

func TestVerboseLogsToStderr(t *testing.T) {
	stdout, stderr, err := execute(t, writeFile(t, "alarm.bif", alarmBIF), "-v")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != alarmJSON {
		t.Errorf("stdout changed by -v: %s", stdout)
	}
	for _, want := range []string{"loaded network", "encoded document"} {
		if !strings.Contains(stderr, want) {
			t.Errorf("stderr missing %q:\n%s", want, stderr)
		}
	}
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "alarm.bif", alarmBIF)
	cfg := writeFile(t, "config.toml", "[convert]\nlayout = \"matrix\"\n")

	stdout, _, err := execute(t, path, "--config", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout, `"Burglary":[[0.01],[0.99]]`) {
		t.Errorf("config layout not applied: %s", stdout)
	}

	stdout, _, err = execute(t, path, "--config", cfg, "--layout", "tensor")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != alarmJSON {
		t.Errorf("flag did not override config: %s", stdout)
	}

	bad := writeFile(t, "bad.toml", "[convert]\nlayuot = \"matrix\"\n")
	if _, _, err := execute(t, path, "--config", bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown key: err = %v", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "bifconv version ") {
		t.Errorf("version output = %q", stdout)
	}
}

func TestRenderCommand(t *testing.T) {
	path := writeFile(t, "alarm.bif", alarmBIF)

	stdout, _, err := execute(t, "render", path, "--detailed")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"digraph", `"Burglary" -> "Alarm"`, "states: on, off"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("DOT missing %q:\n%s", want, stdout)
		}
	}

	out := filepath.Join(t.TempDir(), "alarm.dot")
	stdout, stderr, err := execute(t, "render", path, "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" || !strings.Contains(stderr, out) {
		t.Errorf("stdout = %q, stderr = %q", stdout, stderr)
	}
	if _, err := os.Stat(out); err != nil {
		t.Error(err)
	}

	if _, _, err := execute(t, "render", path, "--format", "png"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad format: err = %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	stdout, _, err := execute(t, "inspect", writeFile(t, "alarm.bif", alarmBIF))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Alarm", "variables", "Burglary", "yes, no", "2x2", "position = (120, 40)", "true"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("inspect output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInspectCheck(t *testing.T) {
	_, stderr, err := execute(t, "inspect", "--check", writeFile(t, "alarm.bif", alarmBIF))
	if err != nil {
		t.Fatalf("normalized network: %v", err)
	}
	if !strings.Contains(stderr, "All CPT columns sum to 1") {
		t.Errorf("stderr = %q", stderr)
	}

	stdout, _, err := execute(t, "inspect", "--check", writeFile(t, "skewed.bif", skewedBIF))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("skewed network: err = %v", err)
	}
	if !strings.Contains(stdout, "0.9") {
		t.Errorf("deviation table missing sum:\n%s", stdout)
	}

	if _, _, err := execute(t, "inspect", "--check", "--tolerance", "0.2", writeFile(t, "skewed.bif", skewedBIF)); err != nil {
		t.Errorf("within tolerance: %v", err)
	}
	if _, _, err := execute(t, "inspect", "--tolerance", "-1", writeFile(t, "alarm.bif", alarmBIF)); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative tolerance: err = %v", err)
	}
}

func TestInspectCycleWarning(t *testing.T) {
	_, stderr, err := execute(t, "inspect", writeFile(t, "loop.bif", loopBIF))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "directed cycles") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		stdout, _, err := execute(t, "completion", shell)
		if err != nil {
			t.Fatalf("%s: %v", shell, err)
		}
		if !strings.Contains(stdout, "bifconv") {
			t.Errorf("%s completion does not mention bifconv", shell)
		}
	}
	if _, _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell: want error")
	}
}

func TestCompleteInputArgument(t *testing.T) {
	for _, args := range [][]string{
		{"__complete", ""},
		{"__complete", "render", ""},
		{"__complete", "inspect", ""},
		{"__complete", "browse", ""},
	} {
		stdout, _, err := execute(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		lines := strings.Split(strings.TrimSpace(stdout), "\n")
		if !slices.Contains(lines, "bif") {
			t.Errorf("%v: completions %q do not offer the bif extension", args, lines)
		}
		if last := lines[len(lines)-1]; last != fmt.Sprintf(":%d", cobra.ShellCompDirectiveFilterFileExt) {
			t.Errorf("%v: directive = %s, want file extension filter", args, last)
		}
	}

	stdout, _, err := execute(t, "__complete", "render", "alarm.bif", "")
	if err != nil {
		t.Fatal(err)
	}
	if want := fmt.Sprintf(":%d", cobra.ShellCompDirectiveNoFileComp); !strings.Contains(stdout, want) {
		t.Errorf("second argument completions = %q, want %s", stdout, want)
	}
}

func TestConvertFileNamedLikeCommand(t *testing.T) {
	path := writeFile(t, "render", alarmBIF)
	stdout, _, err := execute(t, path)
	if err != nil {
		t.Fatalf("convert %s: %v", path, err)
	}
	if stdout != alarmJSON {
		t.Errorf("stdout =\n%s\nwant\n%s", stdout, alarmJSON)
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", errors.New(errors.ErrCodeFileNotFound, "cannot open x.bif"), "error: FILE_NOT_FOUND: cannot open x.bif"},
		{"wrapped", errors.Wrap(errors.ErrCodeParse, stderrors.New("2:5: expected '{'"), "x.bif is not a valid network definition"),
			"error: PARSE_ERROR: x.bif is not a valid network definition: 2:5: expected '{'"},
		{"plain", stderrors.New("accepts 1 arg(s), received 0"), "error: accepts 1 arg(s), received 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatError(tt.err); got != tt.want {
				t.Errorf("FormatError() = %q, want %q", got, tt.want)
			}
			var buf bytes.Buffer
			PrintError(&buf, tt.err)
			if got := buf.String(); got != tt.want+"\n" {
				t.Errorf("PrintError() = %q, want %q", got, tt.want+"\n")
			}
		})
	}
}
