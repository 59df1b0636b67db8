package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/umldoc/pkg/errors"
)

const counterModel = `{"packages": [{"name": "com.example", "types": [{
  "name": "Counter", "kind": "class", "visibility": "public",
  "fields": [
    {"name": "count", "visibility": "public", "type": {"kind": "int"}},
    {"name": "secret", "visibility": "private", "type": {"kind": "declared", "name": "String", "qualified_name": "java.lang.String"}}
  ]
}]}]}`

// workspace writes the counter model and a config file that renders into
// <dir>/out without conversion or cache. extra is appended to the config.
func workspace(t *testing.T, extra string) (dir, modelPath, configPath string) {
	t.Helper()
	dir = t.TempDir()
	modelPath = filepath.Join(dir, "model.json")
	if err := os.WriteFile(modelPath, []byte(counterModel), 0o644); err != nil {
		t.Fatal(err)
	}
	body := "destination = " + quote(filepath.Join(dir, "out")) + "\n" + extra + `
[engine]
kind = "none"

[cache]
backend = "none"
`
	configPath = filepath.Join(dir, "umldoc.toml")
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, modelPath, configPath
}

func quote(s string) string { return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"` }

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var logs bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return logs.String(), err
}

// captureStdout redirects user-facing output into a buffer for the rest of
// the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	want := map[string]bool{"render": false, "overview": false, "formats": false, "serve": false, "cache": false, "completion": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRenderCommand(t *testing.T) {
	dir, modelPath, configPath := workspace(t, "")

	logs, err := execute(t, "render", modelPath, "--config", configPath)
	if err != nil {
		t.Fatalf("render error = %v\n%s", err, logs)
	}

	out := filepath.Join(dir, "out", "com", "example")
	counter, err := os.ReadFile(filepath.Join(out, "Counter.puml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(counter), "    +count: int\n") {
		t.Errorf("Counter.puml lacks the public field:\n%s", counter)
	}
	if strings.Contains(string(counter), "secret") {
		t.Errorf("Counter.puml shows the private field:\n%s", counter)
	}
	if _, err := os.Stat(filepath.Join(out, "package.puml")); err != nil {
		t.Errorf("missing package diagram: %v", err)
	}
	if !strings.Contains(logs, "rendered diagrams") {
		t.Errorf("logs should report the run:\n%s", logs)
	}
}

func TestRenderFlagsOverrideConfig(t *testing.T) {
	dir, modelPath, configPath := workspace(t, "")
	dest := filepath.Join(dir, "flags")

	if _, err := execute(t, "render", modelPath, "--config", configPath, "-d", dest, "--diagrams", "class", "--indent", "4"); err != nil {
		t.Fatalf("render error = %v", err)
	}

	out := filepath.Join(dest, "com", "example")
	counter, err := os.ReadFile(filepath.Join(out, "Counter.puml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(counter), "\n        +count: int\n") {
		t.Errorf("expected four-space indentation:\n%s", counter)
	}
	if _, err := os.Stat(filepath.Join(out, "package.puml")); !os.IsNotExist(err) {
		t.Errorf("package diagram written with --diagrams class (err = %v)", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); !os.IsNotExist(err) {
		t.Errorf("config destination used despite -d (err = %v)", err)
	}
}

func TestRenderErrors(t *testing.T) {
	dir, modelPath, configPath := workspace(t, "")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing config", []string{"render", modelPath, "--config", filepath.Join(dir, "none.toml")}, errors.ErrCodeFileNotFound},
		{"quiet and verbose", []string{"render", modelPath, "--config", configPath, "-q", "-v"}, errors.ErrCodeInvalidConfig},
		{"missing input", []string{"render", filepath.Join(dir, "gone.json"), "--config", configPath}, errors.ErrCodeFileNotFound},
		{"unknown diagram kind", []string{"render", modelPath, "--config", configPath, "--diagrams", "sequence"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOverviewCommand(t *testing.T) {
	dir, modelPath, configPath := workspace(t, "")
	output := filepath.Join(dir, "graphs", "hierarchy.dot")

	if _, err := execute(t, "overview", modelPath, "--config", configPath, "-o", output, "--qualified"); err != nil {
		t.Fatalf("overview error = %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("overview is not DOT:\n%s", data)
	}
	if !strings.Contains(string(data), `"com.example.Counter"`) {
		t.Errorf("overview lacks the Counter node:\n%s", data)
	}
}

func TestOverviewFormat(t *testing.T) {
	tests := []struct {
		explicit, output string
		want             string
		wantErr          bool
	}{
		{"", "", "svg", false},
		{"", "out/graph.png", "png", false},
		{"", "graph.txt", "svg", false},
		{"DOT", "graph.svg", "dot", false},
		{".pdf", "", "pdf", false},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := overviewFormat(tt.explicit, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("overviewFormat(%q, %q) error = %v, wantErr %v", tt.explicit, tt.output, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("overviewFormat(%q, %q) error code = %s", tt.explicit, tt.output, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("overviewFormat(%q, %q) = %q, want %q", tt.explicit, tt.output, got, tt.want)
		}
	}
}
