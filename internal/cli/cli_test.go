package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with the given args against an isolated
// config/cache environment and returns the resulting error.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func writeDot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.dot")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootPositional(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	output := filepath.Join(t.TempDir(), "out.html")

	if err := execute(t, input, output); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	for _, want := range []string{`"id":"A"`, `"id":"B"`, "d3.v3.min"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRootMissingInput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.html")

	err := execute(t, filepath.Join(t.TempDir(), "absent.dot"), output)
	if err == nil {
		t.Fatal("execute succeeded for missing input")
	}

	// Nothing may be written when the conversion fails.
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("output file created despite conversion failure")
	}
}

func TestHTMLCommandPage(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	output := filepath.Join(t.TempDir(), "out.html")

	if err := execute(t, "html", input, "-o", output, "--page"); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"<!DOCTYPE html>", "require.min.js", `"id":"A"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestHTMLCommandTemplateFlag(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	tmpl := filepath.Join(t.TempDir(), "custom.html")
	if err := os.WriteFile(tmpl, []byte(`custom:{{.UniqueID}}:{{.JSONData}}`), 0644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(t.TempDir(), "out.html")

	if err := execute(t, "html", input, "-o", output, "-t", tmpl); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "custom:graph-") {
		t.Errorf("custom template not applied: %q", data)
	}
}

func TestHTMLCommandBadTemplate(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	tmpl := filepath.Join(t.TempDir(), "bad.html")
	if err := os.WriteFile(tmpl, []byte(`no placeholders`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "html", input, "-t", tmpl); err == nil {
		t.Fatal("execute accepted a template without placeholders")
	}
}

func TestJSONCommand(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; B -> C; }`)
	output := filepath.Join(t.TempDir(), "out.json")

	if err := execute(t, "json", input, "-o", output); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var parsed struct {
		Nodes []map[string]any `json:"nodes"`
		Links []map[string]any `json:"links"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(parsed.Nodes) != 3 || len(parsed.Links) != 2 {
		t.Errorf("nodes/links = %d/%d, want 3/2", len(parsed.Nodes), len(parsed.Links))
	}
}

func TestJSONIgnoresConfigTemplate(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	output := filepath.Join(t.TempDir(), "out.json")

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	// A template entry pointing nowhere must not affect JSON output.
	cfgDir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := "template = " + tomlQuote(filepath.Join(configHome, "missing.html")) + "\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"json", input, "-o", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	if _, err := os.Stat(output); err != nil {
		t.Fatalf("output not written: %v", err)
	}
}

func TestInspectCommand(t *testing.T) {
	input := writeDot(t, `digraph deps { A [label="Start"]; A -> B; }`)

	if err := execute(t, "inspect", input); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestConfigTemplateDefault(t *testing.T) {
	input := writeDot(t, `digraph { A -> B; }`)
	output := filepath.Join(t.TempDir(), "out.html")

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	tmpl := filepath.Join(configHome, "tmpl.html")
	if err := os.WriteFile(tmpl, []byte(`cfg:{{.UniqueID}}:{{.JSONData}}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfgDir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	cfg := "template = " + tomlQuote(tmpl) + "\n"
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	root := New(io.Discard, LogInfo).RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"html", input, "-o", output})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "cfg:graph-") {
		t.Errorf("config template not applied: %q", data)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("loadConfig = %+v, want zero value", cfg)
	}
}

// tomlQuote quotes a TOML string value; backslashes in Windows-style paths
// would otherwise be read as escapes.
func tomlQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}
