package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testConfig = `
routes:
  - id: root
    path: /
  - id: home
    parentId: root
    index: true
  - id: user
    parentId: root
    path: users/:id
    loader:
      value: {name: ada}
  - id: legacy
    path: /u/:id
    redirect: /users/:id
`

func run(t *testing.T, args ...string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "routeview.yaml"), []byte(testConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", dir))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func TestTreeCommand(t *testing.T) {
	out := run(t, "tree")
	want := []string{
		"root  /",
		"  home  (index)",
		"  user  users/:id  [loader]",
		"legacy  /u/:id  [redirect /users/:id]",
	}
	for _, line := range want {
		if !strings.Contains(out, line) {
			t.Errorf("tree output missing %q:\n%s", line, out)
		}
	}
}

func TestMatchCommand(t *testing.T) {
	out := run(t, "match", "/users/42?tab=1")
	if !strings.Contains(out, "root  /  /") || !strings.Contains(out, "  user  /users/:id  /users/42") {
		t.Errorf("match output:\n%s", out)
	}
	if !strings.Contains(out, "params: id=42") {
		t.Errorf("params missing:\n%s", out)
	}

	out = run(t, "match", "/missing/page")
	if !strings.Contains(out, "no routes match /missing/page") {
		t.Errorf("unmatched output:\n%s", out)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version", "--short"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != version {
		t.Errorf("version output = %q", out.String())
	}
}

func TestFormatParams(t *testing.T) {
	if got := formatParams(map[string]string{"b": "2", "a": "1"}); got != "a=1 b=2" {
		t.Errorf("formatParams() = %q", got)
	}
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"init", dir, "--template", "docs", "--name", "handbook"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}

	var out bytes.Buffer
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"match", "/docs/setup/install", "--config", dir})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("match: %v", err)
	}
	if !strings.Contains(out.String(), "params: page=install section=setup") {
		t.Errorf("match after init:\n%s", out.String())
	}
}
