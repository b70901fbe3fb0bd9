package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestRunIdenticalFilesYieldsOneModifiedAtSimilarityOne(t *testing.T) {
	dir := t.TempDir()
	src := "package p\nfunc Add(a, b int) int { return a + b }\n"
	source := writeFile(t, dir, "a.go", src)
	targetDir := t.TempDir()
	target := writeFile(t, targetDir, "a.go", src)

	var stdout, stderr bytes.Buffer
	code := run([]string{source, target}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	var out map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode JSON output: %v (output: %s)", err, stdout.String())
	}

	summary, ok := out["summary"].(map[string]any)
	if !ok {
		t.Fatalf("expected a summary object, got %T", out["summary"])
	}
	if summary["total_functions"].(float64) != 1 {
		t.Errorf("expected 1 function, got %v", summary["total_functions"])
	}
}

func TestRunMissingSourcePathIsUserError(t *testing.T) {
	targetDir := t.TempDir()
	target := writeFile(t, targetDir, "a.go", "package p\nfunc Add() {}\n")

	var stdout, stderr bytes.Buffer
	code := run([]string{filepath.Join(t.TempDir(), "does-not-exist.go"), target}, &stdout, &stderr)
	if code != exitUserError {
		t.Fatalf("expected exit %d, got %d", exitUserError, code)
	}
}

func TestRunWrongArgCountIsUserError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"onlyone.go"}, &stdout, &stderr)
	if code != exitUserError {
		t.Fatalf("expected exit %d, got %d", exitUserError, code)
	}
	if !strings.Contains(stderr.String(), "Usage") && !strings.Contains(stderr.String(), "accepts 2 arg") {
		t.Errorf("expected usage/arg-count error in stderr, got %q", stderr.String())
	}
}

func TestRunAddedAndDeletedFunctions(t *testing.T) {
	sourceDir := t.TempDir()
	source := writeFile(t, sourceDir, "a.go", `package p
func Add(a, b int) int { return a + b }
func Sub(a, b int) int { return a - b }
`)
	targetDir := t.TempDir()
	target := writeFile(t, targetDir, "a.go", `package p
func Add(a, b int) int { return a + b }
func New() int { return 0 }
`)

	var stdout, stderr bytes.Buffer
	code := run([]string{source, target, "--format", "json"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	var out map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("decode JSON output: %v", err)
	}
	summary := out["summary"].(map[string]any)
	counts := summary["counts_by_kind"].(map[string]any)
	if counts["added"].(float64) != 1 {
		t.Errorf("expected 1 added, got %v", counts["added"])
	}
	if counts["deleted"].(float64) != 1 {
		t.Errorf("expected 1 deleted, got %v", counts["deleted"])
	}
}
