package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paveg/comparego/internal/coreparser"
)

func TestCollectFilesRecursesAndFiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package p\n")
	writeFile(t, dir, "readme.md", "ignored\n")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "b.go", "package p\n")

	files, err := collectFiles(dir, walkOptions{recurse: true, extensions: []string{"go"}})
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 .go files, got %d: %v", len(files), files)
	}
}

func TestCollectFilesNoRecurseSkipsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package p\n")
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, sub, "b.go", "package p\n")

	files, err := collectFiles(dir, walkOptions{recurse: false})
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file without recursion, got %d: %v", len(files), files)
	}
}

func TestCollectFilesSkipsHiddenByDefault(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden.go", "package p\n")
	writeFile(t, dir, "visible.go", "package p\n")

	files, err := collectFiles(dir, walkOptions{recurse: true})
	if err != nil {
		t.Fatalf("collectFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 visible file, got %d: %v", len(files), files)
	}
}

func TestCollectFilesMissingPathIsNotFound(t *testing.T) {
	if _, err := collectFiles(filepath.Join(t.TempDir(), "missing"), walkOptions{}); err == nil {
		t.Error("expected an error for a missing path")
	}
}

func TestShouldExcludeMatchesGlobSuffix(t *testing.T) {
	if !shouldExclude("/repo/foo_test.go", []string{"*_test.go"}) {
		t.Error("expected *_test.go to exclude foo_test.go")
	}
	if shouldExclude("/repo/foo.go", []string{"*_test.go"}) {
		t.Error("did not expect foo.go to be excluded")
	}
}

func TestShouldExcludeMatchesDirectoryGlob(t *testing.T) {
	if !shouldExclude("/repo/vendor/pkg/file.go", []string{"vendor/**"}) {
		t.Error("expected vendor/** to exclude a file under vendor/")
	}
}

func TestParseCorpusRecoversFromSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.go", "package p\nfunc Add(a, b int) int { return a +\n")

	parser := coreparser.NewParser(coreparser.Budget{MaxFileSizeBytes: 1 << 20})
	result, err := parseCorpus(context.Background(), parser, []string{filepath.Join(dir, "broken.go")}, nil, 1)
	if err != nil {
		t.Fatalf("parseCorpus: %v", err)
	}
	if len(result.failed) != 0 {
		t.Errorf("expected go/parser's error recovery to avoid parse-failed, got %d failures", len(result.failed))
	}
}

func TestParseCorpusFlagsOversizedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.go", "package p\nfunc Add(a, b int) int { return a + b }\n")

	parser := coreparser.NewParser(coreparser.Budget{MaxFileSizeBytes: 1})
	result, err := parseCorpus(context.Background(), parser, []string{filepath.Join(dir, "big.go")}, nil, 1)
	if err != nil {
		t.Fatalf("parseCorpus: %v", err)
	}
	if len(result.skipped) != 1 || result.skipped[0].Reason != "file-too-large" {
		t.Errorf("expected 1 file-too-large skip, got %+v", result.skipped)
	}
}
