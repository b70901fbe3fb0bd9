package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/paveg/comparego/internal/compare"
	"github.com/paveg/comparego/internal/coreparser"
	"github.com/paveg/comparego/internal/corerrors"
	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/internal/worker"
)

// walkOptions controls how a root path expands into a file list (spec §6
// `compare` parameters: recurse flag, include-hidden flag, extension
// allow-list, max depth).
type walkOptions struct {
	recurse       bool
	includeHidden bool
	extensions    []string // allow-list; empty means "every file"
	maxDepth      int      // 0 means unlimited
	excludeGlobs  []string
}

// collectFiles expands root (a file or a directory) into the list of
// files to parse, honoring walkOptions. A bare file path is returned
// as-is regardless of recurse/extension filters — the allow-list only
// prunes directory walks.
func collectFiles(root string, opts walkOptions) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, corerrors.ErrPathNotFound
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	rootDepth := strings.Count(filepath.Clean(root), string(filepath.Separator))

	walkErr := filepath.Walk(root, func(path string, fi os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if path != root && !opts.includeHidden && strings.HasPrefix(filepath.Base(path), ".") {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if shouldExclude(path, opts.excludeGlobs) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if fi.IsDir() {
			if path != root && !opts.recurse {
				return filepath.SkipDir
			}
			if opts.maxDepth > 0 {
				depth := strings.Count(filepath.Clean(path), string(filepath.Separator)) - rootDepth
				if depth >= opts.maxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !matchesExtension(path, opts.extensions) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

func matchesExtension(path string, allow []string) bool {
	if len(allow) == 0 {
		return true
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, a := range allow {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

// shouldExclude checks path against exclude_globs, mirroring the
// teacher's matchesPattern (cmd/root.go): exact base-name glob match, or
// a "dir/**" pattern matched as a path-containment check.
func shouldExclude(path string, globs []string) bool {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range globs {
		pattern = filepath.ToSlash(pattern)
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok {
			if strings.Contains(slash, "/"+dir+"/") || strings.HasPrefix(slash, dir+"/") {
				return true
			}
			continue
		}
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
		if strings.Contains(slash, pattern) {
			return true
		}
	}
	return false
}

// corpusResult is one side's parsed functions plus the per-file skip and
// failure reports spec §7 requires the summary to carry.
type corpusResult struct {
	records []*function.Record
	skipped []compare.SkipReport
	failed  []compare.SkipReport
}

// parseCorpus parses every file in files concurrently through parser
// (teacher's internal/worker.Pool, reused for per-file parse tasks per
// spec §5), then concatenates the per-file function records in file-list
// order so output stays deterministic regardless of scheduling.
func parseCorpus(ctx context.Context, parser *coreparser.Parser, files []string, langOverrides map[string]string, workers int) (corpusResult, error) {
	type outcome struct {
		records []*function.Record
		skip    *compare.SkipReport
		fail    *compare.SkipReport
	}

	outcomes := make([]outcome, len(files))

	pool := worker.NewPool(workers)
	pool.Start()
	defer pool.Stop()

	submitted := 0
	for i, f := range files {
		i, f := i, f
		lang := langOverrides[filepath.Ext(f)]

		err := pool.Submit(func() error {
			res, parseErr := parser.ParseFile(ctx, f, lang)
			switch {
			case parseErr == nil:
				outcomes[i] = outcome{records: function.Extract(res.Arena)}
			case errors.Is(parseErr, corerrors.ErrFileTooLarge):
				outcomes[i] = outcome{skip: &compare.SkipReport{File: f, Reason: "file-too-large"}}
			case errors.Is(parseErr, corerrors.ErrParseBudgetExceeded):
				outcomes[i] = outcome{skip: &compare.SkipReport{File: f, Reason: "parse-budget-exceeded"}}
			default:
				outcomes[i] = outcome{fail: &compare.SkipReport{File: f, Reason: "parse-failed"}}
			}
			return nil
		})
		if err != nil {
			return corpusResult{}, err
		}
		submitted++
	}

	for range submitted {
		select {
		case <-pool.Results():
		case <-ctx.Done():
			return corpusResult{}, ctx.Err()
		}
	}

	var out corpusResult
	for _, o := range outcomes {
		out.records = append(out.records, o.records...)
		if o.skip != nil {
			out.skipped = append(out.skipped, *o.skip)
		}
		if o.fail != nil {
			out.failed = append(out.failed, *o.fail)
		}
	}
	return out, nil
}
