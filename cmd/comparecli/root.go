package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/paveg/comparego/internal/compare"
	"github.com/paveg/comparego/internal/config"
	"github.com/paveg/comparego/internal/coreparser"
	"github.com/paveg/comparego/internal/corerrors"
	"github.com/paveg/comparego/internal/matcher"
)

var (
	version   = "dev"     //nolint:gochecknoglobals // build-time variable
	gitCommit = "none"    //nolint:gochecknoglobals // build-time variable
	buildTime = "unknown" //nolint:gochecknoglobals // build-time variable
)

// Exit codes (spec.md §6): 0 ok, 1 user-error, 2 budget-exceeded,
// 3 internal-parse-error, 4 cancelled.
const (
	exitOK             = 0
	exitUserError      = 1
	exitBudgetExceeded = 2
	exitInternalError  = 3
	exitCancelled      = 4
)

// cliConfig mirrors internal/config.Config plus the CLI-only walk
// parameters (recurse, include-hidden, extensions, max depth) that have
// no YAML home — they describe one invocation, not a standing
// configuration.
type cliConfig struct {
	configPath string

	matchThreshold   float64
	maxFileSizeBytes int64
	perFileTimeoutMs int
	perPairTimeoutMs int
	totalTimeoutMs   int
	workers          int
	excludeGlobs     []string
	format           string
	output           string
	verbose          bool

	recurse       bool
	includeHidden bool
	extensions    []string
	maxDepth      int
}

func newRootCommand(cfg *cliConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "comparecli [flags] <source> <target>",
		Short: "Cross-language structural code-comparison engine",
		Long: `Compares the functions in two code locations (files or directory trees)
across any of twelve supported languages, matches the functions that
correspond to each other, and classifies and scores what changed
between them — surviving reordering, renaming, and movement between
files, where a line-based diff would not.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildTime),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, cfg, args[0], args[1])
		},
	}

	rootCmd.Flags().StringVar(&cfg.configPath, "config", "", "config file path (default: .comparego.yaml)")
	rootCmd.Flags().Float64Var(&cfg.matchThreshold, "match-threshold", 0, "composite similarity cutoff (default from config)")
	rootCmd.Flags().Int64Var(&cfg.maxFileSizeBytes, "max-file-size-bytes", 0, "per-file size ceiling (default from config)")
	rootCmd.Flags().IntVar(&cfg.perFileTimeoutMs, "per-file-parse-timeout-ms", 0, "per-file parse timeout (default from config)")
	rootCmd.Flags().IntVar(&cfg.perPairTimeoutMs, "per-pair-kernel-timeout-ms", 0, "per-pair tree-edit-distance timeout (default from config)")
	rootCmd.Flags().IntVar(&cfg.totalTimeoutMs, "comparison-total-timeout-ms", 0, "whole-comparison timeout (default from config)")
	rootCmd.Flags().IntVarP(&cfg.workers, "workers", "w", 0, "parallel workers (default: runtime.NumCPU())")
	rootCmd.Flags().StringSliceVar(&cfg.excludeGlobs, "exclude", nil, "exclude glob, repeatable (default from config)")
	rootCmd.Flags().StringVarP(&cfg.format, "format", "f", "json", "output format (json|yaml)")
	rootCmd.Flags().StringVarP(&cfg.output, "output", "o", "", "output file (default: stdout)")
	rootCmd.Flags().BoolVarP(&cfg.verbose, "verbose", "v", false, "verbose tracing to stderr")
	rootCmd.Flags().BoolVar(&cfg.recurse, "recurse", true, "recurse into subdirectories")
	rootCmd.Flags().BoolVar(&cfg.includeHidden, "include-hidden", false, "include hidden files and directories")
	rootCmd.Flags().StringSliceVar(&cfg.extensions, "ext", nil, "extension allow-list, repeatable (default: every file)")
	rootCmd.Flags().IntVar(&cfg.maxDepth, "max-depth", 0, "max directory recursion depth (0 = unlimited)")

	return rootCmd
}

// exitErr carries the process exit code an error should map to, so
// run can report it without re-classifying the error a second time.
type exitErr struct {
	code int
	err  error
}

func (e *exitErr) Error() string { return e.err.Error() }
func (e *exitErr) Unwrap() error { return e.err }

func runCompare(cmd *cobra.Command, cfg *cliConfig, sourcePath, targetPath string) error {
	fileCfg, err := config.Load(cfg.configPath)
	if err != nil {
		return &exitErr{exitUserError, err}
	}
	applyOverrides(fileCfg, cfg)
	if err := fileCfg.Validate(); err != nil {
		return &exitErr{exitUserError, err}
	}

	if cfg.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[comparecli] comparing %s -> %s (match_threshold=%.2f, workers=%d)\n",
			sourcePath, targetPath, fileCfg.MatchThreshold, fileCfg.WorkerThreads)
	}

	walkOpts := walkOptions{
		recurse:       cfg.recurse,
		includeHidden: cfg.includeHidden,
		extensions:    cfg.extensions,
		maxDepth:      cfg.maxDepth,
		excludeGlobs:  fileCfg.ExcludeGlobs,
	}

	sourceFiles, err := collectFiles(sourcePath, walkOpts)
	if err != nil {
		return &exitErr{exitUserError, fmt.Errorf("%w: %s", corerrors.ErrPathNotFound, sourcePath)}
	}
	targetFiles, err := collectFiles(targetPath, walkOpts)
	if err != nil {
		return &exitErr{exitUserError, fmt.Errorf("%w: %s", corerrors.ErrPathNotFound, targetPath)}
	}

	totalTimeout := time.Duration(fileCfg.ComparisonTotalTimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(cmd.Context(), totalTimeout)
	defer cancel()

	started := time.Now()

	workers := fileCfg.WorkerThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	parser := coreparser.NewParser(coreparser.Budget{
		MaxFileSizeBytes: fileCfg.MaxFileSizeBytes,
		Timeout:          time.Duration(fileCfg.PerFileParseTimeoutMs) * time.Millisecond,
	})

	source, err := parseCorpus(ctx, parser, sourceFiles, fileCfg.LanguageOverrides, workers)
	if err != nil {
		return classifyRunErr(err)
	}
	target, err := parseCorpus(ctx, parser, targetFiles, fileCfg.LanguageOverrides, workers)
	if err != nil {
		return classifyRunErr(err)
	}

	if cfg.verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "[comparecli] %d source functions, %d target functions\n",
			len(source.records), len(target.records))
	}

	result := matcher.Match(ctx, source.records, target.records, matcher.Options{
		MatchThreshold:       fileCfg.MatchThreshold,
		PerPairKernelTimeout: time.Duration(fileCfg.PerPairKernelTimeoutMs) * time.Millisecond,
		Workers:              workers,
	})
	if err := ctx.Err(); err != nil {
		return classifyRunErr(err)
	}

	skipped := append(append([]compare.SkipReport(nil), source.skipped...), target.skipped...)
	failed := append(append([]compare.SkipReport(nil), source.failed...), target.failed...)

	registry := compare.NewRegistry()
	ctxRecord := compare.Create(sourcePath, targetPath, result, skipped, failed, time.Since(started))
	id := registry.Put(ctxRecord)

	changes, err := registry.ListChanges(id, compare.Filter{}, compare.SortDefault, 0, 0)
	if err != nil {
		return &exitErr{exitInternalError, err}
	}
	summary, err := registry.Summary(id)
	if err != nil {
		return &exitErr{exitInternalError, err}
	}

	return writeOutput(cmd, cfg, id, summary, changes)
}

func classifyRunErr(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return &exitErr{exitCancelled, corerrors.ErrCancelled}
	case errors.Is(err, context.DeadlineExceeded):
		return &exitErr{exitBudgetExceeded, corerrors.ErrBudgetExceeded}
	case errors.Is(err, corerrors.ErrPoolNotStarted), errors.Is(err, corerrors.ErrPoolStopped):
		return &exitErr{exitInternalError, err}
	default:
		return &exitErr{exitInternalError, err}
	}
}

// applyOverrides copies the numeric and glob flags onto fileCfg only when
// they hold a positive or non-empty value, so un-set flags fall back to the
// loaded/default config value rather than the flag's zero value. The
// --format flag defaults to "json" and is always copied, so an
// output_format from the config file does not take effect.
func applyOverrides(fileCfg *config.Config, cfg *cliConfig) {
	if cfg.matchThreshold > 0 {
		fileCfg.MatchThreshold = cfg.matchThreshold
	}
	if cfg.maxFileSizeBytes > 0 {
		fileCfg.MaxFileSizeBytes = cfg.maxFileSizeBytes
	}
	if cfg.perFileTimeoutMs > 0 {
		fileCfg.PerFileParseTimeoutMs = cfg.perFileTimeoutMs
	}
	if cfg.perPairTimeoutMs > 0 {
		fileCfg.PerPairKernelTimeoutMs = cfg.perPairTimeoutMs
	}
	if cfg.totalTimeoutMs > 0 {
		fileCfg.ComparisonTotalTimeoutMs = cfg.totalTimeoutMs
	}
	if cfg.workers > 0 {
		fileCfg.WorkerThreads = cfg.workers
	}
	if len(cfg.excludeGlobs) > 0 {
		fileCfg.ExcludeGlobs = cfg.excludeGlobs
	}
	if cfg.format == "json" || cfg.format == "yaml" {
		fileCfg.OutputFormat = cfg.format
	}
}

func writeOutput(cmd *cobra.Command, cfg *cliConfig, id string, summary compare.Summary, changes []matcher.Change) error {
	out := map[string]any{
		"comparison_id": id,
		"summary":       formatSummary(summary),
		"changes":       formatChanges(changes),
	}

	writer, closer, err := outputWriter(cmd, cfg.output)
	if err != nil {
		return &exitErr{exitUserError, err}
	}
	defer closer()

	format := cfg.format
	if format == "" {
		format = "json"
	}

	switch format {
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return &exitErr{exitInternalError, err}
		}
		_, err = writer.Write(data)
		return err
	default:
		enc := json.NewEncoder(writer)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
}

func outputWriter(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := createFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func formatSummary(s compare.Summary) map[string]any {
	counts := make(map[string]int, len(s.CountsByKind))
	for kind, n := range s.CountsByKind {
		counts[string(kind)] = n
	}
	return map[string]any{
		"total_functions":             s.TotalFunctions,
		"counts_by_kind":              counts,
		"average_modified_similarity": s.AverageModifiedSim,
		"heuristic_fallbacks":         s.HeuristicFallbacks,
		"skipped_files":               len(s.SkippedFiles),
		"failed_files":                len(s.FailedFiles),
		"elapsed_ms":                  s.Elapsed.Milliseconds(),
	}
}

func formatChanges(changes []matcher.Change) []map[string]any {
	out := make([]map[string]any, 0, len(changes))
	for _, c := range changes {
		entry := map[string]any{
			"kind":                 string(c.Kind),
			"similarity":           c.Similarity,
			"magnitude":            c.Magnitude,
			"signature_similarity": c.SignatureSimilarity,
			"body_similarity":      c.BodySimilarity,
			"context_similarity":   c.ContextSimilarity,
			"low_confidence":       c.LowConfidence,
		}
		if c.Source != nil {
			entry["source"] = locationOf(c.Source.QualifiedName, c.Source.File, c.Source.StartLine, c.Source.EndLine)
		}
		if c.Target != nil {
			entry["target"] = locationOf(c.Target.QualifiedName, c.Target.File, c.Target.StartLine, c.Target.EndLine)
		}
		out = append(out, entry)
	}
	return out
}

func locationOf(name, file string, start, end int) map[string]any {
	return map[string]any{
		"qualified_name": name,
		"file":           file,
		"start_line":     start,
		"end_line":       end,
	}
}

// exitCodeOf maps a runCompare error to a process exit code; anything
// not wrapped in an exitErr (a cobra usage error, for instance) is a
// user error.
func exitCodeOf(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

func createFile(path string) (*os.File, error) {
	return os.Create(path)
}

// run builds the root command, wires its output streams, executes it
// against args, and returns the process exit code (spec.md §6).
func run(args []string, stdout, stderr io.Writer) int {
	cfg := &cliConfig{}
	cmd := newRootCommand(cfg)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return exitCodeOf(err)
}
