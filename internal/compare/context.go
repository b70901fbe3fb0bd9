// Package compare holds the comparison context: the sealed, indexed
// result of one matcher run (spec §4.7). It generalizes the teacher's
// Detector+Match pairing (internal/similarity/detector.go), which
// returned a flat []Match for one corpus, into a richer store keyed by an
// opaque id, indexed by change kind and by qualified name, carrying
// summary aggregates alongside the ordered change list.
package compare

import (
	"time"

	"github.com/google/uuid"

	"github.com/paveg/comparego/internal/matcher"
)

// SkipReport records why a file did not contribute function records to
// one side of a comparison (spec §7's "recorded in summary" clause for
// file-too-large / parse-budget-exceeded / parse-failed).
type SkipReport struct {
	File   string
	Reason string
}

// Summary is the aggregate view returned by Context.Summary (spec §4.7).
type Summary struct {
	TotalFunctions      int
	CountsByKind        map[matcher.ChangeKind]int
	AverageModifiedSim  float64
	HeuristicFallbacks  int
	SkippedFiles        []SkipReport
	FailedFiles         []SkipReport
	Elapsed             time.Duration
}

// Context is one sealed comparison result (spec §3 "Comparison context").
// Once Create returns, a Context is logically immutable: no method on it
// mutates the change list, indices, or summary. Concurrent readers need
// no synchronization of their own; the registry's lock only guards the
// map of contexts, not the contents of one.
type Context struct {
	id uuid.UUID

	sourcePath string
	targetPath string

	changes []matcher.Change

	byKind map[matcher.ChangeKind][]int // indices into changes
	byName map[string][]int             // qualified name (source or target) -> indices into changes

	summary Summary
}

// ID returns the context's opaque 128-bit identifier as a string.
func (c *Context) ID() string { return c.id.String() }

// SourcePath and TargetPath return the two input locations Create was
// given.
func (c *Context) SourcePath() string { return c.sourcePath }
func (c *Context) TargetPath() string { return c.targetPath }

// Create builds a sealed Context from a completed matcher result. It does
// not run the matcher itself — callers assemble the matcher.Result (and
// any skip/failure reports accumulated while parsing) and hand them here
// to be indexed and frozen.
func Create(sourcePath, targetPath string, result matcher.Result, skipped, failed []SkipReport, elapsed time.Duration) *Context {
	ctx := &Context{
		id:         uuid.New(),
		sourcePath: sourcePath,
		targetPath: targetPath,
		changes:    result.Changes,
		byKind:     make(map[matcher.ChangeKind][]int),
		byName:     make(map[string][]int),
	}

	var modifiedSimSum float64
	var modifiedCount int
	counts := make(map[matcher.ChangeKind]int)

	for i, c := range ctx.changes {
		ctx.byKind[c.Kind] = append(ctx.byKind[c.Kind], i)
		counts[c.Kind]++

		if c.Source != nil {
			ctx.byName[c.Source.QualifiedName] = append(ctx.byName[c.Source.QualifiedName], i)
		}
		if c.Target != nil && (c.Source == nil || c.Target.QualifiedName != c.Source.QualifiedName) {
			ctx.byName[c.Target.QualifiedName] = append(ctx.byName[c.Target.QualifiedName], i)
		}

		if c.Kind == matcher.KindModified {
			modifiedSimSum += c.Similarity
			modifiedCount++
		}
	}

	avg := 0.0
	if modifiedCount > 0 {
		avg = modifiedSimSum / float64(modifiedCount)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	ctx.summary = Summary{
		TotalFunctions:     total,
		CountsByKind:       counts,
		AverageModifiedSim: avg,
		HeuristicFallbacks: result.HeuristicFallbacks,
		SkippedFiles:       skipped,
		FailedFiles:        failed,
		Elapsed:            elapsed,
	}

	return ctx
}

// Summary returns the context's aggregate counts (spec §4.7 `summary`).
func (c *Context) Summary() Summary {
	return c.summary
}
