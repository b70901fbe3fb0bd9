// Package matcher generalizes the teacher's internal/similarity.Detector
// (pairwise, single-corpus, threshold-gated duplicate finder) into a
// cross-corpus, bipartite-assigned, cascade-classified function matcher
// (spec.md §4.6): exact-hash pass, signature-only pass, Hungarian
// bipartite assignment over composite scores, then rename/move/modified
// classification.
package matcher

import (
	"context"
	"sort"
	"time"

	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/internal/signature"
	"github.com/paveg/comparego/internal/symbol"
)

// Composite-similarity weights (spec.md §4.6).
const (
	weightSignature = 0.35
	weightBody      = 0.50
	weightContext   = 0.15
)

// DefaultMatchThreshold is the composite-similarity cutoff used in the
// bipartite-assignment step absent an explicit configuration value.
const DefaultMatchThreshold = 0.5

// Options configures one Match invocation.
type Options struct {
	// MatchThreshold is the composite-similarity cutoff assigned pairs
	// must clear (spec.md §4.6 step 3).
	MatchThreshold float64
	// PerPairKernelTimeout bounds a single kernel.Distance call
	// (spec.md §4.4's per_pair_kernel_timeout_ms).
	PerPairKernelTimeout time.Duration
	// Workers bounds the composite-scoring worker pool; <= 0 defaults to
	// runtime.NumCPU() (spec.md §5).
	Workers int
}

// Result is the full set of change records a Match run produced, plus the
// count of pairs that fell back to the kernel's heuristic similarity
// (spec.md §7's "number of pairs that fell back to heuristic similarity").
type Result struct {
	Changes             []Change
	HeuristicFallbacks  int
}

// Match compares source against target and returns one Change per source
// and target function (spec.md §8 invariant 1, "Partition"): every
// function appears in exactly one change record.
func Match(ctx context.Context, source, target []*function.Record, opts Options) Result {
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = DefaultMatchThreshold
	}

	sourceTable := symbol.NewTable(source)
	targetTable := symbol.NewTable(target)
	sourceIdx := symbol.BuildFileIndex(source)

	var changes []Change
	fallbacks := 0

	exact := exactHashPass(source, target)
	for _, p := range exact.pinned {
		changes = append(changes, buildChange(p.source, p.target, 1.0, 1.0, 1.0, 1.0, false))
	}

	kernelTimeout := func(parent context.Context) (context.Context, context.CancelFunc) {
		if opts.PerPairKernelTimeout <= 0 {
			return context.WithCancel(parent)
		}
		return context.WithTimeout(parent, opts.PerPairKernelTimeout)
	}

	sigOnly := signatureOnlyPass(exact.remSource, exact.remTarget)
	for _, p := range sigOnly.pinned {
		bodyScore, lowConfidence := bodySimilarity(ctx, p.source, p.target, kernelTimeout)
		if lowConfidence {
			fallbacks++
		}
		calledByS := symbol.CalledQualifiedNames(p.source, sourceTable)
		calledByT := symbol.CalledQualifiedNames(p.target, targetTable)
		ctxScore := signature.ContextSimilarity(calledByS, calledByT)
		composite := weightSignature*1.0 + weightBody*bodyScore + weightContext*ctxScore
		changes = append(changes, Change{
			Kind:                KindModified,
			Source:              p.source,
			Target:              p.target,
			SignatureSimilarity: 1.0,
			BodySimilarity:      bodyScore,
			ContextSimilarity:   ctxScore,
			Similarity:          composite,
			Magnitude:           1.0 - composite,
			LowConfidence:       lowConfidence,
		})
	}

	remSource, remTarget := sigOnly.remSource, sigOnly.remTarget
	pairs := candidatePairs(remSource, remTarget)

	scores := scorePairs(ctx, remSource, remTarget, sourceTable, targetTable, pairs, opts.Workers, kernelTimeout)

	costs := make([][]float64, len(remSource))
	for i := range costs {
		costs[i] = make([]float64, len(remTarget))
		for j := range costs[i] {
			costs[i][j] = hungarianPadCost
		}
	}
	lookup := make(map[[2]int]pairScore, len(scores))
	for _, sc := range scores {
		lookup[[2]int{sc.sourceIdx, sc.targetIdx}] = sc
		costs[sc.sourceIdx][sc.targetIdx] = (1.0 - sc.composite) - tieBreakBonus(remSource[sc.sourceIdx], remTarget[sc.targetIdx], sc)
		if sc.lowConfidence {
			fallbacks++
		}
	}

	assignment := solveAssignment(costs)

	matchedSource := make(map[int]bool, len(assignment))
	matchedTarget := make(map[int]bool, len(remTarget))

	for i, j := range assignment {
		if j < 0 {
			continue
		}
		sc, ok := lookup[[2]int{i, j}]
		if !ok || sc.composite < opts.MatchThreshold {
			continue
		}
		matchedSource[i] = true
		matchedTarget[j] = true

		change := buildChange(remSource[i], remTarget[j], sc.signatureScore, sc.bodyScore, sc.contextScore, sc.composite, sc.lowConfidence)
		if (change.Kind == KindMoved || change.Kind == KindRenamedAndMoved) &&
			!symbol.IsReferencedOutsideFile(sourceIdx, remSource[i].SimpleName, remSource[i].File) {
			change.LowConfidence = true
		}
		changes = append(changes, change)
	}

	for i, s := range remSource {
		if !matchedSource[i] {
			changes = append(changes, Change{Kind: KindDeleted, Source: s, Magnitude: magnitudeAddedOrDeleted})
		}
	}
	for j, t := range remTarget {
		if !matchedTarget[j] {
			changes = append(changes, Change{Kind: KindAdded, Target: t, Magnitude: magnitudeAddedOrDeleted})
		}
	}

	sortChanges(changes)
	return Result{Changes: changes, HeuristicFallbacks: fallbacks}
}

// tieBreakBonus nudges the assignment cost by an amount far too small to
// change which pairing is optimal, but large enough to make the Hungarian
// solver prefer one of several equal-composite optima deterministically,
// following spec.md §4.6's stated order: higher signature similarity,
// then higher body similarity, then same enclosing file, then
// lexicographic order of qualified names.
func tieBreakBonus(s, t *function.Record, sc pairScore) float64 {
	const (
		sigWeight  = 1e-6
		bodyWeight = 1e-8
		fileWeight = 1e-10
		lexWeight  = 1e-12
	)
	bonus := sc.signatureScore*sigWeight + sc.bodyScore*bodyWeight
	if s.File == t.File {
		bonus += fileWeight
	}
	if s.QualifiedName < t.QualifiedName {
		bonus += lexWeight
	}
	return bonus
}

// sortChanges imposes a fixed, deterministic order independent of the
// assignment/cascade internals: grouped by kind, then by qualified name,
// so two Match runs on identical input produce identical output order
// (spec.md §8 invariant 6). internal/compare re-sorts per its own
// list_changes ordering rules; this is only the canonical base order.
func sortChanges(changes []Change) {
	sort.SliceStable(changes, func(i, j int) bool {
		a, b := changes[i], changes[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return changeName(a) < changeName(b)
	})
}

func changeName(c Change) string {
	if c.Source != nil {
		return c.Source.QualifiedName
	}
	return c.Target.QualifiedName
}
