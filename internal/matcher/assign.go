package matcher

import (
	"context"
	"runtime"
	"sync"

	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/internal/kernel"
	"github.com/paveg/comparego/internal/signature"
	"github.com/paveg/comparego/internal/symbol"
	"github.com/paveg/comparego/pkg/mathutil"
)

// bodyDistanceCache memoizes kernel.Distance/kernel.Heuristic results by
// body-hash pair: the tree-edit-distance kernel's cost is symmetric in its
// two inputs, so whenever two candidate pairs share the same (source,
// target) body hashes — overloads, duplicated helpers, near-identical
// functions appearing on both sides more than once — the second lookup
// is free. Keys go through mathutil.CreateConsistentKey so the order the
// two hashes arrived in doesn't fragment the cache, generalizing the
// teacher's Detector.getCacheKey (internal/similarity/detector.go) from a
// single-corpus pairwise cache into this cross-corpus worker pool's
// shared one.
type bodyDistanceCache struct {
	mu      sync.Mutex
	entries map[string]bodyScoreEntry
}

type bodyScoreEntry struct {
	score         float64
	lowConfidence bool
}

func newBodyDistanceCache() *bodyDistanceCache {
	return &bodyDistanceCache{entries: make(map[string]bodyScoreEntry)}
}

func (c *bodyDistanceCache) get(key string) (bodyScoreEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *bodyDistanceCache) put(key string, e bodyScoreEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// pairScore is the composite score computed for one candidate (source,
// target) pair during the bipartite-assignment step.
type pairScore struct {
	sourceIdx, targetIdx               int
	signatureScore, bodyScore, contextScore, composite float64
	lowConfidence                      bool
}

// candidatePair is one (source index, target index) pair that survived
// the pre-filter and needs a composite score.
type candidatePair struct {
	sourceIdx, targetIdx int
}

// candidatePairs returns every (i, j) pair whose signature similarity is
// at least 0.3, or whose body hash agrees (spec.md §4.6 step 3's
// pre-filter). This generalizes the teacher's couldBeSimilar early-out
// (internal/similarity/detector.go) from a single boolean short-circuit
// into an explicit candidate-set builder.
const signaturePreFilterFloor = 0.3

func candidatePairs(source, target []*function.Record) []candidatePair {
	var pairs []candidatePair
	for i, s := range source {
		for j, t := range target {
			if s.BodyHash() == t.BodyHash() || signature.Similarity(s, t) >= signaturePreFilterFloor {
				pairs = append(pairs, candidatePair{sourceIdx: i, targetIdx: j})
			}
		}
	}
	return pairs
}

// scorePairs computes the composite score for every candidate pair in
// parallel, generalizing the teacher's DefaultParallelProcessor
// (internal/similarity/parallel.go) from an all-pairs-within-one-slice
// worker pool into a cross-corpus one: the channel/worker-goroutine
// structure is the same, only the job shape (two distinct slices instead
// of one) and the scoring function differ.
func scorePairs(
	ctx context.Context,
	source, target []*function.Record,
	sourceTable, targetTable *symbol.Table,
	pairs []candidatePair,
	workers int,
	kernelTimeout func(context.Context) (context.Context, context.CancelFunc),
) []pairScore {
	if len(pairs) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	sourceCalls := make([][]string, len(source))
	for i, s := range source {
		sourceCalls[i] = symbol.CalledQualifiedNames(s, sourceTable)
	}
	targetCalls := make([][]string, len(target))
	for j, t := range target {
		targetCalls[j] = symbol.CalledQualifiedNames(t, targetTable)
	}

	cache := newBodyDistanceCache()

	jobs := make(chan candidatePair, len(pairs))
	results := make(chan pairScore, len(pairs))

	var wg sync.WaitGroup
	for range min(workers, len(pairs)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results <- scoreOnePair(ctx, source[job.sourceIdx], target[job.targetIdx], job,
					sourceCalls[job.sourceIdx], targetCalls[job.targetIdx], kernelTimeout, cache)
			}
		}()
	}
	for _, p := range pairs {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	scores := make([]pairScore, 0, len(pairs))
	for r := range results {
		scores = append(scores, r)
	}
	return scores
}

func scoreOnePair(
	ctx context.Context,
	s, t *function.Record,
	job candidatePair,
	calledByS, calledByT []string,
	kernelTimeout func(context.Context) (context.Context, context.CancelFunc),
	cache *bodyDistanceCache,
) pairScore {
	sigScore := signature.Similarity(s, t)
	ctxScore := signature.ContextSimilarity(calledByS, calledByT)

	bodyScore, lowConfidence := cachedBodySimilarity(ctx, s, t, kernelTimeout, cache)

	composite := weightSignature*sigScore + weightBody*bodyScore + weightContext*ctxScore
	return pairScore{
		sourceIdx: job.sourceIdx, targetIdx: job.targetIdx,
		signatureScore: sigScore, bodyScore: bodyScore, contextScore: ctxScore,
		composite: composite, lowConfidence: lowConfidence,
	}
}

// cachedBodySimilarity wraps bodySimilarity with the worker pool's shared
// bodyDistanceCache; bodySimilarity itself stays cache-free so the
// signature-only cascade pass in matcher.go (which has no cache to share)
// can keep calling it directly.
func cachedBodySimilarity(
	ctx context.Context,
	s, t *function.Record,
	kernelTimeout func(context.Context) (context.Context, context.CancelFunc),
	cache *bodyDistanceCache,
) (float64, bool) {
	key := mathutil.CreateConsistentKey(s.BodyHash(), t.BodyHash())
	if e, ok := cache.get(key); ok {
		return e.score, e.lowConfidence
	}
	score, lowConfidence := bodySimilarity(ctx, s, t, kernelTimeout)
	cache.put(key, bodyScoreEntry{score: score, lowConfidence: lowConfidence})
	return score, lowConfidence
}

func bodySimilarity(
	ctx context.Context,
	s, t *function.Record,
	kernelTimeout func(context.Context) (context.Context, context.CancelFunc),
) (float64, bool) {
	if !s.HasBody() || !t.HasBody() {
		if s.BodyHash() == t.BodyHash() {
			return 1.0, false
		}
		return 0.0, false
	}

	pairCtx, cancel := kernelTimeout(ctx)
	defer cancel()

	sim, err := kernel.Distance(pairCtx, s.Arena, s.BodyRoot, t.Arena, t.BodyRoot)
	if err != nil {
		return kernel.Heuristic(s.Arena, s.BodyRoot, t.Arena, t.BodyRoot), true
	}
	return sim, false
}
