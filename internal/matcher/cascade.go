package matcher

import (
	"sort"

	"github.com/paveg/comparego/internal/function"
)

// cascadeResult collects the pairs already settled by a cascade pass and
// the records still needing the next pass.
type cascadeResult struct {
	pinned          []pinnedPair
	remSource       []*function.Record
	remTarget       []*function.Record
}

// pinnedPair is a match the cascade settled without needing a composite
// score: either an exact-hash identity (similarity 1.0) or a signature-
// only modification (locked `modified` regardless of body similarity).
type pinnedPair struct {
	source, target *function.Record
	similarity     float64
	locked         bool // true for the signature-only pass: classification is always "modified"
}

// exactHashPass pairs any source/target record sharing both signature
// hash and body hash, pinning their composite to 1.0 (spec.md §4.6 step
// 1). Generalizes the teacher's CalculateSimilarity hash-equality fast
// path (internal/similarity/detector.go) from a single pairwise check
// into a corpus-wide bucket-and-drain pass.
func exactHashPass(source, target []*function.Record) cascadeResult {
	targetBuckets := make(map[string][]*function.Record)
	for _, t := range target {
		key := t.SignatureHash() + t.BodyHash()
		targetBuckets[key] = append(targetBuckets[key], t)
	}

	var pinned []pinnedPair
	var remSource []*function.Record
	usedTarget := make(map[*function.Record]bool)

	for _, s := range sortedByQualifiedName(source) {
		key := s.SignatureHash() + s.BodyHash()
		bucket := targetBuckets[key]
		matched := false
		for _, t := range bucket {
			if usedTarget[t] {
				continue
			}
			pinned = append(pinned, pinnedPair{source: s, target: t, similarity: 1.0})
			usedTarget[t] = true
			matched = true
			break
		}
		if !matched {
			remSource = append(remSource, s)
		}
	}

	var remTarget []*function.Record
	for _, t := range target {
		if !usedTarget[t] {
			remTarget = append(remTarget, t)
		}
	}

	return cascadeResult{pinned: pinned, remSource: remSource, remTarget: remTarget}
}

// signatureOnlyPass pairs any remaining record sharing a signature hash
// but differing body hash, locking the pair as `modified` (spec.md §4.6
// step 2) regardless of what the body-similarity score would say.
func signatureOnlyPass(source, target []*function.Record) cascadeResult {
	targetBuckets := make(map[string][]*function.Record)
	for _, t := range target {
		targetBuckets[t.SignatureHash()] = append(targetBuckets[t.SignatureHash()], t)
	}

	var pinned []pinnedPair
	var remSource []*function.Record
	usedTarget := make(map[*function.Record]bool)

	for _, s := range sortedByQualifiedName(source) {
		bucket := targetBuckets[s.SignatureHash()]
		matched := false
		for _, t := range bucket {
			if usedTarget[t] {
				continue
			}
			pinned = append(pinned, pinnedPair{source: s, target: t, locked: true})
			usedTarget[t] = true
			matched = true
			break
		}
		if !matched {
			remSource = append(remSource, s)
		}
	}

	var remTarget []*function.Record
	for _, t := range target {
		if !usedTarget[t] {
			remTarget = append(remTarget, t)
		}
	}

	return cascadeResult{pinned: pinned, remSource: remSource, remTarget: remTarget}
}

func sortedByQualifiedName(records []*function.Record) []*function.Record {
	out := append([]*function.Record(nil), records...)
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName < out[j].QualifiedName })
	return out
}
