package kernel

import "github.com/paveg/comparego/internal/coreast"

// Heuristic computes the bag-of-kinds Jaccard similarity between the two
// subtrees, the cheap fallback Distance's caller uses when the kernel
// budget is exceeded (spec.md §4.4). It is grounded on the teacher's
// couldBeSimilar quick-reject style in internal/similarity/detector.go:
// a cheap structural proxy computed instead of the expensive exact walk,
// not a replacement for it.
func Heuristic(aArena *coreast.Arena, aRoot int, bArena *coreast.Arena, bRoot int) float64 {
	a := bagOfKinds(aArena, aRoot)
	b := bagOfKinds(bArena, bRoot)
	return jaccard(a, b)
}

func bagOfKinds(arena *coreast.Arena, root int) map[coreast.Kind]int {
	bag := make(map[coreast.Kind]int)
	arena.Walk(root, func(_ int, n *coreast.Node) bool {
		if !n.Kind.IsZeroWeight() {
			bag[n.Kind]++
		}
		return true
	})
	return bag
}

// jaccard returns the multiset Jaccard index: sum of per-key minimums
// over the sum of per-key maximums, across the union of keys. Two empty
// bags are defined as identical (similarity 1.0).
func jaccard(a, b map[coreast.Kind]int) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	keys := make(map[coreast.Kind]struct{}, len(a)+len(b))
	for k := range a {
		keys[k] = struct{}{}
	}
	for k := range b {
		keys[k] = struct{}{}
	}

	var minSum, maxSum int
	for k := range keys {
		ca, cb := a[k], b[k]
		if ca < cb {
			minSum += ca
			maxSum += cb
		} else {
			minSum += cb
			maxSum += ca
		}
	}
	if maxSum == 0 {
		return 1.0
	}
	return float64(minSum) / float64(maxSum)
}
