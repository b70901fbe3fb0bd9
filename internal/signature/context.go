package signature

// ContextSimilarity is the Jaccard index of the qualified names called by
// a and b (resolved by internal/symbol), falling back to 0.5 (neutral)
// when either call set is empty (spec.md §4.5). No teacher equivalent;
// closest precedent is the teacher's hasSimilarOperations fallback-to-
// neutral-signal style in internal/similarity/detector.go, generalized
// here to a genuine call-graph Jaccard.
func ContextSimilarity(calledByA, calledByB []string) float64 {
	if len(calledByA) == 0 || len(calledByB) == 0 {
		return 0.5
	}

	a := toSet(calledByA)
	b := toSet(calledByB)

	intersection := 0
	for name := range a {
		if _, ok := b[name]; ok {
			intersection++
		}
	}
	union := len(a)
	for name := range b {
		if _, ok := a[name]; !ok {
			union++
		}
	}
	if union == 0 {
		return 0.5
	}
	return float64(intersection) / float64(union)
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}
