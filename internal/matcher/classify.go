package matcher

import "github.com/paveg/comparego/internal/function"

// ChangeKind is the classification spec.md §4.6 assigns to one matched
// (or unmatched) function pair.
type ChangeKind string

// The closed set of change kinds (spec.md §4.6).
const (
	KindModified         ChangeKind = "modified"
	KindAdded            ChangeKind = "added"
	KindDeleted          ChangeKind = "deleted"
	KindRenamed          ChangeKind = "renamed"
	KindMoved            ChangeKind = "moved"
	KindRenamedAndMoved  ChangeKind = "renamed-and-moved"
)

// Change magnitude constants (spec.md §4.6).
const (
	magnitudeAddedOrDeleted = 1.0
	magnitudeRenamed        = 0.3
	magnitudeMoved          = 0.2
	magnitudeRenamedMoved   = 0.4
)

// Change is one function-level comparison outcome: a matched pair
// (modified/renamed/moved/renamed-and-moved) or an unmatched function
// (added/deleted).
type Change struct {
	Kind ChangeKind

	Source *function.Record // nil for "added"
	Target *function.Record // nil for "deleted"

	SignatureSimilarity float64
	BodySimilarity      float64
	ContextSimilarity   float64
	Similarity          float64 // composite
	Magnitude           float64
	LowConfidence       bool
}

// classify assigns the change kind for a matched pair by name+file
// equality (spec.md §4.6 step 4): renamed if the simple names differ but
// the enclosing file is identical, moved if names match but files differ,
// renamed-and-moved if both differ, modified otherwise. referencedOutsideSource
// tightens (never overrides) a `moved` classification's confidence; it does
// not change which kind is assigned.
func classify(source, target *function.Record) ChangeKind {
	sameName := source.SimpleName == target.SimpleName
	sameFile := source.File == target.File

	switch {
	case sameName && sameFile:
		return KindModified
	case !sameName && sameFile:
		return KindRenamed
	case sameName && !sameFile:
		return KindMoved
	default:
		return KindRenamedAndMoved
	}
}

func magnitudeFor(kind ChangeKind, similarity float64) float64 {
	switch kind {
	case KindAdded, KindDeleted:
		return magnitudeAddedOrDeleted
	case KindRenamed:
		return magnitudeRenamed
	case KindMoved:
		return magnitudeMoved
	case KindRenamedAndMoved:
		return magnitudeRenamedMoved
	default: // KindModified
		return 1.0 - similarity
	}
}

func buildChange(source, target *function.Record, signatureScore, bodyScore, contextScore, composite float64, lowConfidence bool) Change {
	kind := classify(source, target)
	return Change{
		Kind:                kind,
		Source:              source,
		Target:              target,
		SignatureSimilarity: signatureScore,
		BodySimilarity:      bodyScore,
		ContextSimilarity:   contextScore,
		Similarity:          composite,
		Magnitude:           magnitudeFor(kind, composite),
		LowConfidence:       lowConfidence,
	}
}
