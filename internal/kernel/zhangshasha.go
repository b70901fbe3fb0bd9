// Package kernel computes tree-edit-distance similarity between two
// function body subtrees of the uniform AST (spec.md §4.4).
//
// Distance replaces the teacher's simplified recursive edit distance in
// internal/similarity/algorithm.go (a naive top-down insert/delete/
// substitute walk with no key-root memoization) with the exact
// Zhang-Shasha algorithm: key-roots and leftmost-leaf descendants are
// precomputed per tree in O(n), then the standard forest-pair DP table is
// filled bottom-up over key-root pairs.
package kernel

import (
	"context"
	"fmt"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/corerrors"
	"github.com/paveg/comparego/pkg/mathutil"
)

// tree holds the postorder-indexed view of one subtree that the
// Zhang-Shasha DP operates over. Index 0 is unused; postorder positions
// are 1..size.
type tree struct {
	size  int
	kind  []coreast.Kind // kind[i] = kind of the node at postorder position i
	attr  []string       // attr[i] = relabel-relevant attribute text, "" if none
	left  []int          // left[i] = postorder position of i's leftmost leaf descendant
}

// buildTree walks the subtree rooted at idx and produces its postorder
// view, skipping zero-weight nodes (spec.md §4.1's error-recovery
// exclusion) entirely — they never occupy a postorder slot and so never
// contribute to size_bound or the edit script.
func buildTree(arena *coreast.Arena, idx int) *tree {
	t := &tree{}
	t.kind = append(t.kind, coreast.KindUnknown) // index 0 placeholder
	t.attr = append(t.attr, "")
	t.left = append(t.left, 0)

	var walk func(idx int) int // returns postorder position, or 0 if skipped
	walk = func(idx int) int {
		node := arena.At(idx)
		if node == nil || node.Kind.IsZeroWeight() {
			return 0
		}

		firstChildPos := 0
		for _, child := range node.Children {
			pos := walk(child)
			if pos != 0 && firstChildPos == 0 {
				firstChildPos = pos
			}
		}

		pos := len(t.kind)
		t.kind = append(t.kind, node.Kind)
		t.attr = append(t.attr, relabelAttr(node))

		if firstChildPos == 0 {
			t.left = append(t.left, pos) // leaf: leftmost descendant is itself
		} else {
			t.left = append(t.left, t.left[firstChildPos])
		}
		return pos
	}

	walk(idx)
	t.size = len(t.kind) - 1
	return t
}

// relabelAttr returns the attribute text the relabel-cost schedule
// compares for identifier and literal nodes, "" for every other kind
// (spec.md §4.4: "identifier/literal attributes match").
func relabelAttr(n *coreast.Node) string {
	if n.Kind == coreast.KindIdentifier || n.Kind == coreast.KindLiteral {
		return n.Text()
	}
	return ""
}

// keyroots returns the sorted key-root positions of t: a postorder
// position i is a key root if no position j > i shares the same leftmost
// leaf descendant (the standard Zhang-Shasha definition).
func (t *tree) keyroots() []int {
	seen := make(map[int]int, t.size) // leftmost-leaf position -> last key root seen for it
	for i := 1; i <= t.size; i++ {
		seen[t.left[i]] = i
	}
	roots := make([]int, 0, len(seen))
	for _, i := range seen {
		roots = append(roots, i)
	}
	// insertion sort is fine; key-root counts are small relative to tree size
	for i := 1; i < len(roots); i++ {
		for j := i; j > 0 && roots[j-1] > roots[j]; j-- {
			roots[j-1], roots[j] = roots[j], roots[j-1]
		}
	}
	return roots
}

func relabelCost(a *tree, i int, b *tree, j int) float64 {
	if a.kind[i] != b.kind[j] {
		return 1.0
	}
	if a.kind[i] == coreast.KindIdentifier || a.kind[i] == coreast.KindLiteral {
		if a.attr[i] == b.attr[j] {
			return 0.0
		}
		return 0.5
	}
	return 0.0
}

// Distance computes the Zhang-Shasha tree-edit-distance similarity
// between the subtrees rooted at aRoot in aArena and bRoot in bArena,
// returning a score in [0, 1] (spec.md §4.4: 1 − distance/size_bound).
//
// ctx is checked once per outer key-root-pair iteration; on cancellation
// or deadline expiry, Distance returns corerrors.ErrKernelBudgetExceeded
// and the caller is expected to fall back to Heuristic.
func Distance(ctx context.Context, aArena *coreast.Arena, aRoot int, bArena *coreast.Arena, bRoot int) (float64, error) {
	a := buildTree(aArena, aRoot)
	b := buildTree(bArena, bRoot)

	sizeBound := mathutil.Max(a.size, b.size)
	if sizeBound == 0 {
		return 1.0, nil
	}
	if a.size == 0 || b.size == 0 {
		return 0.0, nil
	}

	aRoots := a.keyroots()
	bRoots := b.keyroots()

	// treedist[i][j] memoizes the tree-edit distance between the subtree
	// ending at postorder position i in a and j in b; populated only at
	// key-root pairs, then reused by forestDist's fall-through branch.
	treedist := make([][]float64, a.size+1)
	for i := range treedist {
		treedist[i] = make([]float64, b.size+1)
	}

	for _, i := range aRoots {
		for _, j := range bRoots {
			select {
			case <-ctx.Done():
				return 0, fmt.Errorf("%w: tree-edit distance", corerrors.ErrKernelBudgetExceeded)
			default:
			}
			forestDist(a, i, b, j, treedist)
		}
	}

	dist := treedist[a.size][b.size]
	similarity := 1.0 - dist/float64(sizeBound)
	if similarity < 0 {
		similarity = 0
	}
	return similarity, nil
}

// forestDist fills the forest-distance table for the forests ending at
// key roots i (tree a) and j (tree b), writing the tree-distance value
// into treedist[i][j] as it goes (the standard Zhang-Shasha treedist
// subroutine).
func forestDist(a *tree, i int, b *tree, j int, treedist [][]float64) {
	li, lj := a.left[i], b.left[j]

	// forestdist is addressed with an offset so index 0 means "one before
	// li" / "one before lj"; we use maps keyed by absolute postorder
	// position to keep the offsets readable.
	rows := i - li + 2
	cols := j - lj + 2
	fd := make([][]float64, rows)
	for r := range fd {
		fd[r] = make([]float64, cols)
	}

	idx := func(p, base int) int { return p - base + 1 }

	for i1 := li; i1 <= i; i1++ {
		fd[idx(i1, li)][0] = fd[idx(i1-1, li)][0] + 1
	}
	for j1 := lj; j1 <= j; j1++ {
		fd[0][idx(j1, lj)] = fd[0][idx(j1-1, lj)] + 1
	}

	for i1 := li; i1 <= i; i1++ {
		for j1 := lj; j1 <= j; j1++ {
			if a.left[i1] == li && b.left[j1] == lj {
				cost := relabelCost(a, i1, b, j1)
				fd[idx(i1, li)][idx(j1, lj)] = minOf3(
					fd[idx(i1-1, li)][idx(j1, lj)]+1,
					fd[idx(i1, li)][idx(j1-1, lj)]+1,
					fd[idx(i1-1, li)][idx(j1-1, lj)]+cost,
				)
				treedist[i1][j1] = fd[idx(i1, li)][idx(j1, lj)]
			} else {
				fd[idx(i1, li)][idx(j1, lj)] = minOf3(
					fd[idx(i1-1, li)][idx(j1, lj)]+1,
					fd[idx(i1, li)][idx(j1-1, lj)]+1,
					fd[idx(a.left[i1]-1, li)][idx(b.left[j1]-1, lj)]+treedist[i1][j1],
				)
			}
		}
	}
}

func minOf3(a, b, c float64) float64 {
	return mathutil.Min(mathutil.Min(a, b), c)
}
