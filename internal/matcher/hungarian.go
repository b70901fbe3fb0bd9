package matcher

import "math"

// hungarianPadCost is assigned to every padding cell introduced when the
// cost matrix is squared up; it must exceed any real cost (1 − composite
// is at most 1) so a padding cell is only chosen when no real pairing is
// possible for that row or column.
const hungarianPadCost = 1e6

// solveAssignment runs the O(n^3) Kuhn-Munkres algorithm (the classic
// potentials formulation) on an n-by-m cost matrix and returns, for each
// row, the assigned column, or -1 if the row was matched to a padding
// column (meaning it has no real counterpart).
//
// spec.md §4.6 names the Hungarian algorithm for the bipartite-assignment
// step; no teacher or pack repo implements one (the closest precedent,
// other_examples/fba58096_..._explore-similar.go, does a top-k nearest-
// match search, not an optimal assignment), so this is written directly
// from the textbook recurrence.
func solveAssignment(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	m := len(cost[0])

	size := n
	if m > size {
		size = m
	}

	// 1-indexed square cost matrix, padded with hungarianPadCost.
	a := make([][]float64, size+1)
	for i := 1; i <= size; i++ {
		a[i] = make([]float64, size+1)
		for j := 1; j <= size; j++ {
			if i <= n && j <= m {
				a[i][j] = cost[i-1][j-1]
			} else {
				a[i][j] = hungarianPadCost
			}
		}
	}

	u := make([]float64, size+1)
	v := make([]float64, size+1)
	p := make([]int, size+1) // p[j] = row assigned to column j
	way := make([]int, size+1)

	for i := 1; i <= size; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, size+1)
		used := make([]bool, size+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := -1
			for j := 1; j <= size; j++ {
				if used[j] {
					continue
				}
				cur := a[i0][j] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= size; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowToCol := make([]int, n)
	for i := range rowToCol {
		rowToCol[i] = -1
	}
	for j := 1; j <= size; j++ {
		row := p[j]
		if row >= 1 && row <= n && j <= m {
			rowToCol[row-1] = j - 1
		}
	}
	return rowToCol
}
