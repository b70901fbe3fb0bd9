// Package signature scores the signature and call-context similarity
// between two function records (spec.md §4.5). It generalizes the
// teacher's calculateSignatureSimilarity/getStructuralSignature
// (internal/similarity/detector.go), which only distinguished functions
// by string-length heuristics, into the exact weighted blend the spec
// names.
package signature

import (
	"strings"

	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/pkg/mathutil"
)

// Weights for the four signature sub-scores (spec.md §4.5).
const (
	weightQualifiedName = 0.3
	weightParameters    = 0.4
	weightReturnType    = 0.15
	weightModifiers     = 0.15
)

// Similarity returns the weighted signature-similarity blend between a
// and b, in [0, 1].
func Similarity(a, b *function.Record) float64 {
	return weightQualifiedName*qualifiedNameSimilarity(a, b) +
		weightParameters*parameterSimilarity(a, b) +
		weightReturnType*returnTypeSimilarity(a, b) +
		weightModifiers*modifierSimilarity(a, b)
}

// qualifiedNameSimilarity is 1.0 on a case-fold match, otherwise the
// normalized edit distance on the simple names (spec.md §4.5).
func qualifiedNameSimilarity(a, b *function.Record) float64 {
	if strings.EqualFold(a.QualifiedName, b.QualifiedName) {
		return 1.0
	}
	return normalizedSimilarity(a.SimpleName, b.SimpleName)
}

// normalizedSimilarity turns LevenshteinDistance (kept from the teacher's
// internal/similarity/algorithm.go) into a [0, 1] similarity.
func normalizedSimilarity(s1, s2 string) float64 {
	if s1 == "" && s2 == "" {
		return 1.0
	}
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := LevenshteinDistance(s1, s2)
	return 1.0 - float64(dist)/float64(maxLen)
}

// LevenshteinDistance is kept verbatim from the teacher's
// internal/similarity/algorithm.go: a textbook edit-distance matrix fill
// using mathutil.Min for the three-way minimum.
func LevenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}
	if s1 == s2 {
		return 0
	}

	rows := len(s1) + 1
	cols := len(s2) + 1
	matrix := make([][]int, rows)
	for i := range rows {
		matrix[i] = make([]int, cols)
		matrix[i][0] = i
	}
	for j := range cols {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = mathutil.Min(
				matrix[i-1][j]+1,
				mathutil.Min(
					matrix[i][j-1]+1,
					matrix[i-1][j-1]+cost,
				),
			)
		}
	}
	return matrix[rows-1][cols-1]
}

// parameterSimilarity is the LCS ratio over ordered parameter-type
// tokens, times a penalty for differing arity (spec.md §4.5).
func parameterSimilarity(a, b *function.Record) float64 {
	at := paramTypeTokens(a)
	bt := paramTypeTokens(b)
	if len(at) == 0 && len(bt) == 0 {
		return 1.0
	}

	lcs := longestCommonSubsequence(at, bt)
	maxLen := len(at)
	if len(bt) > maxLen {
		maxLen = len(bt)
	}
	ratio := float64(lcs) / float64(maxLen)

	arityPenalty := 1.0
	if len(at) != len(bt) {
		diff := len(at) - len(bt)
		if diff < 0 {
			diff = -diff
		}
		arityPenalty = 1.0 / (1.0 + float64(diff))
	}
	return ratio * arityPenalty
}

func paramTypeTokens(r *function.Record) []string {
	tokens := make([]string, len(r.Params))
	for i, p := range r.Params {
		tokens[i] = strings.ToLower(strings.TrimSpace(p.Type))
	}
	return tokens
}

// longestCommonSubsequence runs the standard O(n*m) LCS-length DP.
func longestCommonSubsequence(a, b []string) int {
	rows := len(a) + 1
	cols := len(b) + 1
	dp := make([][]int, rows)
	for i := range dp {
		dp[i] = make([]int, cols)
	}
	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = mathutil.Max(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return dp[rows-1][cols-1]
}

// returnTypeSimilarity: 1.0 if equal, 0.5 if one side is undeclared
// ("?"), 0.0 otherwise (spec.md §4.5).
func returnTypeSimilarity(a, b *function.Record) float64 {
	ra := strings.ToLower(strings.TrimSpace(a.ReturnType))
	rb := strings.ToLower(strings.TrimSpace(b.ReturnType))
	if ra == rb {
		return 1.0
	}
	if ra == "?" || rb == "?" {
		return 0.5
	}
	return 0.0
}

// modifierSimilarity is the Jaccard index of each record's modifier set.
func modifierSimilarity(a, b *function.Record) float64 {
	if len(a.Modifiers) == 0 && len(b.Modifiers) == 0 {
		return 1.0
	}

	set := make(map[string]struct{}, len(a.Modifiers)+len(b.Modifiers))
	for _, m := range a.Modifiers {
		set[m] = struct{}{}
	}
	bSet := make(map[string]struct{}, len(b.Modifiers))
	for _, m := range b.Modifiers {
		bSet[m] = struct{}{}
	}

	intersection := 0
	for m := range set {
		if _, ok := bSet[m]; ok {
			intersection++
		}
	}
	union := len(set)
	for m := range bSet {
		if _, ok := set[m]; !ok {
			union++
		}
	}
	if union == 0 {
		return 1.0
	}
	return float64(intersection) / float64(union)
}
