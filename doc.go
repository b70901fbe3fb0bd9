// Package comparego provides a cross-language structural code-comparison
// engine that identifies the functions corresponding to each other across
// two versions of a codebase, scores how much each one changed, and
// classifies the differences (renamed, moved, modified, added, deleted).
//
// The engine combines an exact/signature-hash cascade, a Zhang-Shasha
// tree-edit-distance kernel over a uniform cross-language AST, symbol-table-
// backed call-context similarity, and Hungarian bipartite assignment to
// produce matches that survive reordering, renaming, and movement between
// files — where a line-based diff would not.
//
// Key Features:
//   - Twelve-language structural parsing behind one uniform AST
//   - Exact-hash and signature-only cascade passes before any scoring
//   - Zhang-Shasha tree edit distance with a bag-of-kinds heuristic fallback
//   - Cross-file symbol resolution for move/rename confidence
//   - Optimal bipartite function matching via the Hungarian algorithm
//   - A sealed, indexed comparison context supporting filtered/paginated
//     change queries
//
// Basic Usage:
//
//	// Compare two directory trees
//	comparecli ./before ./after
//
//	// Custom match threshold and output format
//	comparecli --match-threshold 0.6 --format yaml ./before ./after
//
// The engine is designed for cross-version refactor tracking, code review
// across renames and file moves, and build-pipeline gating on how much of
// a codebase actually changed.
package comparego
