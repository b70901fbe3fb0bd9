package coreparser

import (
	"context"
	"path/filepath"

	"github.com/paveg/comparego/internal/coreparser/lang/goadapter"
	"github.com/paveg/comparego/internal/coreparser/lang/jsts"
	"github.com/paveg/comparego/internal/coreparser/lang/treesitter"
)

// extensionLanguages maps a file extension to its default language id.
// Grounded on termfx-morfx/internal/registry/registry.go's
// extension-to-provider lookup table. ".h" is deliberately absent: C and
// C++ headers share it, so it is resolved by pickByFewestErrors instead
// of a table lookup.
var extensionLanguages = map[string]string{
	".go":    "go",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cxx":   "cpp",
	".hpp":   "cpp",
	".py":    "python",
	".rs":    "rust",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".js":    "javascript",
	".jsx":   "javascript",
	".mjs":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
}

// headerCandidates is the candidate set ".h" biases to: it is valid C or
// C++ far more often than anything else, so extension alone cannot
// resolve it the way every other table entry does.
var headerCandidates = []string{"c", "cpp"}

// allCandidates is every language this module recognizes, tried in this
// order when the extension gives no bias at all (missing or
// unrecognized extension).
var allCandidates = []string{
	"go", "javascript", "typescript", "java", "c", "cpp",
	"python", "rust", "ruby", "php", "swift", "kotlin",
}

// DetectLanguage returns the language id for path. spec.md §4.1: the
// extension is the first-pass bias; when it picks out a single
// unambiguous language that language is used directly. When the
// extension either names a genuinely ambiguous set (".h", shared by C
// and C++) or names nothing at all, every candidate recognizer runs
// against src and the one producing the fewest error-recovery nodes
// wins, grounded on the bias-then-verify dispatch in
// termfx-morfx/internal/registry.
func DetectLanguage(path string, src []byte) string {
	ext := filepath.Ext(path)

	if ext == ".h" {
		return pickByFewestErrors(headerCandidates, src, "c")
	}

	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}

	if len(src) == 0 {
		return "unknown"
	}

	return pickByFewestErrors(allCandidates, src, "unknown")
}

// pickByFewestErrors parses src once per candidate and returns the
// candidate whose error-recovery node count is lowest, falling back to
// fallback if every candidate fails outright (e.g. src isn't valid input
// to any candidate grammar's scanner).
func pickByFewestErrors(candidates []string, src []byte, fallback string) string {
	best := fallback
	bestErrors := -1

	for _, lang := range candidates {
		errs, ok := countErrorNodes(lang, src)
		if !ok {
			continue
		}
		if bestErrors == -1 || errs < bestErrors {
			bestErrors = errs
			best = lang
		}
	}

	return best
}

// countErrorNodes runs the adapter for lang against src and reports how
// many recoverable diagnostics (ERROR/MISSING nodes) it produced.
func countErrorNodes(lang string, src []byte) (int, bool) {
	switch lang {
	case "go":
		_, diags, err := goadapter.Parse("detect.go", src)
		if err != nil {
			return 0, false
		}
		return len(diags), true
	case "javascript", "typescript":
		_, diags, err := jsts.Parse("detect", lang, src)
		if err != nil {
			return 0, false
		}
		return len(diags), true
	default:
		grammar, ok := treesitterGrammar(lang)
		if !ok {
			return 0, false
		}
		_, diags, err := treesitter.Parse(context.Background(), "detect", lang, src, grammar)
		if err != nil {
			return 0, false
		}
		return len(diags), true
	}
}
