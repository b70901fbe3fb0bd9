// Package symbol builds, per corpus, the declared-name table, per-file
// define/reference index, and import graph the matcher consults for
// call-graph context similarity (spec.md §4.5) and move-vs-rename gating
// (spec.md §4.3/§4.6).
//
// There is no teacher equivalent: the teacher compares functions within
// one corpus and never resolves a cross-file reference. Grounded on
// other_examples/3ff9d0ec_..._execute_symbol_resolution.go (declare/
// reference maps, "resolve only when exactly one candidate in scope") and
// other_examples/eaf984a0_..._symbol_index.go (per-file defines/
// references index feeding reference-count-gated classification).
package symbol

import (
	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/pkg/types"
)

// Symbol is one declared name in a corpus.
type Symbol struct {
	QualifiedName string
	SimpleName    string
	File          string
	Record        *function.Record
}

// Table is the declared-name index for one corpus: qualified name and
// simple name both resolve to the declaring symbol(s), the latter
// possibly ambiguous across files.
type Table struct {
	byQualified map[string][]*Symbol
	bySimple    map[string][]*Symbol
}

// NewTable builds a Table from every function record in a corpus.
func NewTable(records []*function.Record) *Table {
	t := &Table{
		byQualified: make(map[string][]*Symbol),
		bySimple:    make(map[string][]*Symbol),
	}
	for _, rec := range records {
		sym := &Symbol{
			QualifiedName: rec.QualifiedName,
			SimpleName:    rec.SimpleName,
			File:          rec.File,
			Record:        rec,
		}
		t.byQualified[sym.QualifiedName] = append(t.byQualified[sym.QualifiedName], sym)
		t.bySimple[sym.SimpleName] = append(t.bySimple[sym.SimpleName], sym)
	}
	return t
}

// ResolveQualified returns the symbol declared under the exact qualified
// name, present only when exactly one candidate exists (links a reference
// to a declaration only when there is exactly one candidate in scope).
// Returns an Optional rather than a (*Symbol, bool) pair: "no unique
// candidate" is a normal, expected outcome here, not a failure condition,
// and the caller chain (resolve.go's CalledQualifiedNames) discards unresolved
// names anyway, matching pkg/types' own documented Optional usage.
func (t *Table) ResolveQualified(name string) types.Optional[*Symbol] {
	cands := t.byQualified[name]
	if len(cands) == 1 {
		return types.Some(cands[0])
	}
	return types.None[*Symbol]()
}

// ResolveSimple resolves an unqualified reference the same one-candidate
// way, falling back to the qualified index first since a call site may
// use either form.
func (t *Table) ResolveSimple(name string) types.Optional[*Symbol] {
	if sym := t.ResolveQualified(name); sym.IsSome() {
		return sym
	}
	cands := t.bySimple[name]
	if len(cands) == 1 {
		return types.Some(cands[0])
	}
	return types.None[*Symbol]()
}

// FilesReferencing returns, for a simple name, the set of distinct files
// containing a symbol declared under that name — used to tell whether a
// name is unique enough across the corpus for move-vs-rename gating to
// trust a single candidate.
func (t *Table) FilesReferencing(simpleName string) map[string]struct{} {
	files := make(map[string]struct{})
	for _, sym := range t.bySimple[simpleName] {
		files[sym.File] = struct{}{}
	}
	return files
}
