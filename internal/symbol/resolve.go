package symbol

import (
	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

// FileIndex maps each file in a corpus to the qualified names it declares
// and the simple names its functions reference in their bodies. Grounded
// on other_examples/eaf984a0_..._symbol_index.go's byFile secondary
// index, generalized from a concurrent-safe lookup structure down to the
// plain in-memory maps this single-pass, single-threaded build needs.
type FileIndex struct {
	Defines    map[string]map[string]struct{} // file -> qualified names declared
	References map[string]map[string]struct{} // file -> simple names referenced
}

// BuildFileIndex walks every record's body collecting the simple names it
// calls, and records what each file declares.
func BuildFileIndex(records []*function.Record) *FileIndex {
	idx := &FileIndex{
		Defines:    make(map[string]map[string]struct{}),
		References: make(map[string]map[string]struct{}),
	}
	for _, rec := range records {
		if idx.Defines[rec.File] == nil {
			idx.Defines[rec.File] = make(map[string]struct{})
		}
		idx.Defines[rec.File][rec.QualifiedName] = struct{}{}

		if idx.References[rec.File] == nil {
			idx.References[rec.File] = make(map[string]struct{})
		}
		for _, name := range calledSimpleNames(rec) {
			idx.References[rec.File][name] = struct{}{}
		}
	}
	return idx
}

// CalledQualifiedNames resolves every name rec's body calls to a
// qualified name via table, for use as the context-similarity call set
// (spec.md §4.5). Unresolved references (zero or multiple candidates) are
// silently dropped — spec.md §4.3: "Unresolved references remain
// unresolved; this is not a failure."
func CalledQualifiedNames(rec *function.Record, table *Table) []string {
	var out []string
	for _, name := range calledSimpleNames(rec) {
		if sym := table.ResolveSimple(name); sym.IsSome() {
			out = append(out, sym.Unwrap().QualifiedName)
		}
	}
	return out
}

// calledSimpleNames walks rec's body for KindCall nodes and extracts the
// callee's simple name: the last identifier found in a pre-order walk of
// the call's first child, which is the callee expression in every
// adapter's lowering convention (a bare identifier for a direct call, or
// a dotted-access chain ending in the member/function identifier).
func calledSimpleNames(rec *function.Record) []string {
	if !rec.HasBody() {
		return nil
	}

	var names []string
	rec.Arena.Walk(rec.BodyRoot, func(_ int, n *coreast.Node) bool {
		if n.Kind != coreast.KindCall || len(n.Children) == 0 {
			return true
		}
		if name := lastIdentifier(rec.Arena, n.Children[0]); name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}

func lastIdentifier(arena *coreast.Arena, idx int) string {
	last := ""
	arena.Walk(idx, func(_ int, n *coreast.Node) bool {
		if n.Kind == coreast.KindIdentifier {
			last = n.Text()
		}
		return true
	})
	return last
}

// IsReferencedOutsideFile reports whether simpleName is referenced by any
// file other than definingFile — the matcher's move-vs-rename signal
// (spec.md §4.3: "is this name referenced in any file other than its
// defining file?").
func IsReferencedOutsideFile(idx *FileIndex, simpleName, definingFile string) bool {
	for file, refs := range idx.References {
		if file == definingFile {
			continue
		}
		if _, ok := refs[simpleName]; ok {
			return true
		}
	}
	return false
}
