package symbol

import (
	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

// ImportGraph maps a file to the files or modules its import/include/
// require statements name. Built from the uniform KindImport tag so it
// never needs per-language knowledge at this layer (spec.md §4.3).
type ImportGraph map[string][]string

// BuildImportGraph walks the distinct arenas reachable from records
// (records sharing a file share an arena) and collects KindImport node
// text per file.
func BuildImportGraph(records []*function.Record) ImportGraph {
	graph := make(ImportGraph)
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Arena == nil || seen[rec.Arena.File] {
			continue
		}
		seen[rec.Arena.File] = true

		var imports []string
		if rec.Arena.Root >= 0 {
			rec.Arena.Walk(rec.Arena.Root, func(_ int, n *coreast.Node) bool {
				if n.Kind == coreast.KindImport {
					if text := n.Text(); text != "" {
						imports = append(imports, text)
					}
				}
				return true
			})
		}
		if len(imports) > 0 {
			graph[rec.Arena.File] = imports
		}
	}
	return graph
}
