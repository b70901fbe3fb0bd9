package symbol_test

import (
	"testing"

	"github.com/paveg/comparego/internal/coreparser/lang/goadapter"
	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/internal/symbol"
)

func parseRecords(t *testing.T, filename, src string) []*function.Record {
	t.Helper()
	arena, _, err := goadapter.Parse(filename, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", filename, err)
	}
	return function.Extract(arena)
}

func TestTableResolvesUniqueQualifiedName(t *testing.T) {
	records := parseRecords(t, "a.go", `package p
func Helper() int { return 1 }
func Caller() int { return Helper() }
`)
	table := symbol.NewTable(records)

	sym := table.ResolveQualified("Helper")
	if sym.IsNone() {
		t.Fatalf("expected to resolve Helper")
	}
	if sym.Unwrap().SimpleName != "Helper" {
		t.Errorf("expected SimpleName Helper, got %s", sym.Unwrap().SimpleName)
	}
}

func TestResolveSimpleIsAmbiguousAcrossFiles(t *testing.T) {
	recordsA := parseRecords(t, "a.go", `package p
func Dup() int { return 1 }
`)
	recordsB := parseRecords(t, "b.go", `package p
func Dup() int { return 2 }
`)
	all := append(append([]*function.Record{}, recordsA...), recordsB...)
	table := symbol.NewTable(all)

	if table.ResolveSimple("Dup").IsSome() {
		t.Error("expected ambiguous simple name across two files to be unresolved")
	}
}

func TestCalledQualifiedNamesFindsCallee(t *testing.T) {
	records := parseRecords(t, "a.go", `package p
func Helper() int { return 1 }
func Caller() int { return Helper() }
`)
	table := symbol.NewTable(records)

	var caller *function.Record
	for _, r := range records {
		if r.SimpleName == "Caller" {
			caller = r
		}
	}
	if caller == nil {
		t.Fatal("expected to find Caller record")
	}

	called := symbol.CalledQualifiedNames(caller, table)
	if len(called) != 1 || called[0] != "Helper" {
		t.Errorf("expected [Helper], got %v", called)
	}
}

func TestIsReferencedOutsideFile(t *testing.T) {
	recordsA := parseRecords(t, "a.go", `package p
func Helper() int { return 1 }
`)
	recordsB := parseRecords(t, "b.go", `package p
func Caller() int { return Helper() }
`)
	all := append(append([]*function.Record{}, recordsA...), recordsB...)
	idx := symbol.BuildFileIndex(all)

	if !symbol.IsReferencedOutsideFile(idx, "Helper", "a.go") {
		t.Error("expected Helper to be referenced outside its defining file")
	}
	if symbol.IsReferencedOutsideFile(idx, "Caller", "b.go") {
		t.Error("did not expect Caller to be referenced outside its defining file")
	}
}

func TestBuildImportGraphCollectsPerFileImports(t *testing.T) {
	records := parseRecords(t, "a.go", `package p

import "fmt"

func F() { fmt.Println("x") }
`)
	graph := symbol.BuildImportGraph(records)
	imports, ok := graph["a.go"]
	if !ok || len(imports) != 1 {
		t.Fatalf("expected one import recorded for a.go, got %v", imports)
	}
}
