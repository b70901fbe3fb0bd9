package goadapter

import (
	"testing"

	"github.com/paveg/comparego/internal/coreast"
	"github.com/paveg/comparego/internal/function"
)

const sampleSrc = `package sample

type Greeter struct {
	name string
}

func (g *Greeter) Greet(times int, suffix string) string {
	result := ""
	for i := 0; i < times; i++ {
		result = result + g.name + suffix
	}
	return result
}

func Add(a int, b int) int {
	return a + b
}
`

func TestParseExtractsFunctionsAndMethods(t *testing.T) {
	arena, diags, err := Parse("sample.go", []byte(sampleSrc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if arena.Root < 0 {
		t.Fatal("expected a root node")
	}

	records := function.Extract(arena)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	byName := map[string]*function.Record{}
	for _, r := range records {
		byName[r.SimpleName] = r
	}

	greet, ok := byName["Greet"]
	if !ok {
		t.Fatal("expected a Greet record")
	}
	if greet.ContainingClassID != "Greeter" {
		t.Errorf("expected class id Greeter, got %q", greet.ContainingClassID)
	}
	if len(greet.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(greet.Params))
	}
	if greet.Params[0].Name != "times" || greet.Params[0].Type != "int" {
		t.Errorf("unexpected first param: %+v", greet.Params[0])
	}
	if greet.ReturnType != "string" {
		t.Errorf("expected return type string, got %q", greet.ReturnType)
	}
	if !greet.HasBody() {
		t.Error("expected Greet to have a body")
	}

	add, ok := byName["Add"]
	if !ok {
		t.Fatal("expected an Add record")
	}
	if add.ContainingClassID != "" {
		t.Errorf("expected Add to be a free function, got class id %q", add.ContainingClassID)
	}
	if add.QualifiedName != "Add" {
		t.Errorf("expected qualified name Add, got %q", add.QualifiedName)
	}
}

func TestParseSyntaxErrorStillYieldsLeadingFunctions(t *testing.T) {
	broken := []byte(`package sample

func Add(a int, b int) int {
	return a + b
}

func Broken( {
`)
	arena, diags, err := Parse("broken.go", broken)
	if err != nil {
		t.Fatalf("unexpected hard error: %v", err)
	}
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for malformed source")
	}

	records := function.Extract(arena)
	found := false
	for _, r := range records {
		if r.SimpleName == "Add" {
			found = true
		}
	}
	if !found {
		t.Error("expected Add to still be extracted despite a later syntax error")
	}
}

func TestBodyHashDistinguishesLiterals(t *testing.T) {
	srcA := []byte("package p\nfunc F() int { return 1 }\n")
	srcB := []byte("package p\nfunc F() int { return 2 }\n")

	arenaA, _, _ := Parse("a.go", srcA)
	arenaB, _, _ := Parse("b.go", srcB)

	recA := function.Extract(arenaA)[0]
	recB := function.Extract(arenaB)[0]

	if recA.BodyHash() == recB.BodyHash() {
		t.Error("expected different body hashes for functions returning different literals")
	}
}

func TestLowerFileBuildsModuleRoot(t *testing.T) {
	arena, _, err := Parse("mod.go", []byte("package mod\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	root := arena.At(arena.Root)
	if root.Kind != coreast.KindModule {
		t.Errorf("expected module root, got %v", root.Kind)
	}
	if pkg, _ := root.Attr("package"); pkg != "mod" {
		t.Errorf("expected package attr mod, got %q", pkg)
	}
}
