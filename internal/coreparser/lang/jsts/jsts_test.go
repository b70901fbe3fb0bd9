package jsts

import (
	"testing"

	"github.com/paveg/comparego/internal/function"
)

const sampleSrc = `class Greeter {
  greet(name, suffix = "!", ...rest) {
    return name + suffix;
  }
}

function add(a, b) {
  return a + b;
}
`

func TestParseExtractsFunctionsAndMethods(t *testing.T) {
	arena, diags, err := Parse("sample.js", "javascript", []byte(sampleSrc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	records := function.Extract(arena)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	byName := map[string]*function.Record{}
	for _, r := range records {
		byName[r.SimpleName] = r
	}

	greet, ok := byName["greet"]
	if !ok {
		t.Fatal("expected a greet record")
	}
	if greet.ContainingClassID != "Greeter" {
		t.Errorf("expected class id Greeter, got %q", greet.ContainingClassID)
	}
	if len(greet.Params) != 3 {
		t.Fatalf("expected 3 params, got %+v", greet.Params)
	}
	if greet.Params[0].Name != "name" || greet.Params[0].HasDefault || greet.Params[0].Variadic {
		t.Errorf("unexpected plain param: %+v", greet.Params[0])
	}
	if greet.Params[1].Name != "suffix" || !greet.Params[1].HasDefault {
		t.Errorf("expected suffix to have a default: %+v", greet.Params[1])
	}
	if greet.Params[2].Name != "rest" || !greet.Params[2].Variadic {
		t.Errorf("expected rest to be variadic: %+v", greet.Params[2])
	}
	if !greet.HasBody() {
		t.Error("expected greet to have a body")
	}

	add, ok := byName["add"]
	if !ok {
		t.Fatal("expected an add record")
	}
	if add.ContainingClassID != "" {
		t.Errorf("expected add to be a free function, got class id %q", add.ContainingClassID)
	}
	if len(add.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(add.Params))
	}
}

func TestParseSyntaxErrorIsRecorded(t *testing.T) {
	broken := []byte(`function add(a, b) {
  return a + b;
}

function broken( {
`)
	_, diags, err := Parse("broken.js", "javascript", broken)
	if err != nil {
		t.Fatalf("unexpected hard error: %v", err)
	}
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for malformed source")
	}
}

func TestParseTypeScriptUsesJavaScriptGrammar(t *testing.T) {
	arena, _, err := Parse("sample.ts", "typescript", []byte("function add(a, b) {\n  return a + b;\n}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	records := function.Extract(arena)
	if len(records) != 1 || records[0].SimpleName != "add" {
		t.Fatalf("expected a single add record, got %+v", records)
	}
}
