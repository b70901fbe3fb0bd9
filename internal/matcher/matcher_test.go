package matcher_test

import (
	"context"
	"testing"

	"github.com/paveg/comparego/internal/coreparser/lang/goadapter"
	"github.com/paveg/comparego/internal/function"
	"github.com/paveg/comparego/internal/matcher"
)

func parseAs(t *testing.T, filename, src string) []*function.Record {
	t.Helper()
	arena, _, err := goadapter.Parse(filename, []byte(src))
	if err != nil {
		t.Fatalf("parse %s: %v", filename, err)
	}
	return function.Extract(arena)
}

func findChange(t *testing.T, changes []matcher.Change, name string) matcher.Change {
	t.Helper()
	for _, c := range changes {
		if c.Source != nil && c.Source.SimpleName == name {
			return c
		}
		if c.Target != nil && c.Target.SimpleName == name {
			return c
		}
	}
	t.Fatalf("no change record for %s", name)
	return matcher.Change{}
}

func TestMatchIdenticalFileYieldsModifiedAtOne(t *testing.T) {
	src := `package p
func Add(a, b int) int { return a + b }
`
	source := parseAs(t, "a.go", src)
	target := parseAs(t, "a.go", src)

	result := matcher.Match(context.Background(), source, target, matcher.Options{})
	if len(result.Changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(result.Changes))
	}
	c := result.Changes[0]
	if c.Kind != matcher.KindModified || c.Similarity != 1.0 || c.Magnitude != 0.0 {
		t.Errorf("expected modified/1.0/0.0, got %+v", c)
	}
}

func TestMatchDeletedFunction(t *testing.T) {
	source := parseAs(t, "a.go", `package p
func Add(a, b int) int { return a + b }
func Sub(a, b int) int { return a - b }
`)
	target := parseAs(t, "a.go", `package p
func Add(a, b int) int { return a + b }
`)

	result := matcher.Match(context.Background(), source, target, matcher.Options{})
	sub := findChange(t, result.Changes, "Sub")
	if sub.Kind != matcher.KindDeleted || sub.Magnitude != 1.0 {
		t.Errorf("expected Sub deleted at magnitude 1.0, got %+v", sub)
	}
}

func TestMatchRenamedFunctionSameFile(t *testing.T) {
	source := parseAs(t, "a.go", `package p
func IsEven(x int) bool { return x%2 == 0 }
`)
	target := parseAs(t, "a.go", `package p
func IsNumberEven(x int) bool { return x%2 == 0 }
`)

	result := matcher.Match(context.Background(), source, target, matcher.Options{MatchThreshold: 0.5})
	c := findChange(t, result.Changes, "IsNumberEven")
	if c.Kind != matcher.KindRenamed {
		t.Errorf("expected renamed, got %+v", c)
	}
	if c.Magnitude != 0.3 {
		t.Errorf("expected magnitude 0.3, got %v", c.Magnitude)
	}
}

func TestMatchMovedFunctionDifferentFile(t *testing.T) {
	source := parseAs(t, "a.go", `package p
func Foo() int { return 1 }
`)
	target := parseAs(t, "b.go", `package p
func Foo() int { return 1 }
`)

	result := matcher.Match(context.Background(), source, target, matcher.Options{})
	c := findChange(t, result.Changes, "Foo")
	if c.Kind != matcher.KindMoved {
		t.Errorf("expected moved, got %+v", c)
	}
	if c.Magnitude != 0.2 {
		t.Errorf("expected magnitude 0.2, got %v", c.Magnitude)
	}
}

func TestMatchAddedFunction(t *testing.T) {
	source := parseAs(t, "a.go", `package p
func Add(a, b int) int { return a + b }
`)
	target := parseAs(t, "a.go", `package p
func Add(a, b int) int { return a + b }
func New() int { return 0 }
`)

	result := matcher.Match(context.Background(), source, target, matcher.Options{})
	c := findChange(t, result.Changes, "New")
	if c.Kind != matcher.KindAdded || c.Magnitude != 1.0 {
		t.Errorf("expected New added at magnitude 1.0, got %+v", c)
	}
}

func TestMatchReorderedBodyStaysModified(t *testing.T) {
	source := parseAs(t, "a.go", `package p
func Process(x int) int {
	x = x * 2
	x = x + 1
	return x
}
`)
	target := parseAs(t, "a.go", `package p
func Process(x int) int {
	x = x + 1
	x = x * 2
	return x
}
`)

	result := matcher.Match(context.Background(), source, target, matcher.Options{})
	c := findChange(t, result.Changes, "Process")
	if c.Kind != matcher.KindModified {
		t.Errorf("expected modified for a reordered body, got %+v", c)
	}
	if c.Similarity <= matcher.DefaultMatchThreshold || c.Similarity >= 1.0 {
		t.Errorf("expected similarity strictly between %v and 1.0, got %v", matcher.DefaultMatchThreshold, c.Similarity)
	}
}

func TestMatchEmptyCorporaYieldsNoChanges(t *testing.T) {
	result := matcher.Match(context.Background(), nil, nil, matcher.Options{})
	if len(result.Changes) != 0 {
		t.Errorf("expected no changes for empty corpora, got %d", len(result.Changes))
	}
}
