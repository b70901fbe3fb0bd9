package kernel_test

import (
	"context"
	"testing"

	"github.com/paveg/comparego/internal/kernel"
	"github.com/paveg/comparego/internal/testhelpers"
)

func TestDistanceIdenticalBodiesScoreOne(t *testing.T) {
	before, after := testhelpers.BuildCorpusPair(t, `package p
func Add(a, b int) int { return a + b }
`, `package p
func Add(a, b int) int { return a + b }
`)
	if len(before) != 1 || len(after) != 1 {
		t.Fatalf("expected one function per side, got %d/%d", len(before), len(after))
	}

	sim, err := kernel.Distance(context.Background(), before[0].Arena, before[0].BodyRoot, after[0].Arena, after[0].BodyRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim != 1.0 {
		t.Errorf("expected similarity 1.0 for identical bodies, got %v", sim)
	}
}

func TestDistanceDifferingLiteralScoresBelowOne(t *testing.T) {
	before, after := testhelpers.BuildCorpusPair(t, `package p
func F() int { return 1 }
`, `package p
func F() int { return 2 }
`)

	sim, err := kernel.Distance(context.Background(), before[0].Arena, before[0].BodyRoot, after[0].Arena, after[0].BodyRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim >= 1.0 {
		t.Errorf("expected similarity below 1.0 for a changed literal, got %v", sim)
	}
	if sim <= 0.0 {
		t.Errorf("expected similarity above 0.0 for a single-node change, got %v", sim)
	}
}

func TestDistanceCompletelyDifferentBodiesScoresLow(t *testing.T) {
	before, after := testhelpers.BuildCorpusPair(t, `package p
func F() int { return 1 }
`, `package p
func F() string {
	for i := 0; i < 10; i++ {
		if i == 5 {
			return "five"
		}
	}
	return "none"
}
`)

	sim, err := kernel.Distance(context.Background(), before[0].Arena, before[0].BodyRoot, after[0].Arena, after[0].BodyRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sim > 0.5 {
		t.Errorf("expected low similarity between structurally unrelated bodies, got %v", sim)
	}
}

func TestHeuristicAgreesOnIdenticalBags(t *testing.T) {
	before, after := testhelpers.BuildCorpusPair(t, `package p
func F(a int) int { return a + 1 }
`, `package p
func F(a int) int { return a + 1 }
`)

	got := kernel.Heuristic(before[0].Arena, before[0].BodyRoot, after[0].Arena, after[0].BodyRoot)
	if got != 1.0 {
		t.Errorf("expected heuristic 1.0 on identical kind bags, got %v", got)
	}
}

func TestHeuristicReflectsStructuralDivergence(t *testing.T) {
	before, after := testhelpers.BuildCorpusPair(t, `package p
func F() int { return 1 }
`, `package p
func F() string {
	for i := 0; i < 10; i++ {
		if i == 5 {
			return "five"
		}
	}
	return "none"
}
`)

	got := kernel.Heuristic(before[0].Arena, before[0].BodyRoot, after[0].Arena, after[0].BodyRoot)
	if got >= 1.0 {
		t.Errorf("expected heuristic below 1.0 for divergent bodies, got %v", got)
	}
}
