package generator

import (
	"testing"

	"github.com/verte-zerg/storytype/internal/stats"
)

func TestGenerateUsesInputWords(t *testing.T) {
	g := NewSeeded(1)
	words := []string{"wise", "carpenter", "lesson"}
	out := g.Generate(words, 20)
	if len(out) != 20 {
		t.Fatalf("expected 20 words, got %d", len(out))
	}
	allowed := map[string]bool{"wise": true, "carpenter": true, "lesson": true}
	for _, w := range out {
		if !allowed[w] {
			t.Fatalf("unexpected word %q", w)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	g := NewSeeded(1)
	if out := g.Generate(nil, 5); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
	if out := g.GenerateWeighted(nil, 5, 2); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
	if out := g.Generate([]string{"a"}, 0); len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestGenerateWeightedPrefersWeakWords(t *testing.T) {
	g := NewSeeded(42)
	weak := []stats.WeakWord{
		{Word: "carpenter", AvgScore: 0},
		{Word: "wise", AvgScore: 100},
	}
	out := g.GenerateWeighted(weak, 2000, 9)
	counts := map[string]int{}
	for _, w := range out {
		counts[w]++
	}
	if counts["carpenter"] <= counts["wise"]*5 {
		t.Fatalf("expected weak word to dominate: %v", counts)
	}
}

func TestGenerateWeightedZeroFactorIsUniform(t *testing.T) {
	g := NewSeeded(7)
	weak := []stats.WeakWord{
		{Word: "a", AvgScore: 0},
		{Word: "b", AvgScore: 100},
	}
	out := g.GenerateWeighted(weak, 2000, 0)
	counts := map[string]int{}
	for _, w := range out {
		counts[w]++
	}
	if counts["a"] < 800 || counts["b"] < 800 {
		t.Fatalf("expected roughly uniform selection: %v", counts)
	}
}
