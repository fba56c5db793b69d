// Package generator builds drill word sequences.
package generator

import (
	"math/rand"
	"time"

	"github.com/verte-zerg/storytype/internal/stats"
)

// Generator produces randomized drill text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate selects words uniformly.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// GenerateWeighted selects words with a bias toward low pronunciation scores.
// Each word weighs 1 + factor*(100-avg)/100.
func (g *Generator) GenerateWeighted(weak []stats.WeakWord, count int, factor float64) []string {
	if len(weak) == 0 || count <= 0 {
		return nil
	}
	if factor < 0 {
		factor = 0
	}
	weights := make([]float64, len(weak))
	total := 0.0
	for i, ww := range weak {
		deficit := (100 - ww.AvgScore) / 100
		if deficit < 0 {
			deficit = 0
		}
		w := 1.0 + deficit*factor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(weights) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, weak[idx].Word)
	}
	return result
}
