// Package similarity scores how alike two strings are using edit distance.
package similarity

import (
	"math"
	"strings"
)

// Distance returns the Levenshtein distance between a and b, comparing runes
// case-insensitively. It keeps a single rolling cost row.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	return distance(ra, rb)
}

func distance(ra, rb []rune) int {
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	costs := make([]int, len(rb)+1)
	for j := range costs {
		costs[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		// diag holds costs[i-1][j-1] before costs[j-1] is overwritten.
		diag := costs[0]
		costs[0] = i
		for j := 1; j <= len(rb); j++ {
			above := costs[j]
			if ra[i-1] == rb[j-1] {
				costs[j] = diag
			} else {
				costs[j] = min(diag, above, costs[j-1]) + 1
			}
			diag = above
		}
	}
	return costs[len(rb)]
}

// Score returns a likeness score in [0, 100]. Two empty strings score 100.
func Score(a, b string) int {
	if a == "" && b == "" {
		return 100
	}
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	longest := max(len(ra), len(rb), 1)
	d := distance(ra, rb)
	return int(math.Round(100 * (1 - float64(d)/float64(longest))))
}
