package wordlist

import "github.com/verte-zerg/storytype/internal/textutil"

// Filter normalizes words to lowercase letters, dropping empties and repeats.
func Filter(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, word := range words {
		key := textutil.NormalizeKey(word)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}
