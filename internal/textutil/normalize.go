package textutil

import "strings"

// NormalizeKey lowercases word and drops everything outside a-z.
// An empty result means the word has no lookup key.
func NormalizeKey(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		ch := lower[i]
		if ch >= 'a' && ch <= 'z' {
			b.WriteByte(ch)
		}
	}
	return b.String()
}
