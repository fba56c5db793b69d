// Package textutil provides tokenization and key normalization for story text.
package textutil

import (
	"strings"
	"unicode"
)

// Token is a maximal run of whitespace or non-whitespace runes.
type Token struct {
	Text  string
	Start int // rune offset in the source
	Space bool
}

// Len returns the token length in runes.
func (t Token) Len() int {
	return len([]rune(t.Text))
}

// Tokenize splits text into alternating whitespace and non-whitespace runs.
// Concatenating the token texts reproduces the input.
func Tokenize(text string) []Token {
	var tokens []Token
	byteStart := -1
	start := 0
	space := false
	pos := 0
	for i, r := range text {
		isSpace := unicode.IsSpace(r)
		if byteStart >= 0 && isSpace != space {
			tokens = append(tokens, Token{Text: text[byteStart:i], Start: start, Space: space})
			byteStart = -1
		}
		if byteStart < 0 {
			byteStart = i
			start = pos
			space = isSpace
		}
		pos++
	}
	if byteStart >= 0 {
		tokens = append(tokens, Token{Text: text[byteStart:], Start: start, Space: space})
	}
	return tokens
}

// Words returns the non-whitespace tokens of text.
func Words(text string) []string {
	var words []string
	for _, tok := range Tokenize(text) {
		if !tok.Space {
			words = append(words, tok.Text)
		}
	}
	return words
}

// StripPunct removes '.' and ',' from word.
func StripPunct(word string) string {
	return strings.NewReplacer(".", "", ",", "").Replace(word)
}
