package textutil

import (
	"strings"
	"testing"
	"unicode"
)

func TestTokenizeReconstructs(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"  ",
		"Measure twice, cut once.",
		"  leading and trailing  ",
		"tabs\tand\nnewlines\r\n",
		"héllo wörld",
		"ab\xff cd",
		"\xe0\xa4 broken\xc3",
	}
	for _, in := range inputs {
		tokens := Tokenize(in)
		var b strings.Builder
		for _, tok := range tokens {
			if tok.Text == "" {
				t.Fatalf("empty token for %q", in)
			}
			for _, r := range tok.Text {
				if unicode.IsSpace(r) != tok.Space {
					t.Fatalf("mixed token %q in %q", tok.Text, in)
				}
			}
			b.WriteString(tok.Text)
		}
		if b.String() != in {
			t.Fatalf("expected %q, got %q", in, b.String())
		}
	}
}

func TestTokenizeAlternatesAndOffsets(t *testing.T) {
	tokens := Tokenize("ab  cé d")
	want := []Token{
		{Text: "ab", Start: 0},
		{Text: "  ", Start: 2, Space: true},
		{Text: "cé", Start: 4},
		{Text: " ", Start: 6, Space: true},
		{Text: "d", Start: 7},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %+v, got %+v", i, want[i], tokens[i])
		}
	}
	if tokens[2].Len() != 2 {
		t.Fatalf("expected rune length 2, got %d", tokens[2].Len())
	}
}

func TestTokenizeInvalidUTF8Offsets(t *testing.T) {
	tokens := Tokenize("ab\xff cd")
	want := []Token{
		{Text: "ab\xff", Start: 0},
		{Text: " ", Start: 3, Space: true},
		{Text: "cd", Start: 4},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d: expected %+v, got %+v", i, want[i], tokens[i])
		}
	}
	if tokens[0].Len() != 3 {
		t.Fatalf("expected rune length 3, got %d", tokens[0].Len())
	}
}

func TestTokenizeEmpty(t *testing.T) {
	if tokens := Tokenize(""); len(tokens) != 0 {
		t.Fatalf("expected no tokens, got %+v", tokens)
	}
}

func TestWords(t *testing.T) {
	words := Words(" the  quick\tfox ")
	if strings.Join(words, "|") != "the|quick|fox" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Carpenter,": "carpenter",
		"\"Measure":  "measure",
		"don't":      "dont",
		"...":        "",
		"":           "",
		"Résumé":     "rsum",
		"ABC123":     "abc",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
		if again := NormalizeKey(NormalizeKey(in)); again != NormalizeKey(in) {
			t.Fatalf("NormalizeKey not idempotent for %q", in)
		}
	}
}

func TestStripPunct(t *testing.T) {
	if got := StripPunct("once.\","); got != "once\"" {
		t.Fatalf("unexpected strip result %q", got)
	}
}
